package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"
)

type ApplyInput struct {
	JobID       int64
	EmployeeID  int64
	CoverLetter string
}

type UpdateStatusInput struct {
	ApplicationID int64
	EmployerID    int64
	Status        string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplyInput) (int64, error)
	ListForEmployer(ctx context.Context, employerID int64) ([]application.Received, error)
	ListForJob(ctx context.Context, jobID, employerID int64) ([]application.Received, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]application.Submitted, error)
	Get(ctx context.Context, id int64) (application.Details, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (application.Status, error)
}

type Applications struct {
	tx           database.TxManager
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	employers    repository.EmployerRepository
	employees    repository.EmployeeRepository
	events       EventPublisher
	logger       *log.Logger
	now          func() time.Time
}

func NewApplicationUsecase(
	tx database.TxManager,
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	employers repository.EmployerRepository,
	employees repository.EmployeeRepository,
	events EventPublisher,
	logger *log.Logger,
) *Applications {
	return &Applications{
		tx:           tx,
		applications: applications,
		jobs:         jobs,
		employers:    employers,
		employees:    employees,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *Applications) Apply(ctx context.Context, in ApplyInput) (int64, error) {
	if in.JobID <= 0 {
		return 0, job.ErrNotFound
	}
	if in.EmployeeID <= 0 {
		return 0, employee.ErrNotFound
	}

	var id int64
	err := withinReadWrite(ctx, u.tx, func(ctx context.Context) error {
		j, err := u.jobs.GetForShare(ctx, in.JobID)
		if err != nil {
			return err
		}
		if !j.IsOpen() {
			return job.ErrClosed
		}

		exists, err := u.employees.Exists(ctx, in.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return employee.ErrNotFound
		}

		applied, err := u.applications.Exists(ctx, in.JobID, in.EmployeeID)
		if err != nil {
			return err
		}
		if applied {
			return application.ErrAlreadyApplied
		}

		id, err = u.applications.Create(ctx, application.Application{
			JobID:       in.JobID,
			EmployeeID:  in.EmployeeID,
			Status:      application.StatusWaiting,
			CoverLetter: in.CoverLetter,
		})
		return err
	})
	if err != nil {
		return 0, passThrough(u.logger, "Applications", err,
			job.ErrNotFound, job.ErrClosed, employee.ErrNotFound, application.ErrAlreadyApplied)
	}

	publish(u.events, u.now, event.TypeApplicationSubmitted, id, in.EmployeeID, string(application.StatusWaiting))
	return id, nil
}

func (u *Applications) ListForEmployer(ctx context.Context, employerID int64) ([]application.Received, error) {
	exists, err := u.employers.Exists(ctx, employerID)
	if err != nil {
		return nil, internalError(u.logger, "Applications", err)
	}
	if !exists {
		return nil, employer.ErrNotFound
	}

	items, err := u.applications.ListForEmployer(ctx, employerID)
	if err != nil {
		return nil, internalError(u.logger, "Applications", err)
	}
	return items, nil
}

// ListForJob returns the applications received for one job. Only the
// employer that owns the job may see them.
func (u *Applications) ListForJob(ctx context.Context, jobID, employerID int64) ([]application.Received, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, passThrough(u.logger, "Applications", err, job.ErrNotFound)
	}
	if j.EmployerID != employerID {
		return nil, ErrUnauthorized
	}

	items, err := u.applications.ListForJob(ctx, jobID)
	if err != nil {
		return nil, internalError(u.logger, "Applications", err)
	}
	return items, nil
}

func (u *Applications) ListForEmployee(ctx context.Context, employeeID int64) ([]application.Submitted, error) {
	exists, err := u.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, internalError(u.logger, "Applications", err)
	}
	if !exists {
		return nil, employee.ErrNotFound
	}

	items, err := u.applications.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, internalError(u.logger, "Applications", err)
	}
	return items, nil
}

func (u *Applications) Get(ctx context.Context, id int64) (application.Details, error) {
	d, err := u.applications.GetDetails(ctx, id)
	if err != nil {
		return application.Details{}, passThrough(u.logger, "Applications", err, application.ErrNotFound)
	}
	return d, nil
}

// UpdateStatus resolves a waiting application. The change is a single
// conditional update, so of two concurrent resolutions exactly one wins and
// the other sees ErrStatusLocked.
func (u *Applications) UpdateStatus(ctx context.Context, in UpdateStatusInput) (application.Status, error) {
	next, ok := application.ParseStatus(in.Status)
	if !ok {
		return "", ErrInvalidInput
	}

	owner, err := u.applications.GetJobOwner(ctx, in.ApplicationID)
	if err != nil {
		return "", passThrough(u.logger, "Applications", err, application.ErrNotFound)
	}
	if owner != in.EmployerID {
		return "", ErrUnauthorized
	}

	updated, err := u.applications.UpdateStatusIfWaiting(ctx, in.ApplicationID, next)
	if err != nil {
		return "", internalError(u.logger, "Applications", err)
	}
	if !updated {
		current, err := u.applications.GetStatus(ctx, in.ApplicationID)
		if err != nil {
			return "", passThrough(u.logger, "Applications", err, application.ErrNotFound)
		}
		if current.IsTerminal() {
			return "", application.ErrStatusLocked
		}
		return "", internalError(u.logger, "Applications",
			fmt.Errorf("status update not applied: application=%d current=%s", in.ApplicationID, current))
	}

	publish(u.events, u.now, event.TypeApplicationStatusChanged, in.ApplicationID, in.EmployerID, string(next))
	return next, nil
}
