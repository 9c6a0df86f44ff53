package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/job"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (int64, error)
	Exists(ctx context.Context, jobID, employeeID int64) (bool, error)
	GetStatus(ctx context.Context, id int64) (application.Status, error)
	GetJobOwner(ctx context.Context, id int64) (int64, error)
	UpdateStatusIfWaiting(ctx context.Context, id int64, status application.Status) (bool, error)
	DeleteByJob(ctx context.Context, jobID int64) (int64, error)
	ListForEmployer(ctx context.Context, employerID int64) ([]application.Received, error)
	ListForJob(ctx context.Context, jobID int64) ([]application.Received, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]application.Submitted, error)
	GetDetails(ctx context.Context, id int64) (application.Details, error)
}

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const receivedSelect = `SELECT a.id, a.job_id, a.employee_id, a.status, a.cover_letter, a.applied_at,
		e.name, e.email, e.education, e.skills, e.experience, j.title
	 FROM applications a
	 JOIN jobs j ON j.id = a.job_id
	 JOIN employees e ON e.id = a.employee_id`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (int64, error) {
	if a.Status == "" {
		a.Status = application.StatusWaiting
	}

	var id int64
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`INSERT INTO applications (job_id, employee_id, status, cover_letter)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		a.JobID, a.EmployeeID, string(a.Status), a.CoverLetter,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, application.ErrAlreadyApplied
		}
		if isForeignKeyViolation(err) {
			if constraintName(err) == "applications_employee_id_fkey" {
				return 0, employee.ErrNotFound
			}
			return 0, job.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, employeeID int64) (bool, error) {
	var exists bool
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND employee_id = $2)`,
		jobID, employeeID,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresApplicationRepository) GetStatus(ctx context.Context, id int64) (application.Status, error) {
	var status string
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT status FROM applications WHERE id = $1`, id,
	).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return "", application.ErrNotFound
		}
		return "", err
	}
	return application.Status(status), nil
}

// GetJobOwner returns the employer that owns the job an application was
// made for.
func (r *PostgresApplicationRepository) GetJobOwner(ctx context.Context, id int64) (int64, error) {
	var employerID int64
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT j.employer_id
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	).Scan(&employerID)
	if err != nil {
		if isNoRows(err) {
			return 0, application.ErrNotFound
		}
		return 0, err
	}
	return employerID, nil
}

// UpdateStatusIfWaiting changes the status only while the application is
// still waiting. It reports whether a row was updated.
func (r *PostgresApplicationRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status application.Status) (bool, error) {
	tag, err := database.QuerierFromContext(ctx, r.db).Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2 AND status = 'waiting'`,
		string(status), id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresApplicationRepository) DeleteByJob(ctx context.Context, jobID int64) (int64, error) {
	tag, err := database.QuerierFromContext(ctx, r.db).Exec(ctx,
		`DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresApplicationRepository) ListForEmployer(ctx context.Context, employerID int64) ([]application.Received, error) {
	rows, err := database.QuerierFromContext(ctx, r.db).Query(ctx,
		receivedSelect+`
	 WHERE j.employer_id = $1
	 ORDER BY a.applied_at DESC, a.id DESC`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	return collectReceived(rows)
}

func (r *PostgresApplicationRepository) ListForJob(ctx context.Context, jobID int64) ([]application.Received, error) {
	rows, err := database.QuerierFromContext(ctx, r.db).Query(ctx,
		receivedSelect+`
	 WHERE a.job_id = $1
	 ORDER BY a.applied_at DESC, a.id DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	return collectReceived(rows)
}

func (r *PostgresApplicationRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]application.Submitted, error) {
	out := make([]application.Submitted, 0)
	err := pgxscan.Select(ctx, database.QuerierFromContext(ctx, r.db), &out,
		`SELECT a.id, a.job_id, a.employee_id, a.status, a.cover_letter, a.applied_at,
			j.title AS job_title, j.time_slot, e.company_name
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN employers e ON e.id = j.employer_id
		 WHERE a.employee_id = $1
		 ORDER BY a.applied_at DESC, a.id DESC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetDetails(ctx context.Context, id int64) (application.Details, error) {
	var (
		d      application.Details
		status string
		skills []byte
	)
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT a.id, a.job_id, a.employee_id, a.status, a.cover_letter, a.applied_at,
			e.name, e.email, e.education, e.skills, e.experience,
			j.title, j.description, em.company_name
		 FROM applications a
		 JOIN employees e ON e.id = a.employee_id
		 JOIN jobs j ON j.id = a.job_id
		 JOIN employers em ON em.id = j.employer_id
		 WHERE a.id = $1`,
		id,
	).Scan(
		&d.ID, &d.JobID, &d.EmployeeID, &status, &d.CoverLetter, &d.AppliedAt,
		&d.Name, &d.Email, &d.Education, &skills, &d.Experience,
		&d.JobTitle, &d.JobDescription, &d.CompanyName,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Details{}, application.ErrNotFound
		}
		return application.Details{}, err
	}
	d.Status = application.Status(status)
	d.Skills = employee.DecodeSkills(skills)
	return d, nil
}

func collectReceived(rows pgx.Rows) ([]application.Received, error) {
	defer rows.Close()

	out := make([]application.Received, 0)
	for rows.Next() {
		var (
			a      application.Received
			status string
			skills []byte
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.EmployeeID, &status, &a.CoverLetter, &a.AppliedAt,
			&a.Name, &a.Email, &a.Education, &skills, &a.Experience, &a.JobTitle,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		a.Skills = employee.DecodeSkills(skills)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
