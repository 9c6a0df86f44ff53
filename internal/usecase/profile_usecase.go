package usecase

import (
	"context"
	"log"

	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/repository"
)

type ProfileUsecase interface {
	GetEmployer(ctx context.Context, id int64) (employer.Employer, error)
	GetEmployee(ctx context.Context, id int64) (employee.Employee, error)
}

type Profiles struct {
	employers repository.EmployerRepository
	employees repository.EmployeeRepository
	logger    *log.Logger
}

func NewProfileUsecase(employers repository.EmployerRepository, employees repository.EmployeeRepository, logger *log.Logger) *Profiles {
	return &Profiles{employers: employers, employees: employees, logger: logger}
}

func (u *Profiles) GetEmployer(ctx context.Context, id int64) (employer.Employer, error) {
	e, err := u.employers.GetByID(ctx, id)
	if err != nil {
		return employer.Employer{}, passThrough(u.logger, "Profiles", err, employer.ErrNotFound)
	}
	e.PasswordHash = ""
	return e, nil
}

func (u *Profiles) GetEmployee(ctx context.Context, id int64) (employee.Employee, error) {
	e, err := u.employees.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, passThrough(u.logger, "Profiles", err, employee.ErrNotFound)
	}
	e.PasswordHash = ""
	return e, nil
}
