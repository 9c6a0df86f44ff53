package application

import (
	"errors"
	"time"

	"jobboard/internal/domain/employee"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrStatusLocked   = errors.New("application status can no longer change")
)

type Application struct {
	ID          int64     `json:"id" db:"id"`
	JobID       int64     `json:"job_id" db:"job_id"`
	EmployeeID  int64     `json:"employee_id" db:"employee_id"`
	Status      Status    `json:"status" db:"status"`
	CoverLetter string    `json:"cover_letter" db:"cover_letter"`
	AppliedAt   time.Time `json:"applied_at" db:"applied_at"`
}

// Received is an application seen by the employer: the applicant profile
// plus the title of the job applied for.
type Received struct {
	Application
	employee.Profile
	JobTitle string `json:"job_title"`
}

// Submitted is an application seen by the employee who sent it.
type Submitted struct {
	Application
	JobTitle    string  `json:"job_title" db:"job_title"`
	TimeSlot    *string `json:"time_slot" db:"time_slot"`
	CompanyName string  `json:"company_name" db:"company_name"`
}

// Details is the full view of a single application.
type Details struct {
	Application
	employee.Profile
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
}
