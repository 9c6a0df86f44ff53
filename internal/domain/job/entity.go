package job

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("job not found")
	ErrClosed   = errors.New("job is no longer accepting applications")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// TypePartTime is the only job type offered at creation.
const TypePartTime = "Part-time"

type Job struct {
	ID          int64     `json:"id" db:"id"`
	EmployerID  int64     `json:"employer_id" db:"employer_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Salary      *string   `json:"salary" db:"salary"`
	JobType     string    `json:"job_type" db:"job_type"`
	TimeSlot    *string   `json:"time_slot" db:"time_slot"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (j Job) IsOpen() bool {
	return j.Status == StatusOpen
}

// Listing is a job joined with its employer.
type Listing struct {
	Job
	EmployerName string   `json:"employer_name" db:"employer_name"`
	CompanyName  string   `json:"company_name" db:"company_name"`
	DistanceKM   *float64 `json:"distance_km,omitempty" db:"-"`
}
