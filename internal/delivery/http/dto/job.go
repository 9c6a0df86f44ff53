package dto

type CreateJobRequest struct {
	EmployerID  int64    `json:"employer_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Salary      *string  `json:"salary"`
	TimeSlot    *string  `json:"time_slot"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// EmployerActionRequest carries the acting employer for close and delete.
type EmployerActionRequest struct {
	EmployerID int64 `json:"employer_id"`
}

type CreateJobResponse struct {
	JobID int64 `json:"jobId"`
}

type DeleteJobResponse struct {
	ApplicationsDeleted int64 `json:"applicationsDeleted"`
}
