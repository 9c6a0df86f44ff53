package event

import "time"

const (
	TypeJobPosted                = "job_posted"
	TypeJobClosed                = "job_closed"
	TypeJobDeleted               = "job_deleted"
	TypeApplicationSubmitted     = "application_submitted"
	TypeApplicationStatusChanged = "application_status_changed"
)

// Event describes a change that connected clients are told about.
type Event struct {
	Type      string    `json:"type"`
	EntityID  int64     `json:"entity_id"`
	ActorID   int64     `json:"actor_id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
