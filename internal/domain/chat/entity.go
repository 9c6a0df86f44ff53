package chat

import "time"

// Entry is one question/answer pair in an employee's chat history.
type Entry struct {
	ID         int64     `json:"id" db:"id"`
	EmployeeID int64     `json:"employee_id" db:"employee_id"`
	Question   string    `json:"question" db:"question"`
	Answer     string    `json:"answer" db:"answer"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
