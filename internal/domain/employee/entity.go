package employee

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("employee not found")
	ErrEmailTaken = errors.New("employee email already registered")
)

// MinimumAge is the youngest age accepted at registration.
const MinimumAge = 18

const DateLayout = "2006-01-02"

type Employee struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"dob"`
	Education    string    `json:"education"`
	Skills       []string  `json:"skills"`
	Experience   int       `json:"experience"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the applicant projection attached to applications.
type Profile struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Education  string   `json:"education"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
}

// AgeAt returns the number of whole years between dob and at, compared as
// UTC calendar dates.
func AgeAt(dob, at time.Time) int {
	dob = dob.UTC()
	at = at.UTC()

	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}
