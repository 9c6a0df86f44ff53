package employer

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("employer not found")
	ErrEmailTaken = errors.New("employer email already registered")
)

type Employer struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
