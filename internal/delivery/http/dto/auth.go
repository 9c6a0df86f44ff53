package dto

import (
	"bytes"
	"errors"

	json "github.com/goccy/go-json"
)

type RegisterRequest struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	UserType    string    `json:"userType"`
	CompanyName string    `json:"companyName"`
	DOB         string    `json:"dob"`
	Education   string    `json:"education"`
	Skills      SkillList `json:"skills"`
	Experience  *int      `json:"experience"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type RegisterResponse struct {
	UserID int64 `json:"userId"`
}

type LoginResponse struct {
	Token       string   `json:"token"`
	UserID      int64    `json:"userId"`
	UserType    string   `json:"userType"`
	Name        string   `json:"name"`
	CompanyName string   `json:"companyName,omitempty"`
	Education   string   `json:"education,omitempty"`
	// Skills is set for employees only and then always encoded, even empty.
	Skills *[]string `json:"skills,omitempty"`
}

var ErrInvalidSkills = errors.New("invalid skills format")

// SkillList accepts a JSON array of strings or a string holding one.
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}

	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return ErrInvalidSkills
		}
		if raw == "" {
			*s = nil
			return nil
		}
		b = []byte(raw)
	}

	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return ErrInvalidSkills
	}
	*s = out
	return nil
}
