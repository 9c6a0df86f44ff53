package seeder

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/employee"

	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmployerEmail = "employer@demo.local"
	DemoEmployeeEmail = "employee@demo.local"
	DemoPassword      = "password123"
)

type EmployerSeeder struct{}

func (EmployerSeeder) Name() string { return "employers" }

func (EmployerSeeder) Run(ctx context.Context, db database.Querier) error {
	if err := RequireColumns(ctx, db, "employers", "id", "name", "email", "password_hash", "company_name"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO employers (name, email, password_hash, company_name) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		"Rina Hartono",
		DemoEmployerEmail,
		string(hash),
		"Kopi Senja",
	)
	return err
}

type EmployeeSeeder struct{}

func (EmployeeSeeder) Name() string { return "employees" }

func (EmployeeSeeder) Run(ctx context.Context, db database.Querier) error {
	if err := RequireColumns(ctx, db, "employees", "id", "email", "dob", "education", "skills", "latitude", "longitude"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	skills, err := employee.EncodeSkills([]string{"Customer Service", "Cashier", "English"})
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO employees (name, email, password_hash, dob, education, skills, experience, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9) ON CONFLICT (email) DO NOTHING`,
		"Budi Santoso",
		DemoEmployeeEmail,
		string(hash),
		"2001-04-12",
		"Undergraduate",
		string(skills),
		1,
		-6.2001,
		106.8166,
	)
	return err
}
