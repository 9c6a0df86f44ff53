package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/employee"

	"github.com/jackc/pgx/v5"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e employee.Employee) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (employee.Employee, error)
	GetByID(ctx context.Context, id int64) (employee.Employee, error)
}

type PostgresEmployeeRepository struct {
	db database.Querier
}

func NewPostgresEmployeeRepository(db database.Querier) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, password_hash, dob, education, skills, experience, latitude, longitude, created_at`

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e employee.Employee) (int64, error) {
	skills, err := employee.EncodeSkills(e.Skills)
	if err != nil {
		return 0, err
	}

	var id int64
	err = database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`INSERT INTO employees (name, email, password_hash, dob, education, skills, experience, latitude, longitude)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		e.Name, e.Email, e.PasswordHash, e.DateOfBirth, e.Education, string(skills), e.Experience, e.Latitude, e.Longitude,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, employee.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresEmployeeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresEmployeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	row := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	row := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

// skills is read as raw bytes so a malformed document degrades to an empty
// list instead of failing the whole row.
func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e      employee.Employee
		skills []byte
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.DateOfBirth, &e.Education,
		&skills, &e.Experience, &e.Latitude, &e.Longitude, &e.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}
	e.Skills = employee.DecodeSkills(skills)
	return e, nil
}
