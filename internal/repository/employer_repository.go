package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/employer"

	"github.com/georgysavva/scany/v2/pgxscan"
)

type EmployerRepository interface {
	Create(ctx context.Context, e employer.Employer) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (employer.Employer, error)
	GetByID(ctx context.Context, id int64) (employer.Employer, error)
}

type PostgresEmployerRepository struct {
	db database.Querier
}

func NewPostgresEmployerRepository(db database.Querier) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{db: db}
}

const employerColumns = `id, name, email, password_hash, company_name, created_at`

func (r *PostgresEmployerRepository) Create(ctx context.Context, e employer.Employer) (int64, error) {
	var id int64
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`INSERT INTO employers (name, email, password_hash, company_name)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		e.Name, e.Email, e.PasswordHash, e.CompanyName,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, employer.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresEmployerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employers WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresEmployerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employers WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresEmployerRepository) GetByEmail(ctx context.Context, email string) (employer.Employer, error) {
	return r.getOne(ctx, `SELECT `+employerColumns+` FROM employers WHERE email = $1`, email)
}

func (r *PostgresEmployerRepository) GetByID(ctx context.Context, id int64) (employer.Employer, error) {
	return r.getOne(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1`, id)
}

func (r *PostgresEmployerRepository) getOne(ctx context.Context, query string, arg any) (employer.Employer, error) {
	var e employer.Employer
	if err := pgxscan.Get(ctx, database.QuerierFromContext(ctx, r.db), &e, query, arg); err != nil {
		if isNoRows(err) {
			return employer.Employer{}, employer.ErrNotFound
		}
		return employer.Employer{}, err
	}
	return e, nil
}
