package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/geo"

	"github.com/georgysavva/scany/v2/pgxscan"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (int64, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	GetForUpdate(ctx context.Context, id int64) (job.Job, error)
	GetForShare(ctx context.Context, id int64) (job.Job, error)
	GetListing(ctx context.Context, id int64) (job.Listing, error)
	ListOpen(ctx context.Context) ([]job.Listing, error)
	ListOpenWithin(ctx context.Context, box geo.Box) ([]job.Listing, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error)
	SetStatus(ctx context.Context, id int64, status job.Status) error
	Delete(ctx context.Context, id int64) error
}

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const (
	jobColumns = `j.id, j.employer_id, j.title, j.description, j.salary, j.job_type, j.time_slot,
		j.latitude, j.longitude, j.status, j.created_at`

	listingSelect = `SELECT ` + jobColumns + `, e.name AS employer_name, e.company_name
		 FROM jobs j
		 JOIN employers e ON e.id = j.employer_id`
)

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (int64, error) {
	if j.JobType == "" {
		j.JobType = job.TypePartTime
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}

	var id int64
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, description, salary, job_type, time_slot, latitude, longitude, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		j.EmployerID, j.Title, j.Description, j.Salary, j.JobType, j.TimeSlot, j.Latitude, j.Longitude, string(j.Status),
	).Scan(&id)
	return id, err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	return r.getJob(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
}

// GetForUpdate locks the job row until the surrounding transaction ends.
func (r *PostgresJobRepository) GetForUpdate(ctx context.Context, id int64) (job.Job, error) {
	return r.getJob(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1 FOR UPDATE`, id)
}

// GetForShare blocks concurrent writers of the job row, but not other
// readers, until the surrounding transaction ends.
func (r *PostgresJobRepository) GetForShare(ctx context.Context, id int64) (job.Job, error) {
	return r.getJob(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1 FOR SHARE`, id)
}

func (r *PostgresJobRepository) getJob(ctx context.Context, query string, id int64) (job.Job, error) {
	var j job.Job
	if err := pgxscan.Get(ctx, database.QuerierFromContext(ctx, r.db), &j, query, id); err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) GetListing(ctx context.Context, id int64) (job.Listing, error) {
	var l job.Listing
	err := pgxscan.Get(ctx, database.QuerierFromContext(ctx, r.db), &l, listingSelect+` WHERE j.id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, err
	}
	return l, nil
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context) ([]job.Listing, error) {
	out := make([]job.Listing, 0)
	err := pgxscan.Select(ctx, database.QuerierFromContext(ctx, r.db), &out,
		listingSelect+`
		 WHERE j.status = 'open'
		 ORDER BY j.created_at DESC, j.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListOpenWithin returns open jobs whose coordinates fall inside box. The
// caller applies the exact distance filter.
func (r *PostgresJobRepository) ListOpenWithin(ctx context.Context, box geo.Box) ([]job.Listing, error) {
	out := make([]job.Listing, 0)
	err := pgxscan.Select(ctx, database.QuerierFromContext(ctx, r.db), &out,
		listingSelect+`
		 WHERE j.status = 'open'
		   AND j.latitude IS NOT NULL AND j.longitude IS NOT NULL
		   AND j.latitude BETWEEN $1 AND $2
		   AND j.longitude BETWEEN $3 AND $4
		 ORDER BY j.created_at DESC, j.id DESC`,
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error) {
	out := make([]job.Job, 0)
	err := pgxscan.Select(ctx, database.QuerierFromContext(ctx, r.db), &out,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.employer_id = $1
		 ORDER BY j.created_at DESC, j.id DESC`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id int64, status job.Status) error {
	tag, err := database.QuerierFromContext(ctx, r.db).Exec(ctx,
		`UPDATE jobs SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id int64) error {
	tag, err := database.QuerierFromContext(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}
