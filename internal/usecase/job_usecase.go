package usecase

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/geo"
	"jobboard/internal/repository"
)

type CreateJobInput struct {
	EmployerID  int64
	Title       string
	Description string
	Salary      *string
	TimeSlot    *string
	Latitude    *float64
	Longitude   *float64
}

type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

type JobUsecase interface {
	Create(ctx context.Context, in CreateJobInput) (int64, error)
	ListOpen(ctx context.Context) ([]job.Listing, error)
	ListNearby(ctx context.Context, params NearbyParams) ([]job.Listing, error)
	Get(ctx context.Context, id int64) (job.Listing, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error)
	Close(ctx context.Context, jobID, employerID int64) error
	Delete(ctx context.Context, jobID, employerID int64) (int64, error)
}

type Jobs struct {
	tx           database.TxManager
	jobs         repository.JobRepository
	employers    repository.EmployerRepository
	applications repository.ApplicationRepository
	cache        Cache
	cacheTTL     time.Duration
	events       EventPublisher
	logger       *log.Logger
	now          func() time.Time
}

func NewJobUsecase(
	tx database.TxManager,
	jobs repository.JobRepository,
	employers repository.EmployerRepository,
	applications repository.ApplicationRepository,
	cache Cache,
	cacheTTL time.Duration,
	events EventPublisher,
	logger *log.Logger,
) *Jobs {
	return &Jobs{
		tx:           tx,
		jobs:         jobs,
		employers:    employers,
		applications: applications,
		cache:        cache,
		cacheTTL:     cacheTTL,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *Jobs) Create(ctx context.Context, in CreateJobInput) (int64, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if in.EmployerID <= 0 || title == "" || description == "" {
		return 0, ErrInvalidInput
	}
	if err := validateOptionalPoint(in.Latitude, in.Longitude); err != nil {
		return 0, err
	}

	exists, err := u.employers.Exists(ctx, in.EmployerID)
	if err != nil {
		return 0, internalError(u.logger, "Jobs", err)
	}
	if !exists {
		return 0, employer.ErrNotFound
	}

	id, err := u.jobs.Create(ctx, job.Job{
		EmployerID:  in.EmployerID,
		Title:       title,
		Description: description,
		Salary:      trimOptional(in.Salary),
		JobType:     job.TypePartTime,
		TimeSlot:    trimOptional(in.TimeSlot),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      job.StatusOpen,
	})
	if err != nil {
		return 0, internalError(u.logger, "Jobs", err)
	}

	u.invalidate(ctx, openJobsCacheKey)
	u.publish(event.TypeJobPosted, id, in.EmployerID, string(job.StatusOpen))
	return id, nil
}

func (u *Jobs) ListOpen(ctx context.Context) ([]job.Listing, error) {
	var cached []job.Listing
	if u.cacheGet(ctx, openJobsCacheKey, &cached) {
		return cached, nil
	}

	items, err := u.jobs.ListOpen(ctx)
	if err != nil {
		return nil, internalError(u.logger, "Jobs", err)
	}
	u.cacheSet(ctx, openJobsCacheKey, items)
	return items, nil
}

// ListNearby returns open jobs within params.RadiusKM of the given point,
// nearest first, each annotated with its distance.
func (u *Jobs) ListNearby(ctx context.Context, params NearbyParams) ([]job.Listing, error) {
	center := geo.Point{Lat: params.Latitude, Lng: params.Longitude}
	if err := center.Validate(); err != nil {
		return nil, ErrInvalidInput
	}
	radius := params.RadiusKM
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, ErrInvalidInput
	}

	candidates, err := u.jobs.ListOpenWithin(ctx, geo.BoundingBox(center, radius))
	if err != nil {
		return nil, internalError(u.logger, "Jobs", err)
	}

	out := make([]job.Listing, 0, len(candidates))
	for _, l := range candidates {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		d := geo.Distance(center, geo.Point{Lat: *l.Latitude, Lng: *l.Longitude})
		if d > radius {
			continue
		}
		l.DistanceKM = &d
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKM < *out[j].DistanceKM
	})
	return out, nil
}

func (u *Jobs) Get(ctx context.Context, id int64) (job.Listing, error) {
	if id <= 0 {
		return job.Listing{}, job.ErrNotFound
	}

	key := jobCacheKey(id)
	var cached job.Listing
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	l, err := u.jobs.GetListing(ctx, id)
	if err != nil {
		return job.Listing{}, passThrough(u.logger, "Jobs", err, job.ErrNotFound)
	}
	u.cacheSet(ctx, key, l)
	return l, nil
}

func (u *Jobs) ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error) {
	exists, err := u.employers.Exists(ctx, employerID)
	if err != nil {
		return nil, internalError(u.logger, "Jobs", err)
	}
	if !exists {
		return nil, employer.ErrNotFound
	}

	items, err := u.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, internalError(u.logger, "Jobs", err)
	}
	return items, nil
}

// Close stops a job from accepting applications. Closing a closed job is a
// no-op.
func (u *Jobs) Close(ctx context.Context, jobID, employerID int64) error {
	err := withinReadWrite(ctx, u.tx, func(ctx context.Context) error {
		j, err := u.jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if j.EmployerID != employerID {
			return ErrUnauthorized
		}
		if j.Status == job.StatusClosed {
			return nil
		}
		return u.jobs.SetStatus(ctx, jobID, job.StatusClosed)
	})
	if err != nil {
		return passThrough(u.logger, "Jobs", err, job.ErrNotFound, ErrUnauthorized)
	}

	u.invalidate(ctx, openJobsCacheKey, jobCacheKey(jobID))
	u.publish(event.TypeJobClosed, jobID, employerID, string(job.StatusClosed))
	return nil
}

// Delete removes a job and its applications in one transaction and returns
// the number of applications removed.
func (u *Jobs) Delete(ctx context.Context, jobID, employerID int64) (int64, error) {
	var removed int64
	err := withinReadWrite(ctx, u.tx, func(ctx context.Context) error {
		j, err := u.jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if j.EmployerID != employerID {
			return ErrUnauthorized
		}

		n, err := u.applications.DeleteByJob(ctx, jobID)
		if err != nil {
			return err
		}
		if err := u.jobs.Delete(ctx, jobID); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, passThrough(u.logger, "Jobs", err, job.ErrNotFound, ErrUnauthorized)
	}

	if u.logger != nil {
		u.logger.Printf("[Jobs] deleted job=%d applications=%d", jobID, removed)
	}
	u.invalidate(ctx, openJobsCacheKey, jobCacheKey(jobID))
	u.publish(event.TypeJobDeleted, jobID, employerID, "")
	return removed, nil
}

func (u *Jobs) cacheGet(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.Get(ctx, key, out)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache error: %s err=%v", key, err)
		}
		return false
	}
	if u.logger != nil {
		if hit {
			u.logger.Printf("[Jobs] Cache HIT: %s", key)
		} else {
			u.logger.Printf("[Jobs] Cache MISS: %s", key)
		}
	}
	return hit
}

func (u *Jobs) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, key, value, u.cacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] Cache set error: %s err=%v", key, err)
	}
}

func (u *Jobs) invalidate(ctx context.Context, keys ...string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, keys...); err != nil && u.logger != nil {
		u.logger.Printf("[Jobs] Cache invalidate error: keys=%v err=%v", keys, err)
	}
}

func (u *Jobs) publish(typ string, entityID, actorID int64, status string) {
	publish(u.events, u.now, typ, entityID, actorID, status)
}

func publish(p EventPublisher, now func() time.Time, typ string, entityID, actorID int64, status string) {
	if p == nil {
		return
	}
	p.Publish(event.Event{
		Type:      typ,
		EntityID:  entityID,
		ActorID:   actorID,
		Status:    status,
		Timestamp: now().UTC(),
	})
}

func withinReadWrite(ctx context.Context, tx database.TxManager, fn func(context.Context) error) error {
	if tx == nil {
		return fn(ctx)
	}
	return tx.WithinReadWrite(ctx, fn)
}

func validateOptionalPoint(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return ErrInvalidInput
	}
	if lat == nil {
		return nil
	}
	if err := (geo.Point{Lat: *lat, Lng: *lng}).Validate(); err != nil {
		return ErrInvalidInput
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
