package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/chat"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/geo"
)

var errStoreDown = errors.New("store down")

// memStore backs every fake repository so a fake transaction can snapshot
// and restore all tables at once.
type memStore struct {
	mu sync.Mutex

	employers    map[int64]employer.Employer
	employees    map[int64]employee.Employee
	jobs         map[int64]job.Job
	applications map[int64]application.Application
	chats        []chat.Entry
	nextID       int64

	failJobDelete bool
	failListOpen  bool
	sharedReads   []int64
}

func newMemStore() *memStore {
	return &memStore{
		employers:    map[int64]employer.Employer{},
		employees:    map[int64]employee.Employee{},
		jobs:         map[int64]job.Job{},
		applications: map[int64]application.Application{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addEmployer(name, company string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.employers[id] = employer.Employer{ID: id, Name: name, Email: name + "@corp.io", CompanyName: company}
	return id
}

func (s *memStore) addEmployee(name string, skills ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.employees[id] = employee.Employee{ID: id, Name: name, Email: name + "@mail.io", Education: "BSc", Skills: skills}
	return id
}

type snapshot struct {
	jobs         map[int64]job.Job
	applications map[int64]application.Application
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{jobs: map[int64]job.Job{}, applications: map[int64]application.Application{}}
	for k, v := range s.jobs {
		snap.jobs[k] = v
	}
	for k, v := range s.applications {
		snap.applications[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = snap.jobs
	s.applications = snap.applications
}

type fakeTx struct {
	store *memStore

	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (f *fakeTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	snap := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.restore(snap)
		f.mu.Lock()
		f.rollbacks++
		f.mu.Unlock()
		return err
	}
	f.mu.Lock()
	f.commits++
	f.mu.Unlock()
	return nil
}

type fakeEmployerRepo struct{ s *memStore }

func (r fakeEmployerRepo) Create(_ context.Context, e employer.Employer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	r.s.employers[e.ID] = e
	return e.ID, nil
}

func (r fakeEmployerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employers {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeEmployerRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.employers[id]
	return ok, nil
}

func (r fakeEmployerRepo) GetByEmail(_ context.Context, email string) (employer.Employer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employers {
		if e.Email == email {
			return e, nil
		}
	}
	return employer.Employer{}, employer.ErrNotFound
}

func (r fakeEmployerRepo) GetByID(_ context.Context, id int64) (employer.Employer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employers[id]
	if !ok {
		return employer.Employer{}, employer.ErrNotFound
	}
	return e, nil
}

type fakeEmployeeRepo struct{ s *memStore }

func (r fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	r.s.employees[e.ID] = e
	return e.ID, nil
}

func (r fakeEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeEmployeeRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.employees[id]
	return ok, nil
}

func (r fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (r fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

type fakeJobRepo struct{ s *memStore }

func (r fakeJobRepo) Create(_ context.Context, j job.Job) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j.ID = r.s.id()
	j.CreatedAt = time.Unix(j.ID, 0).UTC()
	r.s.jobs[j.ID] = j
	return j.ID, nil
}

func (r fakeJobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r fakeJobRepo) GetForUpdate(ctx context.Context, id int64) (job.Job, error) {
	return r.GetByID(ctx, id)
}

func (r fakeJobRepo) GetForShare(ctx context.Context, id int64) (job.Job, error) {
	r.s.mu.Lock()
	r.s.sharedReads = append(r.s.sharedReads, id)
	r.s.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r fakeJobRepo) GetListing(_ context.Context, id int64) (job.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Listing{}, job.ErrNotFound
	}
	return r.listing(j), nil
}

func (r fakeJobRepo) listing(j job.Job) job.Listing {
	e := r.s.employers[j.EmployerID]
	return job.Listing{Job: j, EmployerName: e.Name, CompanyName: e.CompanyName}
}

func (r fakeJobRepo) ListOpen(_ context.Context) ([]job.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failListOpen {
		return nil, errStoreDown
	}
	out := make([]job.Listing, 0)
	for _, j := range r.s.jobs {
		if j.Status == job.StatusOpen {
			out = append(out, r.listing(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (r fakeJobRepo) ListOpenWithin(_ context.Context, box geo.Box) ([]job.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]job.Listing, 0)
	for _, j := range r.s.jobs {
		if j.Status != job.StatusOpen || j.Latitude == nil || j.Longitude == nil {
			continue
		}
		if box.Contains(geo.Point{Lat: *j.Latitude, Lng: *j.Longitude}) {
			out = append(out, r.listing(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (r fakeJobRepo) ListByEmployer(_ context.Context, employerID int64) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range r.s.jobs {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (r fakeJobRepo) SetStatus(_ context.Context, id int64, status job.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	j.Status = status
	r.s.jobs[id] = j
	return nil
}

func (r fakeJobRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failJobDelete {
		return errStoreDown
	}
	if _, ok := r.s.jobs[id]; !ok {
		return job.ErrNotFound
	}
	delete(r.s.jobs, id)
	return nil
}

type fakeApplicationRepo struct{ s *memStore }

func (r fakeApplicationRepo) Create(_ context.Context, a application.Application) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications {
		if existing.JobID == a.JobID && existing.EmployeeID == a.EmployeeID {
			return 0, application.ErrAlreadyApplied
		}
	}
	a.ID = r.s.id()
	a.AppliedAt = time.Unix(a.ID, 0).UTC()
	r.s.applications[a.ID] = a
	return a.ID, nil
}

func (r fakeApplicationRepo) Exists(_ context.Context, jobID, employeeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.JobID == jobID && a.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeApplicationRepo) GetStatus(_ context.Context, id int64) (application.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return "", application.ErrNotFound
	}
	return a.Status, nil
}

func (r fakeApplicationRepo) GetJobOwner(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return 0, application.ErrNotFound
	}
	return r.s.jobs[a.JobID].EmployerID, nil
}

func (r fakeApplicationRepo) UpdateStatusIfWaiting(_ context.Context, id int64, status application.Status) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok || a.Status != application.StatusWaiting {
		return false, nil
	}
	a.Status = status
	r.s.applications[id] = a
	return true, nil
}

func (r fakeApplicationRepo) DeleteByJob(_ context.Context, jobID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.applications {
		if a.JobID == jobID {
			delete(r.s.applications, id)
			n++
		}
	}
	return n, nil
}

func (r fakeApplicationRepo) received(a application.Application) application.Received {
	e := r.s.employees[a.EmployeeID]
	return application.Received{
		Application: a,
		Profile:     employee.Profile{Name: e.Name, Email: e.Email, Education: e.Education, Skills: e.Skills},
		JobTitle:    r.s.jobs[a.JobID].Title,
	}
}

func (r fakeApplicationRepo) ListForEmployer(_ context.Context, employerID int64) ([]application.Received, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]application.Received, 0)
	for _, a := range r.s.applications {
		if r.s.jobs[a.JobID].EmployerID == employerID {
			out = append(out, r.received(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeApplicationRepo) ListForJob(_ context.Context, jobID int64) ([]application.Received, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]application.Received, 0)
	for _, a := range r.s.applications {
		if a.JobID == jobID {
			out = append(out, r.received(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeApplicationRepo) ListForEmployee(_ context.Context, employeeID int64) ([]application.Submitted, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]application.Submitted, 0)
	for _, a := range r.s.applications {
		if a.EmployeeID != employeeID {
			continue
		}
		j := r.s.jobs[a.JobID]
		out = append(out, application.Submitted{
			Application: a,
			JobTitle:    j.Title,
			TimeSlot:    j.TimeSlot,
			CompanyName: r.s.employers[j.EmployerID].CompanyName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeApplicationRepo) GetDetails(_ context.Context, id int64) (application.Details, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.Details{}, application.ErrNotFound
	}
	rec := r.received(a)
	j := r.s.jobs[a.JobID]
	return application.Details{
		Application:    a,
		Profile:        rec.Profile,
		JobTitle:       j.Title,
		JobDescription: j.Description,
		CompanyName:    r.s.employers[j.EmployerID].CompanyName,
	}, nil
}

type fakeChatRepo struct{ s *memStore }

func (r fakeChatRepo) Create(_ context.Context, e chat.Entry) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	r.s.chats = append(r.s.chats, e)
	return e.ID, nil
}

func (r fakeChatRepo) ListByEmployee(_ context.Context, employeeID int64) ([]chat.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]chat.Entry, 0)
	for _, e := range r.s.chats {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mapCache stores values by reference; good enough for asserting hits.
type mapCache struct {
	mu      sync.Mutex
	items   map[string]any
	deletes []string
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]any{}}
}

func (c *mapCache) Get(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *[]job.Listing:
		*dst = v.([]job.Listing)
	case *job.Listing:
		*dst = v.(job.Listing)
	default:
		return false, nil
	}
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store     *memStore
	tx        *fakeTx
	cache     *mapCache
	events    *recordingPublisher
	jobs      *Jobs
	apps      *Applications
	profiles  *Profiles
	chat      *Chat
	employers fakeEmployerRepo
	employees fakeEmployeeRepo
}

func newFixture() *fixture {
	s := newMemStore()
	tx := &fakeTx{store: s}
	cache := newMapCache()
	pub := &recordingPublisher{}

	ers := fakeEmployerRepo{s}
	ees := fakeEmployeeRepo{s}
	jobs := fakeJobRepo{s}
	apps := fakeApplicationRepo{s}

	return &fixture{
		store:     s,
		tx:        tx,
		cache:     cache,
		events:    pub,
		jobs:      NewJobUsecase(tx, jobs, ers, apps, cache, time.Minute, pub, nil),
		apps:      NewApplicationUsecase(tx, apps, jobs, ers, ees, pub, nil),
		profiles:  NewProfileUsecase(ers, ees, nil),
		chat:      NewChatUsecase(fakeChatRepo{s}, ees, nil),
		employers: ers,
		employees: ees,
	}
}

func (f *fixture) postJob(employerID int64, title string, lat, lng *float64) int64 {
	id, err := f.jobs.Create(context.Background(), CreateJobInput{
		EmployerID: employerID, Title: title, Description: title + " shift",
		Latitude: lat, Longitude: lng,
	})
	if err != nil {
		panic(err)
	}
	return id
}

func ptr[T any](v T) *T { return &v }
