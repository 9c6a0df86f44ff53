package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/chat"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
)

const testSecret = "handler-test-secret"

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type fakeAuthUsecase struct {
	registerIn ucauth.RegisterInput
	loginIn    ucauth.LoginInput
	registerFn func(in ucauth.RegisterInput) (int64, error)
	loginFn    func(in ucauth.LoginInput) (ucauth.Account, string, error)
}

func (f *fakeAuthUsecase) Register(_ context.Context, in ucauth.RegisterInput) (int64, error) {
	f.registerIn = in
	return f.registerFn(in)
}

func (f *fakeAuthUsecase) Login(_ context.Context, in ucauth.LoginInput) (ucauth.Account, string, error) {
	f.loginIn = in
	return f.loginFn(in)
}

type fakeJobUsecase struct {
	createIn  usecase.CreateJobInput
	nearbyIn  usecase.NearbyParams
	createErr error
	getErr    error
	deleteFn  func(jobID, employerID int64) (int64, error)
	closeErr  error
	listErr   error
}

func (f *fakeJobUsecase) Create(_ context.Context, in usecase.CreateJobInput) (int64, error) {
	f.createIn = in
	if f.createErr != nil {
		return 0, f.createErr
	}
	return 42, nil
}

func (f *fakeJobUsecase) ListOpen(context.Context) ([]job.Listing, error) {
	return nil, f.listErr
}

func (f *fakeJobUsecase) ListNearby(_ context.Context, p usecase.NearbyParams) ([]job.Listing, error) {
	f.nearbyIn = p
	return []job.Listing{}, nil
}

func (f *fakeJobUsecase) Get(_ context.Context, id int64) (job.Listing, error) {
	if f.getErr != nil {
		return job.Listing{}, f.getErr
	}
	return job.Listing{Job: job.Job{ID: id, Title: "Barista"}}, nil
}

func (f *fakeJobUsecase) ListByEmployer(context.Context, int64) ([]job.Job, error) {
	return nil, employer.ErrNotFound
}

func (f *fakeJobUsecase) Close(context.Context, int64, int64) error {
	return f.closeErr
}

func (f *fakeJobUsecase) Delete(_ context.Context, jobID, employerID int64) (int64, error) {
	return f.deleteFn(jobID, employerID)
}

type fakeApplicationUsecase struct {
	applyIn   usecase.ApplyInput
	applyErr  error
	updateIn  usecase.UpdateStatusInput
	updateErr error
}

func (f *fakeApplicationUsecase) Apply(_ context.Context, in usecase.ApplyInput) (int64, error) {
	f.applyIn = in
	if f.applyErr != nil {
		return 0, f.applyErr
	}
	return 9, nil
}

func (f *fakeApplicationUsecase) ListForEmployer(context.Context, int64) ([]application.Received, error) {
	return nil, nil
}

func (f *fakeApplicationUsecase) ListForJob(context.Context, int64, int64) ([]application.Received, error) {
	return nil, usecase.ErrUnauthorized
}

func (f *fakeApplicationUsecase) ListForEmployee(context.Context, int64) ([]application.Submitted, error) {
	return nil, employee.ErrNotFound
}

func (f *fakeApplicationUsecase) Get(context.Context, int64) (application.Details, error) {
	return application.Details{}, application.ErrNotFound
}

func (f *fakeApplicationUsecase) UpdateStatus(_ context.Context, in usecase.UpdateStatusInput) (application.Status, error) {
	f.updateIn = in
	if f.updateErr != nil {
		return "", f.updateErr
	}
	return application.Status(in.Status), nil
}

type fakeChatUsecase struct {
	saved int64
}

func (f *fakeChatUsecase) Save(_ context.Context, employeeID int64, _, _ string) (int64, error) {
	f.saved = employeeID
	return 3, nil
}

func (f *fakeChatUsecase) History(context.Context, int64) ([]chat.Entry, error) {
	return nil, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

type testDeps struct {
	auth *fakeAuthUsecase
	jobs *fakeJobUsecase
	apps *fakeApplicationUsecase
	chat *fakeChatUsecase
}

func newTestApp(t *testing.T) (*fiber.App, *testDeps) {
	t.Helper()

	deps := &testDeps{
		auth: &fakeAuthUsecase{
			registerFn: func(ucauth.RegisterInput) (int64, error) { return 1, nil },
			loginFn: func(in ucauth.LoginInput) (ucauth.Account, string, error) {
				return ucauth.Account{ID: 1, Role: in.Role, Name: "Ana"}, "token", nil
			},
		},
		jobs: &fakeJobUsecase{
			deleteFn: func(int64, int64) (int64, error) { return 2, nil },
		},
		apps: &fakeApplicationUsecase{},
		chat: &fakeChatUsecase{},
	}

	app := fiber.New(fiber.Config{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	authMw := middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret, time.Hour))
	api := app.Group("/api")
	NewAuthHandler(deps.auth).RegisterRoutes(api)
	NewJobsHandler(deps.jobs).RegisterRoutes(api, authMw)
	NewApplicationsHandler(deps.apps).RegisterRoutes(api, authMw)
	NewChatHandler(deps.chat).RegisterRoutes(api, authMw)
	NewHealthHandler(failingPinger{}, nil).RegisterRoutes(app)

	return app, deps
}

func tokenFor(t *testing.T, id int64, role string) string {
	t.Helper()
	tok, err := jwt.NewHMACService(testSecret, time.Hour).Generate(id, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) semanticResponse {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if sr.Status != resp.StatusCode {
		t.Fatalf("%s %s: body status %d != http status %d", method, path, sr.Status, resp.StatusCode)
	}
	return sr
}

func TestRegister_CreatedWithEncodedSkills(t *testing.T) {
	app, deps := newTestApp(t)

	body := `{"name":"Ana","email":"ana@example.com","password":"secret123","userType":"employee",
		"dob":"2000-01-01","education":"BSc","skills":"[\"Python\",\"SQL\"]"}`
	sr := doRequest(t, app, http.MethodPost, "/api/register", "", body)
	if sr.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", sr.Status, sr.Message)
	}

	var data struct {
		UserID int64 `json:"userId"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil || data.UserID != 1 {
		t.Fatalf("unexpected data %s (err=%v)", sr.Data, err)
	}

	got := deps.auth.registerIn.Skills
	if len(got) != 2 || got[0] != "Python" || got[1] != "SQL" {
		t.Fatalf("skills not decoded in order: %v", got)
	}
}

func TestRegister_ErrorCodes(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ucauth.ErrEmailAlreadyRegistered, http.StatusBadRequest, "EMAIL_EXISTS"},
		{ucauth.ErrAgeRestriction, http.StatusBadRequest, "AGE_RESTRICTION"},
		{ucauth.ErrInvalidInput, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ucauth.ErrInternal, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		app, deps := newTestApp(t)
		deps.auth.registerFn = func(ucauth.RegisterInput) (int64, error) { return 0, tc.err }

		sr := doRequest(t, app, http.MethodPost, "/api/register", "", `{"email":"a@b.c"}`)
		if sr.Status != tc.status || sr.Code != tc.code {
			t.Fatalf("%v: expected %d/%s, got %d/%s", tc.err, tc.status, tc.code, sr.Status, sr.Code)
		}
	}
}

func TestRegister_InvalidSkills(t *testing.T) {
	app, _ := newTestApp(t)

	sr := doRequest(t, app, http.MethodPost, "/api/register", "", `{"skills":"not a list"}`)
	if sr.Status != http.StatusBadRequest || sr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d/%s", sr.Status, sr.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app, deps := newTestApp(t)
	deps.auth.loginFn = func(ucauth.LoginInput) (ucauth.Account, string, error) {
		return ucauth.Account{}, "", ucauth.ErrInvalidCredentials
	}

	sr := doRequest(t, app, http.MethodPost, "/api/login", "", `{"email":"a@b.c","password":"nope","userType":"employee"}`)
	if sr.Status != http.StatusUnauthorized || sr.Code != "INVALID_CREDENTIALS" || sr.Message != "Invalid credentials" {
		t.Fatalf("unexpected response %+v", sr)
	}
}

func TestLogin_SkillsField(t *testing.T) {
	tests := []struct {
		name    string
		account ucauth.Account
		want    string
	}{
		{"employee without skills", ucauth.Account{ID: 2, Role: jwt.RoleEmployee, Name: "Budi"}, `[]`},
		{"employee with skills", ucauth.Account{ID: 2, Role: jwt.RoleEmployee, Name: "Budi", Skills: []string{"SQL"}}, `["SQL"]`},
		{"employer", ucauth.Account{ID: 1, Role: jwt.RoleEmployer, Name: "Ana", CompanyName: "Acme"}, ``},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, deps := newTestApp(t)
			deps.auth.loginFn = func(ucauth.LoginInput) (ucauth.Account, string, error) {
				return tc.account, "token", nil
			}

			sr := doRequest(t, app, http.MethodPost, "/api/login", "", `{"email":"a@b.c","password":"secret123","userType":"`+tc.account.Role+`"}`)
			if sr.Status != http.StatusOK {
				t.Fatalf("expected 200, got %d", sr.Status)
			}
			var data map[string]json.RawMessage
			if err := json.Unmarshal(sr.Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			got, ok := data["skills"]
			if tc.want == "" {
				if ok {
					t.Fatalf("employer login must not carry skills, got %s", got)
				}
				return
			}
			if !ok || string(got) != tc.want {
				t.Fatalf("expected skills %s, got %s (present=%v)", tc.want, got, ok)
			}
		})
	}
}

func TestEmployerLogin_ForcesRole(t *testing.T) {
	app, deps := newTestApp(t)

	sr := doRequest(t, app, http.MethodPost, "/api/employer/login", "", `{"email":"a@b.c","password":"secret123","userType":"employee"}`)
	if sr.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", sr.Status)
	}
	if deps.auth.loginIn.Role != jwt.RoleEmployer {
		t.Fatalf("expected employer role, got %q", deps.auth.loginIn.Role)
	}
}

func TestListNearby_Params(t *testing.T) {
	app, deps := newTestApp(t)

	if sr := doRequest(t, app, http.MethodGet, "/api/jobs/nearby?lat=abc&lng=1", "", ""); sr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric lat, got %d", sr.Status)
	}
	if sr := doRequest(t, app, http.MethodGet, "/api/jobs/nearby?lng=1", "", ""); sr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing lat, got %d", sr.Status)
	}

	sr := doRequest(t, app, http.MethodGet, "/api/jobs/nearby?lat=-6.2&lng=106.8", "", "")
	if sr.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", sr.Status)
	}
	if deps.jobs.nearbyIn.RadiusKM != 10 {
		t.Fatalf("expected default radius 10, got %v", deps.jobs.nearbyIn.RadiusKM)
	}
}

func TestCreateJob_Auth(t *testing.T) {
	app, deps := newTestApp(t)
	body := `{"employer_id":5,"title":"Barista","description":"Morning shift"}`

	if sr := doRequest(t, app, http.MethodPost, "/api/jobs", "", body); sr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", sr.Status)
	}
	if sr := doRequest(t, app, http.MethodPost, "/api/jobs", tokenFor(t, 5, jwt.RoleEmployee), body); sr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for employee token, got %d", sr.Status)
	}
	if sr := doRequest(t, app, http.MethodPost, "/api/jobs", tokenFor(t, 6, jwt.RoleEmployer), body); sr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched employer, got %d", sr.Status)
	}

	sr := doRequest(t, app, http.MethodPost, "/api/jobs", tokenFor(t, 5, jwt.RoleEmployer), body)
	if sr.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", sr.Status, sr.Message)
	}
	if deps.jobs.createIn.EmployerID != 5 || deps.jobs.createIn.Title != "Barista" {
		t.Fatalf("unexpected input %+v", deps.jobs.createIn)
	}
}

func TestCreateJob_UnknownEmployerIsBadRequest(t *testing.T) {
	app, deps := newTestApp(t)
	deps.jobs.createErr = employer.ErrNotFound

	sr := doRequest(t, app, http.MethodPost, "/api/jobs", tokenFor(t, 5, jwt.RoleEmployer), `{"title":"x","description":"y"}`)
	if sr.Status != http.StatusBadRequest || sr.Code != "EMPLOYER_NOT_FOUND" {
		t.Fatalf("expected 400 EMPLOYER_NOT_FOUND, got %d/%s", sr.Status, sr.Code)
	}
}

func TestGetJob(t *testing.T) {
	app, deps := newTestApp(t)

	if sr := doRequest(t, app, http.MethodGet, "/api/jobs/abc", "", ""); sr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", sr.Status)
	}

	deps.jobs.getErr = job.ErrNotFound
	sr := doRequest(t, app, http.MethodGet, "/api/jobs/7", "", "")
	if sr.Status != http.StatusNotFound || sr.Code != "JOB_NOT_FOUND" {
		t.Fatalf("expected 404 JOB_NOT_FOUND, got %d/%s", sr.Status, sr.Code)
	}
}

func TestDeleteJob(t *testing.T) {
	app, deps := newTestApp(t)
	tok := tokenFor(t, 5, jwt.RoleEmployer)

	if sr := doRequest(t, app, http.MethodDelete, "/api/jobs/7", tok, `{}`); sr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 without employer_id, got %d", sr.Status)
	}

	deps.jobs.deleteFn = func(int64, int64) (int64, error) { return 0, usecase.ErrUnauthorized }
	sr := doRequest(t, app, http.MethodDelete, "/api/jobs/7", tok, `{"employer_id":5}`)
	if sr.Status != http.StatusForbidden || sr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected 403 UNAUTHORIZED, got %d/%s", sr.Status, sr.Code)
	}

	var gotJob, gotEmployer int64
	deps.jobs.deleteFn = func(jobID, employerID int64) (int64, error) {
		gotJob, gotEmployer = jobID, employerID
		return 3, nil
	}
	sr = doRequest(t, app, http.MethodDelete, "/api/jobs/7", tok, `{"employer_id":5}`)
	if sr.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", sr.Status)
	}
	var data struct {
		ApplicationsDeleted int64 `json:"applicationsDeleted"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil || data.ApplicationsDeleted != 3 {
		t.Fatalf("unexpected data %s", sr.Data)
	}
	if gotJob != 7 || gotEmployer != 5 {
		t.Fatalf("unexpected delete args job=%d employer=%d", gotJob, gotEmployer)
	}
}

func TestCloseJob_WithoutBody(t *testing.T) {
	app, _ := newTestApp(t)

	sr := doRequest(t, app, http.MethodPut, "/api/jobs/7/close", tokenFor(t, 5, jwt.RoleEmployer), "")
	if sr.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", sr.Status, sr.Message)
	}
}

func TestApply_ErrorCodes(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{job.ErrClosed, http.StatusBadRequest, "JOB_CLOSED"},
		{application.ErrAlreadyApplied, http.StatusBadRequest, "ALREADY_APPLIED"},
		{job.ErrNotFound, http.StatusBadRequest, "JOB_NOT_FOUND"},
		{employee.ErrNotFound, http.StatusBadRequest, "EMPLOYEE_NOT_FOUND"},
		{usecase.ErrInternal, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		app, deps := newTestApp(t)
		deps.apps.applyErr = tc.err

		sr := doRequest(t, app, http.MethodPost, "/api/jobs/7/apply", tokenFor(t, 8, jwt.RoleEmployee), `{"employee_id":8,"cover_letter":"hi"}`)
		if sr.Status != tc.status || sr.Code != tc.code {
			t.Fatalf("%v: expected %d/%s, got %d/%s", tc.err, tc.status, tc.code, sr.Status, sr.Code)
		}
	}
}

func TestApply_UsesTokenEmployee(t *testing.T) {
	app, deps := newTestApp(t)

	sr := doRequest(t, app, http.MethodPost, "/api/jobs/7/apply", tokenFor(t, 8, jwt.RoleEmployee), `{"cover_letter":"hi"}`)
	if sr.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", sr.Status)
	}
	if deps.apps.applyIn.EmployeeID != 8 || deps.apps.applyIn.JobID != 7 || deps.apps.applyIn.CoverLetter != "hi" {
		t.Fatalf("unexpected input %+v", deps.apps.applyIn)
	}
}

func TestUpdateStatus(t *testing.T) {
	app, deps := newTestApp(t)
	tok := tokenFor(t, 5, jwt.RoleEmployer)

	sr := doRequest(t, app, http.MethodPut, "/api/applications/9/status", tok, `{"status":"accepted"}`)
	if sr.Status != http.StatusOK || sr.Message != "Application status updated to accepted" {
		t.Fatalf("unexpected response %+v", sr)
	}
	if deps.apps.updateIn.EmployerID != 5 || deps.apps.updateIn.ApplicationID != 9 {
		t.Fatalf("unexpected input %+v", deps.apps.updateIn)
	}

	deps.apps.updateErr = application.ErrStatusLocked
	sr = doRequest(t, app, http.MethodPut, "/api/applications/9/status", tok, `{"status":"rejected"}`)
	if sr.Status != http.StatusBadRequest || sr.Code != "STATUS_LOCKED" {
		t.Fatalf("expected 400 STATUS_LOCKED, got %d/%s", sr.Status, sr.Code)
	}
}

func TestApplicationLookups(t *testing.T) {
	app, _ := newTestApp(t)

	if sr := doRequest(t, app, http.MethodGet, "/api/applications/1", "", ""); sr.Code != "APPLICATION_NOT_FOUND" {
		t.Fatalf("expected APPLICATION_NOT_FOUND, got %d/%s", sr.Status, sr.Code)
	}
	if sr := doRequest(t, app, http.MethodGet, "/api/employees/1/applications", "", ""); sr.Code != "EMPLOYEE_NOT_FOUND" {
		t.Fatalf("expected EMPLOYEE_NOT_FOUND, got %d/%s", sr.Status, sr.Code)
	}
	if sr := doRequest(t, app, http.MethodGet, "/api/jobs/1/applications", tokenFor(t, 5, jwt.RoleEmployer), ""); sr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign job, got %d", sr.Status)
	}
	if sr := doRequest(t, app, http.MethodGet, "/api/employers/1/jobs", "", ""); sr.Code != "EMPLOYER_NOT_FOUND" {
		t.Fatalf("expected EMPLOYER_NOT_FOUND, got %d/%s", sr.Status, sr.Code)
	}
}

func TestChatSave_RequiresOwnEmployee(t *testing.T) {
	app, deps := newTestApp(t)
	body := `{"question":"q","answer":"a"}`

	if sr := doRequest(t, app, http.MethodPost, "/api/employees/8/chat", tokenFor(t, 9, jwt.RoleEmployee), body); sr.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", sr.Status)
	}

	sr := doRequest(t, app, http.MethodPost, "/api/employees/8/chat", tokenFor(t, 8, jwt.RoleEmployee), body)
	if sr.Status != http.StatusCreated || deps.chat.saved != 8 {
		t.Fatalf("expected 201 for employee 8, got %d saved=%d", sr.Status, deps.chat.saved)
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	app, deps := newTestApp(t)
	deps.jobs.listErr = errors.New("pq: relation jobs does not exist")

	sr := doRequest(t, app, http.MethodGet, "/api/jobs", "", "")
	if sr.Status != http.StatusInternalServerError || sr.Code != "INTERNAL_ERROR" || sr.Message != "internal server error" {
		t.Fatalf("unexpected response %+v", sr)
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	app, _ := newTestApp(t)

	sr := doRequest(t, app, http.MethodGet, "/health", "", "")
	if sr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", sr.Status)
	}
}
