package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/pkg/geo"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAgeRestriction         = errors.New("employee must be at least 18 years old")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type RegisterInput struct {
	Role        string
	Name        string
	Email       string
	Password    string
	CompanyName string
	DateOfBirth string
	Education   string
	Skills      []string
	Experience  *int
	Latitude    *float64
	Longitude   *float64
}

type LoginInput struct {
	Role     string
	Email    string
	Password string
}

// Account is the role projection returned after a successful login.
type Account struct {
	ID          int64    `json:"id"`
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	CompanyName string   `json:"companyName,omitempty"`
	Education   string   `json:"education,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithClock overrides the clock used for the age check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets where store and hashing failures are reported.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

type Service struct {
	employers repository.EmployerRepository
	employees repository.EmployeeRepository

	hashCost int
	now      func() time.Time
	logger   *log.Logger
}

func NewService(employers repository.EmployerRepository, employees repository.EmployeeRepository, opts ...Option) *Service {
	s := &Service{
		employers: employers,
		employees: employees,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an employer or employee and returns its id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	role := normalizeRole(in.Role)
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || !isValidPassword(in.Password) {
		return 0, ErrInvalidInput
	}

	switch role {
	case jwt.RoleEmployer:
		return s.registerEmployer(ctx, name, email, in)
	case jwt.RoleEmployee:
		return s.registerEmployee(ctx, name, email, in)
	default:
		return 0, ErrInvalidInput
	}
}

func (s *Service) registerEmployer(ctx context.Context, name, email string, in RegisterInput) (int64, error) {
	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		return 0, ErrInvalidInput
	}

	exists, err := s.employers.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, s.internal("register", err)
	}
	if exists {
		return 0, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return 0, s.internal("register", err)
	}

	id, err := s.employers.Create(ctx, employer.Employer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CompanyName:  company,
	})
	if err != nil {
		if errors.Is(err, employer.ErrEmailTaken) {
			return 0, ErrEmailAlreadyRegistered
		}
		return 0, s.internal("register", err)
	}
	return id, nil
}

func (s *Service) registerEmployee(ctx context.Context, name, email string, in RegisterInput) (int64, error) {
	education := strings.TrimSpace(in.Education)
	if education == "" {
		return 0, ErrInvalidInput
	}
	dob, err := time.Parse(employee.DateLayout, strings.TrimSpace(in.DateOfBirth))
	if err != nil {
		return 0, ErrInvalidInput
	}
	experience := 0
	if in.Experience != nil {
		experience = *in.Experience
	}
	if experience < 0 {
		return 0, ErrInvalidInput
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return 0, ErrInvalidInput
	}
	if in.Latitude != nil {
		if err := (geo.Point{Lat: *in.Latitude, Lng: *in.Longitude}).Validate(); err != nil {
			return 0, ErrInvalidInput
		}
	}

	if employee.AgeAt(dob, s.now()) < employee.MinimumAge {
		return 0, ErrAgeRestriction
	}

	exists, err := s.employees.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, s.internal("register", err)
	}
	if exists {
		return 0, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return 0, s.internal("register", err)
	}

	id, err := s.employees.Create(ctx, employee.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		DateOfBirth:  dob,
		Education:    education,
		Skills:       employee.NormalizeSkills(in.Skills),
		Experience:   experience,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailTaken) {
			return 0, ErrEmailAlreadyRegistered
		}
		return 0, s.internal("register", err)
	}
	return id, nil
}

// Login checks credentials against the role's table. Unknown emails and
// wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, in LoginInput) (Account, error) {
	role := normalizeRole(in.Role)
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}

	switch role {
	case jwt.RoleEmployer:
		e, err := s.employers.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, employer.ErrNotFound) {
				return Account{}, ErrInvalidCredentials
			}
			return Account{}, s.internal("login", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
			return Account{}, ErrInvalidCredentials
		}
		return Account{ID: e.ID, Role: role, Name: e.Name, Email: e.Email, CompanyName: e.CompanyName}, nil

	case jwt.RoleEmployee:
		e, err := s.employees.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, employee.ErrNotFound) {
				return Account{}, ErrInvalidCredentials
			}
			return Account{}, s.internal("login", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
			return Account{}, ErrInvalidCredentials
		}
		return Account{ID: e.ID, Role: role, Name: e.Name, Email: e.Email, Education: e.Education, Skills: e.Skills}, nil

	default:
		return Account{}, ErrInvalidInput
	}
}

// internal logs the cause and hides it behind ErrInternal.
func (s *Service) internal(op string, err error) error {
	if s.logger != nil {
		s.logger.Printf("[Auth] %s error=%v", op, err)
	}
	return ErrInternal
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	if len(pw) < minPasswordLength {
		return false
	}
	return true
}
