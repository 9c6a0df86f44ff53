package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/employer/login", h.EmployerLogin)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Role:        req.UserType,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		DateOfBirth: req.DOB,
		Education:   req.Education,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "User registered successfully", dto.RegisterResponse{UserID: id})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return h.login(c, req.UserType, req)
}

func (h *AuthHandler) EmployerLogin(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return h.login(c, jwt.RoleEmployer, req)
}

func (h *AuthHandler) login(c fiber.Ctx, role string, req dto.LoginRequest) error {
	acc, token, err := h.uc.Login(c.Context(), ucauth.LoginInput{Role: role, Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	out := dto.LoginResponse{
		Token:       token,
		UserID:      acc.ID,
		UserType:    acc.Role,
		Name:        acc.Name,
		CompanyName: acc.CompanyName,
		Education:   acc.Education,
	}
	if acc.Role == jwt.RoleEmployee {
		skills := nonNil(acc.Skills)
		out.Skills = &skills
	}
	return response.Success(c, fiber.StatusOK, "Login successful", out)
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email already registered", response.CodeEmailExists, err)
	case errors.Is(err, ucauth.ErrAgeRestriction):
		return middleware.NewAppError(fiber.StatusBadRequest, "Employee must be at least 18 years old", response.CodeAgeRestriction, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", response.CodeInvalidCredentials, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, msgValidation, response.CodeValidation, err)
	default:
		return internalAppError(err)
	}
}
