package handler

import (
	"errors"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/employers/:id", h.GetEmployer)
	r.Get("/employees/:id", h.GetEmployee)
}

func (h *ProfileHandler) GetEmployer(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	e, err := h.uc.GetEmployer(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"employer": e})
}

func (h *ProfileHandler) GetEmployee(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	e, err := h.uc.GetEmployee(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"employee": e})
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, employer.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employer not found", response.CodeEmployerNotFound, err)
	case errors.Is(err, employee.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", response.CodeEmployeeNotFound, err)
	default:
		return internalAppError(err)
	}
}
