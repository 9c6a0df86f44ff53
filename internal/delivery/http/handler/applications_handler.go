package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/employee"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationsHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationsHandler(uc usecase.ApplicationUsecase) *ApplicationsHandler {
	return &ApplicationsHandler{uc: uc}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/jobs/:id/apply", auth.Require(h.Apply, jwt.RoleEmployee))
	r.Get("/jobs/:id/applications", auth.Require(h.ListForJob, jwt.RoleEmployer))
	r.Get("/employers/:id/applications", h.ListForEmployer)
	r.Get("/employees/:id/applications", h.ListForEmployee)
	r.Get("/applications/:id", h.Get)
	r.Put("/applications/:id/status", auth.Require(h.UpdateStatus, jwt.RoleEmployer))
}

func (h *ApplicationsHandler) Apply(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	employeeID, err := resolveActor(c, req.EmployeeID)
	if err != nil {
		return err
	}

	id, err := h.uc.Apply(c.Context(), usecase.ApplyInput{JobID: jobID, EmployeeID: employeeID, CoverLetter: req.CoverLetter})
	if err != nil {
		return mapApplyError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", dto.ApplyResponse{ApplicationID: id})
}

func (h *ApplicationsHandler) ListForJob(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	employerID, err := resolveActor(c, 0)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForJob(c.Context(), jobID, employerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"applications": nonNil(items)})
}

func (h *ApplicationsHandler) ListForEmployer(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForEmployer(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"applications": nonNil(items)})
}

func (h *ApplicationsHandler) ListForEmployee(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForEmployee(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"applications": nonNil(items)})
}

func (h *ApplicationsHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"application": d})
}

func (h *ApplicationsHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	employerID, err := resolveActor(c, 0)
	if err != nil {
		return err
	}

	st, err := h.uc.UpdateStatus(c.Context(), usecase.UpdateStatusInput{ApplicationID: id, EmployerID: employerID, Status: req.Status})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated to "+string(st),
		dto.UpdateStatusResponse{ApplicationID: id, Status: string(st)})
}

// mapApplyError reports every rejected application as a bad request,
// including a missing job or employee.
func mapApplyError(err error) error {
	switch {
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job not found", response.CodeJobNotFound, err)
	case errors.Is(err, employee.ErrNotFound):
		return middleware.NewAppError(fiber.StatusBadRequest, "Employee not found", response.CodeEmployeeNotFound, err)
	default:
		return mapApplicationUsecaseError(err)
	}
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", response.CodeApplicationMissing, err)
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", response.CodeJobNotFound, err)
	case errors.Is(err, employee.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", response.CodeEmployeeNotFound, err)
	case errors.Is(err, employer.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employer not found", response.CodeEmployerNotFound, err)
	case errors.Is(err, job.ErrClosed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job is closed", response.CodeJobClosed, err)
	case errors.Is(err, application.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusBadRequest, "Already applied to this job", response.CodeAlreadyApplied, err)
	case errors.Is(err, application.ErrStatusLocked):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application status can no longer be changed", response.CodeStatusLocked, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not the owner of this job", response.CodeUnauthorized, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, msgValidation, response.CodeValidation, err)
	default:
		return internalAppError(err)
	}
}
