package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/employer"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/geo"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts the job routes. /jobs/nearby must precede /jobs/:id.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Get("/jobs", h.ListOpen)
	r.Get("/jobs/nearby", h.ListNearby)
	r.Post("/jobs", auth.Require(h.Create, jwt.RoleEmployer))
	r.Get("/jobs/:id", h.Get)
	r.Put("/jobs/:id/close", auth.Require(h.Close, jwt.RoleEmployer))
	r.Delete("/jobs/:id", auth.Require(h.Delete, jwt.RoleEmployer))
	r.Get("/employers/:id/jobs", h.ListByEmployer)
}

func (h *JobsHandler) ListOpen(c fiber.Ctx) error {
	items, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"jobs": nonNil(items)})
}

func (h *JobsHandler) ListNearby(c fiber.Ctx) error {
	lat, okLat, errLat := parseQueryFloat(c, "lat")
	lng, okLng, errLng := parseQueryFloat(c, "lng")
	if !okLat || !okLng || errLat != nil || errLng != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "lat and lng must be numbers", response.CodeValidation, errors.Join(errLat, errLng))
	}

	radius, ok, err := parseQueryFloat(c, "radius")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "radius must be a number", response.CodeValidation, err)
	}
	if !ok {
		radius = geo.DefaultRadiusKM
	}

	items, err := h.uc.ListNearby(c.Context(), usecase.NearbyParams{Latitude: lat, Longitude: lng, RadiusKM: radius})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"jobs": nonNil(items)})
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	employerID, err := resolveActor(c, req.EmployerID)
	if err != nil {
		return err
	}

	id, err := h.uc.Create(c.Context(), usecase.CreateJobInput{
		EmployerID:  employerID,
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		TimeSlot:    req.TimeSlot,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		if errors.Is(err, employer.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Employer not found", response.CodeEmployerNotFound, err)
		}
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created successfully", dto.CreateJobResponse{JobID: id})
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	l, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"job": l})
}

func (h *JobsHandler) Close(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.EmployerActionRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}
	employerID, err := resolveActor(c, req.EmployerID)
	if err != nil {
		return err
	}

	if err := h.uc.Close(c.Context(), id, employerID); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job closed successfully", nil)
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.EmployerActionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.EmployerID <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "employer_id is required", response.CodeValidation, nil)
	}
	employerID, err := resolveActor(c, req.EmployerID)
	if err != nil {
		return err
	}

	removed, err := h.uc.Delete(c.Context(), id, employerID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully", dto.DeleteJobResponse{ApplicationsDeleted: removed})
}

func (h *JobsHandler) ListByEmployer(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListByEmployer(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"jobs": nonNil(items)})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", response.CodeJobNotFound, err)
	case errors.Is(err, employer.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employer not found", response.CodeEmployerNotFound, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not the owner of this job", response.CodeUnauthorized, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, msgValidation, response.CodeValidation, err)
	default:
		return internalAppError(err)
	}
}
