package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/employee"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Post("/employees/:id/chat", auth.Require(h.Save, jwt.RoleEmployee))
	r.Get("/employees/:id/chat", h.History)
}

func (h *ChatHandler) Save(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := resolveActor(c, id); err != nil {
		return err
	}

	var req dto.SaveChatRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	chatID, err := h.uc.Save(c.Context(), id, req.Question, req.Answer)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Chat saved", dto.SaveChatResponse{ChatID: chatID})
}

func (h *ChatHandler) History(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.uc.History(c.Context(), id)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"chat_history": nonNil(entries)})
}

func mapChatUsecaseError(err error) error {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", response.CodeEmployeeNotFound, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "question and answer are required", response.CodeValidation, err)
	default:
		return internalAppError(err)
	}
}
