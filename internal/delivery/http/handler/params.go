package handler

import (
	"errors"
	"strconv"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func parseIDParam(c fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, response.CodeValidation, err)
	}
	return id, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, dto.ErrInvalidSkills) {
			msg = "Invalid skills format"
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msg, response.CodeValidation, err)
	}
	return nil
}

// resolveActor returns the acting user id. A claimed id of zero falls back to
// the token; any other value must match it.
func resolveActor(c fiber.Ctx, claimed int64) (int64, error) {
	uid, ok := middleware.UserID(c)
	if !ok {
		return 0, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	if claimed == 0 {
		return uid, nil
	}
	if claimed != uid {
		return 0, middleware.NewAppError(fiber.StatusForbidden, "Not allowed to act for another account", response.CodeUnauthorized, nil)
	}
	return uid, nil
}

func parseQueryFloat(c fiber.Ctx, key string) (float64, bool, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

func internalAppError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, response.CodeInternal, err)
}

const msgValidation = "Validation failed"
