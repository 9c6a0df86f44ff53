package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware verifies the bearer token and, when roles are given, that the
// token carries one of them.
func (m *AuthMiddleware) Middleware(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := m.authenticate(c, roles); err != nil {
			return err
		}
		return c.Next()
	}
}

// Require wraps a single route handler with the same checks as Middleware.
func (m *AuthMiddleware) Require(next fiber.Handler, roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := m.authenticate(c, roles); err != nil {
			return err
		}
		return next(c)
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx, roles []string) error {
	token, ok := bearerTokenFromHeader(c.Get("Authorization"))
	if !ok {
		return NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}

	claims, err := m.jwt.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return NewAppError(fiber.StatusUnauthorized, "Token expired", response.CodeUnauthorized, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", response.CodeUnauthorized, err)
	}

	if len(roles) > 0 && !containsRole(roles, claims.Role) {
		return NewAppError(fiber.StatusForbidden, "Forbidden for role "+claims.Role, response.CodeForbidden, nil)
	}

	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxRoleKey, claims.Role)
	return nil
}

func UserID(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(CtxUserIDKey).(int64)
	return id, ok && id > 0
}

func Role(c fiber.Ctx) string {
	role, _ := c.Locals(CtxRoleKey).(string)
	return role
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
