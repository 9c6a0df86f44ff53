package ws

import (
	"log"
	"net/http"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests to event stream connections.
type Handler struct {
	hub      *Hub
	tokens   jwt.Service
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, tokens jwt.Service, logger *log.Logger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers cannot set headers on a websocket handshake, so the
			// token travels in the query string and origin is not checked.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleEvents requires a valid token in the "token" query parameter or a
// bearer Authorization header before upgrading.
func (h *Handler) HandleEvents(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.tokens == nil {
		return fiber.ErrServiceUnavailable
	}

	raw := handshakeToken(c.Query("token"), c.Get("Authorization"))
	if raw == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.CodeUnauthorized, nil)
	}
	claims, err := h.tokens.Validate(raw)
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid token", response.CodeUnauthorized, err)
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade failed | user_id=%d error=%v", claims.UserID, err)
			}
			return
		}
		if h.logger != nil {
			h.logger.Printf("[WS] subscribed | user_id=%d role=%s", claims.UserID, claims.Role)
		}

		client := NewClient(h.hub, conn)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})
	return upgrade(c)
}

// handshakeToken prefers the query parameter and falls back to a bearer header.
func handshakeToken(query, header string) string {
	if q := strings.TrimSpace(query); q != "" {
		return q
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
