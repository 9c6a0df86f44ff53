package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationsHandler
	Profiles     *handler.ProfileHandler
	Chat         *handler.ChatHandler
	Events       *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(handlers Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerEvents(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health == nil {
		return
	}
	r.handlers.Health.RegisterRoutes(app)
	app.Get("/api/test", r.handlers.Health.Health)
}

// registerAPI mounts the handlers in order; jobs go first so that
// /jobs/nearby wins over /jobs/:id.
func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(api)
	}
	if r.handlers.Jobs != nil {
		r.handlers.Jobs.RegisterRoutes(api, r.auth)
	}
	if r.handlers.Applications != nil {
		r.handlers.Applications.RegisterRoutes(api, r.auth)
	}
	if r.handlers.Chat != nil {
		r.handlers.Chat.RegisterRoutes(api, r.auth)
	}
	if r.handlers.Profiles != nil {
		r.handlers.Profiles.RegisterRoutes(api)
	}
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.handlers.Events == nil {
		return
	}
	app.Get("/ws/events", r.handlers.Events.HandleEvents)
}
