package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/newsroomlabs/admin-auth/internal/api/http/handlers"
	"github.com/newsroomlabs/admin-auth/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Admin          *handlers.AdminHandler
	Accounts       *handlers.AccountsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Accounts.Register)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Admin.Verify)
}
