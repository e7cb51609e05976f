package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/user-management/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// Sign-up and login live at the root, matching the public API contract;
// probes sit under /api/v1.
func Register(app *fiber.App, users *handlers.UserHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	app.Post("/sign-up", users.SignUp)
	app.Post("/login", users.Login)
	app.Get("/profile", authMW, users.Profile)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)
}
