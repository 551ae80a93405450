package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/utility-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Issues *handlers.IssuesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	issues := app.Group("/issues")
	issues.Post("/", cfg.Issues.CreateIssue)
	issues.Get("/", cfg.Issues.ListIssues)
	issues.Put("/:id", cfg.Issues.UpdateIssue)
}
