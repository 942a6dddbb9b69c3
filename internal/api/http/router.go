package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/secops-dashboard/dashboard-service/internal/api/http/handlers"
	"github.com/secops-dashboard/dashboard-service/internal/auth"
	"github.com/secops-dashboard/dashboard-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Views          *handlers.ViewsHandler
	Tickets        *handlers.TicketsHandler
	Dashboard      *handlers.DashboardHandler
	Assistant      *handlers.AssistantHandler
	Org            *handlers.OrgHandler
	Preferences    *handlers.PreferencesHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	views := api.Group("/views")
	views.Post("/", cfg.Views.Mount)
	views.Get("/:id", cfg.Views.Get)
	views.Put("/:id/server-filters", cfg.Views.ServerFilters)
	views.Put("/:id/client-filters", cfg.Views.ClientFilters)
	views.Put("/:id/page", cfg.Views.SetPage)
	views.Post("/:id/refresh", cfg.Views.Refresh)
	views.Delete("/:id", cfg.Views.Unmount)

	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Get("/dashboard", cfg.Dashboard.Summary)

	assistant := api.Group("/assistant")
	assistant.Post("/query", cfg.Assistant.Query)
	assistant.Post("/remediate", cfg.Assistant.Remediate)
	assistant.Delete("/summary", cfg.Assistant.ClearSummary)
	assistant.Get("/history", cfg.Assistant.History)

	org := api.Group("/org")
	org.Get("/departments", cfg.Org.ListDepartments)
	org.Post("/departments", cfg.Org.SaveDepartment)
	org.Put("/departments/active", cfg.Org.SetActiveDepartment)
	org.Post("/roles", cfg.Org.SaveRole)
	org.Put("/roles/active", cfg.Org.SetActiveRole)
	org.Put("/roles/region", cfg.Org.UpdateRoleRegion)
	org.Get("/roles/active", cfg.Org.ActiveRole)

	api.Get("/preferences", cfg.Preferences.Get)
	api.Put("/preferences", cfg.Preferences.Update)
}
