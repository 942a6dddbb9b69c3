package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/service"
)

// DashboardHandler serves chart summaries.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Summary GET /dashboard?org_unit_id=&refresh=.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	summary, err := h.service.Summary(c.UserContext(), c.Query("org_unit_id"), c.QueryBool("refresh", false))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
