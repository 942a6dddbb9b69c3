package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/api/dto"
	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	"github.com/secops-dashboard/dashboard-service/internal/service"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// ViewsHandler exposes ticket view sessions.
type ViewsHandler struct {
	registry *service.ViewRegistry
}

// NewViewsHandler constructs handler.
func NewViewsHandler(registry *service.ViewRegistry) *ViewsHandler {
	return &ViewsHandler{registry: registry}
}

// Mount POST /views.
func (h *ViewsHandler) Mount(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.MountViewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := statusFilter(req.Status)
	if err != nil {
		return err
	}
	priority, err := priorityFilter(req.Priority)
	if err != nil {
		return err
	}

	view := h.registry.Mount(c.UserContext(), principal.UserID, service.MountInput{
		OrgUnitID: req.OrgUnitID,
		Status:    status,
		Priority:  priority,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": view.Snapshot()})
}

// Get GET /views/:id.
func (h *ViewsHandler) Get(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Snapshot()})
}

// ServerFilters PUT /views/:id/server-filters.
func (h *ViewsHandler) ServerFilters(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	var req dto.ServerFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := statusFilter(req.Status)
	if err != nil {
		return err
	}
	priority, err := priorityFilter(req.Priority)
	if err != nil {
		return err
	}
	view.ApplyServerFilters(c.UserContext(), service.ServerFilters{Status: status, Priority: priority})
	return c.JSON(fiber.Map{"data": view.Snapshot()})
}

// ClientFilters PUT /views/:id/client-filters.
func (h *ViewsHandler) ClientFilters(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	var req dto.ClientFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	filters := service.ClientFilters{SearchTerm: req.Search, SortKey: req.SortKey}
	if req.Type != nil {
		ticketType, ok := insights.ParseTicketType(*req.Type)
		if !ok {
			return apperrors.NewValidationError("unknown ticket type", map[string]any{"type": *req.Type})
		}
		filters.TypeFilter = &ticketType
	}
	if req.SortDirection != nil {
		dir := domain.SortDirection(strings.ToLower(strings.TrimSpace(*req.SortDirection)))
		filters.SortDirection = &dir
	}
	if err := view.ApplyClientFilters(filters); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Snapshot()})
}

// SetPage PUT /views/:id/page.
func (h *ViewsHandler) SetPage(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	var req dto.SetPageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Page < 1 {
		return apperrors.NewValidationError("page must be at least 1", nil)
	}
	view.SetPage(c.UserContext(), req.Page)
	return c.JSON(fiber.Map{"data": view.Snapshot()})
}

// Refresh POST /views/:id/refresh.
func (h *ViewsHandler) Refresh(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	view.Refresh(c.UserContext())
	return c.JSON(fiber.Map{"data": view.Snapshot()})
}

// Unmount DELETE /views/:id.
func (h *ViewsHandler) Unmount(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.registry.Unmount(principal.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ViewsHandler) view(c *fiber.Ctx) (*service.TicketView, error) {
	principal, err := requirePrincipal(c)
	if err != nil {
		return nil, err
	}
	return h.registry.Get(principal.UserID, c.Params("id"))
}
