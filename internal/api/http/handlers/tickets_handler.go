package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/api/dto"
	"github.com/secops-dashboard/dashboard-service/internal/service"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// TicketsHandler serves single-ticket reads.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}
	detail, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketDetailResponse{
		Ticket:     detail.Ticket,
		CreatedAgo: detail.CreatedAgo,
		UpdatedAgo: detail.UpdatedAgo,
		Source:     detail.Source,
	}})
}
