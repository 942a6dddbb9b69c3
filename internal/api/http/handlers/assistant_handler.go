package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/api/dto"
	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/service"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// AssistantHandler proxies the remediation assistant.
type AssistantHandler struct {
	service *service.RemediationService
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(remediationService *service.RemediationService) *AssistantHandler {
	return &AssistantHandler{service: remediationService}
}

// Query POST /assistant/query.
func (h *AssistantHandler) Query(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssistantQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reply, err := h.service.Ask(c.UserContext(), principal.UserID, req.Query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reply})
}

// Remediate POST /assistant/remediate.
func (h *AssistantHandler) Remediate(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.RemediateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	run, err := h.service.Remediate(c.UserContext(), principal.UserID, req.SopSteps, req.Parameters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": runResponse(run)})
}

// ClearSummary DELETE /assistant/summary.
func (h *AssistantHandler) ClearSummary(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.ClearSummary(c.UserContext(), principal.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History GET /assistant/history?limit=.
func (h *AssistantHandler) History(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	runs, err := h.service.History(c.UserContext(), principal.UserID, parseInt(c.Query("limit"), 20))
	if err != nil {
		return err
	}
	items := make([]dto.RemediationRunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, runResponse(run))
	}
	return c.JSON(fiber.Map{"data": items})
}

func runResponse(run domain.RemediationRun) dto.RemediationRunResponse {
	return dto.RemediationRunResponse{
		ID:         run.ID,
		SopSteps:   run.SopSteps,
		Parameters: run.Parameters,
		Message:    run.Message,
		ExecutedAt: run.ExecutedAt,
	}
}
