package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/auth"
	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

func requirePrincipal(c *fiber.Ctx) (domain.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.UserID == "" {
		return domain.Principal{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func statusFilter(v *int) (*domain.TicketStatus, error) {
	if v == nil {
		return nil, nil
	}
	status := domain.TicketStatus(*v)
	if !insights.KnownStatus(status) {
		return nil, apperrors.NewValidationError("unknown status code", map[string]any{"status": *v})
	}
	return &status, nil
}

func priorityFilter(v *int) (*domain.TicketPriority, error) {
	if v == nil {
		return nil, nil
	}
	priority := domain.TicketPriority(*v)
	if !insights.KnownPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority code", map[string]any{"priority": *v})
	}
	return &priority, nil
}

// rawData passes an upstream JSON body through; an empty body renders as null.
func rawData(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
