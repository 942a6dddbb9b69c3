package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/api/dto"
	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/service"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// PreferencesHandler manages the caller's dashboard settings.
type PreferencesHandler struct {
	service *service.PreferenceService
}

// NewPreferencesHandler constructs handler.
func NewPreferencesHandler(preferenceService *service.PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{service: preferenceService}
}

// Get GET /preferences.
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	prefs, err := h.service.Get(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": preferencesResponse(prefs)})
}

// Update PUT /preferences.
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	prefs, err := h.service.Update(c.UserContext(), principal, service.PreferenceUpdate{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		DarkMode:    req.DarkMode,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": preferencesResponse(prefs)})
}

func preferencesResponse(prefs domain.Preferences) dto.PreferencesResponse {
	resp := dto.PreferencesResponse{
		DisplayName: prefs.DisplayName,
		Email:       prefs.Email,
		DarkMode:    prefs.DarkMode,
	}
	if !prefs.UpdatedAt.IsZero() {
		updated := prefs.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
