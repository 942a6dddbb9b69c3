package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/secops-dashboard/dashboard-service/internal/api/dto"
	"github.com/secops-dashboard/dashboard-service/internal/domain"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// OrgClient is the org-management backend.
type OrgClient interface {
	GetDepartments(ctx context.Context, userID string) ([]domain.Department, error)
	SaveDepartment(ctx context.Context, userID string, dept domain.Department) (json.RawMessage, error)
	SetActiveDepartment(ctx context.Context, userID, departmentID string) (json.RawMessage, error)
	SaveRoleArn(ctx context.Context, userID string, role domain.Role) (json.RawMessage, error)
	SetActiveRole(ctx context.Context, userID, roleArn string) (json.RawMessage, error)
	UpdateRoleRegion(ctx context.Context, userID, roleArn, region string) (json.RawMessage, error)
	GetActiveRole(ctx context.Context, userID string) (*domain.Role, error)
}

// OrgHandler proxies department and role management for the caller.
type OrgHandler struct {
	client OrgClient
}

// NewOrgHandler constructs handler.
func NewOrgHandler(client OrgClient) *OrgHandler {
	return &OrgHandler{client: client}
}

// ListDepartments GET /org/departments.
func (h *OrgHandler) ListDepartments(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	depts, err := h.client.GetDepartments(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": depts})
}

// SaveDepartment POST /org/departments.
func (h *OrgHandler) SaveDepartment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SaveDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.DepartmentName) == "" || strings.TrimSpace(req.OrgUnitID) == "" {
		return apperrors.NewValidationError("department_name, org_unit_id required", nil)
	}
	raw, err := h.client.SaveDepartment(c.UserContext(), principal.UserID, domain.Department{
		Name:      strings.TrimSpace(req.DepartmentName),
		OrgUnitID: strings.TrimSpace(req.OrgUnitID),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rawData(raw)})
}

// SetActiveDepartment PUT /org/departments/active.
func (h *OrgHandler) SetActiveDepartment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SetActiveDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.DepartmentID) == "" {
		return apperrors.NewValidationError("department_id required", nil)
	}
	raw, err := h.client.SetActiveDepartment(c.UserContext(), principal.UserID, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rawData(raw)})
}

// SaveRole POST /org/roles.
func (h *OrgHandler) SaveRole(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SaveRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !strings.HasPrefix(req.RoleArn, "arn:") {
		return apperrors.NewValidationError("role_arn must be an ARN", map[string]any{"role_arn": req.RoleArn})
	}
	raw, err := h.client.SaveRoleArn(c.UserContext(), principal.UserID, domain.Role{
		RoleArn:  req.RoleArn,
		RoleName: req.RoleName,
		Region:   req.Region,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": rawData(raw)})
}

// SetActiveRole PUT /org/roles/active.
func (h *OrgHandler) SetActiveRole(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SetActiveRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RoleArn) == "" {
		return apperrors.NewValidationError("role_arn required", nil)
	}
	raw, err := h.client.SetActiveRole(c.UserContext(), principal.UserID, req.RoleArn)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rawData(raw)})
}

// UpdateRoleRegion PUT /org/roles/region.
func (h *OrgHandler) UpdateRoleRegion(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RoleArn) == "" || strings.TrimSpace(req.Region) == "" {
		return apperrors.NewValidationError("role_arn, region required", nil)
	}
	raw, err := h.client.UpdateRoleRegion(c.UserContext(), principal.UserID, req.RoleArn, req.Region)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rawData(raw)})
}

// ActiveRole GET /org/roles/active.
func (h *OrgHandler) ActiveRole(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	role, err := h.client.GetActiveRole(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": role})
}
