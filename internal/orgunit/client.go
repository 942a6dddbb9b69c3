// Package orgunit is the client for the org-management backend. Every call is
// a POST to one endpoint with an action discriminator and the caller's userId.
package orgunit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/remote"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

const serviceName = "org-management"

// Action selects the backend operation.
type Action string

const (
	ActionGetDepartments        Action = "getDepartments"
	ActionSaveDepartment        Action = "saveDepartment"
	ActionSetActiveDepartment   Action = "setActiveDepartment"
	ActionSaveRoleArn           Action = "saveRoleArn"
	ActionSetActiveRole         Action = "setActiveRole"
	ActionUpdateRoleRegion      Action = "updateRoleRegion"
	ActionGetActiveRole         Action = "getActiveRole"
	ActionAddRemediationHistory Action = "addRemediationHistory"
)

// Config describes the backend endpoint.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client issues org-management actions.
type Client struct {
	http   *remote.Client
	url    string
	logger *zap.Logger
}

// NewClient creates a client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   remote.New(remote.Config{Service: serviceName, Timeout: cfg.Timeout}, logger),
		url:    strings.TrimSpace(cfg.URL),
		logger: logger,
	}
}

// Do posts one action. fields are merged into the body next to action and userId.
func (c *Client) Do(ctx context.Context, action Action, userID string, fields map[string]any) (json.RawMessage, error) {
	if c.url == "" {
		return nil, apperrors.NewUnavailable("org-management backend is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId required", map[string]any{"action": string(action)})
	}

	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["action"] = string(action)
	body["userId"] = userID

	resp, err := c.http.Post(ctx, c.url, body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("org action completed", zap.String("action", string(action)))
	return json.RawMessage(resp), nil
}

// GetDepartments lists the caller's departments. The backend answers with
// either a bare array or {"departments": [...]}.
func (c *Client) GetDepartments(ctx context.Context, userID string) ([]domain.Department, error) {
	raw, err := c.Do(ctx, ActionGetDepartments, userID, nil)
	if err != nil {
		return nil, err
	}
	var list []domain.Department
	if json.Unmarshal(raw, &list) == nil {
		return list, nil
	}
	var wrapped struct {
		Departments []domain.Department `json:"departments"`
	}
	if err := c.http.Decode(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Departments == nil {
		return []domain.Department{}, nil
	}
	return wrapped.Departments, nil
}

// SaveDepartment registers a department.
func (c *Client) SaveDepartment(ctx context.Context, userID string, dept domain.Department) (json.RawMessage, error) {
	return c.Do(ctx, ActionSaveDepartment, userID, map[string]any{
		"departmentName": dept.Name,
		"orgUnitId":      dept.OrgUnitID,
	})
}

// SetActiveDepartment marks the department the dashboard scopes to.
func (c *Client) SetActiveDepartment(ctx context.Context, userID, departmentID string) (json.RawMessage, error) {
	return c.Do(ctx, ActionSetActiveDepartment, userID, map[string]any{"departmentId": departmentID})
}

// SaveRoleArn registers an IAM role.
func (c *Client) SaveRoleArn(ctx context.Context, userID string, role domain.Role) (json.RawMessage, error) {
	return c.Do(ctx, ActionSaveRoleArn, userID, map[string]any{
		"roleArn":  role.RoleArn,
		"roleName": role.RoleName,
		"region":   role.Region,
	})
}

// SetActiveRole marks the role remediations run under.
func (c *Client) SetActiveRole(ctx context.Context, userID, roleArn string) (json.RawMessage, error) {
	return c.Do(ctx, ActionSetActiveRole, userID, map[string]any{"roleArn": roleArn})
}

// UpdateRoleRegion changes the region of a role.
func (c *Client) UpdateRoleRegion(ctx context.Context, userID, roleArn, region string) (json.RawMessage, error) {
	return c.Do(ctx, ActionUpdateRoleRegion, userID, map[string]any{"roleArn": roleArn, "region": region})
}

// GetActiveRole returns the active role, or nil when none is set.
func (c *Client) GetActiveRole(ctx context.Context, userID string) (*domain.Role, error) {
	raw, err := c.Do(ctx, ActionGetActiveRole, userID, nil)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Role *domain.Role `json:"role"`
	}
	if err := c.http.Decode(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Role != nil {
		return wrapped.Role, nil
	}
	var role domain.Role
	if err := c.http.Decode(raw, &role); err != nil {
		return nil, err
	}
	if role.RoleArn == "" {
		return nil, nil
	}
	return &role, nil
}

// AddRemediationHistory records an executed remediation.
func (c *Client) AddRemediationHistory(ctx context.Context, run domain.RemediationRun) error {
	_, err := c.Do(ctx, ActionAddRemediationHistory, run.UserID, map[string]any{
		"remediationId": run.ID,
		"sopSteps":      run.SopSteps,
		"parameters":    run.Parameters,
		"message":       run.Message,
		"executedAt":    run.ExecutedAt,
	})
	return err
}
