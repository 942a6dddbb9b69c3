package dto

// SaveDepartmentRequest payload.
type SaveDepartmentRequest struct {
	DepartmentName string `json:"department_name"`
	OrgUnitID      string `json:"org_unit_id"`
}

// SetActiveDepartmentRequest payload.
type SetActiveDepartmentRequest struct {
	DepartmentID string `json:"department_id"`
}

// SaveRoleRequest payload.
type SaveRoleRequest struct {
	RoleArn  string `json:"role_arn"`
	RoleName string `json:"role_name"`
	Region   string `json:"region"`
}

// SetActiveRoleRequest payload.
type SetActiveRoleRequest struct {
	RoleArn string `json:"role_arn"`
}

// UpdateRoleRegionRequest payload.
type UpdateRoleRegionRequest struct {
	RoleArn string `json:"role_arn"`
	Region  string `json:"region"`
}
