package domain

// Department is an organizational unit registered with the org-management backend.
type Department struct {
	ID        string `json:"departmentId"`
	Name      string `json:"departmentName"`
	OrgUnitID string `json:"orgUnitId"`
	IsActive  bool   `json:"isActive"`
}

// Role is an IAM role a department operates under.
type Role struct {
	RoleArn  string `json:"roleArn"`
	RoleName string `json:"roleName,omitempty"`
	Region   string `json:"region"`
	IsActive bool   `json:"isActive"`
}
