package dto

import "time"

// AssistantQueryRequest payload.
type AssistantQueryRequest struct {
	Query string `json:"query"`
}

// RemediateRequest payload.
type RemediateRequest struct {
	SopSteps   []string       `json:"sop_steps"`
	Parameters map[string]any `json:"parameters"`
}

// RemediationRunResponse describes an executed remediation.
type RemediationRunResponse struct {
	ID         string         `json:"id"`
	SopSteps   []string       `json:"sop_steps"`
	Parameters map[string]any `json:"parameters"`
	Message    string         `json:"message"`
	ExecutedAt time.Time      `json:"executed_at"`
}
