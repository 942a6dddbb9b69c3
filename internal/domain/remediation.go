package domain

import (
	"encoding/json"
	"time"
)

// AssistantReply is the remediation assistant's answer. Every field is optional.
type AssistantReply struct {
	SopSteps          []string        `json:"sop_steps,omitempty"`
	CriticalSopSteps  []string        `json:"critical_sop_steps,omitempty"`
	Parameters        map[string]any  `json:"parameters,omitempty"`
	FollowUpQuestions []string        `json:"follow_up_questions,omitempty"`
	IsRemediation     bool            `json:"is_remediation"`
	Summary           string          `json:"summary,omitempty"`
	Raw               json.RawMessage `json:"raw,omitempty"`
}

// RemediationRun records one executed remediation procedure.
type RemediationRun struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	SopSteps   []string       `json:"sopSteps"`
	Parameters map[string]any `json:"parameters"`
	Message    string         `json:"message"`
	ExecutedAt time.Time      `json:"executedAt"`
}
