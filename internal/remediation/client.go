// Package remediation talks to the serverless remediation assistant: one
// endpoint answers questions, the other runs the suggested procedure.
package remediation

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

const serviceName = "remediation"

// Config holds the two function URLs.
type Config struct {
	QueryURL   string
	ExecuteURL string
	Timeout    time.Duration
}

// Client calls the assistant endpoints.
type Client struct {
	http       *remote.Client
	queryURL   string
	executeURL string
	logger     *zap.Logger
}

type queryRequest struct {
	Query   string `json:"query"`
	Summary string `json:"summary"`
}

type executeRequest struct {
	SopSteps   []string       `json:"sopSteps"`
	Parameters map[string]any `json:"parameters"`
}

type executeResponse struct {
	Message string `json:"message"`
}

// NewClient creates a client. Either URL may be empty, in which case the
// matching call reports the assistant as unavailable.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:       remote.New(remote.Config{Service: serviceName, Timeout: cfg.Timeout}, logger),
		queryURL:   strings.TrimSpace(cfg.QueryURL),
		executeURL: strings.TrimSpace(cfg.ExecuteURL),
		logger:     logger,
	}
}

// Query forwards a question with the previous conversation summary.
func (c *Client) Query(ctx context.Context, query, summary string) (domain.AssistantReply, error) {
	if c.queryURL == "" {
		return domain.AssistantReply{}, apperrors.NewUnavailable("remediation assistant is not configured")
	}
	body, err := c.http.Post(ctx, c.queryURL, queryRequest{Query: query, Summary: summary})
	if err != nil {
		return domain.AssistantReply{}, err
	}
	return c.decodeReply(body)
}

// Execute runs a remediation procedure and returns the backend's message.
func (c *Client) Execute(ctx context.Context, sopSteps []string, parameters map[string]any) (string, error) {
	if c.executeURL == "" {
		return "", apperrors.NewUnavailable("remediation executor is not configured")
	}
	if parameters == nil {
		parameters = map[string]any{}
	}
	body, err := c.http.Post(ctx, c.executeURL, executeRequest{SopSteps: sopSteps, Parameters: parameters})
	if err != nil {
		return "", err
	}
	var decoded executeResponse
	if err := c.http.Decode(body, &decoded); err != nil {
		return "", err
	}
	c.logger.Info("remediation executed", zap.Int("steps", len(sopSteps)))
	return decoded.Message, nil
}

// decodeReply accepts any JSON object; the known fields are optional and
// steps may arrive as strings or as objects carrying a step/description.
func (c *Client) decodeReply(body []byte) (domain.AssistantReply, error) {
	var fields map[string]json.RawMessage
	if err := c.http.Decode(body, &fields); err != nil {
		return domain.AssistantReply{}, err
	}

	reply := domain.AssistantReply{Raw: json.RawMessage(body)}
	reply.SopSteps = stringList(fields["sop_steps"])
	reply.CriticalSopSteps = stringList(fields["critical_sop_steps"])
	reply.FollowUpQuestions = stringList(fields["follow_up_questions"])

	if raw, ok := fields["parameters"]; ok {
		_ = json.Unmarshal(raw, &reply.Parameters)
	}
	if raw, ok := fields["is_remediation"]; ok {
		var flag any
		_ = json.Unmarshal(raw, &flag)
		switch v := flag.(type) {
		case bool:
			reply.IsRemediation = v
		case string:
			reply.IsRemediation = strings.EqualFold(v, "true")
		}
	}
	if raw, ok := fields["summary"]; ok {
		_ = json.Unmarshal(raw, &reply.Summary)
	}
	return reply, nil
}

func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		var single string
		if json.Unmarshal(raw, &single) == nil && single != "" {
			return []string{single}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			for _, key := range []string{"step", "description", "text", "title"} {
				if s, ok := v[key].(string); ok && s != "" {
					out = append(out, s)
					break
				}
			}
		}
	}
	return out
}
