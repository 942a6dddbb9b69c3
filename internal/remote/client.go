// Package remote builds the resty clients used for every external HTTP
// collaborator and maps their failures onto the shared error taxonomy.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// Config describes one upstream.
type Config struct {
	Service   string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// BasicUser/BasicPass are sent as HTTP Basic credentials when BasicUser is set.
	BasicUser string
	BasicPass string
}

// Client wraps a resty client bound to one upstream service.
type Client struct {
	service string
	http    *resty.Client
	logger  *zap.Logger
}

// New creates a client. Retries are disabled; callers decide whether to retry.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "secops-dashboard/1.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.BasicUser != "" {
		httpClient.SetBasicAuth(cfg.BasicUser, cfg.BasicPass)
	}

	return &Client{service: cfg.Service, http: httpClient, logger: logger}
}

// Service names the upstream for errors and logs.
func (c *Client) Service() string {
	return c.service
}

// Get issues a GET and returns the raw body of a 2xx response.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return c.handle(http.MethodGet, path, resp, err)
}

// Post sends body as JSON and returns the raw body of a 2xx response.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(path)
	return c.handle(http.MethodPost, path, resp, err)
}

// Decode unmarshals a body, reporting failures as MalformedResponseError.
func (c *Client) Decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.MalformedResponseError{Service: c.service, Reason: "invalid JSON", Err: err}
	}
	return nil
}

func (c *Client) handle(method, path string, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("service", c.service),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &apperrors.NetworkError{Service: c.service, Op: method, URL: c.url(path), Err: unwrapURLError(err)}
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Warn("upstream returned error status",
			zap.String("service", c.service),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()))
		return nil, &apperrors.RemoteServiceError{
			Service:    c.service,
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(resp.Body()),
		}
	}
	return resp.Body(), nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.http.BaseURL + path
}

// errorMessage pulls a human message out of common error body shapes.
func errorMessage(body []byte) string {
	var payload struct {
		Message     string `json:"message"`
		Description string `json:"description"`
		Error       any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Description != "":
		return payload.Description
	}
	switch v := payload.Error.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return ""
}

func unwrapURLError(err error) error {
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
