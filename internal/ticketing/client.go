package ticketing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/remote"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

const serviceName = "ticketing"

// Credentials authenticate against the helpdesk API. They are passed in at
// construction and never read from the environment by the client.
type Credentials struct {
	APIKey string
}

// ClientConfig configures the live helpdesk client.
type ClientConfig struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
}

// Client is the live Source backed by the helpdesk REST API.
type Client struct {
	http   *remote.Client
	logger *zap.Logger
}

// NewClient builds a live client. The API key is sent as Basic "key:X".
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: remote.New(remote.Config{
			Service:   serviceName,
			BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
			Timeout:   cfg.Timeout,
			BasicUser: cfg.Credentials.APIKey,
			BasicPass: "X",
		}, logger),
		logger: logger,
	}
}

// Kind reports live data.
func (c *Client) Kind() domain.DataSourceKind {
	return domain.DataSourceLive
}

type filterResponse struct {
	Tickets []domain.RawTicket `json:"tickets"`
	Total   *int               `json:"total"`
}

type detailResponse struct {
	Ticket domain.RawTicket `json:"ticket"`
}

// FetchPage issues GET /tickets/filter for one page.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (PageResult, error) {
	if strings.TrimSpace(req.OrgUnitID) == "" {
		return PageResult{}, apperrors.NewValidationError("org_unit_id required", nil)
	}
	if req.Page < 1 {
		req.Page = 1
	}

	params := map[string]string{
		"query":    `"` + BuildFilterQuery(req) + `"`,
		"per_page": strconv.Itoa(req.PageSize),
		"page":     strconv.Itoa(req.Page),
	}
	body, err := c.http.Get(ctx, "/tickets/filter", params)
	if err != nil {
		return PageResult{}, err
	}
	if err := validateBody(filterSchema, body); err != nil {
		return PageResult{}, err
	}

	var decoded filterResponse
	if err := c.http.Decode(body, &decoded); err != nil {
		return PageResult{}, err
	}
	c.logger.Debug("fetched ticket page",
		zap.String("org_unit_id", req.OrgUnitID),
		zap.Int("page", req.Page),
		zap.Int("count", len(decoded.Tickets)),
		zap.Bool("total_known", decoded.Total != nil))
	return PageResult{Tickets: decoded.Tickets, Total: decoded.Total}, nil
}

// FetchTicket issues GET /tickets/{id}.
func (c *Client) FetchTicket(ctx context.Context, id int64) (domain.RawTicket, error) {
	body, err := c.http.Get(ctx, "/tickets/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return domain.RawTicket{}, err
	}
	if err := validateBody(detailSchema, body); err != nil {
		return domain.RawTicket{}, err
	}
	var decoded detailResponse
	if err := c.http.Decode(body, &decoded); err != nil {
		return domain.RawTicket{}, err
	}
	return decoded.Ticket, nil
}
