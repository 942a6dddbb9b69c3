package service

import (
	"context"
	"time"

	"github.com/xeonx/timeago"
	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// TicketDetail is one normalized ticket with relative time labels.
type TicketDetail struct {
	Ticket     domain.Ticket
	CreatedAgo string
	UpdatedAgo string
	Source     domain.DataSourceKind
}

// TicketService reads single tickets from the configured source.
type TicketService struct {
	source     ticketing.Source
	normalizer *insights.Normalizer
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(source ticketing.Source, normalizer *insights.Normalizer, timeout time.Duration, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = insights.NewNormalizer(insights.DefaultDateLayout, time.UTC)
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &TicketService{
		source:     source,
		normalizer: normalizer,
		logger:     logger,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Get fetches and normalizes ticket id.
func (s *TicketService) Get(ctx context.Context, id int64) (TicketDetail, error) {
	if id <= 0 {
		return TicketDetail{}, apperrors.NewValidationError("invalid ticket id", map[string]any{"id": id})
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	raw, err := s.source.FetchTicket(fetchCtx, id)
	if err != nil {
		s.logger.Warn("ticket detail fetch failed", zap.Int64("ticket_id", id), zap.Error(err))
		return TicketDetail{}, err
	}

	ticket := s.normalizer.Normalize(raw)
	return TicketDetail{
		Ticket:     ticket,
		CreatedAgo: s.ago(ticket.CreatedAt),
		UpdatedAgo: s.ago(ticket.UpdatedAt),
		Source:     s.source.Kind(),
	}, nil
}

func (s *TicketService) ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeago.English.FormatReference(t, s.now())
}
