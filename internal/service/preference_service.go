package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/repository"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

const maxDisplayNameLen = 120

// PreferenceUpdate carries the fields to change; nil fields are kept.
type PreferenceUpdate struct {
	DisplayName *string
	Email       *string
	DarkMode    *bool
}

// PreferenceService manages per-user dashboard settings.
type PreferenceService struct {
	repo   repository.PreferenceRepository
	logger *zap.Logger
}

// NewPreferenceService constructs the service. A nil repo makes every call unavailable.
func NewPreferenceService(repo repository.PreferenceRepository, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, logger: logger}
}

// Get returns stored preferences, defaulting name and email from the token.
func (s *PreferenceService) Get(ctx context.Context, principal domain.Principal) (domain.Preferences, error) {
	if s.repo == nil {
		return domain.Preferences{}, apperrors.NewUnavailable("preferences require a database")
	}
	prefs, err := s.repo.Get(ctx, principal.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Preferences{
			UserID:      principal.UserID,
			DisplayName: principal.Name,
			Email:       principal.Email,
		}, nil
	}
	if err != nil {
		return domain.Preferences{}, apperrors.NewInternalError(err)
	}
	return *prefs, nil
}

// Update applies changes and persists the result.
func (s *PreferenceService) Update(ctx context.Context, principal domain.Principal, update PreferenceUpdate) (domain.Preferences, error) {
	prefs, err := s.Get(ctx, principal)
	if err != nil {
		return domain.Preferences{}, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if len([]rune(name)) > maxDisplayNameLen {
			return domain.Preferences{}, apperrors.NewValidationError("display_name too long", map[string]any{"max": maxDisplayNameLen})
		}
		prefs.DisplayName = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return domain.Preferences{}, apperrors.NewValidationError("invalid email", map[string]any{"email": email})
			}
		}
		prefs.Email = email
	}
	if update.DarkMode != nil {
		prefs.DarkMode = *update.DarkMode
	}

	if err := s.repo.Upsert(ctx, &prefs); err != nil {
		s.logger.Error("save preferences", zap.String("user_id", prefs.UserID), zap.Error(err))
		return domain.Preferences{}, apperrors.NewInternalError(err)
	}
	return prefs, nil
}
