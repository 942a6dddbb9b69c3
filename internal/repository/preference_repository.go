package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// PreferenceRepository persists per-user dashboard settings.
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}

type preferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository builds the repository.
func NewPreferenceRepository(pool *pgxpool.Pool) PreferenceRepository {
	return &preferenceRepository{pool: pool}
}

func (r *preferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	const query = `
        SELECT user_id, display_name, email, dark_mode, updated_at
        FROM user_preferences WHERE user_id=$1`
	var prefs domain.Preferences
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.DisplayName,
		&prefs.Email,
		&prefs.DarkMode,
		&prefs.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	const query = `
        INSERT INTO user_preferences (user_id, display_name, email, dark_mode)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id) DO UPDATE
        SET display_name=EXCLUDED.display_name, email=EXCLUDED.email,
            dark_mode=EXCLUDED.dark_mode, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		prefs.UserID,
		prefs.DisplayName,
		prefs.Email,
		prefs.DarkMode,
	).Scan(&prefs.UpdatedAt)
}
