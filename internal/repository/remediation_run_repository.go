package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// RemediationRunRepository keeps a local audit trail of executed remediations.
type RemediationRunRepository interface {
	Create(ctx context.Context, run *domain.RemediationRun) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.RemediationRun, error)
}

type remediationRunRepository struct {
	pool *pgxpool.Pool
}

// NewRemediationRunRepository builds the repository.
func NewRemediationRunRepository(pool *pgxpool.Pool) RemediationRunRepository {
	return &remediationRunRepository{pool: pool}
}

func (r *remediationRunRepository) Create(ctx context.Context, run *domain.RemediationRun) error {
	steps, err := json.Marshal(run.SopSteps)
	if err != nil {
		return err
	}
	params, err := json.Marshal(run.Parameters)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO remediation_runs (id, user_id, sop_steps, parameters, message, executed_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO NOTHING`
	_, err = r.pool.Exec(ctx, query,
		run.ID,
		run.UserID,
		steps,
		params,
		run.Message,
		run.ExecutedAt,
	)
	return err
}

func (r *remediationRunRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.RemediationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
        SELECT id::text, user_id, sop_steps, parameters, message, executed_at
        FROM remediation_runs WHERE user_id=$1
        ORDER BY executed_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.RemediationRun{}
	for rows.Next() {
		var (
			run    domain.RemediationRun
			steps  []byte
			params []byte
		)
		if err := rows.Scan(&run.ID, &run.UserID, &steps, &params, &run.Message, &run.ExecutedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(steps, &run.SopSteps); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(params, &run.Parameters); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
