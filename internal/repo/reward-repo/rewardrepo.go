package rewardrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const rewardColumns = `id, agent_id, amount, status, created_at, approved_at, rejected_at`

func scanReward(row pgx.Row) (*domain.RewardRequest, error) {
	var reward domain.RewardRequest
	err := row.Scan(&reward.ID, &reward.AgentID, &reward.Amount, &reward.Status,
		&reward.CreatedAt, &reward.ApprovedAt, &reward.RejectedAt)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *Repository) Save(ctx context.Context, reward *domain.RewardRequest) (*domain.RewardRequest, error) {
	query := `
        INSERT INTO reward_requests (agent_id, amount, status)
        VALUES ($1, $2, $3)
        RETURNING ` + rewardColumns + `
    `
	saved, err := scanReward(r.db.QueryRow(ctx, query, reward.AgentID, reward.Amount, reward.Status))
	if err != nil {
		zap.L().Error("can't save reward request", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.RewardRequest, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM reward_requests
        WHERE id = $1
    `
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate loads the request under its row lock so approve and
// reject cannot race each other.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.RewardRequest, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM reward_requests
        WHERE id = $1
        FOR UPDATE
    `
	return r.findOne(ctx, query, id)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.RewardRequest, error) {
	reward, err := scanReward(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find reward request", zap.Error(err))
		return nil, err
	}
	return reward, nil
}

func (r *Repository) HasPending(ctx context.Context, agentID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM reward_requests WHERE agent_id = $1 AND status = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, agentID, domain.RewardPending).Scan(&exists); err != nil {
		zap.L().Error("can't check pending reward", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Update(ctx context.Context, reward *domain.RewardRequest) error {
	query := `
        UPDATE reward_requests
        SET status = $1, approved_at = $2, rejected_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, reward.Status, reward.ApprovedAt, reward.RejectedAt, reward.ID)
	if err != nil {
		zap.L().Error("can't update reward request", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByAgent(ctx context.Context, agentID int) ([]domain.RewardRequest, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM reward_requests
        WHERE agent_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, agentID)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.RewardRequest, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM reward_requests
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.RewardRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get reward requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.RewardRequest
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			zap.L().Error("can't scan reward row", zap.Error(err))
			return nil, err
		}
		rewards = append(rewards, *reward)
	}
	return rewards, nil
}
