package userrepo

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

const userColumns = `id, phone, name, password_hash, role, agent_points, total_transactions, success_rate, created_at`

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Phone, &user.Name, &user.PasswordHash, &user.Role,
		&user.AgentPoints, &user.TotalTransactions, &user.SuccessRate, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE phone = $1
    `
	user, err := r.scanUser(r.db.QueryRow(ctx, query, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user by phone", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `
	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (phone, name, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns + `
    `
	created, err := r.scanUser(r.db.QueryRow(ctx, query, user.Phone, user.Name, user.PasswordHash, user.Role))
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// LockAccount takes the account's row lock for the duration of the enclosing
// transaction. Used to serialize balance check + debit.
func (r *Repository) LockAccount(ctx context.Context, id int) error {
	query := `
        SELECT id
        FROM users
        WHERE id = $1
        FOR UPDATE
    `
	var locked int
	err := r.db.QueryRow(ctx, query, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return pgx.ErrNoRows
	}
	if err != nil {
		zap.L().Error("can't lock account", zap.Error(err))
	}
	return err
}

func (r *Repository) ListAccountIDsByRole(ctx context.Context, role string) ([]int, error) {
	query := `
        SELECT id
        FROM users
        WHERE role = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		zap.L().Error("can't list accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan account id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AgentPointsForUpdate reads the accumulator under the account's row lock.
func (r *Repository) AgentPointsForUpdate(ctx context.Context, agentID int) (int64, error) {
	query := `
        SELECT agent_points
        FROM users
        WHERE id = $1
        FOR UPDATE
    `
	var points int64
	err := r.db.QueryRow(ctx, query, agentID).Scan(&points)
	if err != nil {
		zap.L().Error("can't read agent points", zap.Error(err))
		return 0, err
	}
	return points, nil
}

func (r *Repository) SetAgentPoints(ctx context.Context, agentID int, points int64) error {
	query := `
        UPDATE users
        SET agent_points = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, points, agentID); err != nil {
		zap.L().Error("can't set agent points", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AddAgentPoints(ctx context.Context, agentID int, delta int64) error {
	query := `
        UPDATE users
        SET agent_points = agent_points + $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, delta, agentID); err != nil {
		zap.L().Error("can't add agent points", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateAgentStats(ctx context.Context, agentID, totalTransactions int, successRate float64) error {
	query := `
        UPDATE users
        SET total_transactions = $1, success_rate = $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, totalTransactions, successRate, agentID); err != nil {
		zap.L().Error("can't update agent stats", zap.Error(err))
		return err
	}
	return nil
}
