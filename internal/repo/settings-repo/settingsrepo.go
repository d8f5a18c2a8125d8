package settingsrepo

import (
	"context"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"go.uber.org/zap"
)

// Repository reads and writes the singleton admin settings row (id = 1).
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const settingsColumns = `id, account_number, account_name, bank, exchange_rate,
        order_limit_enabled, max_orders_per_day, max_active_orders, updated_at`

func (r *Repository) Get(ctx context.Context) (*domain.AdminSettings, error) {
	query := `
        SELECT ` + settingsColumns + `
        FROM admin_settings
        WHERE id = 1
    `
	var s domain.AdminSettings
	err := r.db.QueryRow(ctx, query).Scan(&s.ID, &s.AccountNumber, &s.AccountName, &s.Bank,
		&s.ExchangeRate, &s.OrderLimitEnabled, &s.MaxOrdersPerDay, &s.MaxActiveOrders, &s.UpdatedAt)
	if err != nil {
		zap.L().Error("can't get admin settings", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Update(ctx context.Context, s *domain.AdminSettings) (*domain.AdminSettings, error) {
	query := `
        UPDATE admin_settings
        SET account_number = $1, account_name = $2, bank = $3, exchange_rate = $4,
            order_limit_enabled = $5, max_orders_per_day = $6, max_active_orders = $7,
            updated_at = now()
        WHERE id = 1
        RETURNING ` + settingsColumns + `
    `
	var updated domain.AdminSettings
	err := r.db.QueryRow(ctx, query, s.AccountNumber, s.AccountName, s.Bank, s.ExchangeRate,
		s.OrderLimitEnabled, s.MaxOrdersPerDay, s.MaxActiveOrders).
		Scan(&updated.ID, &updated.AccountNumber, &updated.AccountName, &updated.Bank,
			&updated.ExchangeRate, &updated.OrderLimitEnabled, &updated.MaxOrdersPerDay,
			&updated.MaxActiveOrders, &updated.UpdatedAt)
	if err != nil {
		zap.L().Error("can't update admin settings", zap.Error(err))
		return nil, err
	}
	return &updated, nil
}
