package cardrepo

import (
	"context"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"go.uber.org/zap"
)

// Repository is the append-only card transaction ledger. Balances are always
// derived by summing an account's entries, never stored.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, tx *domain.CardTransaction) (*domain.CardTransaction, error) {
	query := `
        INSERT INTO card_transactions (account_id, type, amount, recipient_phone, order_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, account_id, type, amount, recipient_phone, order_id, created_at
    `
	var saved domain.CardTransaction
	err := r.db.QueryRow(ctx, query, tx.AccountID, tx.Type, tx.Amount, tx.RecipientPhone, tx.OrderID).
		Scan(&saved.ID, &saved.AccountID, &saved.Type, &saved.Amount, &saved.RecipientPhone,
			&saved.OrderID, &saved.CreatedAt)
	if err != nil {
		zap.L().Error("can't save card transaction", zap.Error(err))
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) Balance(ctx context.Context, accountID int) (int64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM card_transactions
        WHERE account_id = $1
    `
	var balance int64
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		zap.L().Error("can't compute card balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int) ([]domain.CardTransaction, error) {
	query := `
        SELECT id, account_id, type, amount, recipient_phone, order_id, created_at
        FROM card_transactions
        WHERE account_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get card transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.CardTransaction
	for rows.Next() {
		var tx domain.CardTransaction
		err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.RecipientPhone,
			&tx.OrderID, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan card transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// HasDeductionForOrder reports whether an order_deduction entry already exists
// for the order, keeping payment verification idempotent on the ledger side.
func (r *Repository) HasDeductionForOrder(ctx context.Context, orderID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM card_transactions WHERE order_id = $1 AND type = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, orderID, domain.TxOrderDeduction).Scan(&exists); err != nil {
		zap.L().Error("can't check order deduction", zap.Error(err))
		return false, err
	}
	return exists, nil
}
