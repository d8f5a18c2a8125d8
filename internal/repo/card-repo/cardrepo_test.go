package cardrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/nbataa/agentmart/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		tx        *domain.CardTransaction
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Saves a ledger entry",
			tx:   &domain.CardTransaction{AccountID: 1, Type: domain.TxInitialGrant, Amount: 1},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "type", "amount", "recipient_phone", "order_id", "created_at"}).
					AddRow(10, 1, domain.TxInitialGrant, int64(1), nil, nil, now)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO card_transactions (account_id, type, amount, recipient_phone, order_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, account_id, type, amount, recipient_phone, order_id, created_at`)).
					WithArgs(1, domain.TxInitialGrant, int64(1), (*string)(nil), (*int)(nil)).
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Database error",
			tx:   &domain.CardTransaction{AccountID: 1, Type: domain.TxInitialGrant, Amount: 1},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO card_transactions`)).
					WithArgs(1, domain.TxInitialGrant, int64(1), (*string)(nil), (*int)(nil)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			saved, err := repo.Save(context.Background(), tt.tx)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, saved)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, saved.ID)
				assert.Equal(t, int64(1), saved.Amount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Balance(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		accountID int
		mockSetup func()
		expectErr bool
		balance   int64
	}{
		{
			name:      "Sums the account entries",
			accountID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(4))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM card_transactions WHERE account_id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			balance: 4,
		},
		{
			name:      "Empty ledger is zero",
			accountID: 2,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM card_transactions WHERE account_id = $1`)).
					WithArgs(2).
					WillReturnRows(rows)
			},
			balance: 0,
		},
		{
			name:      "Database error",
			accountID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM card_transactions WHERE account_id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.Balance(context.Background(), tt.accountID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.balance, balance)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListByAccount(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Returns entries newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "account_id", "type", "amount", "recipient_phone", "order_id", "created_at"}).
			AddRow(2, 1, domain.TxAdminGift, int64(5), nil, nil, now).
			AddRow(1, 1, domain.TxInitialGrant, int64(1), nil, nil, now.Add(-time.Hour))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, type, amount, recipient_phone, order_id, created_at FROM card_transactions WHERE account_id = $1 ORDER BY created_at DESC`)).
			WithArgs(1).
			WillReturnRows(rows)

		txs, err := repo.ListByAccount(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, txs, 2)
		assert.Equal(t, 2, txs[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, account_id, type, amount, recipient_phone, order_id, created_at FROM card_transactions`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		txs, err := repo.ListByAccount(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, txs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_HasDeductionForOrder(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Deduction exists", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(true)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
			WithArgs(42, domain.TxOrderDeduction).
			WillReturnRows(rows)

		exists, err := repo.HasDeductionForOrder(context.Background(), 42)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No deduction", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
			WithArgs(42, domain.TxOrderDeduction).
			WillReturnRows(rows)

		exists, err := repo.HasDeductionForOrder(context.Background(), 42)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
