package cardservice

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

type CardRepo interface {
	Save(ctx context.Context, tx *domain.CardTransaction) (*domain.CardTransaction, error)
	Balance(ctx context.Context, accountID int) (int64, error)
	ListByAccount(ctx context.Context, accountID int) ([]domain.CardTransaction, error)
	HasDeductionForOrder(ctx context.Context, orderID int) (bool, error)
}

type UserRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	LockAccount(ctx context.Context, id int) error
	ListAccountIDsByRole(ctx context.Context, role string) ([]int, error)
}

// Service is the research-card ledger. Cards are a unit count, not a
// currency amount; every operation appends transactions, balances are
// always derived.
type Service struct {
	cardRepo  CardRepo
	userRepo  UserRepo
	txManager pg.TXManager
}

func New(cardRepo CardRepo, userRepo UserRepo, txManager pg.TXManager) *Service {
	return &Service{
		cardRepo:  cardRepo,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

var (
	ErrInsufficientBalance = apperr.New(apperr.CodeLedger, "insufficient card balance")
	ErrRecipientNotFound   = apperr.New(apperr.CodeLedger, "recipient not found")
	ErrNonPositiveAmount   = apperr.New(apperr.CodeValidation, "amount must be positive")
)

func (s *Service) Balance(ctx context.Context, accountID int) (int64, error) {
	return s.cardRepo.Balance(ctx, accountID)
}

func (s *Service) History(ctx context.Context, accountID int) ([]domain.CardTransaction, error) {
	return s.cardRepo.ListByAccount(ctx, accountID)
}

// GrantInitial appends the signup grant for a fresh account.
func (s *Service) GrantInitial(ctx context.Context, accountID int, amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	_, err := s.cardRepo.Save(ctx, &domain.CardTransaction{
		AccountID: accountID,
		Type:      domain.TxInitialGrant,
		Amount:    amount,
	})
	return err
}

// AdminGift credits cards to the account resolved by phone.
func (s *Service) AdminGift(ctx context.Context, actor domain.Actor, toPhone string, amount int64) (*domain.CardTransaction, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admin may gift cards this way")
	}
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	recipient, err := s.userRepo.FindByPhone(ctx, toPhone)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	tx, err := s.cardRepo.Save(ctx, &domain.CardTransaction{
		AccountID:      recipient.ID,
		Type:           domain.TxAdminGift,
		Amount:         amount,
		RecipientPhone: &toPhone,
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("admin gifted cards", zap.Int("recipient", recipient.ID), zap.Int64("amount", amount))
	return tx, nil
}

// GrantToAll credits every user account independently: one account failing
// does not block the others, and each failure is reported back.
func (s *Service) GrantToAll(ctx context.Context, actor domain.Actor, amount int64) (int, map[int]error, error) {
	if !actor.IsAdmin() {
		return 0, nil, apperr.New(apperr.CodeForbidden, "only admin may grant cards to all")
	}
	if amount <= 0 {
		return 0, nil, ErrNonPositiveAmount
	}

	accountIDs, err := s.userRepo.ListAccountIDsByRole(ctx, domain.RoleUser)
	if err != nil {
		return 0, nil, err
	}

	var (
		mu      sync.Mutex
		granted int
		failed  = make(map[int]error)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, accountID := range accountIDs {
		accountID := accountID
		g.Go(func() error {
			err := s.txManager.Begin(gctx, func(ctx context.Context) error {
				_, err := s.cardRepo.Save(ctx, &domain.CardTransaction{
					AccountID: accountID,
					Type:      domain.TxAdminGift,
					Amount:    amount,
				})
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[accountID] = err
				zap.L().Error("grant failed for account", zap.Int("accountID", accountID), zap.Error(err))
				return nil
			}
			granted++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return granted, failed, err
	}

	zap.L().Info("cards granted to all users", zap.Int("granted", granted), zap.Int("failed", len(failed)))
	return granted, failed, nil
}

// Gift transfers cards from the actor to the account resolved by phone.
// Balance check and both ledger entries commit atomically.
func (s *Service) Gift(ctx context.Context, actor domain.Actor, toPhone string, amount int64) (*domain.CardTransaction, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	sentType := domain.TxUserTransfer
	receivedType := domain.TxUserTransfer
	if actor.IsAgent() {
		sentType = domain.TxAgentGift
		receivedType = domain.TxAgentGift
	}

	var sent *domain.CardTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.userRepo.LockAccount(ctx, actor.ID); err != nil {
			return err
		}

		recipient, err := s.userRepo.FindByPhone(ctx, toPhone)
		if err != nil {
			return err
		}
		if recipient == nil {
			return ErrRecipientNotFound
		}
		if recipient.ID == actor.ID {
			return apperr.New(apperr.CodeValidation, "can't gift cards to yourself")
		}

		balance, err := s.cardRepo.Balance(ctx, actor.ID)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientBalance
		}

		sent, err = s.cardRepo.Save(ctx, &domain.CardTransaction{
			AccountID:      actor.ID,
			Type:           sentType,
			Amount:         -amount,
			RecipientPhone: &toPhone,
		})
		if err != nil {
			return err
		}

		_, err = s.cardRepo.Save(ctx, &domain.CardTransaction{
			AccountID: recipient.ID,
			Type:      receivedType,
			Amount:    amount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("cards gifted", zap.Int("from", actor.ID), zap.String("toPhone", toPhone), zap.Int64("amount", amount))
	return sent, nil
}

// Deduct burns cards from an account for a completed order. Joins the
// caller's transaction when one is open.
func (s *Service) Deduct(ctx context.Context, accountID int, amount int64, orderID *int) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.userRepo.LockAccount(ctx, accountID); err != nil {
			return err
		}

		balance, err := s.cardRepo.Balance(ctx, accountID)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientBalance
		}

		_, err = s.cardRepo.Save(ctx, &domain.CardTransaction{
			AccountID: accountID,
			Type:      domain.TxOrderDeduction,
			Amount:    -amount,
			OrderID:   orderID,
		})
		return err
	})
}

// HasDeductionForOrder reports whether the order already burned its cards.
func (s *Service) HasDeductionForOrder(ctx context.Context, orderID int) (bool, error) {
	return s.cardRepo.HasDeductionForOrder(ctx, orderID)
}
