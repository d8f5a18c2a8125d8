package settlementservice

import (
	"context"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	AgentOutcomes(ctx context.Context, agentID int) (completed, cancelled int, err error)
}

type BundleRepo interface {
	FindByIDForUpdate(ctx context.Context, id int) (*domain.BundleOrder, error)
	Update(ctx context.Context, bundle *domain.BundleOrder) error
	FindItems(ctx context.Context, bundleID int) ([]domain.BundleItem, error)
	AgentOutcomes(ctx context.Context, agentID int) (completed, cancelled int, err error)
}

type ReportRepo interface {
	FindByOrderID(ctx context.Context, orderID int) (*domain.AgentReport, error)
	FindByBundleID(ctx context.Context, bundleID int) (*domain.AgentReport, error)
	FindByItemIDs(ctx context.Context, itemIDs []int) (map[int]*domain.AgentReport, error)
}

type Ledger interface {
	Deduct(ctx context.Context, accountID int, amount int64, orderID *int) error
	HasDeductionForOrder(ctx context.Context, orderID int) (bool, error)
}

type UserRepo interface {
	ListAccountIDsByRole(ctx context.Context, role string) ([]int, error)
	UpdateAgentStats(ctx context.Context, agentID, totalTransactions int, successRate float64) error
}

// Service closes the payment loop: admin verification completes the order,
// card-settled orders get their ledger deduction in the same transaction,
// cancellation resets the buyer's payment mark.
type Service struct {
	orderRepo  OrderRepo
	bundleRepo BundleRepo
	reportRepo ReportRepo
	ledger     Ledger
	userRepo   UserRepo
	txManager  pg.TXManager
	notifier   notification.Dispatcher
}

func New(orderRepo OrderRepo, bundleRepo BundleRepo, reportRepo ReportRepo, ledger Ledger, userRepo UserRepo, txManager pg.TXManager, notifier notification.Dispatcher) *Service {
	return &Service{
		orderRepo:  orderRepo,
		bundleRepo: bundleRepo,
		reportRepo: reportRepo,
		ledger:     ledger,
		userRepo:   userRepo,
		txManager:  txManager,
		notifier:   notifier,
	}
}

var (
	ErrOrderNotFound   = apperr.New(apperr.CodeNotFound, "order not found")
	ErrBundleNotFound  = apperr.New(apperr.CodeNotFound, "bundle not found")
	ErrReportMissing   = apperr.New(apperr.CodeState, "no report on record for this order")
	ErrAgentNotPayable = apperr.New(apperr.CodeState, "agent payout requires a completed order")
)

// VerifyPayment is the admin's confirmation that the buyer's money arrived.
// It moves the order to its successful terminal status; for card-settled
// orders the owner's ledger is debited by the agreed unit count inside the
// same transaction, so a failed deduction (insufficient cards) leaves the
// order unverified. An order that already has a deduction row is never
// debited again.
func (s *Service) VerifyPayment(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins verify payments")
	}

	var verified *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(order.Status, "order is not awaiting payment")
		}
		if !order.UserPaymentVerified {
			return apperr.NewState(order.Status, "buyer has not marked the payment yet")
		}

		if order.PaymentMethod == domain.PaymentMethodCard {
			burned, err := s.ledger.HasDeductionForOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			if !burned {
				report, err := s.reportRepo.FindByOrderID(ctx, order.ID)
				if err != nil {
					return err
				}
				if report == nil {
					return ErrReportMissing
				}
				if err := s.ledger.Deduct(ctx, order.OwnerID, int64(report.Quantity), &order.ID); err != nil {
					return err
				}
			}
		}

		order.Status = domain.StatusCompleted
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		verified = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventPaymentVerified, verified.OwnerID, &verified.ID, nil)
	zap.L().Info("payment verified", zap.Int("orderID", verified.ID), zap.String("method", verified.PaymentMethod))
	return verified, nil
}

// CancelPayment rejects the buyer's payment claim and terminates the order.
func (s *Service) CancelPayment(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins cancel payments")
	}

	var cancelled *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(order.Status, "order is not awaiting payment")
		}

		order.Status = domain.StatusCancelled
		order.UserPaymentVerified = false
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventPaymentCancelled, cancelled.OwnerID, &cancelled.ID, nil)
	return cancelled, nil
}

// VerifyBundlePayment mirrors VerifyPayment for bundles. The card deduction
// covers every line item: the bundle report's quantity in single mode, the
// sum of per-item quantities otherwise.
func (s *Service) VerifyBundlePayment(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins verify payments")
	}

	var verified *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.bundleRepo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}
		if bundle.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(bundle.Status, "bundle is not awaiting payment")
		}
		if !bundle.UserPaymentVerified {
			return apperr.NewState(bundle.Status, "buyer has not marked the payment yet")
		}

		if bundle.PaymentMethod == domain.PaymentMethodCard {
			units, err := s.bundleUnits(ctx, bundle)
			if err != nil {
				return err
			}
			if err := s.ledger.Deduct(ctx, bundle.OwnerID, units, nil); err != nil {
				return err
			}
		}

		bundle.Status = domain.StatusCompleted
		if err := s.bundleRepo.Update(ctx, bundle); err != nil {
			return err
		}
		verified = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventPaymentVerified, verified.OwnerID, &verified.ID, map[string]any{"bundle": true})
	return verified, nil
}

func (s *Service) CancelBundlePayment(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins cancel payments")
	}

	var cancelled *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.bundleRepo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}
		if bundle.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(bundle.Status, "bundle is not awaiting payment")
		}

		bundle.Status = domain.StatusCancelled
		bundle.UserPaymentVerified = false
		if err := s.bundleRepo.Update(ctx, bundle); err != nil {
			return err
		}
		cancelled = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventPaymentCancelled, cancelled.OwnerID, &cancelled.ID, map[string]any{"bundle": true})
	return cancelled, nil
}

func (s *Service) bundleUnits(ctx context.Context, bundle *domain.BundleOrder) (int64, error) {
	if bundle.ReportMode == domain.ReportModeSingle {
		report, err := s.reportRepo.FindByBundleID(ctx, bundle.ID)
		if err != nil {
			return 0, err
		}
		if report == nil {
			return 0, ErrReportMissing
		}
		return int64(report.Quantity), nil
	}

	items, err := s.bundleRepo.FindItems(ctx, bundle.ID)
	if err != nil {
		return 0, err
	}
	itemIDs := make([]int, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	reports, err := s.reportRepo.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return 0, err
	}
	if len(reports) != len(items) {
		return 0, ErrReportMissing
	}
	var units int64
	for _, report := range reports {
		units += int64(report.Quantity)
	}
	return units, nil
}

// MarkAgentPaid records that the agent received their payout. One-way: there
// is no unmark.
func (s *Service) MarkAgentPaid(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins mark agent payouts")
	}

	var updated *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != domain.StatusCompleted {
			return ErrAgentNotPayable
		}
		if order.AgentPaymentPaid {
			return apperr.NewState(order.Status, "agent payout already marked")
		}

		order.AgentPaymentPaid = true
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkBundleAgentPaid records the agent payout for a completed bundle.
func (s *Service) MarkBundleAgentPaid(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins mark agent payouts")
	}

	var updated *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.bundleRepo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}
		if bundle.Status != domain.StatusCompleted {
			return ErrAgentNotPayable
		}
		if bundle.AgentPaymentPaid {
			return apperr.NewState(bundle.Status, "agent payout already marked")
		}

		bundle.AgentPaymentPaid = true
		if err := s.bundleRepo.Update(ctx, bundle); err != nil {
			return err
		}
		updated = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecalculateAgentStats recomputes every agent's totals from terminal order
// outcomes. Derived entirely from history, so re-running it is a no-op.
func (s *Service) RecalculateAgentStats(ctx context.Context, actor domain.Actor) (int, error) {
	if !actor.IsAdmin() {
		return 0, apperr.New(apperr.CodeForbidden, "only admins recalculate stats")
	}

	agentIDs, err := s.userRepo.ListAccountIDsByRole(ctx, domain.RoleAgent)
	if err != nil {
		return 0, err
	}

	updatedCount := 0
	for _, agentID := range agentIDs {
		completed, cancelled, err := s.orderRepo.AgentOutcomes(ctx, agentID)
		if err != nil {
			zap.L().Error("failed to count order outcomes", zap.Int("agentID", agentID), zap.Error(err))
			return updatedCount, err
		}
		bundleCompleted, bundleCancelled, err := s.bundleRepo.AgentOutcomes(ctx, agentID)
		if err != nil {
			zap.L().Error("failed to count bundle outcomes", zap.Int("agentID", agentID), zap.Error(err))
			return updatedCount, err
		}

		total := completed + cancelled + bundleCompleted + bundleCancelled
		successRate := 0.0
		if total > 0 {
			successRate = float64(completed+bundleCompleted) / float64(total)
		}
		if err := s.userRepo.UpdateAgentStats(ctx, agentID, total, successRate); err != nil {
			return updatedCount, err
		}
		updatedCount++
	}

	zap.L().Info("agent stats recalculated", zap.Int("agents", updatedCount))
	return updatedCount, nil
}
