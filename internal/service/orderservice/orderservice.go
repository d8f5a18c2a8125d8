package orderservice

import (
	"context"
	"strings"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int) error
	FindByOwner(ctx context.Context, ownerID int) ([]domain.Order, error)
	FindByAgent(ctx context.Context, agentID int) ([]domain.Order, error)
	FindOpen(ctx context.Context) ([]domain.Order, error)
	CountActiveByOwner(ctx context.Context, ownerID int) (int, error)
	CountCreatedToday(ctx context.Context, ownerID int) (int, error)
}

type ReportRepo interface {
	Save(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error)
	Update(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error)
	FindByOrderID(ctx context.Context, orderID int) (*domain.AgentReport, error)
}

type Reporting interface {
	Build(ctx context.Context, payload dto.SubmitReportRequestDTO) (*domain.AgentReport, error)
}

type Settings interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
}

// Service is the single-order state machine. Every transition re-reads the
// order under its row lock so concurrent claims or verify/cancel races
// serialize instead of lost-updating each other.
type Service struct {
	repo       Repo
	reportRepo ReportRepo
	reporting  Reporting
	settings   Settings
	txManager  pg.TXManager
	notifier   notification.Dispatcher
}

func New(repo Repo, reportRepo ReportRepo, reporting Reporting, settings Settings, txManager pg.TXManager, notifier notification.Dispatcher) *Service {
	return &Service{
		repo:       repo,
		reportRepo: reportRepo,
		reporting:  reporting,
		settings:   settings,
		txManager:  txManager,
		notifier:   notifier,
	}
}

var (
	ErrOrderNotFound      = apperr.New(apperr.CodeNotFound, "order not found")
	ErrEmptyProductName   = apperr.New(apperr.CodeValidation, "product name is required")
	ErrEmptyDescription   = apperr.New(apperr.CodeValidation, "description is required")
	ErrTooManyImages      = apperr.New(apperr.CodeValidation, "order allows at most 3 images")
	ErrDailyLimitReached  = apperr.New(apperr.CodeValidation, "daily order creation limit reached")
	ErrActiveLimitReached = apperr.New(apperr.CodeValidation, "active order limit reached")
	ErrAlreadyClaimed     = apperr.New(apperr.CodeConflict, "order already claimed by another agent")
	ErrNotOwner           = apperr.New(apperr.CodeForbidden, "not the order owner")
	ErrNotClaimant        = apperr.New(apperr.CodeForbidden, "order is claimed by another agent")
)

// Create publishes a new order, enforcing the admin creation limits
// when enabled.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req dto.CreateOrderDTO) (*domain.Order, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, ErrEmptyProductName
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if len(req.ImageURLs) > 3 {
		return nil, ErrTooManyImages
	}

	if err := s.checkCreationLimits(ctx, actor.ID); err != nil {
		return nil, err
	}

	order, err := s.repo.Save(ctx, &domain.Order{
		OwnerID:     actor.ID,
		ProductName: req.ProductName,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		Status:      domain.StatusPublished,
	})
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return nil, err
	}

	zap.L().Info("order published", zap.Int("orderID", order.ID), zap.Int("ownerID", actor.ID))
	return order, nil
}

// CreateBatch creates orders one by one and keeps going past individual
// failures; each input index gets its own outcome. This partial-success
// policy is deliberate and differs from bundle reporting, which is atomic.
func (s *Service) CreateBatch(ctx context.Context, actor domain.Actor, reqs []dto.CreateOrderDTO) []dto.OrderCreateResultDTO {
	results := make([]dto.OrderCreateResultDTO, 0, len(reqs))
	for i, req := range reqs {
		result := dto.OrderCreateResultDTO{Index: i}
		order, err := s.Create(ctx, actor, req)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Order = ToDTO(order)
		}
		results = append(results, result)
	}
	return results
}

func (s *Service) checkCreationLimits(ctx context.Context, ownerID int) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.OrderLimitEnabled {
		return nil
	}

	createdToday, err := s.repo.CountCreatedToday(ctx, ownerID)
	if err != nil {
		return err
	}
	if createdToday >= settings.MaxOrdersPerDay {
		return ErrDailyLimitReached
	}

	active, err := s.repo.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if active >= settings.MaxActiveOrders {
		return ErrActiveLimitReached
	}
	return nil
}

// Claim moves a published order to the researching state for the agent.
func (s *Service) Claim(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	if !actor.IsAgent() {
		return nil, apperr.New(apperr.CodeForbidden, "only agents may claim orders")
	}

	var claimed *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.AgentID != nil {
			return ErrAlreadyClaimed
		}
		if order.Status != domain.StatusPublished {
			return apperr.NewState(order.Status, "order can't be claimed")
		}

		order.AgentID = &actor.ID
		order.Status = domain.StatusAgentResearch
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		claimed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventOrderClaimed, claimed.OwnerID, &claimed.ID, nil)
	zap.L().Info("order claimed", zap.Int("orderID", claimed.ID), zap.Int("agentID", actor.ID))
	return claimed, nil
}

// SubmitReport records the agent's quote and moves the order to awaiting
// payment. An existing report may be revised until the owner's payment is
// verified; revision reprices against the current exchange rate.
func (s *Service) SubmitReport(ctx context.Context, actor domain.Actor, orderID int, payload dto.SubmitReportRequestDTO) (*domain.Order, error) {
	var updated *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.AgentID == nil || *order.AgentID != actor.ID {
			return ErrNotClaimant
		}
		if order.Status != domain.StatusAgentResearch && order.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(order.Status, "report not accepted in this status")
		}
		if order.UserPaymentVerified {
			return apperr.NewState(order.Status, "report can't be revised after payment confirmation")
		}

		report, err := s.reporting.Build(ctx, payload)
		if err != nil {
			return err
		}
		report.OrderID = &order.ID

		existing, err := s.reportRepo.FindByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			report.ID = existing.ID
			report, err = s.reportRepo.Update(ctx, report)
		} else {
			report, err = s.reportRepo.Save(ctx, report)
		}
		if err != nil {
			return err
		}

		if order.Status == domain.StatusAgentResearch {
			order.Status = domain.StatusAwaitingPayment
			if err := s.repo.Update(ctx, order); err != nil {
				return err
			}
		}
		order.Report = report
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventReportSubmitted, updated.OwnerID, &updated.ID, map[string]any{
		"payable_mnt": updated.Report.PayableMNT,
	})
	zap.L().Info("report submitted", zap.Int("orderID", updated.ID), zap.Int64("payableMNT", updated.Report.PayableMNT))
	return updated, nil
}

// MarkUserPaid records the owner's unverified claim of payment. The status
// does not change; verification is the admin's call.
func (s *Service) MarkUserPaid(ctx context.Context, actor domain.Actor, orderID int, paymentMethod string) (*domain.Order, error) {
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodBank
	}
	if paymentMethod != domain.PaymentMethodBank && paymentMethod != domain.PaymentMethodCard {
		return nil, apperr.New(apperr.CodeValidation, "unknown payment method")
	}

	var updated *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.OwnerID != actor.ID {
			return ErrNotOwner
		}
		if order.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(order.Status, "order is not awaiting payment")
		}
		if order.UserPaymentVerified {
			return apperr.NewState(order.Status, "payment already marked")
		}

		order.UserPaymentVerified = true
		order.PaymentMethod = paymentMethod
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("user marked order paid", zap.Int("orderID", updated.ID), zap.String("method", paymentMethod))
	return updated, nil
}

// Cancel terminates the order. Owners and the claiming agent may cancel a
// published or awaiting-payment order; cancellation while the agent is
// actively researching is not permitted.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	var updated *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}

		isOwner := order.OwnerID == actor.ID
		isClaimant := order.AgentID != nil && *order.AgentID == actor.ID
		if !isOwner && !isClaimant {
			return ErrNotOwner
		}
		if order.Status != domain.StatusPublished && order.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(order.Status, "order can't be cancelled in this status")
		}

		order.Status = domain.StatusCancelled
		order.UserPaymentVerified = false
		if err := s.repo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order cancelled", zap.Int("orderID", updated.ID), zap.Int("actorID", actor.ID))
	return updated, nil
}

// Archive hides a terminal order from the owner's default view.
func (s *Service) Archive(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}
	if !domain.IsTerminalStatus(order.Status) {
		return nil, apperr.NewState(order.Status, "only finished orders can be archived")
	}
	if order.ArchivedByUser {
		return nil, apperr.NewState(order.Status, "order already archived")
	}

	order.ArchivedByUser = true
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order that is still unclaimed or already archived.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, orderID int) error {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.OwnerID != actor.ID {
		return ErrNotOwner
	}
	if order.Status != domain.StatusPublished && !order.ArchivedByUser {
		return apperr.NewState(order.Status, "order can't be deleted")
	}

	return s.repo.Delete(ctx, orderID)
}

// SetTrackCode stores the freight tracking code on a completed order.
// Overwrites are idempotent.
func (s *Service) SetTrackCode(ctx context.Context, actor domain.Actor, orderID int, code string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	isClaimant := order.AgentID != nil && *order.AgentID == actor.ID
	if !isClaimant && !actor.IsAdmin() {
		return nil, ErrNotClaimant
	}
	if order.Status != domain.StatusCompleted {
		return nil, apperr.NewState(order.Status, "track code only applies to completed orders")
	}

	order.TrackCode = &code
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventTrackCodeSet, order.OwnerID, &order.ID, map[string]any{
		"track_code": code,
	})
	return order, nil
}

// GetOrder returns the order with its report attached. Owners, the claiming
// agent and admins may read it.
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	isClaimant := order.AgentID != nil && *order.AgentID == actor.ID
	if order.OwnerID != actor.ID && !isClaimant && !actor.IsAdmin() {
		return nil, ErrNotOwner
	}

	report, err := s.reportRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Report = report
	return order, nil
}

// GetOrders lists the actor's orders: owners see their own (unarchived),
// agents additionally see the claimable feed or their claimed set.
func (s *Service) GetOrders(ctx context.Context, actor domain.Actor, feed string) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	switch {
	case feed == "open" && actor.IsAgent():
		orders, err = s.repo.FindOpen(ctx)
	case actor.IsAgent():
		orders, err = s.repo.FindByAgent(ctx, actor.ID)
	default:
		orders, err = s.repo.FindByOwner(ctx, actor.ID)
	}
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.ArchivedByUser && !actor.IsAgent() {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered, nil
}

// ToDTO maps an order (and its report, when loaded) to the API shape.
func ToDTO(order *domain.Order) *dto.OrderResponseDTO {
	resp := &dto.OrderResponseDTO{
		ID:                  order.ID,
		OwnerID:             order.OwnerID,
		AgentID:             order.AgentID,
		ProductName:         order.ProductName,
		Description:         order.Description,
		ImageURLs:           order.ImageURLs,
		Status:              order.Status,
		PaymentMethod:       order.PaymentMethod,
		UserPaymentVerified: order.UserPaymentVerified,
		AgentPaymentPaid:    order.AgentPaymentPaid,
		TrackCode:           order.TrackCode,
		ArchivedByUser:      order.ArchivedByUser,
		CreatedAt:           order.CreatedAt,
	}
	if report := order.Report; report != nil {
		resp.Report = &dto.ReportResponseDTO{
			UserAmount:            report.UserAmount,
			PaymentLink:           report.PaymentLink,
			AdditionalImages:      report.AdditionalImages,
			AdditionalDescription: report.AdditionalDescription,
			Quantity:              report.Quantity,
			PayableYuan:           report.PayableYuan,
			PayableMNT:            report.PayableMNT,
		}
	}
	return resp
}
