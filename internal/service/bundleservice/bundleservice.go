package bundleservice

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
	Save(ctx context.Context, bundle *domain.BundleOrder) (*domain.BundleOrder, error)
	FindByID(ctx context.Context, id int) (*domain.BundleOrder, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.BundleOrder, error)
	Update(ctx context.Context, bundle *domain.BundleOrder) error
	Delete(ctx context.Context, id int) error
	FindByOwner(ctx context.Context, ownerID int) ([]domain.BundleOrder, error)
	FindOpen(ctx context.Context) ([]domain.BundleOrder, error)
	FindItems(ctx context.Context, bundleID int) ([]domain.BundleItem, error)
	FindItem(ctx context.Context, itemID int) (*domain.BundleItem, error)
}

type ReportRepo interface {
	Save(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error)
	Update(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error)
	FindByBundleID(ctx context.Context, bundleID int) (*domain.AgentReport, error)
	FindByItemID(ctx context.Context, itemID int) (*domain.AgentReport, error)
	FindByItemIDs(ctx context.Context, itemIDs []int) (map[int]*domain.AgentReport, error)
}

type Reporting interface {
	Build(ctx context.Context, payload dto.SubmitReportRequestDTO) (*domain.AgentReport, error)
}

// Service is the bundle-order state machine: several line items under one
// lifecycle status. Per-item reporting advances the aggregate status only
// when the last item is reported, all inside a single transaction.
type Service struct {
	repo       Repo
	reportRepo ReportRepo
	reporting  Reporting
	txManager  pg.TXManager
	notifier   notification.Dispatcher
}

func New(repo Repo, reportRepo ReportRepo, reporting Reporting, txManager pg.TXManager, notifier notification.Dispatcher) *Service {
	return &Service{
		repo:       repo,
		reportRepo: reportRepo,
		reporting:  reporting,
		txManager:  txManager,
		notifier:   notifier,
	}
}

var (
	ErrBundleNotFound   = apperr.New(apperr.CodeNotFound, "bundle not found")
	ErrItemNotFound     = apperr.New(apperr.CodeNotFound, "bundle item not found")
	ErrNoItems          = apperr.New(apperr.CodeValidation, "bundle needs at least one item")
	ErrAlreadyClaimed   = apperr.New(apperr.CodeConflict, "bundle already claimed by another agent")
	ErrNotOwner         = apperr.New(apperr.CodeForbidden, "not the bundle owner")
	ErrNotClaimant      = apperr.New(apperr.CodeForbidden, "bundle is claimed by another agent")
	ErrMixedReportModes = apperr.New(apperr.CodeState, "bundle report mode is fixed once the first report is submitted")
)

// Create publishes a bundle with its line items. Item validation is
// all-or-nothing: one bad item rejects the whole bundle.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req dto.CreateBundleRequestDTO) (*domain.BundleOrder, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]domain.BundleItem, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return nil, apperr.New(apperr.CodeValidation, "every item needs a product name")
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, apperr.New(apperr.CodeValidation, "every item needs a description")
		}
		if len(item.ImageURLs) > 3 {
			return nil, apperr.New(apperr.CodeValidation, "items allow at most 3 images")
		}
		items = append(items, domain.BundleItem{
			ProductName: item.ProductName,
			Description: item.Description,
			ImageURLs:   item.ImageURLs,
		})
	}

	bundle, err := s.repo.Save(ctx, &domain.BundleOrder{
		OwnerID: actor.ID,
		Status:  domain.StatusPublished,
		Items:   items,
	})
	if err != nil {
		zap.L().Error("can't save bundle", zap.Error(err))
		return nil, err
	}

	zap.L().Info("bundle published", zap.Int("bundleID", bundle.ID), zap.Int("items", len(items)))
	return bundle, nil
}

func (s *Service) Claim(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	if !actor.IsAgent() {
		return nil, apperr.New(apperr.CodeForbidden, "only agents may claim bundles")
	}

	var claimed *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.repo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}
		if bundle.AgentID != nil {
			return ErrAlreadyClaimed
		}
		if bundle.Status != domain.StatusPublished {
			return apperr.NewState(bundle.Status, "bundle can't be claimed")
		}

		bundle.AgentID = &actor.ID
		bundle.Status = domain.StatusAgentResearch
		if err := s.repo.Update(ctx, bundle); err != nil {
			return err
		}
		claimed = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventOrderClaimed, claimed.OwnerID, &claimed.ID, map[string]any{
		"bundle": true,
	})
	zap.L().Info("bundle claimed", zap.Int("bundleID", claimed.ID), zap.Int("agentID", actor.ID))
	return claimed, nil
}

// SubmitBundleReport prices the bundle as a whole (single mode) and moves it
// to awaiting payment.
func (s *Service) SubmitBundleReport(ctx context.Context, actor domain.Actor, bundleID int, payload dto.SubmitReportRequestDTO) (*domain.BundleOrder, error) {
	var updated *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.guardReportable(ctx, actor, bundleID)
		if err != nil {
			return err
		}
		if bundle.ReportMode == domain.ReportModePerItem {
			return ErrMixedReportModes
		}

		report, err := s.reporting.Build(ctx, payload)
		if err != nil {
			return err
		}
		report.BundleID = &bundle.ID

		existing, err := s.reportRepo.FindByBundleID(ctx, bundle.ID)
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

		bundle.ReportMode = domain.ReportModeSingle
		if bundle.Status == domain.StatusAgentResearch {
			bundle.Status = domain.StatusAwaitingPayment
		}
		if err := s.repo.Update(ctx, bundle); err != nil {
			return err
		}
		bundle.BundleReport = report
		updated = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventReportSubmitted, updated.OwnerID, &updated.ID, map[string]any{
		"bundle":      true,
		"payable_mnt": updated.BundleReport.PayableMNT,
	})
	return updated, nil
}

// SubmitItemReport prices one line item (per_item mode). The bundle status
// advances to awaiting payment if and only if this report completes the set;
// report write and status flip share one transaction so a crash can never
// leave the bundle half-advanced.
func (s *Service) SubmitItemReport(ctx context.Context, actor domain.Actor, bundleID, itemID int, payload dto.SubmitReportRequestDTO) (*domain.BundleOrder, error) {
	var updated *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.guardReportable(ctx, actor, bundleID)
		if err != nil {
			return err
		}
		if bundle.ReportMode == domain.ReportModeSingle {
			return ErrMixedReportModes
		}

		item, err := s.repo.FindItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.BundleID != bundle.ID {
			return ErrItemNotFound
		}

		report, err := s.reporting.Build(ctx, payload)
		if err != nil {
			return err
		}
		report.BundleItemID = &item.ID

		existing, err := s.reportRepo.FindByItemID(ctx, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			report.ID = existing.ID
			_, err = s.reportRepo.Update(ctx, report)
		} else {
			_, err = s.reportRepo.Save(ctx, report)
		}
		if err != nil {
			return err
		}

		bundle.ReportMode = domain.ReportModePerItem

		allReported, err := s.allItemsReported(ctx, bundle.ID)
		if err != nil {
			return err
		}
		if allReported && bundle.Status == domain.StatusAgentResearch {
			bundle.Status = domain.StatusAwaitingPayment
		}
		if err := s.repo.Update(ctx, bundle); err != nil {
			return err
		}
		updated = bundle
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == domain.StatusAwaitingPayment {
		s.notifier.Dispatch(ctx, notification.EventReportSubmitted, updated.OwnerID, &updated.ID, map[string]any{
			"bundle": true,
		})
	}
	return updated, nil
}

func (s *Service) guardReportable(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	bundle, err := s.repo.FindByIDForUpdate(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, ErrBundleNotFound
	}
	if bundle.AgentID == nil || *bundle.AgentID != actor.ID {
		return nil, ErrNotClaimant
	}
	if bundle.Status != domain.StatusAgentResearch && bundle.Status != domain.StatusAwaitingPayment {
		return nil, apperr.NewState(bundle.Status, "report not accepted in this status")
	}
	if bundle.UserPaymentVerified {
		return nil, apperr.NewState(bundle.Status, "report can't be revised after payment confirmation")
	}
	return bundle, nil
}

func (s *Service) allItemsReported(ctx context.Context, bundleID int) (bool, error) {
	items, err := s.repo.FindItems(ctx, bundleID)
	if err != nil {
		return false, err
	}
	itemIDs := make([]int, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	reports, err := s.reportRepo.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return false, err
	}
	return len(reports) == len(items), nil
}

func (s *Service) MarkUserPaid(ctx context.Context, actor domain.Actor, bundleID int, paymentMethod string) (*domain.BundleOrder, error) {
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodBank
	}
	if paymentMethod != domain.PaymentMethodBank && paymentMethod != domain.PaymentMethodCard {
		return nil, apperr.New(apperr.CodeValidation, "unknown payment method")
	}

	var updated *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.repo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}
		if bundle.OwnerID != actor.ID {
			return ErrNotOwner
		}
		if bundle.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(bundle.Status, "bundle is not awaiting payment")
		}
		if bundle.UserPaymentVerified {
			return apperr.NewState(bundle.Status, "payment already marked")
		}

		bundle.UserPaymentVerified = true
		bundle.PaymentMethod = paymentMethod
		if err := s.repo.Update(ctx, bundle); err != nil {
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

// Cancel terminates the bundle under the same policy as single orders:
// allowed from published and awaiting payment, not while researching.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	var updated *domain.BundleOrder
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		bundle, err := s.repo.FindByIDForUpdate(ctx, bundleID)
		if err != nil {
			return err
		}
		if bundle == nil {
			return ErrBundleNotFound
		}

		isOwner := bundle.OwnerID == actor.ID
		isClaimant := bundle.AgentID != nil && *bundle.AgentID == actor.ID
		if !isOwner && !isClaimant {
			return ErrNotOwner
		}
		if bundle.Status != domain.StatusPublished && bundle.Status != domain.StatusAwaitingPayment {
			return apperr.NewState(bundle.Status, "bundle can't be cancelled in this status")
		}

		bundle.Status = domain.StatusCancelled
		bundle.UserPaymentVerified = false
		if err := s.repo.Update(ctx, bundle); err != nil {
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

func (s *Service) Archive(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	bundle, err := s.repo.FindByID(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, ErrBundleNotFound
	}
	if bundle.OwnerID != actor.ID {
		return nil, ErrNotOwner
	}
	if !domain.IsTerminalStatus(bundle.Status) {
		return nil, apperr.NewState(bundle.Status, "only finished bundles can be archived")
	}
	if bundle.ArchivedByUser {
		return nil, apperr.NewState(bundle.Status, "bundle already archived")
	}

	bundle.ArchivedByUser = true
	if err := s.repo.Update(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// SetTrackCode stores the freight tracking code on a completed bundle.
// Overwrites are idempotent.
func (s *Service) SetTrackCode(ctx context.Context, actor domain.Actor, bundleID int, code string) (*domain.BundleOrder, error) {
	bundle, err := s.repo.FindByID(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, ErrBundleNotFound
	}
	isClaimant := bundle.AgentID != nil && *bundle.AgentID == actor.ID
	if !isClaimant && !actor.IsAdmin() {
		return nil, ErrNotClaimant
	}
	if bundle.Status != domain.StatusCompleted {
		return nil, apperr.NewState(bundle.Status, "track code only applies to completed bundles")
	}

	bundle.TrackCode = &code
	if err := s.repo.Update(ctx, bundle); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventTrackCodeSet, bundle.OwnerID, &bundle.ID, map[string]any{
		"bundle":     true,
		"track_code": code,
	})
	return bundle, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, bundleID int) error {
	bundle, err := s.repo.FindByID(ctx, bundleID)
	if err != nil {
		return err
	}
	if bundle == nil {
		return ErrBundleNotFound
	}
	if bundle.OwnerID != actor.ID {
		return ErrNotOwner
	}
	if bundle.Status != domain.StatusPublished && !bundle.ArchivedByUser {
		return apperr.NewState(bundle.Status, "bundle can't be deleted")
	}

	return s.repo.Delete(ctx, bundleID)
}

// GetBundle loads the bundle with items and reports attached.
func (s *Service) GetBundle(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error) {
	bundle, err := s.repo.FindByID(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, ErrBundleNotFound
	}
	isClaimant := bundle.AgentID != nil && *bundle.AgentID == actor.ID
	if bundle.OwnerID != actor.ID && !isClaimant && !actor.IsAdmin() {
		return nil, ErrNotOwner
	}
	if err := s.loadDetails(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *Service) GetBundles(ctx context.Context, actor domain.Actor, feed string) ([]domain.BundleOrder, error) {
	var (
		bundles []domain.BundleOrder
		err     error
	)
	if feed == "open" && actor.IsAgent() {
		bundles, err = s.repo.FindOpen(ctx)
	} else {
		bundles, err = s.repo.FindByOwner(ctx, actor.ID)
	}
	if err != nil {
		zap.L().Error("failed to get bundles", zap.Error(err))
		return nil, err
	}
	return bundles, nil
}

func (s *Service) loadDetails(ctx context.Context, bundle *domain.BundleOrder) error {
	items, err := s.repo.FindItems(ctx, bundle.ID)
	if err != nil {
		return err
	}

	switch bundle.ReportMode {
	case domain.ReportModeSingle:
		report, err := s.reportRepo.FindByBundleID(ctx, bundle.ID)
		if err != nil {
			return err
		}
		bundle.BundleReport = report
	case domain.ReportModePerItem:
		itemIDs := make([]int, len(items))
		for i, item := range items {
			itemIDs[i] = item.ID
		}
		reports, err := s.reportRepo.FindByItemIDs(ctx, itemIDs)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].Report = reports[items[i].ID]
		}
	}

	bundle.Items = items
	return nil
}

// ToDTO maps the bundle with its items and reports to the response shape.
func ToDTO(bundle *domain.BundleOrder) *dto.BundleResponseDTO {
	items := make([]dto.BundleItemResponseDTO, 0, len(bundle.Items))
	for _, item := range bundle.Items {
		items = append(items, dto.BundleItemResponseDTO{
			ID:          item.ID,
			Position:    item.Position,
			ProductName: item.ProductName,
			Description: item.Description,
			ImageURLs:   item.ImageURLs,
			Report:      reportToDTO(item.Report),
		})
	}
	return &dto.BundleResponseDTO{
		ID:                  bundle.ID,
		OwnerID:             bundle.OwnerID,
		AgentID:             bundle.AgentID,
		Status:              bundle.Status,
		ReportMode:          bundle.ReportMode,
		PaymentMethod:       bundle.PaymentMethod,
		UserPaymentVerified: bundle.UserPaymentVerified,
		AgentPaymentPaid:    bundle.AgentPaymentPaid,
		TrackCode:           bundle.TrackCode,
		ArchivedByUser:      bundle.ArchivedByUser,
		BundleReport:        reportToDTO(bundle.BundleReport),
		Items:               items,
		TotalPayableMNT:     TotalPayableMNT(bundle),
		CreatedAt:           bundle.CreatedAt,
	}
}

func reportToDTO(report *domain.AgentReport) *dto.ReportResponseDTO {
	if report == nil {
		return nil
	}
	return &dto.ReportResponseDTO{
		UserAmount:            report.UserAmount,
		PaymentLink:           report.PaymentLink,
		AdditionalImages:      report.AdditionalImages,
		AdditionalDescription: report.AdditionalDescription,
		Quantity:              report.Quantity,
		PayableYuan:           report.PayableYuan,
		PayableMNT:            report.PayableMNT,
	}
}

// TotalPayableMNT is the buyer-facing total: the bundle report's amount in
// single mode, the sum of independently priced items in per_item mode.
func TotalPayableMNT(bundle *domain.BundleOrder) int64 {
	if bundle.ReportMode == domain.ReportModeSingle && bundle.BundleReport != nil {
		return bundle.BundleReport.PayableMNT
	}
	var total int64
	for _, item := range bundle.Items {
		if item.Report != nil {
			total += item.Report.PayableMNT
		}
	}
	return total
}
