package settlementservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/internal/service/cardservice"
)

type mocks struct {
	orderRepo  *MockOrderRepo
	bundleRepo *MockBundleRepo
	reportRepo *MockReportRepo
	ledger     *MockLedger
	userRepo   *MockUserRepo
	txManager  *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		orderRepo:  NewMockOrderRepo(ctrl),
		bundleRepo: NewMockBundleRepo(ctrl),
		reportRepo: NewMockReportRepo(ctrl),
		ledger:     NewMockLedger(ctrl),
		userRepo:   NewMockUserRepo(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	service := New(m.orderRepo, m.bundleRepo, m.reportRepo, m.ledger, m.userRepo, m.txManager, notification.Noop{})
	return service, m
}

func passthroughTX(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func intPtr(v int) *int { return &v }

var admin = domain.Actor{ID: 99, Role: domain.RoleAdmin}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("bank payment completes without touching the ledger", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodBank,
		}, nil)
		m.orderRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, order *domain.Order) error {
				assert.Equal(t, domain.StatusCompleted, order.Status)
				return nil
			})

		order, err := service.VerifyPayment(ctx, admin, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})

	t.Run("card payment burns the reported quantity", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
		}, nil)
		m.ledger.EXPECT().HasDeductionForOrder(ctx, 42).Return(false, nil)
		m.reportRepo.EXPECT().FindByOrderID(ctx, 42).Return(&domain.AgentReport{Quantity: 3}, nil)
		m.ledger.EXPECT().Deduct(ctx, 1, int64(3), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ int64, orderID *int) error {
				require.NotNil(t, orderID)
				assert.Equal(t, 42, *orderID)
				return nil
			})
		m.orderRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.VerifyPayment(ctx, admin, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})

	t.Run("insufficient cards leave the order unverified", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
		}, nil)
		m.ledger.EXPECT().HasDeductionForOrder(ctx, 42).Return(false, nil)
		m.reportRepo.EXPECT().FindByOrderID(ctx, 42).Return(&domain.AgentReport{Quantity: 3}, nil)
		m.ledger.EXPECT().Deduct(ctx, 1, int64(3), gomock.Any()).Return(cardservice.ErrInsufficientBalance)

		_, err := service.VerifyPayment(ctx, admin, 42)

		require.ErrorIs(t, err, cardservice.ErrInsufficientBalance)
	})

	t.Run("existing deduction row is not burned twice", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
		}, nil)
		m.ledger.EXPECT().HasDeductionForOrder(ctx, 42).Return(true, nil)
		m.orderRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.VerifyPayment(ctx, admin, 42)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, order.Status)
	})

	t.Run("second verification is rejected", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, Status: domain.StatusCompleted, UserPaymentVerified: true,
		}, nil)

		_, err := service.VerifyPayment(ctx, admin, 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not awaiting payment")
	})

	t.Run("buyer has not marked yet", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.VerifyPayment(ctx, admin, 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not marked")
	})

	t.Run("non admin rejected", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.VerifyPayment(ctx, domain.Actor{ID: 5, Role: domain.RoleAgent}, 42)

		require.Error(t, err)
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()
	service, m := NewMock(t)
	passthroughTX(m)

	m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
		ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment, UserPaymentVerified: true,
	}, nil)
	m.orderRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	order, err := service.CancelPayment(ctx, admin, 42)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	assert.False(t, order.UserPaymentVerified)
}

func TestVerifyBundlePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("per item mode burns the summed quantities", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
			ReportMode: domain.ReportModePerItem,
		}, nil)
		m.bundleRepo.EXPECT().FindItems(ctx, 10).Return([]domain.BundleItem{{ID: 101}, {ID: 102}}, nil)
		m.reportRepo.EXPECT().FindByItemIDs(ctx, []int{101, 102}).Return(map[int]*domain.AgentReport{
			101: {Quantity: 2},
			102: {Quantity: 3},
		}, nil)
		m.ledger.EXPECT().Deduct(ctx, 1, int64(5), nil).Return(nil)
		m.bundleRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.VerifyBundlePayment(ctx, admin, 10)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, bundle.Status)
	})

	t.Run("single mode uses the bundle report quantity", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
			ReportMode: domain.ReportModeSingle,
		}, nil)
		m.reportRepo.EXPECT().FindByBundleID(ctx, 10).Return(&domain.AgentReport{Quantity: 4}, nil)
		m.ledger.EXPECT().Deduct(ctx, 1, int64(4), nil).Return(nil)
		m.bundleRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := service.VerifyBundlePayment(ctx, admin, 10)

		require.NoError(t, err)
	})

	t.Run("missing item report blocks verification", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, Status: domain.StatusAwaitingPayment,
			UserPaymentVerified: true, PaymentMethod: domain.PaymentMethodCard,
			ReportMode: domain.ReportModePerItem,
		}, nil)
		m.bundleRepo.EXPECT().FindItems(ctx, 10).Return([]domain.BundleItem{{ID: 101}, {ID: 102}}, nil)
		m.reportRepo.EXPECT().FindByItemIDs(ctx, []int{101, 102}).Return(map[int]*domain.AgentReport{
			101: {Quantity: 2},
		}, nil)

		_, err := service.VerifyBundlePayment(ctx, admin, 10)

		require.ErrorIs(t, err, ErrReportMissing)
	})
}

func TestMarkAgentPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the payout once", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, AgentID: intPtr(5), Status: domain.StatusCompleted,
		}, nil)
		m.orderRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.MarkAgentPaid(ctx, admin, 42)

		require.NoError(t, err)
		assert.True(t, order.AgentPaymentPaid)
	})

	t.Run("already paid", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, Status: domain.StatusCompleted, AgentPaymentPaid: true,
		}, nil)

		_, err := service.MarkAgentPaid(ctx, admin, 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already marked")
	})

	t.Run("requires a completed order", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.orderRepo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.MarkAgentPaid(ctx, admin, 42)

		require.ErrorIs(t, err, ErrAgentNotPayable)
	})
}

func TestMarkBundleAgentPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the payout once", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, AgentID: intPtr(5), Status: domain.StatusCompleted,
		}, nil)
		m.bundleRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.MarkBundleAgentPaid(ctx, admin, 10)

		require.NoError(t, err)
		assert.True(t, bundle.AgentPaymentPaid)
	})

	t.Run("already paid", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, Status: domain.StatusCompleted, AgentPaymentPaid: true,
		}, nil)

		_, err := service.MarkBundleAgentPaid(ctx, admin, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already marked")
	})

	t.Run("requires a completed bundle", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.bundleRepo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.MarkBundleAgentPaid(ctx, admin, 10)

		require.ErrorIs(t, err, ErrAgentNotPayable)
	})

	t.Run("non admin rejected", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.MarkBundleAgentPaid(ctx, domain.Actor{ID: 5, Role: domain.RoleAgent}, 10)

		require.Error(t, err)
	})
}

func TestRecalculateAgentStats(t *testing.T) {
	ctx := context.Background()
	service, m := NewMock(t)

	m.userRepo.EXPECT().ListAccountIDsByRole(ctx, domain.RoleAgent).Return([]int{5, 6}, nil)
	m.orderRepo.EXPECT().AgentOutcomes(ctx, 5).Return(3, 1, nil)
	m.bundleRepo.EXPECT().AgentOutcomes(ctx, 5).Return(1, 0, nil)
	m.userRepo.EXPECT().UpdateAgentStats(ctx, 5, 5, 0.8).Return(nil)
	m.orderRepo.EXPECT().AgentOutcomes(ctx, 6).Return(0, 0, nil)
	m.bundleRepo.EXPECT().AgentOutcomes(ctx, 6).Return(0, 0, nil)
	m.userRepo.EXPECT().UpdateAgentStats(ctx, 6, 0, 0.0).Return(nil)

	updated, err := service.RecalculateAgentStats(ctx, admin)

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
}
