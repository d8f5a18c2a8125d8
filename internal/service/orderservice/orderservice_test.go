package orderservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
)

type mocks struct {
	repo       *MockRepo
	reportRepo *MockReportRepo
	reporting  *MockReporting
	settings   *MockSettings
	txManager  *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:       NewMockRepo(ctrl),
		reportRepo: NewMockReportRepo(ctrl),
		reporting:  NewMockReporting(ctrl),
		settings:   NewMockSettings(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	service := New(m.repo, m.reportRepo, m.reporting, m.settings, m.txManager, notification.Noop{})
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

func TestCreate(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1, Role: domain.RoleUser}

	tests := []struct {
		name    string
		req     dto.CreateOrderDTO
		setup   func(m *mocks)
		wantErr error
	}{
		{
			name: "publishes the order",
			req:  dto.CreateOrderDTO{ProductName: "Phone case", Description: "Black, size M"},
			setup: func(m *mocks) {
				m.settings.EXPECT().Get(ctx).Return(&domain.AdminSettings{}, nil)
				m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						assert.Equal(t, domain.StatusPublished, order.Status)
						assert.Equal(t, 1, order.OwnerID)
						order.ID = 42
						return order, nil
					})
			},
		},
		{
			name:    "blank product name",
			req:     dto.CreateOrderDTO{ProductName: "   ", Description: "ok"},
			wantErr: ErrEmptyProductName,
		},
		{
			name:    "blank description",
			req:     dto.CreateOrderDTO{ProductName: "Phone case", Description: ""},
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "too many images",
			req:     dto.CreateOrderDTO{ProductName: "Phone case", Description: "ok", ImageURLs: []string{"a", "b", "c", "d"}},
			wantErr: ErrTooManyImages,
		},
		{
			name: "daily limit enforced",
			req:  dto.CreateOrderDTO{ProductName: "Phone case", Description: "ok"},
			setup: func(m *mocks) {
				m.settings.EXPECT().Get(ctx).Return(&domain.AdminSettings{
					OrderLimitEnabled: true,
					MaxOrdersPerDay:   5,
					MaxActiveOrders:   20,
				}, nil)
				m.repo.EXPECT().CountCreatedToday(ctx, 1).Return(5, nil)
			},
			wantErr: ErrDailyLimitReached,
		},
		{
			name: "active limit enforced",
			req:  dto.CreateOrderDTO{ProductName: "Phone case", Description: "ok"},
			setup: func(m *mocks) {
				m.settings.EXPECT().Get(ctx).Return(&domain.AdminSettings{
					OrderLimitEnabled: true,
					MaxOrdersPerDay:   5,
					MaxActiveOrders:   3,
				}, nil)
				m.repo.EXPECT().CountCreatedToday(ctx, 1).Return(0, nil)
				m.repo.EXPECT().CountActiveByOwner(ctx, 1).Return(3, nil)
			},
			wantErr: ErrActiveLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			order, err := service.Create(ctx, owner, tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 42, order.ID)
		})
	}
}

func TestCreateBatch(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1, Role: domain.RoleUser}
	service, m := NewMock(t)

	m.settings.EXPECT().Get(ctx).Return(&domain.AdminSettings{}, nil)
	m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, order *domain.Order) (*domain.Order, error) {
			order.ID = 7
			return order, nil
		})

	results := service.CreateBatch(ctx, owner, []dto.CreateOrderDTO{
		{ProductName: "Phone case", Description: "ok"},
		{ProductName: "", Description: "missing name"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	require.NotNil(t, results[0].Order)
	assert.Equal(t, 7, results[0].Order.ID)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, 1, results[1].Index)
	assert.Nil(t, results[1].Order)
	assert.Contains(t, results[1].Error, "product name")
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}

	tests := []struct {
		name    string
		actor   domain.Actor
		setup   func(m *mocks)
		wantErr error
	}{
		{
			name:  "claims a published order",
			actor: agent,
			setup: func(m *mocks) {
				passthroughTX(m)
				m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
					ID: 42, OwnerID: 1, Status: domain.StatusPublished,
				}, nil)
				m.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, order *domain.Order) error {
						assert.Equal(t, domain.StatusAgentResearch, order.Status)
						require.NotNil(t, order.AgentID)
						assert.Equal(t, 5, *order.AgentID)
						return nil
					})
			},
		},
		{
			name:    "users can't claim",
			actor:   domain.Actor{ID: 2, Role: domain.RoleUser},
			wantErr: errors.New("FORBIDDEN: only agents may claim orders"),
		},
		{
			name:  "already claimed",
			actor: agent,
			setup: func(m *mocks) {
				passthroughTX(m)
				m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
					ID: 42, AgentID: intPtr(9), Status: domain.StatusAgentResearch,
				}, nil)
			},
			wantErr: ErrAlreadyClaimed,
		},
		{
			name:  "not found",
			actor: agent,
			setup: func(m *mocks) {
				passthroughTX(m)
				m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(nil, nil)
			},
			wantErr: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			order, err := service.Claim(ctx, tt.actor, 42)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, order)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusAgentResearch, order.Status)
		})
	}
}

func TestSubmitReport(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}
	payload := dto.SubmitReportRequestDTO{UserAmount: 100}

	t.Run("first report advances to awaiting payment", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
		}, nil)
		m.reporting.EXPECT().Build(ctx, payload).Return(&domain.AgentReport{
			UserAmount: 100, Quantity: 1, PayableYuan: 105, PayableMNT: 52500,
		}, nil)
		m.reportRepo.EXPECT().FindByOrderID(ctx, 42).Return(nil, nil)
		m.reportRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
				require.NotNil(t, report.OrderID)
				assert.Equal(t, 42, *report.OrderID)
				report.ID = 1
				return report, nil
			})
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.SubmitReport(ctx, agent, 42, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAwaitingPayment, order.Status)
		require.NotNil(t, order.Report)
		assert.Equal(t, int64(52500), order.Report.PayableMNT)
	})

	t.Run("revision replaces the existing report", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAwaitingPayment,
		}, nil)
		m.reporting.EXPECT().Build(ctx, payload).Return(&domain.AgentReport{
			UserAmount: 100, Quantity: 1, PayableMNT: 52500,
		}, nil)
		m.reportRepo.EXPECT().FindByOrderID(ctx, 42).Return(&domain.AgentReport{ID: 9}, nil)
		m.reportRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
				assert.Equal(t, 9, report.ID)
				return report, nil
			})

		order, err := service.SubmitReport(ctx, agent, 42, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAwaitingPayment, order.Status)
	})

	t.Run("locked after payment confirmation", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, AgentID: intPtr(5), Status: domain.StatusAwaitingPayment, UserPaymentVerified: true,
		}, nil)

		_, err := service.SubmitReport(ctx, agent, 42, payload)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't be revised")
	})

	t.Run("only the claimant may report", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, AgentID: intPtr(9), Status: domain.StatusAgentResearch,
		}, nil)

		_, err := service.SubmitReport(ctx, agent, 42, payload)

		require.ErrorIs(t, err, ErrNotClaimant)
	})
}

func TestMarkUserPaid(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1, Role: domain.RoleUser}

	t.Run("marks payment with the card method", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.MarkUserPaid(ctx, owner, 42, domain.PaymentMethodCard)

		require.NoError(t, err)
		assert.True(t, order.UserPaymentVerified)
		assert.Equal(t, domain.PaymentMethodCard, order.PaymentMethod)
		assert.Equal(t, domain.StatusAwaitingPayment, order.Status)
	})

	t.Run("defaults to bank", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.MarkUserPaid(ctx, owner, 42, "")

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentMethodBank, order.PaymentMethod)
	})

	t.Run("double mark rejected", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment, UserPaymentVerified: true,
		}, nil)

		_, err := service.MarkUserPaid(ctx, owner, 42, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already marked")
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.MarkUserPaid(ctx, owner, 42, "crypto")

		require.Error(t, err)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		order   *domain.Order
		wantErr string
	}{
		{
			name:  "owner cancels a published order",
			actor: domain.Actor{ID: 1, Role: domain.RoleUser},
			order: &domain.Order{ID: 42, OwnerID: 1, Status: domain.StatusPublished},
		},
		{
			name:  "claimant cancels while awaiting payment",
			actor: domain.Actor{ID: 5, Role: domain.RoleAgent},
			order: &domain.Order{ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAwaitingPayment, UserPaymentVerified: true},
		},
		{
			name:    "no cancel during research",
			actor:   domain.Actor{ID: 1, Role: domain.RoleUser},
			order:   &domain.Order{ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch},
			wantErr: "can't be cancelled",
		},
		{
			name:    "strangers may not cancel",
			actor:   domain.Actor{ID: 77, Role: domain.RoleUser},
			order:   &domain.Order{ID: 42, OwnerID: 1, Status: domain.StatusPublished},
			wantErr: "not the order owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			passthroughTX(m)
			m.repo.EXPECT().FindByIDForUpdate(ctx, 42).Return(tt.order, nil)
			if tt.wantErr == "" {
				m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
			}

			order, err := service.Cancel(ctx, tt.actor, 42)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, order.Status)
			assert.False(t, order.UserPaymentVerified)
		})
	}
}

func TestArchiveAndDelete(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1, Role: domain.RoleUser}

	t.Run("archives a completed order", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusCompleted,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.Archive(ctx, owner, 42)

		require.NoError(t, err)
		assert.True(t, order.ArchivedByUser)
	})

	t.Run("open orders can't be archived", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.Archive(ctx, owner, 42)

		require.Error(t, err)
	})

	t.Run("deletes an unclaimed order", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, Status: domain.StatusPublished,
		}, nil)
		m.repo.EXPECT().Delete(ctx, 42).Return(nil)

		require.NoError(t, service.Delete(ctx, owner, 42))
	})

	t.Run("claimed unarchived order can't be deleted", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
		}, nil)

		require.Error(t, service.Delete(ctx, owner, 42))
	})
}

func TestSetTrackCode(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}

	t.Run("claimant sets the code on a completed order", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusCompleted,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		order, err := service.SetTrackCode(ctx, agent, 42, "CN123")

		require.NoError(t, err)
		require.NotNil(t, order.TrackCode)
		assert.Equal(t, "CN123", *order.TrackCode)
	})

	t.Run("rejected before completion", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 42).Return(&domain.Order{
			ID: 42, AgentID: intPtr(5), Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.SetTrackCode(ctx, agent, 42, "CN123")

		require.Error(t, err)
	})
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("agents read the open feed", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindOpen(ctx).Return([]domain.Order{{ID: 1}, {ID: 2}}, nil)

		orders, err := service.GetOrders(ctx, domain.Actor{ID: 5, Role: domain.RoleAgent}, "open")

		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("owners don't see archived orders", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByOwner(ctx, 1).Return([]domain.Order{
			{ID: 1},
			{ID: 2, ArchivedByUser: true},
		}, nil)

		orders, err := service.GetOrders(ctx, domain.Actor{ID: 1, Role: domain.RoleUser}, "")

		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, 1, orders[0].ID)
	})
}
