package bundleservice

import (
	"context"
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
	txManager  *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:       NewMockRepo(ctrl),
		reportRepo: NewMockReportRepo(ctrl),
		reporting:  NewMockReporting(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	return New(m.repo, m.reportRepo, m.reporting, m.txManager, notification.Noop{}), m
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

	t.Run("publishes with all items", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, bundle *domain.BundleOrder) (*domain.BundleOrder, error) {
				assert.Equal(t, domain.StatusPublished, bundle.Status)
				assert.Len(t, bundle.Items, 2)
				bundle.ID = 10
				return bundle, nil
			})

		bundle, err := service.Create(ctx, owner, dto.CreateBundleRequestDTO{
			Items: []dto.CreateBundleItemDTO{
				{ProductName: "Shoes", Description: "size 42"},
				{ProductName: "Socks", Description: "wool"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 10, bundle.ID)
	})

	t.Run("one bad item rejects the whole bundle", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Create(ctx, owner, dto.CreateBundleRequestDTO{
			Items: []dto.CreateBundleItemDTO{
				{ProductName: "Shoes", Description: "size 42"},
				{ProductName: "", Description: "missing name"},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "product name")
	})

	t.Run("empty bundle rejected", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Create(ctx, owner, dto.CreateBundleRequestDTO{})

		require.ErrorIs(t, err, ErrNoItems)
	})
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}

	t.Run("claims a published bundle", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, Status: domain.StatusPublished,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.Claim(ctx, agent, 10)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAgentResearch, bundle.Status)
		require.NotNil(t, bundle.AgentID)
		assert.Equal(t, 5, *bundle.AgentID)
	})

	t.Run("already claimed", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, AgentID: intPtr(9), Status: domain.StatusAgentResearch,
		}, nil)

		_, err := service.Claim(ctx, agent, 10)

		require.ErrorIs(t, err, ErrAlreadyClaimed)
	})
}

func TestSubmitBundleReport(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}
	payload := dto.SubmitReportRequestDTO{UserAmount: 200}

	t.Run("prices the whole bundle and advances", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
		}, nil)
		m.reporting.EXPECT().Build(ctx, payload).Return(&domain.AgentReport{
			UserAmount: 200, Quantity: 4, PayableMNT: 105000,
		}, nil)
		m.reportRepo.EXPECT().FindByBundleID(ctx, 10).Return(nil, nil)
		m.reportRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
				require.NotNil(t, report.BundleID)
				assert.Equal(t, 10, *report.BundleID)
				return report, nil
			})
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.SubmitBundleReport(ctx, agent, 10, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAwaitingPayment, bundle.Status)
		assert.Equal(t, domain.ReportModeSingle, bundle.ReportMode)
	})

	t.Run("rejected once per item reporting started", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
			ReportMode: domain.ReportModePerItem,
		}, nil)

		_, err := service.SubmitBundleReport(ctx, agent, 10, payload)

		require.ErrorIs(t, err, ErrMixedReportModes)
	})
}

func TestSubmitItemReport(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}
	payload := dto.SubmitReportRequestDTO{UserAmount: 50}

	researching := func() *domain.BundleOrder {
		return &domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
		}
	}

	t.Run("partial coverage keeps the bundle in research", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(researching(), nil)
		m.repo.EXPECT().FindItem(ctx, 101).Return(&domain.BundleItem{ID: 101, BundleID: 10}, nil)
		m.reporting.EXPECT().Build(ctx, payload).Return(&domain.AgentReport{UserAmount: 50, PayableMNT: 26250}, nil)
		m.reportRepo.EXPECT().FindByItemID(ctx, 101).Return(nil, nil)
		m.reportRepo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
				require.NotNil(t, report.BundleItemID)
				assert.Equal(t, 101, *report.BundleItemID)
				return report, nil
			})
		m.repo.EXPECT().FindItems(ctx, 10).Return([]domain.BundleItem{{ID: 101}, {ID: 102}}, nil)
		m.reportRepo.EXPECT().FindByItemIDs(ctx, []int{101, 102}).Return(map[int]*domain.AgentReport{
			101: {PayableMNT: 26250},
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.SubmitItemReport(ctx, agent, 10, 101, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAgentResearch, bundle.Status)
		assert.Equal(t, domain.ReportModePerItem, bundle.ReportMode)
	})

	t.Run("last item advances the bundle", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(researching(), nil)
		m.repo.EXPECT().FindItem(ctx, 102).Return(&domain.BundleItem{ID: 102, BundleID: 10}, nil)
		m.reporting.EXPECT().Build(ctx, payload).Return(&domain.AgentReport{UserAmount: 50, PayableMNT: 26250}, nil)
		m.reportRepo.EXPECT().FindByItemID(ctx, 102).Return(nil, nil)
		m.reportRepo.EXPECT().Save(ctx, gomock.Any()).Return(&domain.AgentReport{}, nil)
		m.repo.EXPECT().FindItems(ctx, 10).Return([]domain.BundleItem{{ID: 101}, {ID: 102}}, nil)
		m.reportRepo.EXPECT().FindByItemIDs(ctx, []int{101, 102}).Return(map[int]*domain.AgentReport{
			101: {PayableMNT: 26250},
			102: {PayableMNT: 26250},
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.SubmitItemReport(ctx, agent, 10, 102, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAwaitingPayment, bundle.Status)
	})

	t.Run("rejected once the bundle was priced as a whole", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		bundle := researching()
		bundle.ReportMode = domain.ReportModeSingle
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(bundle, nil)

		_, err := service.SubmitItemReport(ctx, agent, 10, 101, payload)

		require.ErrorIs(t, err, ErrMixedReportModes)
	})

	t.Run("item from another bundle", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(researching(), nil)
		m.repo.EXPECT().FindItem(ctx, 999).Return(&domain.BundleItem{ID: 999, BundleID: 77}, nil)

		_, err := service.SubmitItemReport(ctx, agent, 10, 999, payload)

		require.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: 1, Role: domain.RoleUser}

	t.Run("no cancel during research", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAgentResearch,
		}, nil)

		_, err := service.Cancel(ctx, owner, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't be cancelled")
	})

	t.Run("cancel resets the payment mark", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, Status: domain.StatusAwaitingPayment, UserPaymentVerified: true,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		bundle, err := service.Cancel(ctx, owner, 10)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, bundle.Status)
		assert.False(t, bundle.UserPaymentVerified)
	})
}

func TestTotalPayableMNT(t *testing.T) {
	t.Run("single mode uses the bundle report", func(t *testing.T) {
		bundle := &domain.BundleOrder{
			ReportMode:   domain.ReportModeSingle,
			BundleReport: &domain.AgentReport{PayableMNT: 105000},
			Items:        []domain.BundleItem{{Report: &domain.AgentReport{PayableMNT: 1}}},
		}
		assert.Equal(t, int64(105000), TotalPayableMNT(bundle))
	})

	t.Run("per item mode sums the items", func(t *testing.T) {
		bundle := &domain.BundleOrder{
			ReportMode: domain.ReportModePerItem,
			Items: []domain.BundleItem{
				{Report: &domain.AgentReport{PayableMNT: 26250}},
				{Report: &domain.AgentReport{PayableMNT: 26250}},
				{},
			},
		}
		assert.Equal(t, int64(52500), TotalPayableMNT(bundle))
	})
}

func TestGetBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("loads items and per item reports", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, ReportMode: domain.ReportModePerItem,
		}, nil)
		m.repo.EXPECT().FindItems(ctx, 10).Return([]domain.BundleItem{{ID: 101}, {ID: 102}}, nil)
		m.reportRepo.EXPECT().FindByItemIDs(ctx, []int{101, 102}).Return(map[int]*domain.AgentReport{
			101: {PayableMNT: 26250},
		}, nil)

		bundle, err := service.GetBundle(ctx, domain.Actor{ID: 1, Role: domain.RoleUser}, 10)

		require.NoError(t, err)
		require.Len(t, bundle.Items, 2)
		require.NotNil(t, bundle.Items[0].Report)
		assert.Nil(t, bundle.Items[1].Report)
	})

	t.Run("strangers may not read", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(&domain.BundleOrder{ID: 10, OwnerID: 1}, nil)

		_, err := service.GetBundle(ctx, domain.Actor{ID: 77, Role: domain.RoleUser}, 10)

		require.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestSetTrackCode(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}

	t.Run("claimant sets the code on a completed bundle", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusCompleted,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, bundle *domain.BundleOrder) error {
				require.NotNil(t, bundle.TrackCode)
				assert.Equal(t, "CN1234567890", *bundle.TrackCode)
				return nil
			})

		bundle, err := service.SetTrackCode(ctx, agent, 10, "CN1234567890")

		require.NoError(t, err)
		require.NotNil(t, bundle.TrackCode)
		assert.Equal(t, "CN1234567890", *bundle.TrackCode)
	})

	t.Run("only applies to completed bundles", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusAwaitingPayment,
		}, nil)

		_, err := service.SetTrackCode(ctx, agent, 10, "CN1234567890")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "completed bundles")
	})

	t.Run("owner can't set the code", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(&domain.BundleOrder{
			ID: 10, OwnerID: 1, AgentID: intPtr(5), Status: domain.StatusCompleted,
		}, nil)

		_, err := service.SetTrackCode(ctx, domain.Actor{ID: 1, Role: domain.RoleUser}, 10, "CN1234567890")

		require.ErrorIs(t, err, ErrNotClaimant)
	})

	t.Run("unknown bundle", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByID(ctx, 10).Return(nil, nil)

		_, err := service.SetTrackCode(ctx, agent, 10, "CN1234567890")

		require.ErrorIs(t, err, ErrBundleNotFound)
	})
}
