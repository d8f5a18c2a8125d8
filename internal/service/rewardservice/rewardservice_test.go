package rewardservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
)

type mocks struct {
	repo      *MockRepo
	userRepo  *MockUserRepo
	txManager *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:      NewMockRepo(ctrl),
		userRepo:  NewMockUserRepo(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
	}
	return New(m.repo, m.userRepo, m.txManager, notification.Noop{}), m
}

func passthroughTX(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func TestRequest(t *testing.T) {
	ctx := context.Background()
	agent := domain.Actor{ID: 5, Role: domain.RoleAgent}

	t.Run("opens a pending request and zeroes the points", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.userRepo.EXPECT().AgentPointsForUpdate(ctx, 5).Return(int64(1200), nil)
		m.repo.EXPECT().HasPending(ctx, 5).Return(false, nil)
		m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req *domain.RewardRequest) (*domain.RewardRequest, error) {
				assert.Equal(t, domain.RewardPending, req.Status)
				assert.Equal(t, int64(1200), req.Amount)
				req.ID = 3
				return req, nil
			})
		m.userRepo.EXPECT().SetAgentPoints(ctx, 5, int64(0)).Return(nil)

		created, err := service.Request(ctx, agent)

		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)
		assert.Equal(t, int64(1200), created.Amount)
	})

	t.Run("no points to redeem", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.userRepo.EXPECT().AgentPointsForUpdate(ctx, 5).Return(int64(0), nil)

		_, err := service.Request(ctx, agent)

		require.ErrorIs(t, err, ErrNoPoints)
	})

	t.Run("one pending request at a time", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.userRepo.EXPECT().AgentPointsForUpdate(ctx, 5).Return(int64(500), nil)
		m.repo.EXPECT().HasPending(ctx, 5).Return(true, nil)

		_, err := service.Request(ctx, agent)

		require.ErrorIs(t, err, ErrAlreadyPending)
	})

	t.Run("users may not redeem", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Request(ctx, domain.Actor{ID: 1, Role: domain.RoleUser})

		require.Error(t, err)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: 99, Role: domain.RoleAdmin}

	t.Run("approves a pending request", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 3).Return(&domain.RewardRequest{
			ID: 3, AgentID: 5, Amount: 1200, Status: domain.RewardPending,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req *domain.RewardRequest) error {
				assert.Equal(t, domain.RewardApproved, req.Status)
				require.NotNil(t, req.ApprovedAt)
				return nil
			})

		approved, err := service.Approve(ctx, admin, 3)

		require.NoError(t, err)
		assert.Equal(t, domain.RewardApproved, approved.Status)
	})

	t.Run("already decided", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 3).Return(&domain.RewardRequest{
			ID: 3, Status: domain.RewardApproved,
		}, nil)

		_, err := service.Approve(ctx, admin, 3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not pending")
	})

	t.Run("not found", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 3).Return(nil, nil)

		_, err := service.Approve(ctx, admin, 3)

		require.ErrorIs(t, err, ErrRewardNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: 99, Role: domain.RoleAdmin}

	t.Run("restores exactly the debited amount", func(t *testing.T) {
		service, m := NewMock(t)
		passthroughTX(m)
		m.repo.EXPECT().FindByIDForUpdate(ctx, 3).Return(&domain.RewardRequest{
			ID: 3, AgentID: 5, Amount: 1200, Status: domain.RewardPending,
		}, nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req *domain.RewardRequest) error {
				assert.Equal(t, domain.RewardRejected, req.Status)
				require.NotNil(t, req.RejectedAt)
				return nil
			})
		m.userRepo.EXPECT().AddAgentPoints(ctx, 5, int64(1200)).Return(nil)

		rejected, err := service.Reject(ctx, admin, 3)

		require.NoError(t, err)
		assert.Equal(t, domain.RewardRejected, rejected.Status)
	})

	t.Run("non admin rejected", func(t *testing.T) {
		service, _ := NewMock(t)

		_, err := service.Reject(ctx, domain.Actor{ID: 5, Role: domain.RoleAgent}, 3)

		require.Error(t, err)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("admins see every request", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindAll(ctx).Return([]domain.RewardRequest{{ID: 1}, {ID: 2}}, nil)

		list, err := service.List(ctx, domain.Actor{ID: 99, Role: domain.RoleAdmin})

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("agents see their own", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().FindByAgent(ctx, 5).Return([]domain.RewardRequest{{ID: 1, AgentID: 5}}, nil)

		list, err := service.List(ctx, domain.Actor{ID: 5, Role: domain.RoleAgent})

		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
