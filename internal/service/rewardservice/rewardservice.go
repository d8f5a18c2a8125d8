package rewardservice

import (
	"context"
	"time"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

type Repo interface {
	Save(ctx context.Context, req *domain.RewardRequest) (*domain.RewardRequest, error)
	FindByID(ctx context.Context, id int) (*domain.RewardRequest, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.RewardRequest, error)
	HasPending(ctx context.Context, agentID int) (bool, error)
	Update(ctx context.Context, req *domain.RewardRequest) error
	FindByAgent(ctx context.Context, agentID int) ([]domain.RewardRequest, error)
	FindAll(ctx context.Context) ([]domain.RewardRequest, error)
}

type UserRepo interface {
	AgentPointsForUpdate(ctx context.Context, agentID int) (int64, error)
	SetAgentPoints(ctx context.Context, agentID int, points int64) error
	AddAgentPoints(ctx context.Context, agentID int, delta int64) error
}

// Service converts an agent's accumulated points into a cash request.
// The points are debited optimistically at request time and restored on
// rejection; at most one pending request per agent can exist.
type Service struct {
	repo      Repo
	userRepo  UserRepo
	txManager pg.TXManager
	notifier  notification.Dispatcher
}

func New(repo Repo, userRepo UserRepo, txManager pg.TXManager, notifier notification.Dispatcher) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		txManager: txManager,
		notifier:  notifier,
	}
}

var (
	ErrNoPoints       = apperr.New(apperr.CodeValidation, "no points to redeem")
	ErrAlreadyPending = apperr.New(apperr.CodeConflict, "a pending reward request already exists")
	ErrRewardNotFound = apperr.New(apperr.CodeNotFound, "reward request not found")
)

// Request zeroes the agent's points and opens a pending cash request for the
// same amount. Points lock and request insert share one transaction.
func (s *Service) Request(ctx context.Context, actor domain.Actor) (*domain.RewardRequest, error) {
	if !actor.IsAgent() {
		return nil, apperr.New(apperr.CodeForbidden, "only agents redeem points")
	}

	var created *domain.RewardRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		points, err := s.userRepo.AgentPointsForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}
		if points <= 0 {
			return ErrNoPoints
		}

		pending, err := s.repo.HasPending(ctx, actor.ID)
		if err != nil {
			return err
		}
		if pending {
			return ErrAlreadyPending
		}

		created, err = s.repo.Save(ctx, &domain.RewardRequest{
			AgentID: actor.ID,
			Amount:  points,
			Status:  domain.RewardPending,
		})
		if err != nil {
			return err
		}
		return s.userRepo.SetAgentPoints(ctx, actor.ID, 0)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("reward requested", zap.Int("agentID", actor.ID), zap.Int64("amount", created.Amount))
	return created, nil
}

func (s *Service) Approve(ctx context.Context, actor domain.Actor, requestID int) (*domain.RewardRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins approve rewards")
	}

	var approved *domain.RewardRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		req, err := s.repo.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRewardNotFound
		}
		if req.Status != domain.RewardPending {
			return apperr.NewState(req.Status, "reward request is not pending")
		}

		now := time.Now()
		req.Status = domain.RewardApproved
		req.ApprovedAt = &now
		if err := s.repo.Update(ctx, req); err != nil {
			return err
		}
		approved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventRewardApproved, approved.AgentID, nil, map[string]any{
		"amount": approved.Amount,
	})
	return approved, nil
}

// Reject closes the request and gives the debited points back. The restore
// is additive so points earned since the request are preserved.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, requestID int) (*domain.RewardRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admins reject rewards")
	}

	var rejected *domain.RewardRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		req, err := s.repo.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRewardNotFound
		}
		if req.Status != domain.RewardPending {
			return apperr.NewState(req.Status, "reward request is not pending")
		}

		now := time.Now()
		req.Status = domain.RewardRejected
		req.RejectedAt = &now
		if err := s.repo.Update(ctx, req); err != nil {
			return err
		}
		if err := s.userRepo.AddAgentPoints(ctx, req.AgentID, req.Amount); err != nil {
			return err
		}
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.EventRewardRejected, rejected.AgentID, nil, map[string]any{
		"amount": rejected.Amount,
	})
	return rejected, nil
}

// List returns the caller's own requests, or every request for admins.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.RewardRequest, error) {
	if actor.IsAdmin() {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByAgent(ctx, actor.ID)
}
