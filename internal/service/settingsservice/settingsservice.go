package settingsservice

import (
	"context"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

type Repo interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
	Update(ctx context.Context, s *domain.AdminSettings) (*domain.AdminSettings, error)
}

// Cache is the read-through cache in front of the settings row. Lookups are
// best-effort: a cache failure falls back to the database.
type Cache interface {
	Get(ctx context.Context) (*domain.AdminSettings, bool)
	Store(ctx context.Context, s *domain.AdminSettings)
	Invalidate(ctx context.Context)
}

type Service struct {
	repo  Repo
	cache Cache
}

func New(repo Repo, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

var ErrInvalidExchangeRate = apperr.New(apperr.CodeValidation, "exchange rate must be positive")

func (s *Service) Get(ctx context.Context) (*domain.AdminSettings, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return nil, err
	}
	s.cache.Store(ctx, settings)
	return settings, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequestDTO) (*domain.AdminSettings, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "only admin may update settings")
	}
	if req.ExchangeRate <= 0 {
		return nil, ErrInvalidExchangeRate
	}

	updated, err := s.repo.Update(ctx, &domain.AdminSettings{
		AccountNumber:     req.AccountNumber,
		AccountName:       req.AccountName,
		Bank:              req.Bank,
		ExchangeRate:      req.ExchangeRate,
		OrderLimitEnabled: req.OrderLimitEnabled,
		MaxOrdersPerDay:   req.MaxOrdersPerDay,
		MaxActiveOrders:   req.MaxActiveOrders,
	})
	if err != nil {
		zap.L().Error("failed to update settings", zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx)
	zap.L().Info("admin settings updated", zap.Float64("exchangeRate", updated.ExchangeRate))
	return updated, nil
}
