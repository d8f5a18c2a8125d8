package reportservice

import (
	"context"
	"math"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/pkg/apperr"
	"go.uber.org/zap"
)

// CommissionRate is the fixed markup charged on top of the agent's quote.
const CommissionRate = 0.05

type Settings interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
}

// Service turns agent report payloads into priced AgentReports. The payable
// amount is computed in one canonical order everywhere: convert the quote to
// MNT with the configured exchange rate, apply the commission, then round up
// to the nearest whole MNT.
type Service struct {
	settings Settings
}

func New(settings Settings) *Service {
	return &Service{settings: settings}
}

var (
	ErrNonPositiveAmount = apperr.New(apperr.CodeValidation, "report amount must be positive")
	ErrTooManyImages     = apperr.New(apperr.CodeValidation, "report allows at most 3 additional images")
	ErrInvalidQuantity   = apperr.New(apperr.CodeValidation, "report quantity must be positive")
)

// PayableMNT converts a yuan quote into the buyer-facing MNT amount.
func PayableMNT(userAmount int64, exchangeRate float64) int64 {
	return int64(math.Ceil(float64(userAmount) * exchangeRate * (1 + CommissionRate)))
}

// PayableYuan is the display amount in the agent's quote currency.
func PayableYuan(userAmount int64) float64 {
	return float64(userAmount) * (1 + CommissionRate)
}

// Build validates the payload and prices it against the current exchange rate.
func (s *Service) Build(ctx context.Context, payload dto.SubmitReportRequestDTO) (*domain.AgentReport, error) {
	if payload.UserAmount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if len(payload.AdditionalImages) > 3 {
		return nil, ErrTooManyImages
	}
	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		zap.L().Error("can't load settings for pricing", zap.Error(err))
		return nil, err
	}

	return &domain.AgentReport{
		UserAmount:            payload.UserAmount,
		PaymentLink:           payload.PaymentLink,
		AdditionalImages:      payload.AdditionalImages,
		AdditionalDescription: payload.AdditionalDescription,
		Quantity:              quantity,
		PayableYuan:           PayableYuan(payload.UserAmount),
		PayableMNT:            PayableMNT(payload.UserAmount, settings.ExchangeRate),
	}, nil
}
