package cards

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/utils"
	"github.com/nbataa/agentmart/pkg/validate"
)

type Service interface {
	Balance(ctx context.Context, accountID int) (int64, error)
	History(ctx context.Context, accountID int) ([]domain.CardTransaction, error)
	Gift(ctx context.Context, actor domain.Actor, toPhone string, amount int64) (*domain.CardTransaction, error)
}

type CardHandler struct {
	cardService Service
}

func New(cardService Service) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

func actorFrom(r *http.Request) domain.Actor {
	actor := domain.Actor{}
	if id, ok := r.Context().Value(auth.UserIDKey).(int); ok {
		actor.ID = id
	}
	if role, ok := r.Context().Value(auth.RoleKey).(string); ok {
		actor.Role = role
	}
	return actor
}

// GetBalance godoc
//
//	@Summary	Get the caller's research-card balance
//	@Tags		Cards
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CardBalanceResponseDTO
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/cards/balance [get]
func (h *CardHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.cardService.Balance(r.Context(), actorFrom(r).ID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CardBalanceResponseDTO{Balance: balance})
}

// GetHistory godoc
//
//	@Summary	Get the caller's card transaction history
//	@Tags		Cards
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.CardTransactionResponseDTO
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/cards/history [get]
func (h *CardHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.cardService.History(r.Context(), actorFrom(r).ID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	response := make([]dto.CardTransactionResponseDTO, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, dto.CardTransactionResponseDTO{
			ID:             tx.ID,
			Type:           tx.Type,
			Amount:         tx.Amount,
			RecipientPhone: tx.RecipientPhone,
			OrderID:        tx.OrderID,
			CreatedAt:      tx.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Gift godoc
//
//	@Summary		Gift cards to another account by phone
//	@Description	Debits the caller and credits the recipient atomically
//	@Tags			Cards
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.GiftCardsRequestDTO	true	"Recipient phone and amount"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CardBalanceResponseDTO	"Caller's balance after the gift"
//	@Failure		402	{object}	utils.Response	"Insufficient balance"
//	@Failure		404	{object}	utils.Response	"Recipient not found"
//	@Router			/api/cards/gift [post]
func (h *CardHandler) Gift(w http.ResponseWriter, r *http.Request) {
	var req dto.GiftCardsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFrom(r)
	if _, err := h.cardService.Gift(r.Context(), actor, req.RecipientPhone, req.Amount); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	balance, err := h.cardService.Balance(r.Context(), actor.ID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CardBalanceResponseDTO{Balance: balance})
}
