package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	bundleservice "github.com/nbataa/agentmart/internal/service/bundleservice"
	orderservice "github.com/nbataa/agentmart/internal/service/orderservice"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/utils"
	"github.com/nbataa/agentmart/pkg/validate"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
	Update(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequestDTO) (*domain.AdminSettings, error)
}

type SettlementService interface {
	VerifyPayment(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	CancelPayment(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	VerifyBundlePayment(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	CancelBundlePayment(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	MarkAgentPaid(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	MarkBundleAgentPaid(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	RecalculateAgentStats(ctx context.Context, actor domain.Actor) (int, error)
}

type CardService interface {
	AdminGift(ctx context.Context, actor domain.Actor, toPhone string, amount int64) (*domain.CardTransaction, error)
	GrantToAll(ctx context.Context, actor domain.Actor, amount int64) (int, map[int]error, error)
}

type AdminHandler struct {
	settingsService   SettingsService
	settlementService SettlementService
	cardService       CardService
}

func New(settingsService SettingsService, settlementService SettlementService, cardService CardService) *AdminHandler {
	return &AdminHandler{
		settingsService:   settingsService,
		settlementService: settlementService,
		cardService:       cardService,
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

func idFrom(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func settingsToDTO(s *domain.AdminSettings) dto.SettingsResponseDTO {
	return dto.SettingsResponseDTO{
		AccountNumber:     s.AccountNumber,
		AccountName:       s.AccountName,
		Bank:              s.Bank,
		ExchangeRate:      s.ExchangeRate,
		OrderLimitEnabled: s.OrderLimitEnabled,
		MaxOrdersPerDay:   s.MaxOrdersPerDay,
		MaxActiveOrders:   s.MaxActiveOrders,
		UpdatedAt:         s.UpdatedAt,
	}
}

// GetSettings godoc
//
//	@Summary	Get admin settings
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.SettingsResponseDTO
//	@Router		/api/admin/settings [get]
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settingsToDTO(settings))
}

// UpdateSettings godoc
//
//	@Summary		Update admin settings
//	@Description	Bank details, exchange rate and order-creation limits
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.UpdateSettingsRequestDTO	true	"New settings"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SettingsResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid settings payload"
//	@Router			/api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := h.settingsService.Update(r.Context(), actorFrom(r), req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settingsToDTO(settings))
}

// VerifyPayment godoc
//
//	@Summary		Verify the buyer's payment and complete the order
//	@Description	Card-settled orders are debited from the buyer's ledger in the same transaction
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Order ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		402	{object}	utils.Response	"Insufficient card balance"
//	@Failure		422	{object}	utils.Response	"Order not verifiable in its current state"
//	@Router			/api/admin/orders/{id}/verify [post]
func (h *AdminHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.settlementService.VerifyPayment(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// CancelPayment godoc
//
//	@Summary	Reject the buyer's payment claim and cancel the order
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	422	{object}	utils.Response	"Order is not awaiting payment"
//	@Router		/api/admin/orders/{id}/cancel-payment [post]
func (h *AdminHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.settlementService.CancelPayment(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// MarkAgentPaid godoc
//
//	@Summary	Record the agent payout for a completed order
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	422	{object}	utils.Response	"Order not completed or payout already marked"
//	@Router		/api/admin/orders/{id}/agent-paid [post]
func (h *AdminHandler) MarkAgentPaid(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.settlementService.MarkAgentPaid(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// MarkBundleAgentPaid godoc
//
//	@Summary	Record the agent payout for a completed bundle
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	422	{object}	utils.Response	"Bundle not completed or payout already marked"
//	@Router		/api/admin/bundles/{id}/agent-paid [post]
func (h *AdminHandler) MarkBundleAgentPaid(w http.ResponseWriter, r *http.Request) {
	bundleID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.settlementService.MarkBundleAgentPaid(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// VerifyBundlePayment godoc
//
//	@Summary	Verify the buyer's payment and complete the bundle
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	402	{object}	utils.Response	"Insufficient card balance"
//	@Router		/api/admin/bundles/{id}/verify [post]
func (h *AdminHandler) VerifyBundlePayment(w http.ResponseWriter, r *http.Request) {
	bundleID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.settlementService.VerifyBundlePayment(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// CancelBundlePayment godoc
//
//	@Summary	Reject the buyer's payment claim and cancel the bundle
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Router		/api/admin/bundles/{id}/cancel-payment [post]
func (h *AdminHandler) CancelBundlePayment(w http.ResponseWriter, r *http.Request) {
	bundleID, err := idFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.settlementService.CancelBundlePayment(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// Gift godoc
//
//	@Summary	Gift cards to an account by phone (no balance check)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.GiftCardsRequestDTO	true	"Recipient phone and amount"
//	@Security	BearerAuth
//	@Success	200	{object}	utils.Response
//	@Failure	404	{object}	utils.Response	"Recipient not found"
//	@Router		/api/admin/cards/gift [post]
func (h *AdminHandler) Gift(w http.ResponseWriter, r *http.Request) {
	var req dto.GiftCardsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.cardService.AdminGift(r.Context(), actorFrom(r), req.RecipientPhone, req.Amount); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Cards gifted"})
}

// GrantToAll godoc
//
//	@Summary		Grant cards to every user account
//	@Description	Per-account credits are independent; failures are listed, not fatal
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.GrantAllRequestDTO	true	"Amount per account"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.GrantAllResponseDTO
//	@Router			/api/admin/cards/grant-all [post]
func (h *AdminHandler) GrantToAll(w http.ResponseWriter, r *http.Request) {
	var req dto.GrantAllRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	granted, failed, err := h.cardService.GrantToAll(r.Context(), actorFrom(r), req.Amount)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	response := dto.GrantAllResponseDTO{Granted: granted}
	for accountID, ferr := range failed {
		response.Failed = append(response.Failed, dto.GrantFailureDTO{AccountID: accountID, Error: ferr.Error()})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// RecalculateAgentStats godoc
//
//	@Summary		Recompute agent statistics from order history
//	@Description	Idempotent batch over all agent accounts
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response
//	@Router			/api/admin/agents/recalculate-stats [post]
func (h *AdminHandler) RecalculateAgentStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.settlementService.RecalculateAgentStats(r.Context(), actorFrom(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Recalculated stats for " + strconv.Itoa(count) + " agents"})
}
