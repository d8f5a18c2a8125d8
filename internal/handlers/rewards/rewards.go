package rewards

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, actor domain.Actor) (*domain.RewardRequest, error)
	Approve(ctx context.Context, actor domain.Actor, requestID int) (*domain.RewardRequest, error)
	Reject(ctx context.Context, actor domain.Actor, requestID int) (*domain.RewardRequest, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.RewardRequest, error)
}

type RewardHandler struct {
	rewardService Service
}

func New(rewardService Service) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
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

func toDTO(req *domain.RewardRequest) dto.RewardRequestResponseDTO {
	return dto.RewardRequestResponseDTO{
		ID:         req.ID,
		AgentID:    req.AgentID,
		Amount:     req.Amount,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
		ApprovedAt: req.ApprovedAt,
		RejectedAt: req.RejectedAt,
	}
}

// Request godoc
//
//	@Summary		Convert accumulated points into a cash request
//	@Description	Zeroes the agent's points and opens a pending reward request
//	@Tags			Rewards
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	dto.RewardRequestResponseDTO
//	@Failure		400	{object}	utils.Response	"No points to redeem"
//	@Failure		409	{object}	utils.Response	"A pending request already exists"
//	@Router			/api/rewards [post]
func (h *RewardHandler) Request(w http.ResponseWriter, r *http.Request) {
	req, err := h.rewardService.Request(r.Context(), actorFrom(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(req))
}

// List godoc
//
//	@Summary	List reward requests
//	@Tags		Rewards
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.RewardRequestResponseDTO
//	@Router		/api/rewards [get]
func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.rewardService.List(r.Context(), actorFrom(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	response := make([]dto.RewardRequestResponseDTO, 0, len(requests))
	for i := range requests {
		response = append(response, toDTO(&requests[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Approve godoc
//
//	@Summary	Approve a pending reward request
//	@Tags		Rewards
//	@Produce	json
//	@Param		id	path	int	true	"Reward request ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.RewardRequestResponseDTO
//	@Failure	422	{object}	utils.Response	"Request is not pending"
//	@Router		/api/admin/rewards/{id}/approve [post]
func (h *RewardHandler) Approve(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	req, err := h.rewardService.Approve(r.Context(), actorFrom(r), requestID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(req))
}

// Reject godoc
//
//	@Summary		Reject a pending reward request
//	@Description	Restores the debited points to the agent
//	@Tags			Rewards
//	@Produce		json
//	@Param			id	path	int	true	"Reward request ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RewardRequestResponseDTO
//	@Failure		422	{object}	utils.Response	"Request is not pending"
//	@Router			/api/admin/rewards/{id}/reject [post]
func (h *RewardHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	req, err := h.rewardService.Reject(r.Context(), actorFrom(r), requestID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(req))
}
