package bundles

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	bundleservice "github.com/nbataa/agentmart/internal/service/bundleservice"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/utils"
	"github.com/nbataa/agentmart/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req dto.CreateBundleRequestDTO) (*domain.BundleOrder, error)
	Claim(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	SubmitBundleReport(ctx context.Context, actor domain.Actor, bundleID int, payload dto.SubmitReportRequestDTO) (*domain.BundleOrder, error)
	SubmitItemReport(ctx context.Context, actor domain.Actor, bundleID, itemID int, payload dto.SubmitReportRequestDTO) (*domain.BundleOrder, error)
	MarkUserPaid(ctx context.Context, actor domain.Actor, bundleID int, paymentMethod string) (*domain.BundleOrder, error)
	Cancel(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	Archive(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	Delete(ctx context.Context, actor domain.Actor, bundleID int) error
	SetTrackCode(ctx context.Context, actor domain.Actor, bundleID int, code string) (*domain.BundleOrder, error)
	GetBundle(ctx context.Context, actor domain.Actor, bundleID int) (*domain.BundleOrder, error)
	GetBundles(ctx context.Context, actor domain.Actor, feed string) ([]domain.BundleOrder, error)
}

type BundleHandler struct {
	bundleService Service
}

func New(bundleService Service) *BundleHandler {
	return &BundleHandler{
		bundleService: bundleService,
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

func bundleIDFrom(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// Create godoc
//
//	@Summary	Create a bundle order with line items
//	@Tags		Bundles
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.CreateBundleRequestDTO	true	"Bundle items"
//	@Security	BearerAuth
//	@Success	201	{object}	dto.BundleResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request body"
//	@Router		/api/bundles [post]
func (h *BundleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBundleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bundle, err := h.bundleService.Create(r.Context(), actorFrom(r), req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, bundleservice.ToDTO(bundle))
}

// GetBundles godoc
//
//	@Summary	List bundles
//	@Tags		Bundles
//	@Produce	json
//	@Param		feed	query	string	false	"Set to 'open' for the claimable feed (agents)"
//	@Security	BearerAuth
//	@Success	200	{array}	dto.BundleResponseDTO
//	@Router		/api/bundles [get]
func (h *BundleHandler) GetBundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.bundleService.GetBundles(r.Context(), actorFrom(r), r.URL.Query().Get("feed"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	response := make([]dto.BundleResponseDTO, 0, len(bundles))
	for i := range bundles {
		response = append(response, *bundleservice.ToDTO(&bundles[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetBundle godoc
//
//	@Summary	Get a bundle with items, reports and the payable total
//	@Tags		Bundles
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	404	{object}	utils.Response	"Bundle not found"
//	@Router		/api/bundles/{id} [get]
func (h *BundleHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.bundleService.GetBundle(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// Claim godoc
//
//	@Summary	Claim a published bundle for research
//	@Tags		Bundles
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	409	{object}	utils.Response	"Bundle already claimed"
//	@Router		/api/bundles/{id}/claim [post]
func (h *BundleHandler) Claim(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.bundleService.Claim(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// SubmitReport godoc
//
//	@Summary		Submit the bundle-level pricing report
//	@Description	Prices the whole bundle at once; locks the bundle into single mode
//	@Tags			Bundles
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int							true	"Bundle ID"
//	@Param			request	body	dto.SubmitReportRequestDTO	true	"Report payload"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.BundleResponseDTO
//	@Failure		422	{object}	utils.Response	"Bundle is in per-item mode"
//	@Router			/api/bundles/{id}/report [post]
func (h *BundleHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	var req dto.SubmitReportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bundle, err := h.bundleService.SubmitBundleReport(r.Context(), actorFrom(r), bundleID, req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// SubmitItemReport godoc
//
//	@Summary		Submit a per-item pricing report
//	@Description	Prices one line item; the bundle advances once every item is reported
//	@Tags			Bundles
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int							true	"Bundle ID"
//	@Param			itemId	path	int							true	"Bundle item ID"
//	@Param			request	body	dto.SubmitReportRequestDTO	true	"Report payload"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.BundleResponseDTO
//	@Failure		422	{object}	utils.Response	"Bundle is in single mode"
//	@Router			/api/bundles/{id}/items/{itemId}/report [post]
func (h *BundleHandler) SubmitItemReport(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	var req dto.SubmitReportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bundle, err := h.bundleService.SubmitItemReport(r.Context(), actorFrom(r), bundleID, itemID, req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// MarkPaid godoc
//
//	@Summary	Mark the bundle as paid by the buyer
//	@Tags		Bundles
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int						true	"Bundle ID"
//	@Param		request	body	dto.MarkPaidRequestDTO	false	"Payment method, defaults to bank"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	422	{object}	utils.Response	"Bundle is not awaiting payment"
//	@Router		/api/bundles/{id}/paid [post]
func (h *BundleHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	var req dto.MarkPaidRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	bundle, err := h.bundleService.MarkUserPaid(r.Context(), actorFrom(r), bundleID, req.PaymentMethod)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// Cancel godoc
//
//	@Summary	Cancel the bundle
//	@Tags		Bundles
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Failure	422	{object}	utils.Response	"Bundle can't be cancelled in its current status"
//	@Router		/api/bundles/{id}/cancel [post]
func (h *BundleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.bundleService.Cancel(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// Archive godoc
//
//	@Summary	Archive a finished bundle
//	@Tags		Bundles
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BundleResponseDTO
//	@Router		/api/bundles/{id}/archive [post]
func (h *BundleHandler) Archive(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	bundle, err := h.bundleService.Archive(r.Context(), actorFrom(r), bundleID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// SetTrackCode godoc
//
//	@Summary		Set the shipping track code on a bundle
//	@Description	Claimant or admin, completed bundles only
//	@Tags			Bundles
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Bundle ID"
//	@Param			request	body	dto.TrackCodeRequestDTO	true	"Track code"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.BundleResponseDTO
//	@Failure		422	{object}	utils.Response	"Bundle is not completed"
//	@Router			/api/bundles/{id}/track [put]
func (h *BundleHandler) SetTrackCode(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	var req dto.TrackCodeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bundle, err := h.bundleService.SetTrackCode(r.Context(), actorFrom(r), bundleID, req.TrackCode)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bundleservice.ToDTO(bundle))
}

// Delete godoc
//
//	@Summary	Delete an unclaimed or archived bundle
//	@Tags		Bundles
//	@Produce	json
//	@Param		id	path	int	true	"Bundle ID"
//	@Security	BearerAuth
//	@Success	200	{object}	utils.Response
//	@Router		/api/bundles/{id} [delete]
func (h *BundleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bundleID, err := bundleIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bundle id")
		return
	}
	if err := h.bundleService.Delete(r.Context(), actorFrom(r), bundleID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Bundle deleted"})
}
