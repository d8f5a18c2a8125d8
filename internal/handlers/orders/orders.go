package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	orderservice "github.com/nbataa/agentmart/internal/service/orderservice"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/utils"
	"github.com/nbataa/agentmart/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req dto.CreateOrderDTO) (*domain.Order, error)
	CreateBatch(ctx context.Context, actor domain.Actor, reqs []dto.CreateOrderDTO) []dto.OrderCreateResultDTO
	Claim(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	SubmitReport(ctx context.Context, actor domain.Actor, orderID int, payload dto.SubmitReportRequestDTO) (*domain.Order, error)
	MarkUserPaid(ctx context.Context, actor domain.Actor, orderID int, paymentMethod string) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	Archive(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	Delete(ctx context.Context, actor domain.Actor, orderID int) error
	SetTrackCode(ctx context.Context, actor domain.Actor, orderID int, code string) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	GetOrders(ctx context.Context, actor domain.Actor, feed string) ([]domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
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

func orderIDFrom(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// CreateOrders godoc
//
//	@Summary		Create one or more orders
//	@Description	Publish purchase requests; batch creation reports a per-entry outcome
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrdersRequestDTO	true	"Orders to create"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CreateOrdersResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/orders [post]
func (h *OrderHandler) CreateOrders(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrdersRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.orderService.CreateBatch(r.Context(), actorFrom(r), req.Orders)
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateOrdersResponseDTO{Results: results})
}

// GetOrders godoc
//
//	@Summary		List orders
//	@Description	Own orders for users; agents see claimed orders, or the open feed with ?feed=open
//	@Tags			Orders
//	@Produce		json
//	@Param			feed	query	string	false	"Set to 'open' for the claimable feed (agents)"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetOrders(r.Context(), actorFrom(r), r.URL.Query().Get("feed"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for i := range orders {
		response = append(response, *orderservice.ToDTO(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary	Get a single order with its report
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	403	{object}	utils.Response	"Not the owner, claimant or an admin"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Router		/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.orderService.GetOrder(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// Claim godoc
//
//	@Summary	Claim a published order for research
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	409	{object}	utils.Response	"Order already claimed"
//	@Failure	422	{object}	utils.Response	"Order not claimable in its current status"
//	@Router		/api/orders/{id}/claim [post]
func (h *OrderHandler) Claim(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.orderService.Claim(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// SubmitReport godoc
//
//	@Summary		Submit or revise the pricing report
//	@Description	Claimant-only; revisable until the buyer's payment is marked
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int							true	"Order ID"
//	@Param			request	body	dto.SubmitReportRequestDTO	true	"Report payload"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid report payload"
//	@Failure		422	{object}	utils.Response	"Report not accepted in the current status"
//	@Router			/api/orders/{id}/report [post]
func (h *OrderHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
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
	order, err := h.orderService.SubmitReport(r.Context(), actorFrom(r), orderID, req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// MarkPaid godoc
//
//	@Summary		Mark the order as paid by the buyer
//	@Description	Owner acknowledges the transfer; status stays awaiting admin verification
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Order ID"
//	@Param			request	body	dto.MarkPaidRequestDTO	false	"Payment method, defaults to bank"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		422	{object}	utils.Response	"Order is not awaiting payment"
//	@Router			/api/orders/{id}/paid [post]
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req dto.MarkPaidRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	order, err := h.orderService.MarkUserPaid(r.Context(), actorFrom(r), orderID, req.PaymentMethod)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// Cancel godoc
//
//	@Summary	Cancel the order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	422	{object}	utils.Response	"Order can't be cancelled in its current status"
//	@Router		/api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.orderService.Cancel(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// Archive godoc
//
//	@Summary	Archive a finished order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	422	{object}	utils.Response	"Only finished orders can be archived"
//	@Router		/api/orders/{id}/archive [post]
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.orderService.Archive(r.Context(), actorFrom(r), orderID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}

// Delete godoc
//
//	@Summary	Delete an unclaimed or archived order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Security	BearerAuth
//	@Success	200	{object}	utils.Response
//	@Failure	422	{object}	utils.Response	"Order can't be deleted in its current status"
//	@Router		/api/orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	if err := h.orderService.Delete(r.Context(), actorFrom(r), orderID); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Order deleted"})
}

// SetTrackCode godoc
//
//	@Summary		Set the shipping track code
//	@Description	Claimant or admin, completed orders only
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Order ID"
//	@Param			request	body	dto.TrackCodeRequestDTO	true	"Track code"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		422	{object}	utils.Response	"Order is not completed"
//	@Router			/api/orders/{id}/track [put]
func (h *OrderHandler) SetTrackCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFrom(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
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
	order, err := h.orderService.SetTrackCode(r.Context(), actorFrom(r), orderID, req.TrackCode)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orderservice.ToDTO(order))
}
