package images

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/utils"
	"github.com/nbataa/agentmart/pkg/validate"
)

type Store interface {
	Upload(ctx context.Context, data string) (string, error)
}

type ImageHandler struct {
	store Store
}

func New(store Store) *ImageHandler {
	return &ImageHandler{
		store: store,
	}
}

// Upload godoc
//
//	@Summary		Upload an image
//	@Description	Forwards a base64 payload to the image store and returns the public URL
//	@Tags			Images
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.UploadImageRequestDTO	true	"Base64 image payload"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.UploadImageResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid or oversized payload"
//	@Router			/api/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadImageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	url, err := h.store.Upload(r.Context(), req.Data)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.UploadImageResponseDTO{URL: url})
}
