package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	pkgvalidator "github.com/mamecholeye-lab/Rmam/pkg/validator"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain/models"
)

// DrawRequest is the request body for POST /selections.
type DrawRequest struct {
	Group string `json:"group" validate:"max=100" example:"all"`
	Count int    `json:"count" validate:"gte=0,lte=1000" example:"3"`
	Mode  string `json:"mode" validate:"omitempty,oneof=single batch multiset" example:"batch"`
} // @name DrawRequest

// PostSelectionHandler handles POST /selections requests.
type PostSelectionHandler struct {
	svc *appsvcs.Services
}

// NewPostSelectionHandler returns a PostSelectionHandler backed by the given services.
func NewPostSelectionHandler(svc *appsvcs.Services) *PostSelectionHandler {
	return &PostSelectionHandler{svc: svc}
}

// Execute draws random items.
//
//	@Summary		Draw items
//	@Description	Draws from the items of one group (or "all"). single returns one item, batch returns up to count distinct items, multiset returns five sets of up to three.
//	@Tags			selections
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DrawRequest	true	"Draw request"
//	@Success		200		{object}	SelectionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/selections [post]
func (h *PostSelectionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[DrawRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Selection.Draw(r.Context(), ws, models.Request{
		Group: req.Group,
		Count: req.Count,
		Mode:  models.Mode(req.Mode),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(res))
}
