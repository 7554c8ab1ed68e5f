package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
)

// PostQuickPickHandler handles POST /selections/quick requests.
type PostQuickPickHandler struct {
	svc *appsvcs.Services
}

// NewPostQuickPickHandler returns a PostQuickPickHandler backed by the given services.
func NewPostQuickPickHandler(svc *appsvcs.Services) *PostQuickPickHandler {
	return &PostQuickPickHandler{svc: svc}
}

// Execute picks one item from the whole collection.
//
//	@Summary		Quick pick
//	@Description	Picks one item from the whole collection regardless of group
//	@Tags			selections
//	@Produce		json
//	@Success		200	{object}	SelectionResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/selections/quick [post]
func (h *PostQuickPickHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	res, err := h.svc.Selection.QuickPick(r.Context(), ws)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(res))
}
