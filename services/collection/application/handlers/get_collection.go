package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// GetCollectionHandler handles GET /collection requests.
type GetCollectionHandler struct {
	svc *appsvcs.Services
}

// NewGetCollectionHandler returns a GetCollectionHandler backed by the given services.
func NewGetCollectionHandler(svc *appsvcs.Services) *GetCollectionHandler {
	return &GetCollectionHandler{svc: svc}
}

// Execute returns the saved snapshot.
//
//	@Summary		Get collection
//	@Description	Returns the saved items, group registry and save time
//	@Tags			collection
//	@Produce		json
//	@Success		200	{object}	models.Snapshot
//	@Failure		500	{object}	ErrorResponse
//	@Router			/collection [get]
func (h *GetCollectionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	snap, err := h.svc.Collection.Get(r.Context(), ws)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}
