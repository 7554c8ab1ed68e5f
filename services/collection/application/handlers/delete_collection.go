package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// DeleteCollectionHandler handles DELETE /collection requests.
type DeleteCollectionHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCollectionHandler returns a DeleteCollectionHandler backed by the given services.
func NewDeleteCollectionHandler(svc *appsvcs.Services) *DeleteCollectionHandler {
	return &DeleteCollectionHandler{svc: svc}
}

// Execute clears the collection.
//
//	@Summary		Clear collection
//	@Description	Deletes every item and group
//	@Tags			collection
//	@Success		204
//	@Failure		500	{object}	ErrorResponse
//	@Router			/collection [delete]
func (h *DeleteCollectionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := h.svc.Collection.Clear(r.Context(), ws); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}
