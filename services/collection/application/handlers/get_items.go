package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// GetItemsHandler handles GET /collection/items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// Execute lists the items of a group.
//
//	@Summary		List items
//	@Description	Lists items of one group in import order; "all" or no group lists every item
//	@Tags			collection
//	@Produce		json
//	@Param			group	query		string	false	"Group filter"	default(all)
//	@Success		200		{object}	ItemsResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/collection/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	group := r.URL.Query().Get("group")
	if group == "" {
		group = models.AllGroups
	}

	items, err := h.svc.Collection.Filter(r.Context(), ws, group)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemsResponse{Group: group, Count: len(items), Items: items})
}
