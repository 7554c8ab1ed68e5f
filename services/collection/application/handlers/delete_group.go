package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// DeleteGroupHandler handles DELETE /groups/{name} requests.
type DeleteGroupHandler struct {
	svc *appsvcs.Services
}

// NewDeleteGroupHandler returns a DeleteGroupHandler backed by the given services.
func NewDeleteGroupHandler(svc *appsvcs.Services) *DeleteGroupHandler {
	return &DeleteGroupHandler{svc: svc}
}

// Execute deletes a group.
//
//	@Summary		Delete group
//	@Description	Moves the group's items to "default" and removes the group. Deleting an absent group succeeds.
//	@Tags			groups
//	@Produce		json
//	@Param			name	path		string	true	"Group name"
//	@Success		200		{object}	GroupsResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/groups/{name} [delete]
func (h *DeleteGroupHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	groups, err := h.svc.Collection.DeleteGroup(r.Context(), ws, chi.URLParam(r, "name"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, GroupsResponse{Groups: groups})
}
