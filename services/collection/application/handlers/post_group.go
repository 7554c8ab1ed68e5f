package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	pkgvalidator "github.com/mamecholeye-lab/Rmam/pkg/validator"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100" example:"Work"`
} // @name CreateGroupRequest

// PostGroupHandler handles POST /groups requests.
type PostGroupHandler struct {
	svc *appsvcs.Services
}

// NewPostGroupHandler returns a PostGroupHandler backed by the given services.
func NewPostGroupHandler(svc *appsvcs.Services) *PostGroupHandler {
	return &PostGroupHandler{svc: svc}
}

// Execute creates a group.
//
//	@Summary		Create group
//	@Description	Registers a new, empty group. Names are trimmed and compared case-sensitively.
//	@Tags			groups
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateGroupRequest	true	"Group creation request"
//	@Success		201		{object}	GroupsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/groups [post]
func (h *PostGroupHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateGroupRequest](w, r)
	if !ok {
		return
	}

	groups, err := h.svc.Collection.CreateGroup(r.Context(), ws, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, GroupsResponse{Groups: groups})
}
