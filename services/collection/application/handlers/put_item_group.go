package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	pkgvalidator "github.com/mamecholeye-lab/Rmam/pkg/validator"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// AssignGroupRequest is the request body for PUT /items/{id}/group.
type AssignGroupRequest struct {
	Group  string `json:"group" validate:"required,notblank,max=100" example:"Work"`
	Strict bool   `json:"strict" example:"false"`
} // @name AssignGroupRequest

// PutItemGroupHandler handles PUT /items/{id}/group requests.
type PutItemGroupHandler struct {
	svc *appsvcs.Services
}

// NewPutItemGroupHandler returns a PutItemGroupHandler backed by the given services.
func NewPutItemGroupHandler(svc *appsvcs.Services) *PutItemGroupHandler {
	return &PutItemGroupHandler{svc: svc}
}

// Execute moves an item to another group.
//
//	@Summary		Assign item group
//	@Description	Sets the group of one item. Any name is accepted unless strict is set, which requires "default" or a registered group.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Item id"
//	@Param			request	body		AssignGroupRequest	true	"Assignment request"
//	@Success		200		{object}	models.Item
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id}/group [put]
func (h *PutItemGroupHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AssignGroupRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Collection.AssignGroup(r.Context(), ws, id, req.Group, req.Strict)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}
