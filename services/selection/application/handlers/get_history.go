package handlers

import (
	"net/http"
	"strconv"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
)

// GetHistoryHandler handles GET /selections/history requests.
type GetHistoryHandler struct {
	svc *appsvcs.Services
}

// NewGetHistoryHandler returns a GetHistoryHandler backed by the given services.
func NewGetHistoryHandler(svc *appsvcs.Services) *GetHistoryHandler {
	return &GetHistoryHandler{svc: svc}
}

// Execute lists recent draws.
//
//	@Summary		Draw history
//	@Description	Lists recent draws, newest first
//	@Tags			selections
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum entries"
//	@Success		200		{object}	HistoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/selections/history [get]
func (h *GetHistoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit < 1 {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	draws, err := h.svc.Selection.History(r.Context(), ws, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, HistoryResponse{Draws: draws})
}
