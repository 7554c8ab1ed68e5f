package handlers

import (
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// GetStatsHandler handles GET /collection/stats requests.
type GetStatsHandler struct {
	svc *appsvcs.Services
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services) *GetStatsHandler {
	return &GetStatsHandler{svc: svc}
}

// Execute returns collection statistics.
//
//	@Summary		Collection statistics
//	@Description	Returns item totals and per-group counts
//	@Tags			collection
//	@Produce		json
//	@Success		200	{object}	models.Stats
//	@Failure		500	{object}	ErrorResponse
//	@Router			/collection/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	stats, err := h.svc.Collection.Stats(r.Context(), ws)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
