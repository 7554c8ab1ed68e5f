package handlers

import (
	"fmt"
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// GetExportHandler handles GET /collection/export requests.
type GetExportHandler struct {
	svc *appsvcs.Services
}

// NewGetExportHandler returns a GetExportHandler backed by the given services.
func NewGetExportHandler(svc *appsvcs.Services) *GetExportHandler {
	return &GetExportHandler{svc: svc}
}

// Execute returns the export document as a download.
//
//	@Summary		Export collection
//	@Description	Returns items, groups, export time and totals. The document can be imported back.
//	@Tags			collection
//	@Produce		json
//	@Success		200	{object}	models.Export
//	@Failure		500	{object}	ErrorResponse
//	@Router			/collection/export [get]
func (h *GetExportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	exp, err := h.svc.Collection.Export(r.Context(), ws)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.Attachment(w, fmt.Sprintf("control-panel-data-%s.json", exp.Exported.Format("2006-01-02")), exp)
}
