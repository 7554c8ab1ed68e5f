package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/errhttp"
	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// ImportResponse is returned after a successful import.
type ImportResponse struct {
	Format string        `json:"format" example:"lines"`
	Items  []models.Item `json:"items"`
	Groups []string      `json:"groups" example:"Work"`
} // @name ImportResponse

// MaxImportBytes caps the import body.
const MaxImportBytes int64 = 10 << 20

// PostImportHandler handles POST /collection/import requests.
type PostImportHandler struct {
	svc *appsvcs.Services
	// MaxBytes caps the request body; larger imports get 413.
	MaxBytes int64
}

// NewPostImportHandler returns a PostImportHandler backed by the given services.
func NewPostImportHandler(svc *appsvcs.Services) *PostImportHandler {
	return &PostImportHandler{svc: svc, MaxBytes: MaxImportBytes}
}

// Execute replaces the collection with the request body.
//
//	@Summary		Import collection
//	@Description	Replaces the collection. Accepts a JSON array, a JSON object, a saved or exported snapshot, or "name,url,group" lines.
//	@Tags			collection
//	@Accept			plain
//	@Accept			json
//	@Produce		json
//	@Param			request	body		string	true	"Import text"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/collection/import [post]
func (h *PostImportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ws, err := workspace.FromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Import is too large")
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "Unreadable request body")
		return
	}

	res, err := h.svc.Collection.Import(r.Context(), ws, raw)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ImportResponse{
		Format: string(res.Format),
		Items:  res.Items,
		Groups: res.Groups,
	})
}
