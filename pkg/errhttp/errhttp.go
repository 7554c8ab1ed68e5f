// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/mamecholeye-lab/Rmam/pkg/httpx"
	"github.com/mamecholeye-lab/Rmam/pkg/workspace"
	collectiondomain "github.com/mamecholeye-lab/Rmam/services/collection/domain"
	selectiondomain "github.com/mamecholeye-lab/Rmam/services/selection/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

// Status exposes the mapping for callers that log before writing.
func Status(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, collectiondomain.ErrItemNotFound),
		errors.Is(err, collectiondomain.ErrGroupNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, collectiondomain.ErrGroupAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, collectiondomain.ErrEmptyGroupName),
		errors.Is(err, collectiondomain.ErrEmptyInput),
		errors.Is(err, collectiondomain.ErrInvalidSnapshot),
		errors.Is(err, selectiondomain.ErrEmptyPool),
		errors.Is(err, selectiondomain.ErrUnknownMode):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, workspace.ErrWorkspaceNotFound):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
