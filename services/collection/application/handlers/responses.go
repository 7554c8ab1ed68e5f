package handlers

import (
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"group already exists: \"Work\""`
} // @name ErrorResponse

// ItemsResponse lists items of one filter.
type ItemsResponse struct {
	Group string        `json:"group" example:"all"`
	Count int           `json:"count" example:"2"`
	Items []models.Item `json:"items"`
} // @name ItemsResponse

// GroupsResponse is the group registry in display order.
type GroupsResponse struct {
	Groups []string `json:"groups" example:"Work,News"`
} // @name GroupsResponse
