package handlers

import (
	"time"

	"github.com/mamecholeye-lab/Rmam/pkg/cache"
	collectionmodels "github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"no items available for selection: group \"Work\""`
} // @name ErrorResponse

// SelectionResponse is the outcome of a draw. Single and batch draws fill
// items; multiset draws fill sets.
type SelectionResponse struct {
	Mode     string                    `json:"mode" example:"batch"`
	Group    string                    `json:"group" example:"all"`
	PoolSize int                       `json:"pool_size" example:"12"`
	Items    []collectionmodels.Item   `json:"items,omitempty"`
	Sets     [][]collectionmodels.Item `json:"sets,omitempty"`
	DrawnAt  time.Time                 `json:"drawn_at" example:"2024-01-15T10:30:00Z"`
} // @name SelectionResponse

// HistoryResponse lists recent draws, newest first.
type HistoryResponse struct {
	Draws []cache.CachedDraw `json:"draws"`
} // @name HistoryResponse

func toResponse(res *models.Result) SelectionResponse {
	return SelectionResponse{
		Mode:     string(res.Mode),
		Group:    res.Group,
		PoolSize: res.PoolSize,
		Items:    res.Items,
		Sets:     res.Sets,
		DrawnAt:  res.DrawnAt,
	}
}
