package models

import (
	"fmt"
	"time"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	"github.com/mamecholeye-lab/Rmam/services/selection/domain"
)

// Mode selects how many items a draw returns and in what shape.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeBatch    Mode = "batch"
	ModeMultiset Mode = "multiset"
)

// ParseMode maps a client-supplied mode name to a Mode. An empty name means ModeSingle.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSingle:
		return ModeSingle, nil
	case ModeBatch, ModeMultiset:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMode, s)
	}
}

// Request describes one draw. Group is a group name or models.AllGroups.
// Count is only read in ModeBatch; values below 1 are treated as 1.
type Request struct {
	Group string
	Count int
	Mode  Mode
}

// Result is the outcome of a draw. Single and batch draws fill Items;
// multiset draws fill Sets.
type Result struct {
	Mode     Mode            `json:"mode"`
	Group    string          `json:"group"`
	PoolSize int             `json:"pool_size"`
	Items    []models.Item   `json:"items,omitempty"`
	Sets     [][]models.Item `json:"sets,omitempty"`
	Draws    int             `json:"draws"`
	DrawnAt  time.Time       `json:"drawn_at"`
}

// Picked returns every drawn item in draw order, flattening multiset sets.
func (r *Result) Picked() []models.Item {
	if r.Mode != ModeMultiset {
		return r.Items
	}
	out := make([]models.Item, 0, len(r.Sets)*3)
	for _, set := range r.Sets {
		out = append(out, set...)
	}
	return out
}
