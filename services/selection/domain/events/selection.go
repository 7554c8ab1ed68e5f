package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// TopicSelectionDrawn is published after every successful draw.
const TopicSelectionDrawn = "selection.drawn"

// SelectionDrawnEvent records one draw for history and analytics consumers.
type SelectionDrawnEvent struct {
	EventID    uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int             `json:"version"`  // Schema version; increment on breaking changes
	Workspace  string          `json:"workspace"`
	Mode       string          `json:"mode"`
	Group      string          `json:"group"`
	Requested  int             `json:"requested"`
	PoolSize   int             `json:"pool_size"`
	Sets       [][]models.Item `json:"sets"`
	Draws      int             `json:"draws"`
	OccurredAt time.Time       `json:"occurred_at"`
}
