package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// TopicCollectionChanged is published after a collection snapshot is saved or cleared.
const TopicCollectionChanged = "collection.changed"

// Change reasons carried by CollectionChangedEvent.
const (
	ReasonImported       = "imported"
	ReasonRestored       = "restored"
	ReasonGroupCreated   = "group_created"
	ReasonGroupDeleted   = "group_deleted"
	ReasonItemReassigned = "item_reassigned"
	ReasonCleared        = "cleared"
)

// CollectionChangedEvent carries the post-change statistics so consumers can
// refresh read models without loading the snapshot.
type CollectionChangedEvent struct {
	EventID    uuid.UUID    `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int          `json:"version"`  // Schema version; increment on breaking changes
	Workspace  string       `json:"workspace"`
	Reason     string       `json:"reason"`
	Stats      models.Stats `json:"stats"`
	OccurredAt time.Time    `json:"occurred_at"`
}
