// Package persistence holds what the snapshot stores share: the change-event
// envelope and the snapshot codec.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/mamecholeye-lab/Rmam/pkg/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/events"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// Publisher is the part of events.EventBus the stores use.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// ChangeMessage wraps a change event in a message.
func ChangeMessage(change *events.CollectionChangedEvent) (*message.Message, error) {
	msg, err := pkgevents.NewMessage(change.EventID, change.Version, change)
	if err != nil {
		return nil, fmt.Errorf("collection changed message: %w", err)
	}
	msg.Metadata.Set("workspace", change.Workspace)
	return msg, nil
}

// PublishChange publishes change on pub. A nil publisher or event is a no-op.
func PublishChange(ctx context.Context, pub Publisher, change *events.CollectionChangedEvent) error {
	if pub == nil || change == nil {
		return nil
	}
	msg, err := ChangeMessage(change)
	if err != nil {
		return err
	}
	if err := pub.Publish(ctx, events.TopicCollectionChanged, msg); err != nil {
		return fmt.Errorf("publish collection changed: %w", err)
	}
	return nil
}

// EncodeSnapshot is the stored representation of a snapshot.
func EncodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot.
func DecodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
