package models

import (
	"slices"
	"time"
)

// Snapshot is the persisted layout of a collection. The JSON field names are
// shared with exported files, so a snapshot can be imported back verbatim.
type Snapshot struct {
	Websites  []Item    `json:"websites"`
	Groups    []string  `json:"groups"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot captures the collection at the given instant.
func (c *Collection) Snapshot(at time.Time) Snapshot {
	return Snapshot{
		Websites:  nonNil(c.Items()),
		Groups:    nonNil(c.Groups()),
		Timestamp: at.UTC(),
	}
}

// RestoreCollection rebuilds a collection from a snapshot, keeping ids,
// field values and ordering exactly as stored. Callers validate the snapshot
// first (see services.ValidateSnapshot).
func RestoreCollection(s Snapshot) *Collection {
	return &Collection{
		items:  slices.Clone(s.Websites),
		groups: slices.Clone(s.Groups),
	}
}

// ExportStats is the summary block attached to an export document.
type ExportStats struct {
	Total  int `json:"total"`
	Groups int `json:"groups"`
}

// Export is the document handed out for download or copy.
type Export struct {
	Websites []Item      `json:"websites"`
	Groups   []string    `json:"groups"`
	Exported time.Time   `json:"exported"`
	Stats    ExportStats `json:"stats"`
}

// Export builds the export document for the collection.
func (c *Collection) Export(at time.Time) Export {
	return Export{
		Websites: nonNil(c.Items()),
		Groups:   nonNil(c.Groups()),
		Exported: at.UTC(),
		Stats: ExportStats{
			Total:  len(c.items),
			Groups: len(c.groups),
		},
	}
}

// nonNil keeps empty collections encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
