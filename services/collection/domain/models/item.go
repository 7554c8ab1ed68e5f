package models

import "strconv"

// Status is the lifecycle state of an Item. Only active items exist today.
type Status string

// StatusActive is assigned to every imported item.
const StatusActive Status = "active"

const (
	// DefaultGroup is the implicit fallback group. It never has to be registered.
	DefaultGroup = "default"

	// AllGroups is the filter value that selects every item.
	AllGroups = "all"

	// DefaultURL is used when a record carries no url.
	DefaultURL = "#"
)

// Item is one named, grouped entry of a collection.
// Only Group changes after import.
type Item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Group  string `json:"group"`
	Status Status `json:"status"`
}

// Record is one raw input entry before defaulting. Empty fields are "missing".
type Record struct {
	Name  string
	URL   string
	Group string
}

// NewItem builds the item for the record at the given zero-based position.
func NewItem(index int, r Record) Item {
	item := Item{
		ID:     index + 1,
		Name:   r.Name,
		URL:    r.URL,
		Group:  r.Group,
		Status: StatusActive,
	}
	if item.Name == "" {
		item.Name = "Site " + strconv.Itoa(index+1)
	}
	if item.URL == "" {
		item.URL = DefaultURL
	}
	if item.Group == "" {
		item.Group = DefaultGroup
	}
	return item
}
