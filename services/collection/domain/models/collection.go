package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain"
)

// Collection is the aggregate owning a set of items and the group registry.
//
// Invariant after every group-mutating operation: each item's group is
// DefaultGroup or a registered name. AssignGroup is the one documented
// exception; use AssignExistingGroup to keep the invariant strict.
//
// A Collection is single-owner and not safe for concurrent use.
type Collection struct {
	items  []Item
	groups []string
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Import replaces the whole collection with one item per record.
// Missing fields are defaulted, so every record yields a valid item.
// The registry becomes the distinct item groups in first-appearance order,
// taken after defaulting, so a record without a group registers DefaultGroup.
func (c *Collection) Import(records []Record) ([]Item, []string) {
	items := make([]Item, len(records))
	groups := make([]string, 0)
	seen := make(map[string]struct{})

	for i, r := range records {
		items[i] = NewItem(i, r)
		g := items[i].Group
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			groups = append(groups, g)
		}
	}

	c.items = items
	c.groups = groups
	return c.Items(), c.Groups()
}

// Items returns a copy of the items in import order.
func (c *Collection) Items() []Item {
	return slices.Clone(c.items)
}

// Groups returns a copy of the registry in insertion order.
func (c *Collection) Groups() []string {
	return slices.Clone(c.groups)
}

// Len reports the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// HasGroup reports whether name is registered.
func (c *Collection) HasGroup(name string) bool {
	return slices.Contains(c.groups, name)
}

// CreateGroup registers a new, initially empty group.
// The name is trimmed first; the duplicate check is case-sensitive.
func (c *Collection) CreateGroup(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrEmptyGroupName
	}
	if c.HasGroup(name) {
		return fmt.Errorf("%w: %q", domain.ErrGroupAlreadyExists, name)
	}
	c.groups = append(c.groups, name)
	return nil
}

// DeleteGroup moves every item of name to DefaultGroup and unregisters name.
// Deleting an absent group is a no-op.
func (c *Collection) DeleteGroup(name string) {
	for i := range c.items {
		if c.items[i].Group == name {
			c.items[i].Group = DefaultGroup
		}
	}
	c.groups = slices.DeleteFunc(c.groups, func(g string) bool { return g == name })
}

// AssignGroup overwrites the group of the item with the given id.
// The group is not checked against the registry.
func (c *Collection) AssignGroup(itemID int, group string) error {
	i := c.indexOf(itemID)
	if i < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
	}
	c.items[i].Group = group
	return nil
}

// AssignExistingGroup is AssignGroup restricted to DefaultGroup and registered groups.
func (c *Collection) AssignExistingGroup(itemID int, group string) error {
	if c.indexOf(itemID) < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrItemNotFound, itemID)
	}
	if group != DefaultGroup && !c.HasGroup(group) {
		return fmt.Errorf("%w: %q", domain.ErrGroupNotFound, group)
	}
	return c.AssignGroup(itemID, group)
}

// FilterByGroup returns the items of group, or every item for AllGroups.
// Relative order is preserved.
func (c *Collection) FilterByGroup(filter string) []Item {
	if filter == AllGroups {
		return c.Items()
	}
	out := make([]Item, 0)
	for _, item := range c.items {
		if item.Group == filter {
			out = append(out, item)
		}
	}
	return out
}

// Item looks up an item by id.
func (c *Collection) Item(itemID int) (Item, bool) {
	i := c.indexOf(itemID)
	if i < 0 {
		return Item{}, false
	}
	return c.items[i], true
}

// Clear drops every item and group.
func (c *Collection) Clear() {
	c.items = nil
	c.groups = nil
}

func (c *Collection) indexOf(itemID int) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == itemID })
}
