package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateItem is returned when an item with the same category and name exists
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrIndexOutOfRange is returned for positions outside the catalog
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Catalog is the ordered list of assessment items.
// No two items share the same (category, name).
type Catalog struct {
	items []Item
}

// NewCatalog builds a catalog from items without re-validating uniqueness
func NewCatalog(items []Item) *Catalog {
	return &Catalog{items: CloneItems(items)}
}

// Items returns a copy of the catalog contents in order
func (c *Catalog) Items() []Item {
	return CloneItems(c.items)
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the item at position
func (c *Catalog) At(position int) (Item, bool) {
	if position < 0 || position >= len(c.items) {
		return Item{}, false
	}
	return c.items[position], true
}

// IndexOf returns the position of the item with the given ID, or -1
func (c *Catalog) IndexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an item with the key exists
func (c *Catalog) Contains(key ItemKey) bool {
	for _, item := range c.items {
		if item.Key() == key {
			return true
		}
	}
	return false
}

// Add appends an item, rejecting duplicates
func (c *Catalog) Add(item Item) error {
	if c.Contains(item.Key()) {
		return fmt.Errorf("%w: %s - %s", ErrDuplicateItem, item.Category, item.Name)
	}
	c.items = append(c.items, item)
	return nil
}

// Remove deletes the item at position and returns it
func (c *Catalog) Remove(position int) (Item, error) {
	if position < 0 || position >= len(c.items) {
		return Item{}, fmt.Errorf("%w: %d (catalog has %d items)", ErrIndexOutOfRange, position, len(c.items))
	}
	removed := c.items[position]
	c.items = append(c.items[:position], c.items[position+1:]...)
	return removed, nil
}

// Move relocates the item at from to position to.
// Returns false without changes when either index is out of range.
func (c *Catalog) Move(from, to int) bool {
	n := len(c.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	item := c.items[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	c.items = append(c.items[:to], append([]Item{item}, c.items[to:]...)...)
	return true
}

// Replace swaps the whole catalog for items
func (c *Catalog) Replace(items []Item) {
	c.items = CloneItems(items)
}

// Categories returns distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}
