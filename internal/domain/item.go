package domain

import (
	"strings"

	"github.com/google/uuid"
)

// itemNamespace seeds deterministic item IDs for default and legacy items
var itemNamespace = uuid.MustParse("6f1c9a52-3d0e-4b8a-9c57-2a4e8d1b7f30")

// Item is a single scored competency in the catalog
type Item struct {
	ID          string `json:"id,omitempty"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemKey is the catalog identity of an item
type ItemKey struct {
	Category string
	Name     string
}

// NewItem creates an item with a fresh random ID
func NewItem(category, name, description string) Item {
	return Item{
		ID:          uuid.NewString(),
		Category:    strings.TrimSpace(category),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
}

// Key returns the (category, name) identity of the item
func (i Item) Key() ItemKey {
	return ItemKey{Category: i.Category, Name: i.Name}
}

// DerivedItemID returns the deterministic ID for an item identity.
// Default items and items persisted before IDs existed use it so that
// repeated loads agree on the same ID.
func DerivedItemID(category, name string) string {
	return uuid.NewSHA1(itemNamespace, []byte(category+"\x00"+name)).String()
}

// EnsureIDs fills in missing IDs with derived ones and reports whether any changed
func EnsureIDs(items []Item) bool {
	changed := false
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = DerivedItemID(items[i].Category, items[i].Name)
			changed = true
		}
	}
	return changed
}

// CloneItems returns a copy of the slice
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
