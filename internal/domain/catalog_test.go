package domain

import (
	"errors"
	"testing"
)

func testItems() []Item {
	return []Item{
		{ID: "a", Category: "Cat1", Name: "A", Description: "first"},
		{ID: "b", Category: "Cat1", Name: "B", Description: "second"},
		{ID: "c", Category: "Cat2", Name: "C", Description: "third"},
	}
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCatalog_Add(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr error
		wantLen int
	}{
		{
			name:    "new item",
			item:    Item{ID: "d", Category: "Cat2", Name: "D", Description: "x"},
			wantLen: 4,
		},
		{
			name:    "same name in other category",
			item:    Item{ID: "d", Category: "Cat2", Name: "A", Description: "x"},
			wantLen: 4,
		},
		{
			name:    "duplicate with different description",
			item:    Item{ID: "d", Category: "Cat1", Name: "A", Description: "something else"},
			wantErr: ErrDuplicateItem,
			wantLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(testItems())
			err := c.Add(tt.item)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("expected %d items, got %d", tt.wantLen, c.Len())
			}
		})
	}
}

func TestCatalog_Remove(t *testing.T) {
	c := NewCatalog(testItems())

	removed, err := c.Remove(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.ID != "b" {
		t.Errorf("expected to remove b, got %s", removed.ID)
	}
	if got := itemIDs(c.Items()); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("unexpected order after remove: %v", got)
	}

	for _, pos := range []int{-1, 2, 10} {
		if _, err := c.Remove(pos); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Remove(%d): expected ErrIndexOutOfRange, got %v", pos, err)
		}
	}
	if c.Len() != 2 {
		t.Errorf("failed removals must not change the catalog, got %d items", c.Len())
	}
}

func TestCatalog_Move(t *testing.T) {
	tests := []struct {
		name   string
		from   int
		to     int
		wantOK bool
		want   []string
	}{
		{name: "down", from: 0, to: 2, wantOK: true, want: []string{"b", "c", "a"}},
		{name: "up", from: 2, to: 0, wantOK: true, want: []string{"c", "a", "b"}},
		{name: "adjacent", from: 1, to: 2, wantOK: true, want: []string{"a", "c", "b"}},
		{name: "same position", from: 1, to: 1, wantOK: true, want: []string{"a", "b", "c"}},
		{name: "from out of range", from: 3, to: 0, wantOK: false, want: []string{"a", "b", "c"}},
		{name: "to out of range", from: 0, to: -1, wantOK: false, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(testItems())
			if ok := c.Move(tt.from, tt.to); ok != tt.wantOK {
				t.Errorf("Move() = %v, want %v", ok, tt.wantOK)
			}
			if got := itemIDs(c.Items()); !equalStrings(got, tt.want) {
				t.Errorf("got order %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalog_ItemsIsACopy(t *testing.T) {
	c := NewCatalog(testItems())
	items := c.Items()
	items[0].Name = "changed"

	if first, _ := c.At(0); first.Name != "A" {
		t.Errorf("mutating Items() result leaked into the catalog")
	}
}

func TestCatalog_Categories(t *testing.T) {
	c := NewCatalog(testItems())
	if got := c.Categories(); !equalStrings(got, []string{"Cat1", "Cat2"}) {
		t.Errorf("unexpected categories: %v", got)
	}
}

func TestDefaultItems(t *testing.T) {
	items := DefaultItems()
	if len(items) != 22 {
		t.Fatalf("expected 22 default items, got %d", len(items))
	}

	c := NewCatalog(items)
	if n := len(c.Categories()); n != 8 {
		t.Errorf("expected 8 categories, got %d", n)
	}

	again := DefaultItems()
	for i := range items {
		if items[i] != again[i] {
			t.Fatalf("default items differ between calls at %d: %+v vs %+v", i, items[i], again[i])
		}
	}

	seen := make(map[ItemKey]bool)
	for _, item := range items {
		if item.ID == "" {
			t.Errorf("default item %s has no ID", item.Name)
		}
		if seen[item.Key()] {
			t.Errorf("duplicate default item %s - %s", item.Category, item.Name)
		}
		seen[item.Key()] = true
	}
}

func TestEnsureIDs(t *testing.T) {
	items := []Item{
		{Category: "Cat", Name: "X"},
		{ID: "keep", Category: "Cat", Name: "Y"},
	}

	if !EnsureIDs(items) {
		t.Fatal("expected EnsureIDs to report a change")
	}
	if items[0].ID != DerivedItemID("Cat", "X") {
		t.Errorf("expected derived ID, got %q", items[0].ID)
	}
	if items[1].ID != "keep" {
		t.Errorf("existing ID was overwritten: %q", items[1].ID)
	}
	if EnsureIDs(items) {
		t.Error("second EnsureIDs should be a no-op")
	}
}
