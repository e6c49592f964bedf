package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"assessio/internal/application"
	"assessio/internal/domain"
	"assessio/pkg/logger"
)

// ItemEntry is a catalog item with its position and current session state
type ItemEntry struct {
	Position int
	Item     domain.Item
	Score    int
	Note     string
}

// ListItemsResult contains the catalog in display order
type ListItemsResult struct {
	Entries    []ItemEntry
	Categories []string
}

// ListItemsCommand lists the catalog with the in-progress scores and notes
type ListItemsCommand struct {
	ws *application.Workspace
}

// NewListItemsCommand creates a new ListItemsCommand
func NewListItemsCommand(ws *application.Workspace) *ListItemsCommand {
	return &ListItemsCommand{ws: ws}
}

// Execute runs the list items command
func (c *ListItemsCommand) Execute(ctx context.Context) (*ListItemsResult, error) {
	catalog := c.ws.Catalog()
	session := c.ws.Session()

	items := catalog.Items()
	entries := make([]ItemEntry, len(items))
	for i, item := range items {
		score, _ := session.Score(item.ID)
		entries[i] = ItemEntry{
			Position: i,
			Item:     item,
			Score:    score,
			Note:     session.Note(item.ID),
		}
	}
	return &ListItemsResult{Entries: entries, Categories: catalog.Categories()}, nil
}

// ResolveItem finds an item by ID or by 1-based position as shown in listings
func ResolveItem(catalog *domain.Catalog, ref string) (domain.Item, int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Item{}, -1, &application.ValidationError{Field: "itemID", Message: "item ID is required"}
	}
	if pos := catalog.IndexOf(ref); pos >= 0 {
		item, _ := catalog.At(pos)
		return item, pos, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if item, ok := catalog.At(n - 1); ok {
			return item, n - 1, nil
		}
		return domain.Item{}, -1, fmt.Errorf("%w: item %d (catalog has %d items)", domain.ErrIndexOutOfRange, n, catalog.Len())
	}
	return domain.Item{}, -1, fmt.Errorf("item %s: %w", ref, application.ErrNotFound)
}

// AddItemResult contains the result of adding an item
type AddItemResult struct {
	Item    domain.Item
	Message string
}

// AddItemCommand registers a single catalog item
type AddItemCommand struct {
	ws          *application.Workspace
	Category    string
	Name        string
	Description string
}

// NewAddItemCommand creates a new AddItemCommand
func NewAddItemCommand(ws *application.Workspace, category, name, description string) *AddItemCommand {
	return &AddItemCommand{
		ws:          ws,
		Category:    category,
		Name:        name,
		Description: description,
	}
}

// Validate checks that every field is present
func (c *AddItemCommand) Validate() error {
	if err := application.ValidateRequired("category", c.Category); err != nil {
		return err
	}
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("description", c.Description)
}

// Execute runs the add item command
func (c *AddItemCommand) Execute(ctx context.Context) (*AddItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item := domain.NewItem(c.Category, c.Name, c.Description)
	err := c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, _ *domain.Session) error {
		return catalog.Add(item)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	c.ws.Metrics().ItemsAdded(1)
	c.ws.Logger().Info(ctx, "item added", logger.String("id", item.ID), logger.String("category", item.Category))

	return &AddItemResult{
		Item:    item,
		Message: fmt.Sprintf("Added item: %s - %s", item.Category, item.Name),
	}, nil
}

// RemoveItemResult contains the result of removing an item
type RemoveItemResult struct {
	Item    domain.Item
	Message string
}

// RemoveItemCommand deletes the item at a catalog position and purges its
// score and note from the session
type RemoveItemCommand struct {
	ws       *application.Workspace
	Position int
}

// NewRemoveItemCommand creates a new RemoveItemCommand
func NewRemoveItemCommand(ws *application.Workspace, position int) *RemoveItemCommand {
	return &RemoveItemCommand{ws: ws, Position: position}
}

// Validate checks that the position addresses an item
func (c *RemoveItemCommand) Validate() error {
	if n := c.ws.Catalog().Len(); c.Position < 0 || c.Position >= n {
		return fmt.Errorf("%w: %d (catalog has %d items)", domain.ErrIndexOutOfRange, c.Position, n)
	}
	return nil
}

// Execute runs the remove item command
func (c *RemoveItemCommand) Execute(ctx context.Context) (*RemoveItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var removed domain.Item
	err := c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, session *domain.Session) error {
		item, err := catalog.Remove(c.Position)
		if err != nil {
			return err
		}
		session.Forget(item.ID)
		removed = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}

	c.ws.Metrics().ItemRemoved()
	c.ws.Logger().Info(ctx, "item removed", logger.String("id", removed.ID))

	return &RemoveItemResult{
		Item:    removed,
		Message: fmt.Sprintf("Removed item: %s - %s", removed.Category, removed.Name),
	}, nil
}

// MoveItemResult contains the result of moving an item
type MoveItemResult struct {
	Moved   bool
	Message string
}

// MoveItemCommand relocates one item within the catalog. Out-of-range
// positions leave the catalog untouched.
type MoveItemCommand struct {
	ws   *application.Workspace
	From int
	To   int
}

// NewMoveItemCommand creates a new MoveItemCommand
func NewMoveItemCommand(ws *application.Workspace, from, to int) *MoveItemCommand {
	return &MoveItemCommand{ws: ws, From: from, To: to}
}

// Execute runs the move item command
func (c *MoveItemCommand) Execute(ctx context.Context) (*MoveItemResult, error) {
	moved := false
	err := c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, _ *domain.Session) error {
		moved = catalog.Move(c.From, c.To)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move item: %w", err)
	}
	if !moved {
		return &MoveItemResult{Message: "Nothing moved"}, nil
	}
	return &MoveItemResult{
		Moved:   true,
		Message: fmt.Sprintf("Moved item %d to %d", c.From+1, c.To+1),
	}, nil
}

// ReplaceItemsCommand swaps the whole catalog for the given items without
// re-checking uniqueness. Session entries for dropped items are purged.
type ReplaceItemsCommand struct {
	ws    *application.Workspace
	Items []domain.Item
}

// NewReplaceItemsCommand creates a new ReplaceItemsCommand
func NewReplaceItemsCommand(ws *application.Workspace, items []domain.Item) *ReplaceItemsCommand {
	return &ReplaceItemsCommand{ws: ws, Items: items}
}

// Execute runs the replace items command
func (c *ReplaceItemsCommand) Execute(ctx context.Context) error {
	items := domain.CloneItems(c.Items)
	domain.EnsureIDs(items)

	err := c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, session *domain.Session) error {
		catalog.Replace(items)
		session.Prune(catalog)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
