// Package repository persists the catalog, saved records and the draft
// session as JSON values in a key-value store.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository stores the catalog under domain.CatalogKey
type CatalogRepository struct {
	store ports.KeyValueStore
	log   logger.Logger
}

// NewCatalogRepository creates a catalog repository
func NewCatalogRepository(store ports.KeyValueStore, log logger.Logger) *CatalogRepository {
	return &CatalogRepository{store: store, log: log.Named("catalog")}
}

// Load returns ok == false when nothing is stored or the value is not a
// JSON array of items
func (r *CatalogRepository) Load(ctx context.Context) ([]domain.Item, bool, error) {
	raw, ok, err := r.store.Get(ctx, domain.CatalogKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.Warn(ctx, "ignoring malformed catalog", logger.Error(err))
		return nil, false, nil
	}
	return items, true, nil
}

// Save replaces the stored catalog
func (r *CatalogRepository) Save(ctx context.Context, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return r.store.Set(ctx, domain.CatalogKey, string(data))
}
