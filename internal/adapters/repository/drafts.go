package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

var _ ports.DraftRepository = (*DraftRepository)(nil)

// DraftRepository stores the in-progress session under domain.DraftKey
type DraftRepository struct {
	store ports.KeyValueStore
	log   logger.Logger
}

// NewDraftRepository creates a draft repository
func NewDraftRepository(store ports.KeyValueStore, log logger.Logger) *DraftRepository {
	return &DraftRepository{store: store, log: log.Named("draft")}
}

// Load returns ok == false when no usable draft is stored
func (r *DraftRepository) Load(ctx context.Context) (*domain.Session, bool, error) {
	raw, ok, err := r.store.Get(ctx, domain.DraftKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read draft: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	session := domain.NewSession()
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		r.log.Warn(ctx, "ignoring malformed draft", logger.Error(err))
		return nil, false, nil
	}
	return session, true, nil
}

// Save replaces the stored draft
func (r *DraftRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return r.store.Set(ctx, domain.DraftKey, string(data))
}

// Clear removes the stored draft
func (r *DraftRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, domain.DraftKey)
}
