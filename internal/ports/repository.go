package ports

import (
	"context"

	"assessio/internal/domain"
)

// CatalogRepository persists the single application-wide catalog
type CatalogRepository interface {
	// Load returns the stored items; ok is false when nothing usable is stored
	Load(ctx context.Context) (items []domain.Item, ok bool, err error)
	Save(ctx context.Context, items []domain.Item) error
}

// RecordRepository persists per-client collections of saved assessments.
// A blank client ID has no storage: reads return nothing and writes are no-ops.
type RecordRepository interface {
	List(ctx context.Context, clientID string) ([]domain.Record, error)
	Append(ctx context.Context, clientID string, record domain.Record) error
	Remove(ctx context.Context, clientID string, recordID int64) error
	Find(ctx context.Context, clientID string, recordID int64) (*domain.Record, error)
}

// DraftRepository persists the in-progress session between runs
type DraftRepository interface {
	Load(ctx context.Context) (*domain.Session, bool, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}
