package application

import (
	"context"
	"errors"
	"fmt"

	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
	"assessio/pkg/metrics"
)

// Options wires a Workspace to its collaborators. Catalogs and Records are
// required; the rest fall back to defaults.
type Options struct {
	Catalogs ports.CatalogRepository
	Records  ports.RecordRepository
	Drafts   ports.DraftRepository
	Clock    ports.Clock
	Collator ports.Collator
	Logger   logger.Logger
	Metrics  *metrics.Manager
}

// Workspace holds the catalog and the in-progress session for one user and
// owns their persistence. Call Init before use and Reset to start over.
type Workspace struct {
	catalogs ports.CatalogRepository
	records  ports.RecordRepository
	drafts   ports.DraftRepository
	clock    ports.Clock
	collator ports.Collator
	log      logger.Logger
	metrics  *metrics.Manager

	catalog *domain.Catalog
	session *domain.Session
}

// NewWorkspace creates an uninitialized workspace
func NewWorkspace(opts Options) *Workspace {
	w := &Workspace{
		catalogs: opts.Catalogs,
		records:  opts.Records,
		drafts:   opts.Drafts,
		clock:    opts.Clock,
		collator: opts.Collator,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		catalog:  domain.NewCatalog(nil),
		session:  domain.NewSession(),
	}
	if w.clock == nil {
		w.clock = SystemClock{}
	}
	if w.log == nil {
		w.log = logger.NewNop()
	}
	w.log = w.log.Named("workspace")
	return w
}

// Init loads the catalog, seeding defaults when needed, and restores the
// draft session if one was saved.
func (w *Workspace) Init(ctx context.Context) error {
	if _, err := w.LoadCatalog(ctx); err != nil {
		return err
	}

	w.session = domain.NewSession()
	if w.drafts == nil {
		return nil
	}
	draft, ok, err := w.drafts.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	if !ok {
		return nil
	}
	migrated := domain.MigratePositionKeys(draft.Scores, draft.Notes, w.catalog.Items())
	pruned := draft.Prune(w.catalog)
	w.session = draft
	if migrated || pruned {
		w.log.Info(ctx, "draft session adjusted to the catalog",
			logger.Int("scores", len(draft.Scores)), logger.Int("notes", len(draft.Notes)))
		return w.SaveDraft(ctx)
	}
	return nil
}

// LoadCatalog reads the stored catalog into the workspace. An absent, empty
// or unreadable catalog is replaced by the default items, which are stored.
func (w *Workspace) LoadCatalog(ctx context.Context) (seeded bool, err error) {
	items, ok, err := w.catalogs.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load catalog: %w", err)
	}

	if !ok || len(items) == 0 {
		w.catalog = domain.NewCatalog(domain.DefaultItems())
		w.log.Info(ctx, "seeding default catalog", logger.Int("items", w.catalog.Len()))
		if err := w.persistCatalog(ctx); err != nil {
			return true, err
		}
		w.metrics.CatalogSize(w.catalog.Len())
		return true, nil
	}

	needsSave := domain.EnsureIDs(items)
	w.catalog = domain.NewCatalog(items)
	if needsSave {
		w.log.Info(ctx, "assigned IDs to stored catalog items")
		if err := w.persistCatalog(ctx); err != nil {
			return false, err
		}
	}
	w.metrics.CatalogSize(w.catalog.Len())
	return false, nil
}

// Reset discards the in-progress session and its draft
func (w *Workspace) Reset(ctx context.Context) error {
	if w.drafts != nil {
		if err := w.drafts.Clear(ctx); err != nil {
			return w.StorageFailure(ctx, "clear", domain.DraftKey, err)
		}
	}
	w.session.Reset()
	return nil
}

// Catalog returns the live catalog
func (w *Workspace) Catalog() *domain.Catalog { return w.catalog }

// Session returns the live session
func (w *Workspace) Session() *domain.Session { return w.session }

// Records returns the record repository
func (w *Workspace) Records() ports.RecordRepository { return w.records }

// Clock returns the workspace clock
func (w *Workspace) Clock() ports.Clock { return w.clock }

// Compare orders strings with the configured collator, or bytewise without one
func (w *Workspace) Compare(a, b string) int {
	if w.collator == nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return w.collator.Compare(a, b)
}

// Logger returns the workspace logger
func (w *Workspace) Logger() logger.Logger { return w.log }

// Metrics returns the metrics manager, which may be nil
func (w *Workspace) Metrics() *metrics.Manager { return w.metrics }

// UpdateCatalog applies fn to the catalog, then stores the catalog and the
// draft. If fn fails or either write is rejected, the catalog and session
// are restored in memory and the previous catalog is written back.
func (w *Workspace) UpdateCatalog(ctx context.Context, fn func(c *domain.Catalog, s *domain.Session) error) error {
	items := w.catalog.Items()
	session := w.session.Clone()
	restore := func() {
		w.catalog.Replace(items)
		w.session = session
	}

	if err := fn(w.catalog, w.session); err != nil {
		restore()
		return err
	}
	if err := w.persistCatalog(ctx); err != nil {
		restore()
		return err
	}
	if err := w.SaveDraft(ctx); err != nil {
		restore()
		if rerr := w.catalogs.Save(ctx, items); rerr != nil {
			w.log.Error(ctx, "catalog restore failed", logger.String("key", domain.CatalogKey), logger.Error(rerr))
		}
		return err
	}
	w.metrics.CatalogSize(w.catalog.Len())
	return nil
}

// UpdateSession applies fn to the session and stores the draft. If fn
// fails or the write is rejected, the session is restored.
func (w *Workspace) UpdateSession(ctx context.Context, fn func(s *domain.Session) error) error {
	session := w.session.Clone()
	if err := fn(w.session); err != nil {
		w.session = session
		return err
	}
	if err := w.SaveDraft(ctx); err != nil {
		w.session = session
		return err
	}
	return nil
}

// SaveDraft stores the current session
func (w *Workspace) SaveDraft(ctx context.Context) error {
	if w.drafts == nil {
		return nil
	}
	if err := w.drafts.Save(ctx, w.session); err != nil {
		return w.StorageFailure(ctx, "save", domain.DraftKey, err)
	}
	return nil
}

func (w *Workspace) persistCatalog(ctx context.Context) error {
	if err := w.catalogs.Save(ctx, w.catalog.Items()); err != nil {
		return w.StorageFailure(ctx, "save", domain.CatalogKey, err)
	}
	return nil
}

// StorageFailure logs and counts a rejected write and returns it as a StorageError
func (w *Workspace) StorageFailure(ctx context.Context, op, key string, err error) error {
	var serr *StorageError
	if !errors.As(err, &serr) {
		serr = NewStorageError(op, key, err)
	}
	w.log.Error(ctx, "storage write failed",
		logger.String("op", op), logger.String("key", key),
		logger.String("kind", string(serr.Kind)), logger.Error(err))
	w.metrics.StorageFailure(string(serr.Kind))
	return serr
}
