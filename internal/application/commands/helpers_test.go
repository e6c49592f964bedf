package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"assessio/internal/adapters/memory"
	"assessio/internal/adapters/repository"
	"assessio/internal/application"
	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// newTestWorkspace returns an initialized workspace over store seeded with items
func newTestWorkspace(t *testing.T, store ports.KeyValueStore, items []domain.Item) *application.Workspace {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()

	catalogs := repository.NewCatalogRepository(store, log)
	if items != nil {
		if err := catalogs.Save(ctx, items); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	ws := application.NewWorkspace(application.Options{
		Catalogs: catalogs,
		Records:  repository.NewRecordRepository(store, log),
		Drafts:   repository.NewDraftRepository(store, log),
		Clock:    &fixedClock{now: testNow},
		Logger:   log,
	})
	if err := ws.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return ws
}

func testItems() []domain.Item {
	return []domain.Item{
		{ID: "a", Category: "生活", Name: "食事", Description: "d"},
		{ID: "b", Category: "生活", Name: "睡眠", Description: "d"},
		{ID: "c", Category: "対人", Name: "挨拶", Description: "d"},
	}
}

func fillBasicInfo(t *testing.T, ws *application.Workspace) {
	t.Helper()
	_, err := NewSetBasicInfoCommand(ws, domain.BasicInfo{
		ClientName:    " T.Y ",
		EvaluatorName: "Sato",
		EntryDate:     "2026-04-01",
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-31",
	}).Execute(context.Background())
	if err != nil {
		t.Fatalf("set basic info: %v", err)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// draftFailingStore rejects draft writes while failDrafts is set
type draftFailingStore struct {
	*memory.Store
	failDrafts bool
}

func (s *draftFailingStore) Set(ctx context.Context, key, value string) error {
	if s.failDrafts && key == domain.DraftKey {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

// storedCatalog reads the catalog as persisted in store
func storedCatalog(t *testing.T, store ports.KeyValueStore) []domain.Item {
	t.Helper()
	items, _, err := repository.NewCatalogRepository(store, logger.NewNop()).Load(context.Background())
	if err != nil {
		t.Fatalf("load stored catalog: %v", err)
	}
	return items
}
