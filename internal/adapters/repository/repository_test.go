package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"assessio/internal/adapters/memory"
	"assessio/internal/domain"
	"assessio/internal/ports"
	"assessio/pkg/logger"
)

func sampleRecord(id int64) domain.Record {
	s := domain.NewSession()
	s.BasicInfo = domain.BasicInfo{
		ClientName:    "T.Y",
		EvaluatorName: "Sato",
		EntryDate:     "2026-04-01",
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-31",
	}
	items := []domain.Item{
		domain.NewItem("Cat", "first", "d1"),
		domain.NewItem("Cat", "second", "d2"),
	}
	_ = s.SetScore(items[0].ID, 4)
	s.SetNote(items[0].ID, "steady")
	return domain.NewRecord(id, s, items, time.Date(2026, 4, 1, 10, 30, 0, 123000000, time.Local))
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored string
		wantOK bool
	}{
		{name: "absent"},
		{name: "malformed", stored: "{not json"},
		{name: "wrong shape", stored: `{"category":"A"}`},
		{name: "empty array", stored: `[]`, wantOK: true},
		{name: "items", stored: `[{"category":"A","name":"b","description":"c"}]`, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore(0)
			if tt.stored != "" {
				_ = store.Set(ctx, domain.CatalogKey, tt.stored)
			}
			repo := NewCatalogRepository(store, logger.NewNop())

			_, ok, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestCatalogRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(memory.NewStore(0), logger.NewNop())

	items := domain.DefaultItems()
	if err := repo.Save(ctx, items); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("catalog changed in round trip")
	}
}

func TestRecordRepository_AppendFindRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(memory.NewStore(0), logger.NewNop())

	first := sampleRecord(1700000000000)
	second := sampleRecord(1700000000001)
	for _, r := range []domain.Record{first, second} {
		if err := repo.Append(ctx, "T.Y", r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	found, err := repo.Find(ctx, "T.Y", second.ID)
	if err != nil || found == nil {
		t.Fatalf("Find: %v, %v", found, err)
	}
	if !reflect.DeepEqual(*found, second) {
		t.Errorf("found record differs:\n got %+v\nwant %+v", *found, second)
	}

	list, _ := repo.List(ctx, "T.Y")
	if len(list) != 2 || list[0].ID != first.ID {
		t.Errorf("records should keep save order: %+v", list)
	}

	if err := repo.Remove(ctx, "T.Y", second.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if found, _ := repo.Find(ctx, "T.Y", second.ID); found != nil {
		t.Error("removed record is still found")
	}
	if err := repo.Remove(ctx, "T.Y", 42); err != nil {
		t.Errorf("removing a missing record should be a no-op: %v", err)
	}
	if list, _ := repo.List(ctx, "T.Y"); len(list) != 1 {
		t.Errorf("expected one record left, got %d", len(list))
	}
}

func TestRecordRepository_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	repo := NewRecordRepository(store, logger.NewNop())

	_ = repo.Append(ctx, "A", sampleRecord(1))
	if list, _ := repo.List(ctx, "B"); len(list) != 0 {
		t.Errorf("client B sees client A's records: %+v", list)
	}
	if _, ok, _ := store.Get(ctx, "assessments_A"); !ok {
		t.Error("expected records under assessments_A")
	}
}

func TestRecordRepository_BlankClient(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	repo := NewRecordRepository(store, logger.NewNop())

	if err := repo.Append(ctx, "  ", sampleRecord(1)); err != nil {
		t.Errorf("append for blank client should be a no-op: %v", err)
	}
	if list, err := repo.List(ctx, ""); err != nil || len(list) != 0 {
		t.Errorf("List(blank) = %v, %v", list, err)
	}
	if store.Used() != 0 {
		t.Error("blank client wrote to storage")
	}
}

func TestRecordRepository_MalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	_ = store.Set(ctx, "assessments_TY", "[{broken")
	repo := NewRecordRepository(store, logger.NewNop())

	list, err := repo.List(ctx, "TY")
	if err != nil || len(list) != 0 {
		t.Errorf("List = %v, %v; want empty", list, err)
	}
}

func TestRecordRepository_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(memory.NewStore(64), logger.NewNop())

	err := repo.Append(ctx, "TY", sampleRecord(1))
	if !errors.Is(err, ports.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if list, _ := repo.List(ctx, "TY"); len(list) != 0 {
		t.Error("failed append left a record behind")
	}
}

func TestDraftRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	repo := NewDraftRepository(store, logger.NewNop())

	if _, ok, err := repo.Load(ctx); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	s := domain.NewSession()
	s.BasicInfo.ClientName = "TY"
	_ = s.SetScore("item-1", 3)
	s.SetNote("item-1", "memo")
	s.LoadedRecordID = 99
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("draft changed in round trip:\n got %+v\nwant %+v", got, s)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := repo.Load(ctx); ok {
		t.Error("draft still present after Clear")
	}

	_ = store.Set(ctx, domain.DraftKey, "nope")
	if _, ok, err := repo.Load(ctx); ok || err != nil {
		t.Errorf("malformed draft: ok=%v err=%v", ok, err)
	}
}
