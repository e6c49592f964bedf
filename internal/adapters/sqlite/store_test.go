package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "assessio.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, ok, err := s.Get(ctx, "assessmentItems"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "assessmentItems", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "assessmentItems", `[{"name":"x"}]`); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := s.Get(ctx, "assessmentItems")
	if err != nil || !ok || got != `[{"name":"x"}]` {
		t.Errorf("Get = %q, %v, %v", got, ok, err)
	}

	if err := s.Remove(ctx, "assessmentItems"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "assessmentItems"); ok {
		t.Error("key still present after Remove")
	}
	if err := s.Remove(ctx, "assessmentItems"); err != nil {
		t.Errorf("removing a missing key should be a no-op: %v", err)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "assessio.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "assessments_TY", `[{"id":1}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if v, ok, _ := s.Get(ctx, "assessments_TY"); !ok || v != `[{"id":1}]` {
		t.Errorf("value lost across reopen: %q %v", v, ok)
	}
	if version, err := s.SchemaVersion(ctx); err != nil || version != schemaVersion {
		t.Errorf("SchemaVersion = %q, %v", version, err)
	}
}
