package memory

import (
	"context"
	"errors"
	"testing"

	"assessio/internal/ports"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)

	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v2" {
		t.Errorf("got %q %v, want v2", v, ok)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Errorf("removing a missing key should be a no-op: %v", err)
	}
	if s.Used() != 0 {
		t.Errorf("expected no usage after remove, got %d", s.Used())
	}
}

func TestStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := NewStore(10)

	if err := s.Set(ctx, "a", "12345"); err != nil {
		t.Fatalf("within quota: %v", err)
	}
	err := s.Set(ctx, "b", "123456")
	if !errors.Is(err, ports.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Error("rejected write was stored")
	}
	// replacing a value only counts the difference
	if err := s.Set(ctx, "a", "123456789"); err != nil {
		t.Errorf("overwrite within quota: %v", err)
	}
	if s.Used() != 10 {
		t.Errorf("expected 10 bytes used, got %d", s.Used())
	}
}
