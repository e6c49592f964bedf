package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	log.Named("records").Warn(ctx, "malformed collection", String("key", "assessments_TY"), Error(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{"malformed collection", "component=records", "key=assessments_TY", "error=boom", "source=", "logger_test.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output: %s", want, out)
		}
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	if buf.Len() != 0 {
		t.Errorf("messages below warn should be dropped, got: %s", buf.String())
	}

	log.Error(ctx, "error message", Int("n", 3))
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("error message missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "", "warning", "Error"} {
		if _, err := ParseLevel(level); err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", level, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("New should reject unknown levels")
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.Info(context.Background(), "discarded", Float64("x", 1.5), Any("y", []int{1}), Int64("z", 2))
}
