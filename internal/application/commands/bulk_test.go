package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"assessio/internal/adapters/memory"
	"assessio/internal/application"
	"assessio/internal/domain"
)

func TestBulkAddCommand_Validate(t *testing.T) {
	ws := newTestWorkspace(t, memory.NewStore(0), testItems())

	tests := []struct {
		name     string
		text     string
		fallback string
		wantErr  string
	}{
		{name: "blank text", text: " \n\t", fallback: "生活", wantErr: "no items to add"},
		{name: "no comma and no fallback", text: "洗濯｜衣類", wantErr: "choose a category"},
		{name: "comma without fallback", text: "生活,洗濯,衣類"},
		{name: "bar with fallback", text: "洗濯｜衣類", fallback: "生活"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBulkAddCommand(ws, tt.text, tt.fallback, false).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var verr *application.ValidationError
			if !errors.As(err, &verr) || !contains(err.Error(), tt.wantErr) {
				t.Errorf("expected validation error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

const mixedBulkText = `生活,食事,重複する行
生活,洗濯,衣類の管理
対人,,名前なし
区切りなし`

func TestBulkAddCommand_Preview(t *testing.T) {
	ws := newTestWorkspace(t, memory.NewStore(0), testItems())

	result, err := NewBulkAddCommand(ws, mixedBulkText, "", false).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Committed {
		t.Error("preview must not commit")
	}
	if ws.Catalog().Len() != 3 {
		t.Errorf("preview changed the catalog: %d items", ws.Catalog().Len())
	}
	if want := "added 1 / skipped 1 / errors 2"; result.Summary != want || result.Message != want {
		t.Errorf("Summary = %q, Message = %q; want %q", result.Summary, result.Message, want)
	}
}

func TestBulkAddCommand_Commit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	ws := newTestWorkspace(t, store, testItems())

	result, err := NewBulkAddCommand(ws, mixedBulkText, "", true).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Committed {
		t.Fatal("expected the items to be committed")
	}
	if !strings.HasSuffix(result.Message, ": items registered") {
		t.Errorf("unexpected message %q", result.Message)
	}

	added, _ := ws.Catalog().At(3)
	if added.Category != "生活" || added.Name != "洗濯" || added.ID == "" {
		t.Errorf("unexpected appended item: %+v", added)
	}
	if reloaded := newTestWorkspace(t, store, nil); reloaded.Catalog().Len() != 4 {
		t.Errorf("expected 4 persisted items, got %d", reloaded.Catalog().Len())
	}

	// running the same text again only produces duplicates
	again, err := NewBulkAddCommand(ws, mixedBulkText, "", true).Execute(ctx)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if again.Committed || again.Message != "No items can be added" {
		t.Errorf("unexpected second result: %+v", again)
	}
}

func TestBulkAddCommand_FallbackCategory(t *testing.T) {
	ws := newTestWorkspace(t, memory.NewStore(0), testItems())

	text := "洗濯｜衣類の管理\n掃除\t部屋の整理\n買い物,店での支払い"
	result, err := NewBulkAddCommand(ws, text, "家事", true).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Report.Items) != 3 {
		t.Fatalf("expected 3 items, got %+v", result.Report)
	}
	for _, item := range result.Report.Items {
		if item.Category != "家事" {
			t.Errorf("item %q has category %q, want 家事", item.Name, item.Category)
		}
	}
}

func TestBulkSummary(t *testing.T) {
	tests := []struct {
		name   string
		report domain.BulkReport
		want   string
	}{
		{
			name: "only added",
			report: domain.BulkReport{
				Items: make([]domain.Item, 2),
			},
			want: "added 2",
		},
		{
			name: "errors without skips",
			report: domain.BulkReport{
				Errors: []domain.LineError{{Line: 1, Kind: domain.NoDelimiter}},
			},
			want: "added 0 / errors 1",
		},
		{
			name: "everything",
			report: domain.BulkReport{
				Items:   make([]domain.Item, 1),
				Skipped: make([]domain.SkippedLine, 3),
				Errors:  make([]domain.LineError, 2),
			},
			want: "added 1 / skipped 3 / errors 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BulkSummary(tt.report); got != tt.want {
				t.Errorf("BulkSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBulkDetails(t *testing.T) {
	var report domain.BulkReport
	for i := 1; i <= 7; i++ {
		report.Errors = append(report.Errors, domain.LineError{Line: i, Kind: domain.NoDelimiter})
	}
	report.Skipped = []domain.SkippedLine{{Line: 8, Category: "生活", Name: "食事"}}

	details := BulkDetails(report)

	if !strings.HasPrefix(details, "Skipped (duplicates):\nline 8: 生活 - 食事 (duplicate)\n") {
		t.Errorf("unexpected skipped section:\n%s", details)
	}
	for i := 1; i <= 5; i++ {
		if !contains(details, fmt.Sprintf("line %d: no delimiter", i)) {
			t.Errorf("details missing line %d:\n%s", i, details)
		}
	}
	if contains(details, "line 6:") {
		t.Errorf("details should stop after five errors:\n%s", details)
	}
	if !strings.HasSuffix(details, "...and 2 more") {
		t.Errorf("details should end with the overflow count:\n%s", details)
	}

	if got := BulkDetails(domain.BulkReport{}); got != "" {
		t.Errorf("expected empty details, got %q", got)
	}
}
