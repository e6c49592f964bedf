package domain

import (
	"strings"
	"testing"
)

func TestParseBulkItems(t *testing.T) {
	existing := []Item{{ID: "e", Category: "Cat", Name: "existing", Description: "d"}}

	tests := []struct {
		name        string
		text        string
		fallback    string
		wantItems   []Item
		wantErrors  []LineError
		wantSkipped []SkippedLine
	}{
		{
			name:      "comma triple ignores fallback",
			text:      "A,b,c",
			fallback:  "Other",
			wantItems: []Item{{Category: "A", Name: "b", Description: "c"}},
		},
		{
			name:      "extra comma fields are ignored",
			text:      "A,b,c,d",
			wantItems: []Item{{Category: "A", Name: "b", Description: "c"}},
		},
		{
			name:        "in-batch duplicate is skipped",
			text:        "A,b,c\nA,b,c",
			wantItems:   []Item{{Category: "A", Name: "b", Description: "c"}},
			wantSkipped: []SkippedLine{{Line: 2, Category: "A", Name: "b"}},
		},
		{
			name:      "tab uses fallback",
			text:      "x\ty",
			fallback:  "Cat",
			wantItems: []Item{{Category: "Cat", Name: "x", Description: "y"}},
		},
		{
			name:      "full-width bar uses fallback",
			text:      "名前｜説明",
			fallback:  "Cat",
			wantItems: []Item{{Category: "Cat", Name: "名前", Description: "説明"}},
		},
		{
			name:      "comma pair uses fallback",
			text:      "n, d",
			fallback:  "Cat",
			wantItems: []Item{{Category: "Cat", Name: "n", Description: "d"}},
		},
		{
			name:       "comma pair without fallback",
			text:       "n,d",
			wantErrors: []LineError{{Line: 1, Kind: MissingCategory}},
		},
		{
			name:       "no delimiter",
			text:       "A,b,c\n\njust text",
			wantItems:  []Item{{Category: "A", Name: "b", Description: "c"}},
			wantErrors: []LineError{{Line: 3, Kind: NoDelimiter}},
		},
		{
			name:       "tab without fallback",
			text:       "x\ty",
			wantErrors: []LineError{{Line: 1, Kind: EmptyCategory}},
		},
		{
			name:       "empty category in triple",
			text:       " ,b,c",
			wantErrors: []LineError{{Line: 1, Kind: EmptyCategory}},
		},
		{
			name:       "empty name",
			text:       "A, ,c",
			wantErrors: []LineError{{Line: 1, Kind: EmptyName}},
		},
		{
			name:      "empty description gets placeholder",
			text:      "A,b,",
			wantItems: []Item{{Category: "A", Name: "b", Description: DescriptionPlaceholder}},
		},
		{
			name:        "duplicate of catalog item",
			text:        "Cat,existing,again\nCat,new,d",
			wantItems:   []Item{{Category: "Cat", Name: "new", Description: "d"}},
			wantSkipped: []SkippedLine{{Line: 1, Category: "Cat", Name: "existing"}},
		},
		{
			name:      "blank lines and CRLF",
			text:      "\r\n  \r\nA,b,c\r\n",
			wantItems: []Item{{Category: "A", Name: "b", Description: "c"}},
		},
		{
			name:     "comma wins over tab",
			text:     "x\ty,z",
			fallback: "Cat",
			wantItems: []Item{
				{Category: "Cat", Name: "x\ty", Description: "z"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ParseBulkItems(tt.text, tt.fallback, existing)

			if len(report.Items) != len(tt.wantItems) {
				t.Fatalf("expected %d items, got %d: %+v", len(tt.wantItems), len(report.Items), report.Items)
			}
			for i, want := range tt.wantItems {
				got := report.Items[i]
				if got.Category != want.Category || got.Name != want.Name || got.Description != want.Description {
					t.Errorf("item %d: got %+v, want %+v", i, got, want)
				}
				if got.ID == "" {
					t.Errorf("item %d has no ID", i)
				}
			}

			if len(report.Errors) != len(tt.wantErrors) {
				t.Fatalf("expected errors %v, got %v", tt.wantErrors, report.Errors)
			}
			for i, want := range tt.wantErrors {
				if report.Errors[i] != want {
					t.Errorf("error %d: got %+v, want %+v", i, report.Errors[i], want)
				}
			}

			if len(report.Skipped) != len(tt.wantSkipped) {
				t.Fatalf("expected skipped %v, got %v", tt.wantSkipped, report.Skipped)
			}
			for i, want := range tt.wantSkipped {
				if report.Skipped[i] != want {
					t.Errorf("skipped %d: got %+v, want %+v", i, report.Skipped[i], want)
				}
			}
		})
	}
}

func TestBulkReport_Messages(t *testing.T) {
	report := ParseBulkItems("nothing here\nA,b,c\nA,b,c", "", nil)

	errs := report.ErrorMessages()
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "line 1:") {
		t.Errorf("unexpected error messages: %v", errs)
	}

	skipped := report.SkippedMessages()
	if len(skipped) != 1 || !strings.Contains(skipped[0], "line 3") || !strings.Contains(skipped[0], "A - b") {
		t.Errorf("unexpected skipped messages: %v", skipped)
	}
}
