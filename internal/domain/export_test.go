package domain

import "testing"

func TestBuildExport(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "B", Name: "zeta"},
		{ID: "2", Category: "A", Name: "beta"},
		{ID: "3", Category: "A", Name: "alpha"},
		{ID: "4", Category: "A", Name: "unscored"},
	}
	s := NewSession()
	_ = s.SetScore("1", 5)
	_ = s.SetScore("2", 2)
	_ = s.SetScore("3", 3)
	s.SetNote("2", "line one\r\nline  two\n\tend ")
	s.SetNote("4", "note without score")

	info := BasicInfo{ClientName: "TY"}
	export := BuildExport(items, s, info, nil)

	if export.BasicInfo != info {
		t.Errorf("basic info not carried over: %+v", export.BasicInfo)
	}
	if len(export.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(export.Rows), export.Rows)
	}

	want := []ExportRow{
		{Category: "A", ItemName: "alpha", Score: 3, ScoreLabel: "普通"},
		{Category: "A", ItemName: "beta", Score: 2, ScoreLabel: "支援が必要", Notes: "line one line two end"},
		{Category: "B", ItemName: "zeta", Score: 5, ScoreLabel: "非常に良好"},
	}
	for i := range want {
		if export.Rows[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, export.Rows[i], want[i])
		}
	}
}

func TestBuildExport_UsesComparator(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "a", Name: "x"},
		{ID: "2", Category: "b", Name: "x"},
	}
	s := NewSession()
	_ = s.SetScore("1", 1)
	_ = s.SetScore("2", 1)

	reverse := func(a, b string) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	}
	export := BuildExport(items, s, BasicInfo{}, reverse)
	if export.Rows[0].Category != "b" {
		t.Errorf("comparator not applied: %+v", export.Rows)
	}
}

func TestNormalizeNote(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"plain":           "plain",
		"a\nb":            "a b",
		"a\r\n\r\nb":      "a b",
		"  lead   trail ": "lead trail",
		"全角　空白":           "全角 空白",
	}
	for in, want := range tests {
		if got := NormalizeNote(in); got != want {
			t.Errorf("NormalizeNote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGroupResults(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "B", Name: "b1"},
		{ID: "2", Category: "A", Name: "a1"},
		{ID: "3", Category: "B", Name: "b2"},
	}
	s := NewSession()
	_ = s.SetScore("1", 1)
	_ = s.SetScore("2", 4)
	_ = s.SetScore("3", 5)

	groups := GroupResults(items, s)
	if len(groups) != 2 || groups[0].Category != "B" || groups[1].Category != "A" {
		t.Fatalf("groups should follow catalog order: %+v", groups)
	}
	if len(groups[0].Entries) != 2 || groups[0].Entries[1].Position != 2 {
		t.Errorf("unexpected entries in B: %+v", groups[0].Entries)
	}
	if groups[1].Entries[0].Criterion.Label != "良好" || groups[1].Entries[0].ChartColor != "#fd7e14" {
		t.Errorf("unexpected display attributes: %+v", groups[1].Entries[0])
	}
}

func TestCriteria(t *testing.T) {
	criteria := Criteria()
	if len(criteria) != 5 {
		t.Fatalf("expected 5 criteria, got %d", len(criteria))
	}
	for i, c := range criteria {
		if c.Score != i+1 {
			t.Errorf("criteria out of order at %d: %+v", i, c)
		}
	}
	if ScoreLabel(0) != "" || ValidScore(0) || !ValidScore(3) {
		t.Error("off-scale scores should have no label and be invalid")
	}
}
