package domain

import (
	"slices"
	"strings"
)

// ExportRow is one scored item in tabular form
type ExportRow struct {
	Category   string
	ItemName   string
	Score      int
	ScoreLabel string
	Notes      string
}

// Export is an assessment ready for serialization
type Export struct {
	BasicInfo BasicInfo
	Rows      []ExportRow
}

// BuildExport turns the scored items of a session into rows sorted by
// category then item name using compare. Unscored items are left out.
// A nil compare falls back to byte order.
func BuildExport(items []Item, s *Session, info BasicInfo, compare func(a, b string) int) Export {
	if compare == nil {
		compare = strings.Compare
	}

	rows := make([]ExportRow, 0, len(s.Scores))
	for _, item := range items {
		score, ok := s.Score(item.ID)
		if !ok {
			continue
		}
		rows = append(rows, ExportRow{
			Category:   item.Category,
			ItemName:   item.Name,
			Score:      score,
			ScoreLabel: ScoreLabel(score),
			Notes:      NormalizeNote(s.Note(item.ID)),
		})
	}

	slices.SortStableFunc(rows, func(a, b ExportRow) int {
		if c := compare(a.Category, b.Category); c != 0 {
			return c
		}
		return compare(a.ItemName, b.ItemName)
	})

	return Export{BasicInfo: info, Rows: rows}
}

// NormalizeNote collapses line breaks and whitespace runs to single spaces
func NormalizeNote(note string) string {
	return strings.Join(strings.Fields(note), " ")
}

// ResultEntry is a scored item with its display attributes
type ResultEntry struct {
	Item       Item
	Position   int
	Score      int
	Criterion  Criterion
	ChartColor string
	Note       string
}

// ResultGroup holds the scored items of one category
type ResultGroup struct {
	Category string
	Entries  []ResultEntry
}

// GroupResults groups scored items by category, keeping catalog order
// for both categories and items
func GroupResults(items []Item, s *Session) []ResultGroup {
	var groups []ResultGroup
	index := make(map[string]int)
	for pos, item := range items {
		score, ok := s.Score(item.ID)
		if !ok {
			continue
		}
		criterion, _ := CriterionFor(score)
		entry := ResultEntry{
			Item:       item,
			Position:   pos,
			Score:      score,
			Criterion:  criterion,
			ChartColor: ChartColor(score),
			Note:       s.Note(item.ID),
		}
		gi, ok := index[item.Category]
		if !ok {
			gi = len(groups)
			index[item.Category] = gi
			groups = append(groups, ResultGroup{Category: item.Category})
		}
		groups[gi].Entries = append(groups[gi].Entries, entry)
	}
	return groups
}
