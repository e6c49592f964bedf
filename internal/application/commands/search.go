package commands

import (
	"context"
	"slices"
	"strings"

	"assessio/internal/application"
	"assessio/internal/domain"
)

// SearchResult is a catalog item with its position and relevance score
type SearchResult struct {
	Item     domain.Item
	Position int
	Score    int
}

// SearchItemsCommand searches the catalog with fuzzy matching
type SearchItemsCommand struct {
	ws    *application.Workspace
	Query string
}

// NewSearchItemsCommand creates a new SearchItemsCommand
func NewSearchItemsCommand(ws *application.Workspace, query string) *SearchItemsCommand {
	return &SearchItemsCommand{
		ws:    ws,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchItemsCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if query == "" {
		return nil, nil
	}
	return FuzzySort(c.ws.Catalog().Items(), query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match ranks highest
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: query runes must appear in order
	t := []rune(target)
	q := []rune(query)
	score := 0
	qi := 0
	prev := -1

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}
		if prev == i-1 {
			score += 10 // consecutive
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && isSeparator(t[i-1]) {
			score += 10
		}
		score++
		prev = i
		qi++
	}

	if qi == len(q) {
		return score
	}
	return 0
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '-', '.', '・', '　', '（', '(':
		return true
	}
	return false
}

// FuzzySort scores items by category, name and description and drops non-matches
func FuzzySort(items []domain.Item, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(items))

	for pos, item := range items {
		best := max(
			FuzzyScore(item.Name, query),
			FuzzyScore(item.Category, query),
			FuzzyScore(item.Description, query)/2,
		)
		if best > 0 {
			scored = append(scored, SearchResult{Item: item, Position: pos, Score: best})
		}
	}

	slices.SortStableFunc(scored, func(a, b SearchResult) int {
		return b.Score - a.Score
	})
	return scored
}
