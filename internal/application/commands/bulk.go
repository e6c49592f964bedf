package commands

import (
	"context"
	"fmt"
	"strings"

	"assessio/internal/application"
	"assessio/internal/domain"
	"assessio/pkg/logger"
)

// maxBulkDetails caps how many skipped or errored lines a summary lists
const maxBulkDetails = 5

// BulkAddResult contains the parse report and what was committed
type BulkAddResult struct {
	Report    domain.BulkReport
	Committed bool
	Summary   string
	Details   string
	Message   string
}

// BulkAddCommand parses free-form text into items and, when Commit is set,
// appends the accepted items to the catalog. Without Commit it is a preview.
type BulkAddCommand struct {
	ws               *application.Workspace
	Text             string
	FallbackCategory string
	Commit           bool
}

// NewBulkAddCommand creates a new BulkAddCommand
func NewBulkAddCommand(ws *application.Workspace, text, fallbackCategory string, commit bool) *BulkAddCommand {
	return &BulkAddCommand{
		ws:               ws,
		Text:             text,
		FallbackCategory: fallbackCategory,
		Commit:           commit,
	}
}

// Validate rejects blank input, and input that has no way to get a category
func (c *BulkAddCommand) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return &application.ValidationError{Field: "text", Message: "no items to add"}
	}
	if !strings.Contains(c.Text, ",") && strings.TrimSpace(c.FallbackCategory) == "" {
		return &application.ValidationError{
			Field:   "category",
			Message: `choose a category or use the "category,name,description" form`,
		}
	}
	return nil
}

// Execute runs the bulk add command
func (c *BulkAddCommand) Execute(ctx context.Context) (*BulkAddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	report := domain.ParseBulkItems(c.Text, c.FallbackCategory, c.ws.Catalog().Items())
	result := &BulkAddResult{
		Report:  report,
		Summary: BulkSummary(report),
		Details: BulkDetails(report),
	}

	if len(report.Items) == 0 {
		result.Message = "No items can be added"
		return result, nil
	}
	if !c.Commit {
		result.Message = result.Summary
		return result, nil
	}

	err := c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, _ *domain.Session) error {
		for _, item := range report.Items {
			if err := catalog.Add(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add items: %w", err)
	}

	c.ws.Metrics().ItemsAdded(len(report.Items))
	c.ws.Metrics().BulkLines(len(report.Items), len(report.Skipped), len(report.Errors))
	c.ws.Logger().Info(ctx, "bulk items added",
		logger.Int("added", len(report.Items)),
		logger.Int("skipped", len(report.Skipped)),
		logger.Int("errors", len(report.Errors)))

	result.Committed = true
	result.Message = result.Summary + ": items registered"
	return result, nil
}

// BulkSummary renders "added N / skipped N / errors N", omitting zero counts
// of skipped and errored lines
func BulkSummary(r domain.BulkReport) string {
	summary := fmt.Sprintf("added %d", len(r.Items))
	if len(r.Skipped) > 0 {
		summary += fmt.Sprintf(" / skipped %d", len(r.Skipped))
	}
	if len(r.Errors) > 0 {
		summary += fmt.Sprintf(" / errors %d", len(r.Errors))
	}
	return summary
}

// BulkDetails lists the first skipped and errored lines
func BulkDetails(r domain.BulkReport) string {
	var b strings.Builder
	writeSection(&b, "Skipped (duplicates)", r.SkippedMessages())
	writeSection(&b, "Errors", r.ErrorMessages())
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString(":\n")
	shown := lines
	if len(shown) > maxBulkDetails {
		shown = shown[:maxBulkDetails]
	}
	for _, line := range shown {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if extra := len(lines) - len(shown); extra > 0 {
		fmt.Fprintf(b, "...and %d more\n", extra)
	}
	b.WriteString("\n")
}
