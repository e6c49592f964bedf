package commands

import (
	"context"

	"assessio/internal/application"
	"assessio/internal/domain"
)

// ExportResult contains the rows ready for serialization
type ExportResult struct {
	Export  domain.Export
	Average float64
	Message string
}

// ExportCommand builds export rows from the session and catalog, ordered
// with the workspace collator
type ExportCommand struct {
	ws *application.Workspace
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(ws *application.Workspace) *ExportCommand {
	return &ExportCommand{ws: ws}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	session := c.ws.Session()
	if !session.HasScores() {
		return nil, &application.ValidationError{Field: "scores", Message: "nothing scored to export"}
	}

	export := domain.BuildExport(c.ws.Catalog().Items(), session, session.BasicInfo, c.ws.Compare)
	c.ws.Metrics().ExportBuilt()

	return &ExportResult{
		Export:  export,
		Average: domain.AverageScore(session.Scores),
		Message: "Export ready",
	}, nil
}

// ResultsResult contains scored items grouped by category in catalog order
type ResultsResult struct {
	Groups  []domain.ResultGroup
	Average float64
	Scored  int
	Total   int
}

// ResultsCommand groups the session's scores for the results and chart views
type ResultsCommand struct {
	ws *application.Workspace
}

// NewResultsCommand creates a new ResultsCommand
func NewResultsCommand(ws *application.Workspace) *ResultsCommand {
	return &ResultsCommand{ws: ws}
}

// Execute runs the results command
func (c *ResultsCommand) Execute(ctx context.Context) (*ResultsResult, error) {
	session := c.ws.Session()
	items := c.ws.Catalog().Items()
	return &ResultsResult{
		Groups:  domain.GroupResults(items, session),
		Average: domain.AverageScore(session.Scores),
		Scored:  len(session.Scores),
		Total:   len(items),
	}, nil
}
