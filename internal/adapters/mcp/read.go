package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"assessio/internal/adapters/csvexport"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

// RegisterReadTools adds the tools that only read the workspace
func (t *Tools) RegisterReadTools(s *server.MCPServer) {
	s.AddTool(listItemsTool(), t.locked(t.listItemsHandler))
	s.AddTool(searchItemsTool(), t.locked(t.searchItemsHandler))
	s.AddTool(criteriaTool(), criteriaHandler)
	s.AddTool(sessionTool(), t.locked(t.sessionHandler))
	s.AddTool(listRecordsTool(), t.locked(t.listRecordsHandler))
	s.AddTool(chartDataTool(), t.locked(t.chartDataHandler))
	s.AddTool(exportCSVTool(), t.locked(t.exportCSVHandler))
}

// --- list_items ---

func listItemsTool() mcp.Tool {
	return mcp.NewTool("list_items",
		mcp.WithDescription("List the catalog in order with the current score and note of each item."),
	)
}

func (t *Tools) listItemsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewListItemsCommand(t.ws).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	lines := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		line := formatItem(e.Position, e.Item)
		if e.Score > 0 {
			line += fmt.Sprintf(" score %d (%s)", e.Score, domain.ScoreLabel(e.Score))
		}
		if e.Note != "" {
			line += " note: " + domain.NormalizeNote(e.Note)
		}
		lines = append(lines, line)
	}
	return formatLines(lines, "The catalog is empty.")
}

// --- search_items ---

func searchItemsTool() mcp.Tool {
	return mcp.NewTool("search_items",
		mcp.WithDescription("Fuzzy search the catalog by item name, category or description."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func (t *Tools) searchItemsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return toolError(fmt.Errorf("query is required"))
	}
	results, err := commands.NewSearchItemsCommand(t.ws, query).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, formatItem(r.Position, r.Item))
	}
	return formatLines(lines, "No results found.")
}

// --- criteria ---

func criteriaTool() mcp.Tool {
	return mcp.NewTool("criteria",
		mcp.WithDescription("Describe the 1-5 scoring scale."),
	)
}

func criteriaHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var lines []string
	for _, c := range domain.Criteria() {
		lines = append(lines, fmt.Sprintf("%d %s: %s", c.Score, c.Label, c.Description))
	}
	return formatLines(lines, "")
}

// --- session ---

func sessionTool() mcp.Tool {
	return mcp.NewTool("session",
		mcp.WithDescription("Show the basic info and progress of the assessment in progress."),
	)
}

func (t *Tools) sessionHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := t.ws.Session()
	info := s.BasicInfo
	var sb strings.Builder
	fmt.Fprintf(&sb, "client: %s\n", info.ClientName)
	fmt.Fprintf(&sb, "management number: %s\n", info.ManagementNumber)
	fmt.Fprintf(&sb, "evaluator: %s\n", info.EvaluatorName)
	fmt.Fprintf(&sb, "entry date: %s\n", info.EntryDate)
	fmt.Fprintf(&sb, "period: %s ~ %s\n", info.PeriodStart, info.PeriodEnd)
	fmt.Fprintf(&sb, "scored: %d / %d, average %.2f", len(s.Scores), t.ws.Catalog().Len(), domain.AverageScore(s.Scores))
	if s.LoadedRecordID != 0 {
		fmt.Fprintf(&sb, "\nloaded record: %d", s.LoadedRecordID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- list_records ---

func listRecordsTool() mcp.Tool {
	return mcp.NewTool("list_records",
		mcp.WithDescription("List the saved assessments of a client, newest first."),
		mcp.WithString("client",
			mcp.Description("Client name. Omit to use the client of the current assessment."),
		),
	)
}

func (t *Tools) listRecordsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewListRecordsCommand(t.ws, req.GetString("client", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	lines := []string{result.Message}
	for _, s := range result.Records {
		info := s.Record.BasicInfo
		line := fmt.Sprintf("%d  %s  %s ~ %s  %s  average %s",
			s.Record.ID, info.EntryDate, info.PeriodStart, info.PeriodEnd, info.EvaluatorName, s.AverageText())
		if s.Loaded {
			line += "  (loaded)"
		}
		lines = append(lines, line)
	}
	return formatLines(lines, "")
}

// --- chart_data ---

type chartBar struct {
	Item  string `json:"item"`
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type chartSeries struct {
	Category string     `json:"category"`
	Bars     []chartBar `json:"bars"`
	FileName string     `json:"fileName"`
}

func chartDataTool() mcp.Tool {
	return mcp.NewTool("chart_data",
		mcp.WithDescription("Per-category bar chart series of the current scores as JSON, with suggested image file names."),
	)
}

func (t *Tools) chartDataHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, err := commands.NewResultsCommand(t.ws).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	now := t.ws.Clock().Now()
	series := make([]chartSeries, 0, len(results.Groups))
	for _, g := range results.Groups {
		cs := chartSeries{Category: g.Category, FileName: csvexport.ChartFileName(g.Category, now)}
		for _, e := range g.Entries {
			cs.Bars = append(cs.Bars, chartBar{Item: e.Item.Name, Score: e.Score, Label: e.Criterion.Label, Color: e.ChartColor})
		}
		series = append(series, cs)
	}
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// --- export_csv ---

func exportCSVTool() mcp.Tool {
	return mcp.NewTool("export_csv",
		mcp.WithDescription("Export the scored items of the current assessment as CSV. The first line is the suggested file name."),
	)
}

func (t *Tools) exportCSVHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewExportCommand(t.ws).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	name := csvexport.FileName(result.Export.BasicInfo, t.ws.Clock().Now())
	return text("%s\n%s", name, strings.TrimPrefix(csvexport.Encode(result.Export), "\uFEFF"))
}
