package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

// RegisterWriteTools adds the tools that change the catalog, the session or
// the saved records
func (t *Tools) RegisterWriteTools(s *server.MCPServer) {
	s.AddTool(addItemTool(), t.locked(t.addItemHandler))
	s.AddTool(bulkAddTool(), t.locked(t.bulkAddHandler))
	s.AddTool(removeItemTool(), t.locked(t.removeItemHandler))
	s.AddTool(moveItemTool(), t.locked(t.moveItemHandler))
	s.AddTool(scoreTool(), t.locked(t.scoreHandler))
	s.AddTool(clearScoreTool(), t.locked(t.clearScoreHandler))
	s.AddTool(noteTool(), t.locked(t.noteHandler))
	s.AddTool(setBasicInfoTool(), t.locked(t.setBasicInfoHandler))
	s.AddTool(saveAssessmentTool(), t.locked(t.saveAssessmentHandler))
	s.AddTool(loadRecordTool(), t.locked(t.loadRecordHandler))
	s.AddTool(deleteRecordTool(), t.locked(t.deleteRecordHandler))
	s.AddTool(newAssessmentTool(), t.locked(t.newAssessmentHandler))
}

// --- add_item ---

func addItemTool() mcp.Tool {
	return mcp.NewTool("add_item",
		mcp.WithDescription("Add an item to the end of the catalog. Category and name together must be unique."),
		mcp.WithString("category", mcp.Description("Category name"), mcp.Required()),
		mcp.WithString("name", mcp.Description("Item name"), mcp.Required()),
		mcp.WithString("description", mcp.Description("What the item assesses"), mcp.Required()),
	)
}

func (t *Tools) addItemHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewAddItemCommand(t.ws,
		req.GetString("category", ""),
		req.GetString("name", ""),
		req.GetString("description", ""),
	).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- bulk_add ---

func bulkAddTool() mcp.Tool {
	return mcp.NewTool("bulk_add",
		mcp.WithDescription(`Add many items, one per line. A line is "category,name,description", `+
			`"name,description", "name｜description" or "name<TAB>description"; the short forms take the category argument. `+
			`Duplicates are skipped. Set preview to check the input without adding anything.`),
		mcp.WithString("text", mcp.Description("Items, one per line"), mcp.Required()),
		mcp.WithString("category", mcp.Description("Category for lines that do not name one")),
		mcp.WithBoolean("preview", mcp.Description("Only report what would be added")),
	)
}

func (t *Tools) bulkAddHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commit := !req.GetBool("preview", false)
	result, err := commands.NewBulkAddCommand(t.ws, req.GetString("text", ""), req.GetString("category", ""), commit).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if result.Details == "" {
		return mcp.NewToolResultText(result.Message), nil
	}
	return text("%s\n\n%s", result.Message, result.Details)
}

// --- remove_item ---

func removeItemTool() mcp.Tool {
	return mcp.NewTool("remove_item",
		mcp.WithDescription("Remove an item from the catalog together with its score and note."),
		mcp.WithString("item", mcp.Description(itemParamHelp), mcp.Required()),
	)
}

func (t *Tools) removeItemHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, pos, err := t.resolve(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewRemoveItemCommand(t.ws, pos).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- move_item ---

func moveItemTool() mcp.Tool {
	return mcp.NewTool("move_item",
		mcp.WithDescription("Move an item to another position in the catalog."),
		mcp.WithString("item", mcp.Description(itemParamHelp), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("1-based target position"), mcp.Required()),
	)
}

func (t *Tools) moveItemHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, from, err := t.resolve(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewMoveItemCommand(t.ws, from, req.GetInt("to", 0)-1).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- score ---

func scoreTool() mcp.Tool {
	return mcp.NewTool("score",
		mcp.WithDescription("Score an item from 1 (very difficult) to 5 (very good). See the criteria tool."),
		mcp.WithString("item", mcp.Description(itemParamHelp), mcp.Required()),
		mcp.WithNumber("score", mcp.Description("Score from 1 to 5"), mcp.Required()),
	)
}

func (t *Tools) scoreHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, _, err := t.resolve(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewSetScoreCommand(t.ws, item.ID, req.GetInt("score", 0)).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- clear_score ---

func clearScoreTool() mcp.Tool {
	return mcp.NewTool("clear_score",
		mcp.WithDescription("Remove the score of an item."),
		mcp.WithString("item", mcp.Description(itemParamHelp), mcp.Required()),
	)
}

func (t *Tools) clearScoreHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, _, err := t.resolve(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewClearScoreCommand(t.ws, item.ID).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- note ---

func noteTool() mcp.Tool {
	return mcp.NewTool("note",
		mcp.WithDescription("Set the free-text note of an item. Empty text removes the note."),
		mcp.WithString("item", mcp.Description(itemParamHelp), mcp.Required()),
		mcp.WithString("text", mcp.Description("Note text")),
	)
}

func (t *Tools) noteHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, _, err := t.resolve(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewSetNoteCommand(t.ws, item.ID, req.GetString("text", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- set_basic_info ---

func setBasicInfoTool() mcp.Tool {
	return mcp.NewTool("set_basic_info",
		mcp.WithDescription("Set the client and period of the current assessment. Omitted fields keep their value."),
		mcp.WithString("client", mcp.Description("Client name or initials")),
		mcp.WithString("management_number", mcp.Description("Management number")),
		mcp.WithString("evaluator", mcp.Description("Evaluator name")),
		mcp.WithString("entry_date", mcp.Description("Entry date, YYYY-MM-DD")),
		mcp.WithString("period_start", mcp.Description("Period start, YYYY-MM-DD")),
		mcp.WithString("period_end", mcp.Description("Period end, YYYY-MM-DD")),
	)
}

func (t *Tools) setBasicInfoHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := t.ws.Session().BasicInfo
	info = domain.BasicInfo{
		ClientName:       req.GetString("client", info.ClientName),
		ManagementNumber: req.GetString("management_number", info.ManagementNumber),
		EvaluatorName:    req.GetString("evaluator", info.EvaluatorName),
		EntryDate:        req.GetString("entry_date", info.EntryDate),
		PeriodStart:      req.GetString("period_start", info.PeriodStart),
		PeriodEnd:        req.GetString("period_end", info.PeriodEnd),
	}
	result, err := commands.NewSetBasicInfoCommand(t.ws, info).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- save_assessment ---

func saveAssessmentTool() mcp.Tool {
	return mcp.NewTool("save_assessment",
		mcp.WithDescription("Save the current assessment to the client's history. Requires client, evaluator, entry date, period and at least one score."),
	)
}

func (t *Tools) saveAssessmentHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewSaveAssessmentCommand(t.ws).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- load_record ---

func loadRecordTool() mcp.Tool {
	return mcp.NewTool("load_record",
		mcp.WithDescription("Load a saved assessment into the current session. The catalog is replaced by the items it was saved with."),
		mcp.WithString("id", mcp.Description("Record ID from list_records"), mcp.Required()),
		mcp.WithString("client", mcp.Description("Client name. Omit to use the client of the current assessment.")),
	)
}

func (t *Tools) loadRecordHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := recordID(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewLoadRecordCommand(t.ws, req.GetString("client", ""), id).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- delete_record ---

func deleteRecordTool() mcp.Tool {
	return mcp.NewTool("delete_record",
		mcp.WithDescription("Delete a saved assessment."),
		mcp.WithString("id", mcp.Description("Record ID from list_records"), mcp.Required()),
		mcp.WithString("client", mcp.Description("Client name. Omit to use the client of the current assessment.")),
	)
}

func (t *Tools) deleteRecordHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := recordID(req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewDeleteRecordCommand(t.ws, req.GetString("client", ""), id).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- new_assessment ---

func newAssessmentTool() mcp.Tool {
	return mcp.NewTool("new_assessment",
		mcp.WithDescription("Discard the current scores, notes and basic info and start over."),
	)
}

func (t *Tools) newAssessmentHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewNewAssessmentCommand(t.ws).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// recordID reads the id argument. Record IDs are millisecond timestamps and
// exceed the precision of JSON numbers in some clients, so they travel as strings.
func recordID(req mcp.CallToolRequest) (int64, error) {
	raw := req.GetString("id", "")
	var id int64
	if _, err := fmt.Sscan(raw, &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", raw)
	}
	return id, nil
}
