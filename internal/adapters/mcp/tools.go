// Package mcp exposes the assessment workspace as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"assessio/internal/application"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

// Tools serves tool calls against one workspace. The workspace is not safe
// for concurrent use, so every handler runs under the same lock.
type Tools struct {
	mu sync.Mutex
	ws *application.Workspace
}

// NewTools creates the tool set for ws
func NewTools(ws *application.Workspace) *Tools {
	return &Tools{ws: ws}
}

// Register adds every read and write tool to the server
func (t *Tools) Register(s *server.MCPServer) {
	t.RegisterReadTools(s)
	t.RegisterWriteTools(s)
}

func (t *Tools) locked(h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t.mu.Lock()
		defer t.mu.Unlock()
		return h(ctx, req)
	}
}

func (t *Tools) resolve(req mcp.CallToolRequest) (domain.Item, int, error) {
	return commands.ResolveItem(t.ws.Catalog(), req.GetString("item", ""))
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func text(format string, args ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf(format, args...)), nil
}

func formatItem(pos int, item domain.Item) string {
	return fmt.Sprintf("%d. [%s] %s - %s (id %s)", pos+1, item.Category, item.Name, item.Description, item.ID)
}

func formatLines(lines []string, empty string) (*mcp.CallToolResult, error) {
	if len(lines) == 0 {
		return mcp.NewToolResultText(empty), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

const itemParamHelp = "Item ID, or its 1-based position in list_items"
