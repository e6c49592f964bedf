package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/editor"
	"assessio/internal/adapters/tui"
	"assessio/internal/bootstrap"
)

func main() {
	// Logs would draw over the alt screen
	rt, err := bootstrap.Load(context.Background(), io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	app := tui.NewApp(rt.Workspace, editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		rt.Close()
		os.Exit(1)
	}
}
