package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/csvexport"
	"assessio/internal/adapters/tui/views"
	"assessio/internal/application"
	"assessio/internal/application/commands"
	"assessio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewForm ViewState = iota
	ViewInfo
	ViewAddItem
	ViewBulk
	ViewHistory
	ViewResults
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ws     *application.Workspace
	editor ports.NoteEditor
	copy   func(string) error

	state   ViewState
	form    *views.FormModel
	info    *views.InfoModel
	addItem *views.AddItemModel
	bulk    *views.BulkModel
	history *views.HistoryModel
	results *views.ResultsModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil, which disables the
// external note editor.
func NewApp(ws *application.Workspace, ed ports.NoteEditor) *App {
	return &App{
		ws:      ws,
		editor:  ed,
		copy:    clipboard.WriteAll,
		state:   ViewForm,
		form:    views.NewFormModel(ws),
		info:    views.NewInfoModel(ws),
		addItem: views.NewAddItemModel(ws),
		bulk:    views.NewBulkModel(ws),
		history: views.NewHistoryModel(ws),
		results: views.NewResultsModel(ws),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetSize(msg.Width, msg.Height)
		a.info.SetSize(msg.Width, msg.Height)
		a.addItem.SetSize(msg.Width, msg.Height)
		a.bulk.SetSize(msg.Width, msg.Height)
		a.history.SetSize(msg.Width, msg.Height)
		a.results.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.Refresh()
		if msg.Message != "" {
			a.form.SetMessage(msg.Message, false)
		}
		return a, nil

	case views.SwitchToInfoMsg:
		a.state = ViewInfo
		return a, a.info.Load()

	case views.SwitchToAddItemMsg:
		a.state = ViewAddItem
		return a, a.addItem.Reset()

	case views.SwitchToBulkMsg:
		a.state = ViewBulk
		return a, a.bulk.Reset(msg.Category)

	case views.SwitchToHistoryMsg:
		a.state = ViewHistory
		a.history.ClearMessage()
		a.history.Reload()
		return a, nil

	case views.SwitchToResultsMsg:
		a.state = ViewResults
		a.results.ClearMessage()
		a.results.Reload()
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.CopyCSVMsg:
		a.copyCSV()
		return a, nil

	case views.EditNoteMsg:
		return a, a.openEditor(msg)

	case editorFinishedMsg:
		if msg.err != nil {
			a.form.SetError(msg.err)
			return a, nil
		}
		a.form.SaveNote(msg.itemID, msg.text)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewInfo:
		_, cmd = a.info.Update(msg)
	case ViewAddItem:
		_, cmd = a.addItem.Update(msg)
	case ViewBulk:
		_, cmd = a.bulk.Update(msg)
	case ViewHistory:
		_, cmd = a.history.Update(msg)
	case ViewResults:
		_, cmd = a.results.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// copyCSV puts the export on the clipboard and reports on the active view
func (a *App) copyCSV() {
	report := a.form.SetMessage
	if a.state == ViewResults {
		report = a.results.SetMessage
	}

	result, err := commands.NewExportCommand(a.ws).Execute(context.Background())
	if err != nil {
		report(err.Error(), true)
		return
	}
	if err := a.copy(csvexport.Encode(result.Export)); err != nil {
		report(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	name := csvexport.FileName(result.Export.BasicInfo, a.ws.Clock().Now())
	report(fmt.Sprintf("Copied %d rows as CSV (%s)", len(result.Export.Rows), name), false)
}

type editorFinishedMsg struct {
	itemID string
	text   string
	err    error
}

func (a *App) openEditor(msg views.EditNoteMsg) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("no editor configured")}
		}
	}

	cmd, finish, err := a.editor.Prepare(msg.Text)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		text, ferr := finish()
		if err != nil {
			return editorFinishedMsg{err: fmt.Errorf("editor exited: %w", err)}
		}
		return editorFinishedMsg{itemID: msg.Item.ID, text: text, err: ferr}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewInfo:
		return a.info.View()
	case ViewAddItem:
		return a.addItem.View()
	case ViewBulk:
		return a.bulk.View()
	case ViewHistory:
		return a.history.View()
	case ViewResults:
		return a.results.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.form.View()
	}
}
