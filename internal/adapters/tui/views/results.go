package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/application"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

// ResultsKeyMap defines key bindings for the results view
type ResultsKeyMap struct {
	Copy key.Binding
	Back key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy CSV")),
	Back: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

// ResultsModel shows the scored items per category with bar charts
type ResultsModel struct {
	ViewState
	ws      *application.Workspace
	results *commands.ResultsResult
}

// NewResultsModel creates the results view
func NewResultsModel(ws *application.Workspace) *ResultsModel {
	return &ResultsModel{ws: ws}
}

// Reload recomputes the results from the session
func (m *ResultsModel) Reload() {
	results, err := commands.NewResultsCommand(m.ws).Execute(context.Background())
	m.results = results
	m.SetError(err)
}

// Update handles messages for the results view
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, ResultsKeys.Back):
			return m, switchTo(SwitchToFormMsg{})
		case key.Matches(keyMsg, ResultsKeys.Copy):
			return m, switchTo(CopyCSVMsg{})
		}
	}
	return m, nil
}

// View renders the results
func (m *ResultsModel) View() string {
	v := NewViewBuilder().Title("Results")
	v.Line(RenderBasicInfo(m.ws.Session().BasicInfo))
	v.BlankLine()

	if m.results == nil || m.results.Scored == 0 {
		v.Muted("Nothing scored yet.")
	} else {
		for _, group := range m.results.Groups {
			v.Line(styles.Category.Render(group.Category))
			for _, e := range group.Entries {
				v.Line(fmt.Sprintf("  %s %d %-6s %s",
					RenderBar(e.Score), e.Score, e.Criterion.Label, e.Item.Name))
				if e.Note != "" {
					v.Muted("      " + domain.NormalizeNote(e.Note))
				}
			}
			v.BlankLine()
		}
		v.Line(fmt.Sprintf("%d / %d scored  average %.2f", m.results.Scored, m.results.Total, m.results.Average))
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(ResultsKeys.Copy, ResultsKeys.Back)
	return v.String()
}
