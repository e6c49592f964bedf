package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/application"
	"assessio/internal/application/commands"
)

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Load   key.Binding
	Delete key.Binding
	Back   key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Load:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

// HistoryModel lists the saved assessments of the session's client
type HistoryModel struct {
	ViewState
	ws      *application.Workspace
	pager   *Paginator
	confirm Confirmation
	list    *commands.ListRecordsResult
}

// NewHistoryModel creates the history view
func NewHistoryModel(ws *application.Workspace) *HistoryModel {
	return &HistoryModel{ws: ws, pager: NewPaginator(10)}
}

// Reload reads the history of the current client
func (m *HistoryModel) Reload() {
	list, err := commands.NewListRecordsCommand(m.ws, "").Execute(context.Background())
	if err != nil {
		m.list = nil
		m.pager.SetTotal(0)
		m.SetError(err)
		return
	}
	m.list = list
	m.pager.SetTotal(len(list.Records))
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.confirm.Active() {
		return m, m.confirm.HandleKey(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, HistoryKeys.Back):
		return m, switchTo(SwitchToFormMsg{})
	case key.Matches(keyMsg, HistoryKeys.Up):
		m.pager.CursorUp()
	case key.Matches(keyMsg, HistoryKeys.Down):
		m.pager.CursorDown()

	case key.Matches(keyMsg, HistoryKeys.Load):
		summary, ok := m.selected()
		if !ok {
			return m, nil
		}
		result, err := commands.NewLoadRecordCommand(m.ws, m.list.ClientName, summary.Record.ID).Execute(context.Background())
		if err != nil {
			m.SetError(err)
			return m, nil
		}
		return m, switchTo(SwitchToFormMsg{Message: result.Message})

	case key.Matches(keyMsg, HistoryKeys.Delete):
		summary, ok := m.selected()
		if !ok {
			return m, nil
		}
		id := summary.Record.ID
		m.confirm.Ask(fmt.Sprintf("Delete the assessment of %s?", summary.Record.BasicInfo.EntryDate), func() tea.Cmd {
			result, err := commands.NewDeleteRecordCommand(m.ws, m.list.ClientName, id).Execute(context.Background())
			m.Reload()
			if err != nil {
				m.SetError(err)
			} else {
				m.SetMessage(result.Message, false)
			}
			return nil
		})
	}
	return m, nil
}

func (m *HistoryModel) selected() (commands.RecordSummary, bool) {
	if m.list == nil || len(m.list.Records) == 0 {
		return commands.RecordSummary{}, false
	}
	return m.list.Records[m.pager.Cursor()], true
}

// View renders the history
func (m *HistoryModel) View() string {
	v := NewViewBuilder().Title("Past Assessments")

	if m.list == nil || len(m.list.Records) == 0 {
		if m.list != nil {
			v.Muted(m.list.Message)
		}
	} else {
		v.Line(styles.Subtitle.Render(m.list.Message))
		v.BlankLine()
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			s := m.list.Records[i]
			info := s.Record.BasicInfo
			line := fmt.Sprintf("%s  %s ~ %s  %s  avg %s  (%d items)",
				info.EntryDate, info.PeriodStart, info.PeriodEnd, info.EvaluatorName,
				s.AverageText(), len(s.Record.Scores))
			if s.Loaded {
				line += "  [loaded]"
			}
			if i == m.pager.Cursor() {
				line = styles.ItemSelected.Render(line)
			}
			v.Line(line)
		}
	}

	if m.confirm.Active() {
		v.BlankLine().Line(m.confirm.View())
	}
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(HistoryKeys.Load, HistoryKeys.Delete, HistoryKeys.Back)
	return v.String()
}
