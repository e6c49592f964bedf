package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/application"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

const (
	infoClient = iota
	infoManagementNumber
	infoEvaluator
	infoEntryDate
	infoPeriodStart
	infoPeriodEnd
)

// InfoModel edits the client and period details of the session
type InfoModel struct {
	ViewState
	ws   *application.Workspace
	form *InputForm
}

// NewInfoModel creates the basic info view
func NewInfoModel(ws *application.Workspace) *InfoModel {
	return &InfoModel{
		ws: ws,
		form: NewInputForm(
			NewInputField("Client (initials)", "T.Y", 50),
			NewInputField("Management number", "optional", 50),
			NewInputField("Evaluator", "Name", 50),
			NewInputField("Entry date", "YYYY-MM-DD", 10),
			NewInputField("Period start", "YYYY-MM-DD", 10),
			NewInputField("Period end", "YYYY-MM-DD", 10),
		),
	}
}

// Load fills the form from the session
func (m *InfoModel) Load() tea.Cmd {
	info := m.ws.Session().BasicInfo
	m.form.SetValue(infoClient, info.ClientName)
	m.form.SetValue(infoManagementNumber, info.ManagementNumber)
	m.form.SetValue(infoEvaluator, info.EvaluatorName)
	m.form.SetValue(infoEntryDate, info.EntryDate)
	m.form.SetValue(infoPeriodStart, info.PeriodStart)
	m.form.SetValue(infoPeriodEnd, info.PeriodEnd)
	m.form.SetFocus(infoClient)
	m.ClearMessage()
	return m.form.Init()
}

// Info returns the values currently in the form
func (m *InfoModel) Info() domain.BasicInfo {
	return domain.BasicInfo{
		ClientName:       m.form.Value(infoClient),
		ManagementNumber: m.form.Value(infoManagementNumber),
		EvaluatorName:    m.form.Value(infoEvaluator),
		EntryDate:        m.form.Value(infoEntryDate),
		PeriodStart:      m.form.Value(infoPeriodStart),
		PeriodEnd:        m.form.Value(infoPeriodEnd),
	}
}

// Update handles messages for the basic info form
func (m *InfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			return m, switchTo(SwitchToFormMsg{})
		case key.Matches(keyMsg, m.form.Keys.Submit):
			result, err := commands.NewSetBasicInfoCommand(m.ws, m.Info()).Execute(context.Background())
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, switchTo(SwitchToFormMsg{Message: result.Message})
		}
	}
	return m, m.form.Update(msg)
}

// View renders the basic info form
func (m *InfoModel) View() string {
	return NewViewBuilder().
		Title("Basic Info").
		Line(m.form.View()).
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("save")).
		String()
}
