package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/application"
	"assessio/internal/application/commands"
)

// AddItemModel registers a single catalog item
type AddItemModel struct {
	ViewState
	ws   *application.Workspace
	form *InputForm
}

// NewAddItemModel creates the add item view
func NewAddItemModel(ws *application.Workspace) *AddItemModel {
	return &AddItemModel{
		ws: ws,
		form: NewInputForm(
			NewInputField("Category", "生活", 50),
			NewInputField("Item", "食事", 100),
			NewInputField("Description", "What the item assesses", 300),
		),
	}
}

// Reset clears the form
func (m *AddItemModel) Reset() tea.Cmd {
	m.form.Reset()
	m.ClearMessage()
	return m.form.Init()
}

// Update handles messages for the add item form
func (m *AddItemModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			return m, switchTo(SwitchToFormMsg{})
		case key.Matches(keyMsg, m.form.Keys.Submit):
			result, err := commands.NewAddItemCommand(m.ws, m.form.Value(0), m.form.Value(1), m.form.Value(2)).
				Execute(context.Background())
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, switchTo(SwitchToFormMsg{Message: result.Message})
		}
	}
	return m, m.form.Update(msg)
}

// View renders the add item form
func (m *AddItemModel) View() string {
	return NewViewBuilder().
		Title("Add Item").
		Line(m.form.View()).
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("add")).
		String()
}

// BulkKeyMap defines key bindings for the bulk add view
type BulkKeyMap struct {
	Preview key.Binding
	Commit  key.Binding
	Focus   key.Binding
	Cancel  key.Binding
}

var BulkKeys = BulkKeyMap{
	Preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
	Commit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "register")),
	Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// BulkModel pastes many items at once, one per line
type BulkModel struct {
	ViewState
	ws       *application.Workspace
	category textinput.Model
	text     textarea.Model
	preview  string
}

// NewBulkModel creates the bulk add view
func NewBulkModel(ws *application.Workspace) *BulkModel {
	category := textinput.New()
	category.Placeholder = "Category for lines without one"
	category.CharLimit = 50

	text := textarea.New()
	text.Placeholder = "category,item,description\nitem｜description\nitem<TAB>description"
	text.SetHeight(10)
	text.SetWidth(70)
	text.ShowLineNumbers = true

	return &BulkModel{ws: ws, category: category, text: text}
}

// Reset clears the text and preselects category
func (m *BulkModel) Reset(category string) tea.Cmd {
	m.category.SetValue(category)
	m.category.Blur()
	m.text.Reset()
	m.preview = ""
	m.ClearMessage()
	return m.text.Focus()
}

// Update handles messages for the bulk add view
func (m *BulkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, BulkKeys.Cancel):
			return m, switchTo(SwitchToFormMsg{})
		case key.Matches(keyMsg, BulkKeys.Focus):
			if m.text.Focused() {
				m.text.Blur()
				return m, m.category.Focus()
			}
			m.category.Blur()
			return m, m.text.Focus()
		case key.Matches(keyMsg, BulkKeys.Preview):
			m.run(false)
			return m, nil
		case key.Matches(keyMsg, BulkKeys.Commit):
			if result := m.run(true); result != nil && result.Committed {
				return m, switchTo(SwitchToFormMsg{Message: result.Message})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.text.Focused() {
		m.text, cmd = m.text.Update(msg)
	} else {
		m.category, cmd = m.category.Update(msg)
	}
	return m, cmd
}

func (m *BulkModel) run(commit bool) *commands.BulkAddResult {
	result, err := commands.NewBulkAddCommand(m.ws, m.text.Value(), m.category.Value(), commit).
		Execute(context.Background())
	if err != nil {
		m.preview = ""
		m.SetError(err)
		return nil
	}
	m.preview = result.Details
	m.SetMessage(result.Message, len(result.Report.Items) == 0)
	return result
}

// View renders the bulk add view
func (m *BulkModel) View() string {
	v := NewViewBuilder().Title("Bulk Add")
	v.Line(styles.InputLabel.Render("Category"))
	if m.category.Focused() {
		v.Line(styles.InputFocused.Render(m.category.View()))
	} else {
		v.Line(styles.InputField.Render(m.category.View()))
	}
	v.Line(styles.InputLabel.Render("Items"))
	v.Line(m.text.View())
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	if m.preview != "" {
		v.Muted(strings.TrimSpace(m.preview))
		v.BlankLine()
	}
	v.Help(BulkKeys.Preview, BulkKeys.Commit, BulkKeys.Focus, BulkKeys.Cancel)
	return v.String()
}
