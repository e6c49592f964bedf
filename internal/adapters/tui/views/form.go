package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/application"
	"assessio/internal/application/commands"
	"assessio/internal/domain"
)

// FormKeyMap defines key bindings for the assessment form
type FormKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Score      key.Binding
	Clear      key.Binding
	Note       key.Binding
	EditNote   key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Add        key.Binding
	Bulk       key.Binding
	Remove     key.Binding
	Info       key.Binding
	Save       key.Binding
	History    key.Binding
	Results    key.Binding
	Copy       key.Binding
	New        key.Binding
	Help       key.Binding
	Quit       key.Binding
	NoteSubmit key.Binding
	NoteCancel key.Binding
}

var FormKeys = FormKeyMap{
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Score:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "score")),
	Clear:      key.NewBinding(key.WithKeys("0", "backspace"), key.WithHelp("0", "clear score")),
	Note:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
	EditNote:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "note in editor")),
	MoveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Bulk:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bulk add")),
	Remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove item")),
	Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "basic info")),
	Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Results:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "results")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy CSV")),
	New:        key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new assessment")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NoteSubmit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save note")),
	NoteCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// FormModel is the main view: the catalog with the in-progress scores
type FormModel struct {
	ViewState
	ws      *application.Workspace
	pager   *Paginator
	confirm Confirmation

	note        textinput.Model
	editingNote bool
}

// NewFormModel creates the form view
func NewFormModel(ws *application.Workspace) *FormModel {
	note := textinput.New()
	note.Placeholder = "Note (empty removes it)"
	note.CharLimit = 1000

	m := &FormModel{ws: ws, pager: NewPaginator(15), note: note}
	m.Refresh()
	return m
}

// Init initializes the form
func (m *FormModel) Init() tea.Cmd {
	return nil
}

// Refresh re-reads the catalog size after it changed outside the view
func (m *FormModel) Refresh() {
	m.pager.SetTotal(m.ws.Catalog().Len())
}

// SetSize updates the view dimensions and the number of visible rows
func (m *FormModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - 12)
}

// Selected returns the item under the cursor
func (m *FormModel) Selected() (domain.Item, bool) {
	return m.ws.Catalog().At(m.pager.Cursor())
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editingNote {
			var cmd tea.Cmd
			m.note, cmd = m.note.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.confirm.Active() {
		return m, m.confirm.HandleKey(keyMsg)
	}
	if m.editingNote {
		return m, m.updateNote(keyMsg)
	}

	m.ClearMessage()
	ctx := context.Background()

	switch {
	case key.Matches(keyMsg, FormKeys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, FormKeys.Up):
		m.pager.CursorUp()
	case key.Matches(keyMsg, FormKeys.Down):
		m.pager.CursorDown()
	case key.Matches(keyMsg, FormKeys.PageUp):
		m.pager.PageUp()
	case key.Matches(keyMsg, FormKeys.PageDown):
		m.pager.PageDown()

	case key.Matches(keyMsg, FormKeys.Score):
		if item, ok := m.Selected(); ok {
			score := int(keyMsg.String()[0] - '0')
			result, err := commands.NewSetScoreCommand(m.ws, item.ID, score).Execute(ctx)
			m.report(result, err)
			if err == nil {
				m.pager.CursorDown()
			}
		}

	case key.Matches(keyMsg, FormKeys.Clear):
		if item, ok := m.Selected(); ok {
			result, err := commands.NewClearScoreCommand(m.ws, item.ID).Execute(ctx)
			m.report(result, err)
		}

	case key.Matches(keyMsg, FormKeys.Note):
		if item, ok := m.Selected(); ok {
			m.editingNote = true
			m.note.SetValue(m.ws.Session().Note(item.ID))
			m.note.CursorEnd()
			return m, m.note.Focus()
		}

	case key.Matches(keyMsg, FormKeys.EditNote):
		if item, ok := m.Selected(); ok {
			text := m.ws.Session().Note(item.ID)
			return m, func() tea.Msg { return EditNoteMsg{Item: item, Text: text} }
		}

	case key.Matches(keyMsg, FormKeys.MoveUp):
		m.move(ctx, -1)
	case key.Matches(keyMsg, FormKeys.MoveDown):
		m.move(ctx, 1)

	case key.Matches(keyMsg, FormKeys.Remove):
		if item, ok := m.Selected(); ok {
			pos := m.pager.Cursor()
			m.confirm.Ask(fmt.Sprintf("Remove %s - %s and its score?", item.Category, item.Name), func() tea.Cmd {
				result, err := commands.NewRemoveItemCommand(m.ws, pos).Execute(context.Background())
				if err != nil {
					m.SetError(err)
				} else {
					m.SetMessage(result.Message, false)
				}
				m.Refresh()
				return nil
			})
		}

	case key.Matches(keyMsg, FormKeys.New):
		m.confirm.Ask("Discard the current assessment and start a new one?", func() tea.Cmd {
			result, err := commands.NewNewAssessmentCommand(m.ws).Execute(context.Background())
			m.report(result, err)
			m.pager.SetCursor(0)
			return nil
		})

	case key.Matches(keyMsg, FormKeys.Save):
		result, err := commands.NewSaveAssessmentCommand(m.ws).Execute(ctx)
		if err != nil {
			m.SetError(err)
		} else {
			m.SetMessage(result.Message, false)
		}

	case key.Matches(keyMsg, FormKeys.Add):
		return m, switchTo(SwitchToAddItemMsg{})
	case key.Matches(keyMsg, FormKeys.Bulk):
		category := ""
		if item, ok := m.Selected(); ok {
			category = item.Category
		}
		return m, switchTo(SwitchToBulkMsg{Category: category})
	case key.Matches(keyMsg, FormKeys.Info):
		return m, switchTo(SwitchToInfoMsg{})
	case key.Matches(keyMsg, FormKeys.History):
		return m, switchTo(SwitchToHistoryMsg{})
	case key.Matches(keyMsg, FormKeys.Results):
		return m, switchTo(SwitchToResultsMsg{})
	case key.Matches(keyMsg, FormKeys.Copy):
		return m, switchTo(CopyCSVMsg{})
	case key.Matches(keyMsg, FormKeys.Help):
		return m, switchTo(SwitchToHelpMsg{})
	}

	return m, nil
}

func (m *FormModel) updateNote(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, FormKeys.NoteCancel):
		m.editingNote = false
		m.note.Blur()
		return nil
	case key.Matches(msg, FormKeys.NoteSubmit):
		m.editingNote = false
		m.note.Blur()
		if item, ok := m.Selected(); ok {
			m.SaveNote(item.ID, m.note.Value())
		}
		return nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return cmd
}

// SaveNote stores the note of an item and reports the outcome
func (m *FormModel) SaveNote(itemID, text string) {
	result, err := commands.NewSetNoteCommand(m.ws, itemID, text).Execute(context.Background())
	m.report(result, err)
}

func (m *FormModel) move(ctx context.Context, delta int) {
	from := m.pager.Cursor()
	result, err := commands.NewMoveItemCommand(m.ws, from, from+delta).Execute(ctx)
	if err != nil {
		m.SetError(err)
		return
	}
	if result.Moved {
		m.pager.SetCursor(from + delta)
	}
}

func (m *FormModel) report(result *commands.SessionResult, err error) {
	if err != nil {
		m.SetError(err)
		return
	}
	m.SetMessage(result.Message, false)
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the form
func (m *FormModel) View() string {
	v := NewViewBuilder().Title("Assessment")
	v.Line(RenderBasicInfo(m.ws.Session().BasicInfo))
	v.BlankLine()

	items := m.ws.Catalog().Items()
	if len(items) == 0 {
		v.Muted("The catalog is empty. Press a to add an item.")
	}

	start, end := m.pager.VisibleRange()
	prevCategory := ""
	if start > 0 {
		prevCategory = items[start-1].Category
	}
	for i := start; i < end; i++ {
		item := items[i]
		if i == start || item.Category != prevCategory {
			v.Line(styles.Category.Render(item.Category))
			prevCategory = item.Category
		}
		v.Line(m.renderRow(i, item))
	}

	scored := len(m.ws.Session().Scores)
	v.BlankLine()
	v.Muted(fmt.Sprintf("%d / %d scored  average %.2f", scored, len(items), domain.AverageScore(m.ws.Session().Scores)))

	if m.editingNote {
		v.BlankLine()
		v.Line(styles.InputLabel.Render("Note"))
		v.Line(styles.InputFocused.Render(m.note.View()))
		v.Help(FormKeys.NoteSubmit, FormKeys.NoteCancel)
		return v.String()
	}

	if m.confirm.Active() {
		v.BlankLine().Line(m.confirm.View())
	}
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(FormKeys.Score, FormKeys.Note, FormKeys.Info, FormKeys.Save, FormKeys.History, FormKeys.Results, FormKeys.Help, FormKeys.Quit)
	return v.String()
}

func (m *FormModel) renderRow(pos int, item domain.Item) string {
	session := m.ws.Session()
	score, _ := session.Score(item.ID)

	name := fmt.Sprintf("%2d. %s", pos+1, item.Name)
	if pos == m.pager.Cursor() {
		name = styles.ItemSelected.Render(name)
	} else {
		name = styles.ItemName.Render(name)
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(RenderScore(score))
	b.WriteString(" ")
	b.WriteString(name)
	if label := domain.ScoreLabel(score); label != "" {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(label))
	}
	if note := session.Note(item.ID); note != "" {
		b.WriteString(" ")
		b.WriteString(styles.NoteMark.Render("✎ " + domain.NormalizeNote(note)))
	}
	if pos == m.pager.Cursor() && item.Description != "" {
		b.WriteString("\n      ")
		b.WriteString(styles.MutedText.Render(item.Description))
	}
	return b.String()
}
