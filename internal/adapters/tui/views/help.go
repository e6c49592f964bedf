package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel lists the key bindings and the scoring scale
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, HelpKeys.Close) {
		return m, switchTo(SwitchToFormMsg{})
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n\n")

	section := func(title string, bindings ...key.Binding) {
		b.WriteString(styles.InputLabel.Render(title))
		b.WriteString("\n")
		for _, k := range bindings {
			b.WriteString(helpLine(k.Help().Key, k.Help().Desc))
		}
		b.WriteString("\n")
	}

	section("Navigation", FormKeys.Up, FormKeys.Down, FormKeys.PageUp, FormKeys.PageDown)
	section("Scoring", FormKeys.Score, FormKeys.Clear, FormKeys.Note, FormKeys.EditNote, FormKeys.Info)
	section("Catalog", FormKeys.Add, FormKeys.Bulk, FormKeys.Remove, FormKeys.MoveUp, FormKeys.MoveDown)
	section("Assessment", FormKeys.Save, FormKeys.History, FormKeys.Results, FormKeys.Copy, FormKeys.New)
	section("General", FormKeys.Help, FormKeys.Quit)

	b.WriteString(styles.InputLabel.Render("Scale"))
	b.WriteString("\n")
	for _, c := range domain.Criteria() {
		b.WriteString("  ")
		b.WriteString(RenderScore(c.Score))
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%s: %s", c.Label, c.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(keys, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(keys, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
