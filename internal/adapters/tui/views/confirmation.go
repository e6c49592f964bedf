package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"assessio/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys are the y/n bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is an inline yes/no prompt embedded in a view. While it is
// active the view routes key presses to it.
type Confirmation struct {
	Question string
	Keys     ConfirmKeyMap

	onConfirm func() tea.Cmd
}

// Ask activates the prompt
func (c *Confirmation) Ask(question string, onConfirm func() tea.Cmd) {
	c.Question = question
	c.onConfirm = onConfirm
	if c.Keys.Confirm.Keys() == nil {
		c.Keys = DefaultConfirmKeys
	}
}

// Active reports whether a question is pending
func (c *Confirmation) Active() bool {
	return c.onConfirm != nil
}

// HandleKey answers the pending question. Other keys are swallowed.
func (c *Confirmation) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		confirm := c.onConfirm
		c.onConfirm = nil
		return confirm()
	case key.Matches(msg, c.Keys.Cancel):
		c.onConfirm = nil
	}
	return nil
}

// View renders the prompt
func (c *Confirmation) View() string {
	if !c.Active() {
		return ""
	}
	var b strings.Builder
	b.WriteString(c.Question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
