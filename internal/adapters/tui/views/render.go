package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"assessio/internal/adapters/tui/styles"
	"assessio/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderScore renders the score badge of an item, or a dash when unscored
func RenderScore(score int) string {
	if !domain.ValidScore(score) {
		return styles.Unscored.Render(" - ")
	}
	return styles.ScoreBadge(score).Render(fmt.Sprintf("%d", score))
}

// RenderBar renders a horizontal chart bar, two cells per point
func RenderBar(score int) string {
	if !domain.ValidScore(score) {
		return ""
	}
	return styles.ChartBar(score).Render(strings.Repeat("██", score)) +
		strings.Repeat("  ", domain.MaxScore-score)
}

// RenderBasicInfo renders the client line shown above the form and results
func RenderBasicInfo(info domain.BasicInfo) string {
	client := info.ClientName
	if client == "" {
		client = "(no client)"
	}
	parts := []string{client}
	if info.EntryDate != "" {
		parts = append(parts, info.EntryDate)
	}
	if info.PeriodStart != "" || info.PeriodEnd != "" {
		parts = append(parts, info.PeriodStart+" ~ "+info.PeriodEnd)
	}
	if info.EvaluatorName != "" {
		parts = append(parts, info.EvaluatorName)
	}
	return styles.Subtitle.Render(strings.Join(parts, " | "))
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
