package styles

import (
	"github.com/charmbracelet/lipgloss"

	"assessio/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Form rows
	Category = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#60A5FA"))

	ItemName = lipgloss.NewStyle()

	ItemSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Unscored = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NoteMark = lipgloss.NewStyle().
			Foreground(Warning)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ScoreBadge returns the style of a score in the form, colored like its criterion
func ScoreBadge(score int) lipgloss.Style {
	c, ok := domain.CriterionFor(score)
	if !ok {
		return Unscored
	}
	return lipgloss.NewStyle().Bold(true).Foreground(White).Background(lipgloss.Color(c.Color)).Padding(0, 1)
}

// ChartBar returns the style of a chart bar for score
func ChartBar(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(domain.ChartColor(score)))
}
