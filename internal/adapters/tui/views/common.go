package views

import (
	"assessio/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// Init satisfies tea.Model for embedding view models; it starts no command
func (s *ViewState) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err, or clears the message when err is nil
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type (
	SwitchToFormMsg    struct{ Message string }
	SwitchToInfoMsg    struct{}
	SwitchToAddItemMsg struct{}
	SwitchToBulkMsg    struct{ Category string }
	SwitchToHistoryMsg struct{}
	SwitchToResultsMsg struct{}
	SwitchToHelpMsg    struct{}
)

// EditNoteMsg asks the app to open the note of an item in the external editor
type EditNoteMsg struct {
	Item domain.Item
	Text string
}

// CopyCSVMsg asks the app to put the current export on the clipboard
type CopyCSVMsg struct{}
