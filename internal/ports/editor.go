package ports

import "os/exec"

// NoteEditor edits free text in the user's external editor
type NoteEditor interface {
	// Edit runs the editor on text and returns what the user saved
	Edit(text string) (string, error)

	// Prepare writes text to a scratch file and returns the command that
	// edits it, for callers that run the process themselves (bubbletea's
	// ExecProcess). finish reads the result and removes the file.
	Prepare(text string) (cmd *exec.Cmd, finish func() (string, error), err error)
}
