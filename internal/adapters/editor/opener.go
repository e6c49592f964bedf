package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"assessio/internal/ports"
)

var _ ports.NoteEditor = (*Opener)(nil)

// Opener implements ports.NoteEditor
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	tempDir  string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Edit opens text in the editor and waits for it to exit
func (o *Opener) Edit(text string) (string, error) {
	cmd, finish, err := o.Prepare(text)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		_, _ = finish()
		return "", fmt.Errorf("editor exited: %w", err)
	}
	return finish()
}

// Prepare writes text to a scratch file and returns the editor command for it
func (o *Opener) Prepare(text string) (*exec.Cmd, func() (string, error), error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	f, err := os.CreateTemp(o.tempDir, "assessio-note-*.txt")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create note file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(path)
		return nil, nil, fmt.Errorf("failed to write note file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, nil, fmt.Errorf("failed to write note file: %w", err)
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	finish := func() (string, error) {
		defer os.Remove(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read note file: %w", err)
		}
		// editors append a final newline
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return cmd, finish, nil
}

// findEditor returns the editor command line to use. $EDITOR and $VISUAL
// may carry arguments, as in "code --wait".
func (o *Opener) findEditor() []string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if argv := strings.Fields(o.getenv(name)); len(argv) > 0 {
			return argv
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
