// Package wizard holds the interactive prompts used when jukebox runs on a
// terminal: first-run setup and device selection.
package wizard

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNotInteractive is returned by prompts when stdin or stdout is not a
// terminal.
var ErrNotInteractive = errors.New("not running in an interactive terminal")

// IsTerminal returns true if both stdin and stdout are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// run executes form, mapping an aborted form to ErrAborted.
func run(form *huh.Form) error {
	if !IsTerminal() {
		return ErrNotInteractive
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("cancelled")
