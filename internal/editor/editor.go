// Package editor opens files in the user's text editor.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/docsite/internal/errors"
)

// Open opens path in the user's editor and waits for it to exit.
// The editor inherits the terminal.
func Open(ctx context.Context, path string) error {
	fields := strings.Fields(detectEditor())
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}
	args := append(fields[1:], path)

	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", fields[0])
	}
	return nil
}

// detectEditor returns $EDITOR, then $VISUAL, then nano when it is on the
// PATH, then vi. The value may carry arguments, as in "code --wait".
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); strings.TrimSpace(editor) != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); strings.TrimSpace(visual) != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
