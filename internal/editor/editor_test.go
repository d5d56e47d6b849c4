package editor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDetectEditor_EnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	got := detectEditor()
	if got != "nvim" {
		t.Errorf("detectEditor() = %q, want %q", got, "nvim")
	}
}

func TestDetectEditor_EnvVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code --wait")

	got := detectEditor()
	if got != "code --wait" {
		t.Errorf("detectEditor() = %q, want %q", got, "code --wait")
	}
}

func TestDetectEditor_BlankTreatedAsUnset(t *testing.T) {
	t.Setenv("EDITOR", "   ")
	t.Setenv("VISUAL", "hx")

	got := detectEditor()
	if got != "hx" {
		t.Errorf("detectEditor() = %q, want %q (blank EDITOR should fall through)", got, "hx")
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := detectEditor()

	if _, err := exec.LookPath("nano"); err == nil {
		if got != "nano" {
			t.Errorf("detectEditor() = %q, want %q (nano available)", got, "nano")
		}
	} else if got != "vi" {
		t.Errorf("detectEditor() = %q, want %q (nano not available)", got, "vi")
	}
}

// mockEditor writes a shell script that records its arguments in a file.
func mockEditor(t *testing.T) (script, output string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows (uses shell script mock)")
	}

	dir := t.TempDir()
	script = filepath.Join(dir, "mock-editor.sh")
	output = filepath.Join(dir, "output.txt")
	body := "#!/bin/sh\necho \"$@\" > " + output + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return script, output
}

func TestOpen_Integration(t *testing.T) {
	script, output := mockEditor(t)
	t.Setenv("EDITOR", script+" --wait")

	target := filepath.Join(t.TempDir(), "intro.md")
	if err := os.WriteFile(target, []byte("# Intro\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Open(context.Background(), target); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(got)) != "--wait "+target {
		t.Errorf("mock editor args = %q, want %q", strings.TrimSpace(string(got)), "--wait "+target)
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "non-existent-binary-12345")
	t.Setenv("VISUAL", "")

	err := Open(context.Background(), "intro.md")
	if err == nil {
		t.Fatal("expected error for non-existent editor, got nil")
	}
	if !strings.Contains(err.Error(), "running editor non-existent-binary-12345") {
		t.Errorf("error = %v, want editor name in message", err)
	}
}
