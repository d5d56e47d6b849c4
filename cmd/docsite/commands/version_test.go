package commands

import (
	"strings"
	"testing"

	"github.com/thoreinstein/docsite/cmd"
)

func TestVersionCommand_Output(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command should not return an error, got: %v", err)
	}

	want := "docsite version " + cmd.Version + "\n" +
		"  commit: " + cmd.Commit + "\n" +
		"  built:  " + cmd.Date + "\n"
	if out != want {
		t.Errorf("version output = %q, want %q", out, want)
	}
}

func TestVersionCommand_Flag(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version should not return an error, got: %v", err)
	}
	if !strings.HasPrefix(out, "docsite version "+cmd.Version) {
		t.Errorf("--version output = %q", out)
	}
}

func TestVersionCommand_CommandMetadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}
	if versionCmd.Long == "" {
		t.Error("versionCmd.Long should not be empty")
	}
}
