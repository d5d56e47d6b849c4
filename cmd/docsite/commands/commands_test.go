package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// isolate points the config, cache and working directories at empty
// temporary directories so no user configuration leaks into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("DOCSITE_CONFIG_DIR", t.TempDir())
	t.Setenv("DOCSITE_CACHE_DIR", t.TempDir())
	t.Setenv("DOCSITE_DEBUG", "")
	t.Chdir(t.TempDir())
}

// resetCommand restores every flag to its default and drops contexts left
// behind by an earlier run.
func resetCommand(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(context.Background())
	for _, sub := range c.Commands() {
		resetCommand(sub)
	}
}

// execute runs docsite with args and returns what it wrote to stdout and
// stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetCommand(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(dedent.Dedent(content)), 0o644))
	return p
}

const validSite = `
	title: Notes
	srcDir: docs
	themeConfig:
	  nav:
	    - text: Guide
	      link: /guide/intro
	  sidebar:
	    - text: Guide
	      items:
	        - text: Install
	          link: /guide/intro#install
`

// newProject writes a project with a small content directory and returns
// the path of its site file.
func newProject(t *testing.T, siteYAML string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "docs/index.md", "# Home\n")
	writeFile(t, root, "docs/guide/intro.md", "---\ntitle: Intro\n---\n\n## Install\n")
	writeFile(t, root, "docs/notes/wip.md", "---\ndraft: true\n---\n# WIP\n")
	return writeFile(t, root, "docs/.vitepress/site.yaml", siteYAML)
}
