package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/pkg/frontmatter"
)

var (
	genDocDir  string
	genDocBase string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocBase, "base", "/reference/", "route prefix of the generated pages")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
	}
	if err := paths.EnsureDir(genDocDir, 0); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}

	// Pages carry frontmatter so the site generator titles them
	root := cmd.Root()
	disableAutoGenTag(root)
	if err := doc.GenMarkdownTreeCustom(root, genDocDir, filePrepender, linkHandler(genDocBase)); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "generating markdown"), "")
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	}
	return nil
}

// disableAutoGenTag drops the dated footer from every page.
func disableAutoGenTag(c *cobra.Command) {
	c.DisableAutoGenTag = true
	for _, sub := range c.Commands() {
		disableAutoGenTag(sub)
	}
}

// commandTitle converts a generated file name to a command line,
// docsite_config_set.md to "docsite config set".
func commandTitle(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(base, "_", " ")
}

func filePrepender(filename string) string {
	title := commandTitle(filename)
	page, err := frontmatter.Format(map[string]any{
		"title":       title,
		"description": "Reference for " + title,
		"outline":     "deep",
	}, "")
	if err != nil {
		return ""
	}
	return string(page)
}

func linkHandler(base string) func(string) string {
	base = "/" + strings.Trim(base, "/") + "/"
	if base == "//" {
		base = "/"
	}
	return func(name string) string {
		return base + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	}
}
