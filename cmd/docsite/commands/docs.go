package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/render"
)

var (
	docsJSON   bool
	docsDrafts bool
)

func init() {
	docsCmd.Flags().BoolVar(&docsJSON, "json", false,
		"output documents as JSON")
	docsCmd.Flags().BoolVar(&docsDrafts, "drafts", true,
		"include draft documents")
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs [site-file]",
	Short: "List the Markdown documents of the site",
	Long: `List every Markdown document under the site's srcDir with the route it
is served at and its title. The title comes from frontmatter, then from
the first level-one heading, then from the file name.`,
	Example: `  docsite docs
  docsite docs --drafts=false --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func runDocs(cmd *cobra.Command, args []string) error {
	siteFile := siteFileArg(args)
	s, err := loadSite(siteFile)
	if err != nil {
		return err
	}
	set, err := scanContent(cmd.Context(), siteFile, s)
	if err != nil {
		return err
	}

	docs := set.Documents()
	if !docsDrafts {
		kept := make([]*content.Document, 0, len(docs))
		for _, d := range docs {
			if !d.Meta.Draft {
				kept = append(kept, d)
			}
		}
		docs = kept
	}

	out := cmd.OutOrStdout()
	if docsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
		}
		return nil
	}
	return render.Documents(out, docs, render.DocumentOptions{Color: colorMode.Enabled(out)})
}
