package commands

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/render"
	"github.com/thoreinstein/docsite/internal/site"
)

var (
	treeLocale string
	treeLinks  bool
)

func init() {
	treeCmd.Flags().StringVar(&treeLocale, "locale", site.RootLocale,
		"locale whose navigation to draw")
	treeCmd.Flags().BoolVar(&treeLinks, "links", true,
		"show each entry's link")
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree [site-file]",
	Short: "Draw the navigation bar and sidebar",
	Long: `Draw the built navigation bar and sidebar of one locale as a tree.

Structural problems are logged as warnings; the tree is drawn anyway so
that it can help find them.`,
	Example: `  docsite tree
  docsite tree --locale zh --links=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	a, err := analyze(cmd.Context(), siteFileArg(args), true)
	if err != nil {
		return err
	}
	for _, issue := range a.structural.Errors() {
		logger.Warn(issue.Message, "location", issue.Location)
	}

	t, ok := a.built.Trees[treeLocale]
	if !ok {
		locales := a.built.Locales()
		sort.Strings(locales)
		return errors.NewUserError(
			errors.Newf("locale %q has no navigation of its own", treeLocale),
			"Use one of: "+strings.Join(locales, ", "))
	}

	title := a.built.Site.Title
	if treeLocale != site.RootLocale {
		title += " (" + treeLocale + ")"
	}
	return render.Tree(cmd.OutOrStdout(), title, t, render.TreeOptions{Links: treeLinks})
}
