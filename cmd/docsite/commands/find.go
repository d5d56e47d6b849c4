package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/editor"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
)

var (
	findPrint bool
	findEdit  bool
)

func init() {
	findCmd.Flags().BoolVar(&findPrint, "print", false,
		"print every match instead of opening the interactive finder")
	findCmd.Flags().BoolVarP(&findEdit, "edit", "e", false,
		"open the document of the chosen entry in $EDITOR")
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find [site-file] [query]",
	Short: "Find a navigation entry and the document it links to",
	Long: `Search the navigation bar and sidebar of every locale for an entry and
show its link, where it is defined, and the document it resolves to.

On a terminal an interactive fuzzy finder opens, pre-filled with the query.
With --print, or when output is not a terminal, every entry whose text,
link or breadcrumb contains the query is printed.

With --edit the chosen entry's document opens in $EDITOR. Outside the
interactive finder the query must match exactly one entry.`,
	Example: `  # Pick interactively
  docsite find

  # Pick a page and edit it
  docsite find install --edit

  # Print matches for a query
  docsite find docs/.vitepress/site.yaml install --print`,
	Args: cobra.MaximumNArgs(2),
	RunE: runFind,
}

// navEntry is one link of a locale tree with its resolved target.
type navEntry struct {
	Locale     string
	Text       string
	Link       string
	Location   string
	Breadcrumb []string
	Doc        *content.Document
	// File is the document's path on disk, set when Doc is.
	File string
}

func (e navEntry) label() string {
	path := append(append([]string{}, e.Breadcrumb...), e.Text)
	return fmt.Sprintf("[%s] %s → %s", e.Locale, strings.Join(path, " › "), e.Link)
}

func (e navEntry) matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.label()), q)
}

// openEditor opens a document. Tests replace it.
var openEditor = editor.Open

// finder picks an entry interactively. Tests replace it.
var finder = func(entries []navEntry, query string) (int, error) {
	return fuzzyfinder.Find(
		entries,
		func(i int) string { return entries[i].label() },
		fuzzyfinder.WithQuery(query),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			var sb strings.Builder
			writeEntry(&sb, entries[i])
			return sb.String()
		}),
	)
}

func runFind(cmd *cobra.Command, args []string) error {
	var siteArgs []string
	var query string
	switch len(args) {
	case 1:
		// A lone argument naming a file is the site file, otherwise the query
		if isSiteFile(args[0]) {
			siteArgs = args
		} else {
			query = args[0]
		}
	case 2:
		siteArgs, query = args[:1], args[1]
	}
	siteFile := siteFileArg(siteArgs)

	entries, err := collectEntries(cmd, siteFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No navigation entries found")
		return nil
	}

	if findPrint || !logging.IsTTY(out) {
		matched, err := printMatches(out, entries, query)
		if err != nil || !findEdit {
			return err
		}
		if len(matched) > 1 {
			return errors.NewUserError(errors.Newf("%d entries match %q", len(matched), query),
				"Narrow the query so that one entry matches")
		}
		return edit(cmd.Context(), matched[0])
	}

	idx, err := finder(entries, query)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive find failed")
	}
	writeEntry(out, entries[idx])
	if findEdit {
		return edit(cmd.Context(), entries[idx])
	}
	return nil
}

func edit(ctx context.Context, e navEntry) error {
	if e.File == "" {
		return errors.NewUserError(errors.Newf("%s has no local document", e.Link), "Pick an entry that links to a Markdown page")
	}
	logging.FromContext(ctx).Debug("opening editor", "file", e.File)
	if err := openEditor(ctx, e.File); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your editor command")
	}
	return nil
}

func isSiteFile(arg string) bool {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		if strings.HasSuffix(arg, ext) {
			return true
		}
	}
	return false
}

// collectEntries lists every link of every locale tree. Links are resolved
// when the content directory can be scanned.
func collectEntries(cmd *cobra.Command, siteFile string) ([]navEntry, error) {
	logger := logging.FromContext(cmd.Context())

	a, err := analyze(cmd.Context(), siteFile, true)
	if err != nil {
		return nil, err
	}
	dir := contentDir(siteFile, a.built.Site)
	set, err := scanContent(cmd.Context(), siteFile, a.built.Site)
	if err != nil {
		logger.Warn("links will not be resolved", "error", err)
	}

	var entries []navEntry
	for _, locale := range a.built.Locales() {
		prefix, base := a.built.Scope(locale)
		for _, ref := range a.built.Trees[locale].Links() {
			e := navEntry{
				Locale:     locale,
				Text:       ref.Text,
				Link:       ref.Link,
				Location:   prefix + ref.Location,
				Breadcrumb: ref.Breadcrumb,
			}
			if set != nil {
				e.Doc, _, _ = set.Resolve(ref.Link, base)
			}
			if e.Doc != nil {
				e.File = filepath.Join(dir, filepath.FromSlash(e.Doc.Path))
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// printMatches writes every entry matching query and returns them.
func printMatches(w io.Writer, entries []navEntry, query string) ([]navEntry, error) {
	var matched []navEntry
	for _, e := range entries {
		if query != "" && !e.matches(query) {
			continue
		}
		if len(matched) > 0 {
			fmt.Fprintln(w)
		}
		writeEntry(w, e)
		matched = append(matched, e)
	}
	if len(matched) == 0 {
		return nil, errors.NewUserError(errors.Newf("no navigation entry matches %q", query), "Run: docsite tree")
	}
	return matched, nil
}

func writeEntry(w io.Writer, e navEntry) {
	fmt.Fprintln(w, e.label())
	fmt.Fprintf(w, "  location: %s\n", e.Location)
	switch {
	case content.IsExternal(e.Link):
		fmt.Fprintln(w, "  document: (external)")
	case e.Doc == nil:
		fmt.Fprintln(w, "  document: (not found)")
	default:
		fmt.Fprintf(w, "  document: %s (%s)\n", e.Doc.Path, e.Doc.Title())
		if e.Doc.Meta.Draft {
			fmt.Fprintln(w, "  draft:    true")
		}
	}
}
