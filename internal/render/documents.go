package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/docsite/internal/content"
)

// DocumentOptions controls Documents output.
type DocumentOptions struct {
	// Color enables ANSI styling.
	Color bool
	// MaxTitle truncates titles to this many runes. Zero means 60.
	MaxTitle int
}

// Documents writes the content set as a table of route, title, and source
// path. Drafts are marked.
func Documents(w io.Writer, docs []*content.Document, opts DocumentOptions) error {
	bold := color.New(color.Bold)
	route := color.New(color.FgGreen)
	draft := color.New(color.FgYellow)
	for _, c := range []*color.Color{bold, route, draft} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	maxTitle := opts.MaxTitle
	if maxTitle <= 0 {
		maxTitle = 60
	}

	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No documents found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold.Sprint("ROUTE"), bold.Sprint("TITLE"), bold.Sprint("PATH"))
	for _, d := range docs {
		title := truncate(d.Title(), maxTitle)
		if d.Meta.Draft {
			title += " " + draft.Sprint("(draft)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", route.Sprint(d.Route), title, d.Path)
	}
	return tw.Flush()
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
