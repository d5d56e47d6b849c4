package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/thoreinstein/docsite/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen bounds how much of an offending value text reports show.
const maxValueLen = 60

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes result to the output. A nil result writes nothing.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "encoding JSON report")
	}
	return r.reportText(result)
}

// reportText writes a summary line followed by one line per issue, errors
// first:
//
//	Validation failed: 1 error(s), 1 warning(s)
//
//	  ✗ themeConfig.nav[1].link: link does not resolve to a document [/guide/intor]
//	      suggestion: /guide/intro
//	  ⚠ sidebar[2]: duplicate section text [Notes]
func (r *Reporter) reportText(result *Result) error {
	errs, warnings := result.Errors(), result.Warnings()
	infos := result.filter(SeverityInfo)

	var b strings.Builder
	switch {
	case len(errs) > 0:
		counts := []string{color.RedString("%d error(s)", len(errs))}
		if len(warnings) > 0 {
			counts = append(counts, color.YellowString("%d warning(s)", len(warnings)))
		}
		fmt.Fprintf(&b, "Validation failed: %s\n", strings.Join(counts, ", "))
	case len(warnings) > 0:
		fmt.Fprintf(&b, "%s with %s\n", color.GreenString("✓ Validation passed"),
			color.YellowString("%d warning(s)", len(warnings)))
	default:
		fmt.Fprintln(&b, color.GreenString("✓ Validation passed"))
	}

	if len(errs)+len(warnings)+len(infos) > 0 {
		b.WriteByte('\n')
		for _, i := range errs {
			writeIssue(&b, color.RedString("✗"), i)
		}
		for _, i := range warnings {
			writeIssue(&b, color.YellowString("⚠"), i)
		}
		for _, i := range infos {
			writeIssue(&b, color.CyanString("ℹ"), i)
		}
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func writeIssue(b *strings.Builder, mark string, i Issue) {
	fmt.Fprintf(b, "  %s ", mark)

	where := i.Location
	if i.Field != "" {
		if where != "" {
			where += "."
		}
		where += i.Field
	}
	if where != "" {
		b.WriteString(color.New(color.Bold).Sprint(where))
		b.WriteString(": ")
	}
	b.WriteString(i.Message)

	if i.Value != nil {
		b.WriteString(color.HiBlackString(" [%s]", truncate(fmt.Sprint(i.Value), maxValueLen)))
	}
	b.WriteByte('\n')

	for _, k := range slices.Sorted(maps.Keys(i.Context)) {
		fmt.Fprintf(b, "      %s: %s\n", k, i.Context[k])
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
