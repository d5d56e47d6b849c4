package linkcheck

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/nav"
	"github.com/thoreinstein/docsite/internal/validator"
)

// Options controls a link check.
type Options struct {
	// Enabled turns checking on. A disabled check reports nothing.
	Enabled bool
	// Anchors enables "#fragment" verification against document headings.
	Anchors bool
	// Ignore holds path.Match patterns. A pattern ending in "/**" matches
	// everything below that prefix.
	Ignore []string
	// Base is the directory relative links resolve against, e.g. "/zh/".
	Base string
	// Prefix is prepended to every issue location.
	Prefix string
	// Logger receives per-link trace output. Nil discards it.
	Logger *slog.Logger
}

// Check resolves every link of tree against set and reports each one that
// fails. Unresolved links are errors; missing anchors and draft targets are
// warnings.
func Check(tree *nav.Tree, set *content.Set, opts Options) *validator.Result {
	result := &validator.Result{}
	if !opts.Enabled || tree == nil {
		return result
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscard()
	}

	var routes []string
	for _, ref := range tree.Links() {
		loc := opts.Prefix + ref.Location

		if Ignored(ref.Link, opts.Ignore) {
			logger.Log(context.Background(), logging.LevelTrace, "link ignored", "location", loc, "link", ref.Link)
			continue
		}

		doc, target, err := set.Resolve(ref.Link, opts.Base)
		if err != nil {
			result.AddError(loc, "invalid link: "+err.Error(), ref.Link)
			continue
		}
		if target.External {
			continue
		}

		if doc == nil {
			if routes == nil {
				routes = set.Routes()
			}
			issue := validator.Issue{
				Severity: validator.SeverityError,
				Location: loc,
				Message:  "link does not resolve to a document",
				Value:    ref.Link,
				Context:  map[string]string{"text": ref.Text},
			}
			if s := Suggest(target.Route, routes); s != "" {
				issue.Context["suggestion"] = s
			}
			result.Add(issue)
			continue
		}

		logger.Log(context.Background(), logging.LevelTrace, "link resolved",
			"location", loc, "link", ref.Link, "document", doc.Path)

		if doc.Meta.Draft {
			result.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: loc,
				Message:  "link targets a draft",
				Value:    ref.Link,
				Context:  map[string]string{"document": doc.Path},
			})
		}
		if opts.Anchors && target.Fragment != "" && !doc.HasAnchor(target.Fragment) {
			result.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: loc,
				Message:  "anchor not found in document",
				Value:    ref.Link,
				Context:  map[string]string{"document": doc.Path, "anchor": target.Fragment},
			})
		}
	}
	return result
}

// Ignored reports whether link matches any of patterns. The fragment and
// query are not part of the match.
func Ignored(link string, patterns []string) bool {
	p, _, _ := strings.Cut(link, "#")
	p, _, _ = strings.Cut(p, "?")
	for _, pat := range patterns {
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, p); ok {
			return true
		}
		if ok, _ := path.Match(pat, link); ok {
			return true
		}
	}
	return false
}
