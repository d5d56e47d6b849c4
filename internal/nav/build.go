package nav

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/validator"
)

// DefaultMaxNavDepth is the deepest the top navigation bar may nest: a
// top-level entry and one level of dropdown children.
const DefaultMaxNavDepth = 2

// Builder turns an authored RawTree into a validated Tree.
type Builder struct {
	// Prefix is prepended to every issue location, e.g. "locales.zh.".
	Prefix string
	// MaxNavDepth bounds nav nesting. Zero means DefaultMaxNavDepth.
	MaxNavDepth int
	// Logger receives trace output for each node. Nil discards it.
	Logger *slog.Logger
}

// Build validates and normalizes raw with default options.
func Build(raw RawTree) (*Tree, *validator.Result) {
	return (&Builder{}).Build(raw)
}

// Build validates and normalizes raw. It never mutates raw.
//
// Invalid entries are reported and left out of the returned tree; valid
// entries keep their authored order. The tree is always non-nil, so callers
// can render partial output alongside the issues.
func (b *Builder) Build(raw RawTree) (*Tree, *validator.Result) {
	st := &buildState{
		Builder: b,
		result:  &validator.Result{},
	}
	if st.MaxNavDepth <= 0 {
		st.MaxNavDepth = DefaultMaxNavDepth
	}

	tree := &Tree{}
	tree.Nav = st.items(raw.Nav, b.Prefix+"nav", 1, st.MaxNavDepth)

	if len(raw.Sidebar.Routes) > 0 {
		if len(raw.Sidebar.Sections) > 0 {
			st.result.AddError(b.Prefix+"sidebar", "sidebar cannot be both a list and a route map", nil)
		}
		for _, prefix := range raw.Sidebar.RoutePrefixes() {
			loc := fmt.Sprintf("%ssidebar[%s]", b.Prefix, prefix)
			if !strings.HasPrefix(prefix, "/") {
				st.result.AddError(loc, "sidebar route prefix must start with \"/\"", prefix)
				continue
			}
			tree.Sidebar.Routes = append(tree.Sidebar.Routes, Route{
				Prefix:   prefix,
				Sections: st.sections(raw.Sidebar.Routes[prefix], loc),
			})
		}
	} else {
		tree.Sidebar.Sections = st.sections(raw.Sidebar.Sections, b.Prefix+"sidebar")
	}

	return tree, st.result
}

type buildState struct {
	*Builder
	result *validator.Result
}

func (st *buildState) trace(msg string, args ...any) {
	if st.Logger != nil {
		st.Logger.Log(context.Background(), logging.LevelTrace, msg, args...)
	}
}

func (st *buildState) sections(raw []RawSection, base string) []Section {
	out := make([]Section, 0, len(raw))
	seen := make(map[string]string, len(raw))

	for i, rs := range raw {
		loc := fmt.Sprintf("%s[%d]", base, i)
		text := strings.TrimSpace(rs.Text)
		if text == "" {
			st.result.AddError(loc, "section text is required", nil)
			continue
		}
		if first, dup := seen[text]; dup {
			st.result.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: loc,
				Message:  "duplicate section text",
				Value:    text,
				Context:  map[string]string{"first": first},
			})
		} else {
			seen[text] = loc
		}

		sec := Section{Text: text}
		if rs.Collapsed != nil {
			sec.Collapsed = *rs.Collapsed
		}
		if len(rs.Items) == 0 {
			st.result.AddWarning(loc, "section has no items", text)
		}
		// Sidebar depth is unbounded
		sec.Items = st.items(rs.Items, loc+".items", 1, 0)
		st.trace("built section", "location", loc, "text", text, "items", len(sec.Items))
		out = append(out, sec)
	}
	return out
}

// items decodes a sibling list. maxDepth of zero means unbounded.
func (st *buildState) items(raw []RawItem, base string, depth, maxDepth int) []Item {
	out := make([]Item, 0, len(raw))
	links := make(map[string]string, len(raw))

	for i, ri := range raw {
		loc := fmt.Sprintf("%s[%d]", base, i)
		item, ok := st.item(ri, loc, depth, maxDepth)
		if !ok {
			continue
		}

		if link := itemLink(item); link != "" {
			if first, dup := links[link]; dup {
				st.result.Add(validator.Issue{
					Severity: validator.SeverityWarning,
					Location: loc,
					Message:  "duplicate link among siblings",
					Value:    link,
					Context:  map[string]string{"first": first},
				})
			} else {
				links[link] = loc
			}
		}
		out = append(out, item)
	}
	return out
}

func (st *buildState) item(ri RawItem, loc string, depth, maxDepth int) (Item, bool) {
	text := strings.TrimSpace(ri.Text)
	link := strings.TrimSpace(ri.Link)

	if text == "" {
		st.result.AddError(loc, "entry text is required", link)
		return nil, false
	}

	if ri.Items == nil {
		if link == "" {
			st.result.AddError(loc, "entry has neither link nor items", text)
			return nil, false
		}
		if ri.Collapsed != nil {
			st.result.AddWarning(loc, "collapsed has no effect on a leaf", text)
		}
		st.trace("built leaf", "location", loc, "text", text, "link", link)
		return &Leaf{Text: text, Link: link}, true
	}

	if maxDepth > 0 && depth >= maxDepth {
		st.result.AddError(loc, fmt.Sprintf("nav nests deeper than %d levels", maxDepth), text)
		return nil, false
	}

	g := &Group{Text: text, Link: link}
	if ri.Collapsed != nil {
		c := *ri.Collapsed
		g.Collapsed = &c
	}
	if len(*ri.Items) == 0 {
		st.result.AddWarning(loc, "group has no items", text)
	}
	g.Items = st.items(*ri.Items, loc+".items", depth+1, maxDepth)
	st.trace("built group", "location", loc, "text", text, "items", len(g.Items))
	return g, true
}

func itemLink(it Item) string {
	switch v := it.(type) {
	case *Leaf:
		return v.Link
	case *Group:
		return v.Link
	}
	return ""
}
