package render

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/nav"
)

// TreeOptions controls Tree output.
type TreeOptions struct {
	// Links appends each entry's link to its label.
	Links bool
}

// Tree draws the nav bar and sidebar of t under a root labeled title.
// Sibling entries with identical labels are each drawn, disambiguated by
// their link or by a "#n" suffix.
func Tree(w io.Writer, title string, t *nav.Tree, opts TreeOptions) error {
	root := gtree.NewRoot(title)

	navNode := root.Add("nav")
	addItems(navNode, t.Nav, opts)

	if t.Sidebar.Multi() {
		for _, r := range t.Sidebar.Routes {
			addSections(root.Add("sidebar "+r.Prefix), r.Sections, opts)
		}
	} else {
		addSections(root.Add("sidebar"), t.Sidebar.Sections, opts)
	}

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return errors.Wrap(err, "rendering tree")
	}
	return nil
}

func addSections(parent *gtree.Node, sections []nav.Section, opts TreeOptions) {
	seen := siblings{}
	for _, s := range sections {
		label := "[" + s.Text + "]"
		if s.Collapsed {
			label += " (collapsed)"
		}
		addItems(parent.Add(seen.unique(label, "")), s.Items, opts)
	}
}

func addItems(parent *gtree.Node, items []nav.Item, opts TreeOptions) {
	seen := siblings{}
	add := func(text, link string) *gtree.Node {
		name := label(text, link, opts)
		if opts.Links {
			link = ""
		}
		return parent.Add(seen.unique(name, link))
	}
	for _, it := range items {
		switch v := it.(type) {
		case *nav.Leaf:
			add(v.Text, v.Link)
		case *nav.Group:
			addItems(add(v.Text, v.Link), v.Items, opts)
		}
	}
}

// siblings tracks the labels used under one parent. gtree merges siblings
// with equal labels.
type siblings map[string]bool

func (s siblings) unique(label, link string) string {
	l := label
	if s[l] && link != "" {
		l = label + " (" + link + ")"
	}
	for n := 2; s[l]; n++ {
		l = fmt.Sprintf("%s #%d", label, n)
	}
	s[l] = true
	return l
}

func label(text, link string, opts TreeOptions) string {
	if !opts.Links || link == "" {
		return text
	}
	return text + " → " + link
}
