package nav

import (
	"fmt"

	"github.com/thoreinstein/docsite/internal/errors"
)

// SkipChildren may be returned from a WalkFunc to skip a group's children.
var SkipChildren = errors.New("skip children")

// Visit describes a node reached during a walk.
type Visit struct {
	Item Item
	// Location is the node's position, e.g. "sidebar[/guide/][0].items[2]".
	Location string
	// Depth is 1 for top-level nav entries and for a section's direct items.
	Depth int
	// Breadcrumb holds the texts of the section and groups above the node.
	Breadcrumb []string
	// Route is the sidebar prefix the node belongs to, if any.
	Route string
}

// WalkFunc is called for every node in depth-first pre-order.
type WalkFunc func(v Visit) error

// Walk visits the nav bar, then the sidebar, in authoring order.
// Sections are not items and are not visited themselves, but their text
// heads the breadcrumb of every node below them.
func (t *Tree) Walk(fn WalkFunc) error {
	if err := walkItems(t.Nav, "nav", "", 1, nil, fn); err != nil {
		return err
	}
	if t.Sidebar.Multi() {
		for _, r := range t.Sidebar.Routes {
			base := fmt.Sprintf("sidebar[%s]", r.Prefix)
			if err := walkSections(r.Sections, base, r.Prefix, fn); err != nil {
				return err
			}
		}
		return nil
	}
	return walkSections(t.Sidebar.Sections, "sidebar", "", fn)
}

func walkSections(sections []Section, base, route string, fn WalkFunc) error {
	for i, s := range sections {
		loc := fmt.Sprintf("%s[%d]", base, i)
		if err := walkItems(s.Items, loc+".items", route, 1, []string{s.Text}, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkItems(items []Item, base, route string, depth int, crumbs []string, fn WalkFunc) error {
	for i, it := range items {
		loc := fmt.Sprintf("%s[%d]", base, i)
		v := Visit{
			Item:       it,
			Location:   loc,
			Depth:      depth,
			Breadcrumb: append([]string(nil), crumbs...),
			Route:      route,
		}
		err := fn(v)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if g, ok := it.(*Group); ok {
			next := append(append([]string(nil), crumbs...), g.Text)
			if err := walkItems(g.Items, loc+".items", route, depth+1, next, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// LinkRef is a link found in the tree together with where it was found.
type LinkRef struct {
	Text       string
	Link       string
	Location   string
	Breadcrumb []string
	Route      string
}

// Links returns every link in the tree, leaves and linked groups alike, in
// depth-first order.
func (t *Tree) Links() []LinkRef {
	var refs []LinkRef
	_ = t.Walk(func(v Visit) error {
		if link := itemLink(v.Item); link != "" {
			refs = append(refs, LinkRef{
				Text:       v.Item.Label(),
				Link:       link,
				Location:   v.Location,
				Breadcrumb: v.Breadcrumb,
				Route:      v.Route,
			})
		}
		return nil
	})
	return refs
}

// Count returns the number of leaves and groups in the tree.
func (t *Tree) Count() (leaves, groups int) {
	_ = t.Walk(func(v Visit) error {
		switch v.Item.(type) {
		case *Leaf:
			leaves++
		case *Group:
			groups++
		}
		return nil
	})
	return leaves, groups
}
