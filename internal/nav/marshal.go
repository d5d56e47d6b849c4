package nav

import (
	"bytes"
	"encoding/json"

	"github.com/thoreinstein/docsite/internal/errors"
)

// jsonItem is the wire shape consumed by the site generator.
type jsonItem struct {
	Text      string      `json:"text"`
	Link      string      `json:"link,omitempty"`
	Collapsed *bool       `json:"collapsed,omitempty"`
	Items     *[]jsonItem `json:"items,omitempty"`
}

type jsonSection struct {
	Text      string     `json:"text"`
	Collapsed bool       `json:"collapsed"`
	Items     []jsonItem `json:"items"`
}

// MarshalJSON renders the tree in the generator's nav/sidebar shape. A
// multi-route sidebar becomes an object keyed by prefix.
func (t *Tree) MarshalJSON() ([]byte, error) {
	out := struct {
		Nav     any `json:"nav"`
		Sidebar any `json:"sidebar"`
	}{}
	out.Nav, out.Sidebar = t.Parts()
	return json.Marshal(out)
}

// Parts returns the nav and sidebar in wire shape, for embedding in a larger
// document.
func (t *Tree) Parts() (navBar, sidebar any) {
	if t.Sidebar.Multi() {
		routes := make(map[string][]jsonSection, len(t.Sidebar.Routes))
		for _, r := range t.Sidebar.Routes {
			routes[r.Prefix] = toJSONSections(r.Sections)
		}
		return toJSONItems(t.Nav), routes
	}
	return toJSONItems(t.Nav), toJSONSections(t.Sidebar.Sections)
}

func toJSONSections(sections []Section) []jsonSection {
	out := make([]jsonSection, 0, len(sections))
	for _, s := range sections {
		out = append(out, jsonSection{
			Text:      s.Text,
			Collapsed: s.Collapsed,
			Items:     toJSONItems(s.Items),
		})
	}
	return out
}

func toJSONItems(items []Item) []jsonItem {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case *Leaf:
			out = append(out, jsonItem{Text: v.Text, Link: v.Link})
		case *Group:
			children := toJSONItems(v.Items)
			out = append(out, jsonItem{
				Text:      v.Text,
				Link:      v.Link,
				Collapsed: v.Collapsed,
				Items:     &children,
			})
		}
	}
	return out
}

// Marshal returns the indented JSON encoding of t. Encoding is a pure
// function of the tree: equal trees give byte-identical output.
func Marshal(t *Tree) ([]byte, error) {
	compact, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "encoding navigation tree")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, errors.Wrap(err, "indenting navigation tree")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
