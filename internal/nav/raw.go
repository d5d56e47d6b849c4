package nav

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/errors"
)

// RawItem is an entry as authored: text plus an optional link and optional
// children. Items is a pointer so that "items: []" (an empty group) is
// distinguishable from an absent key (a leaf).
type RawItem struct {
	Text      string     `yaml:"text"`
	Link      string     `yaml:"link,omitempty"`
	Items     *[]RawItem `yaml:"items,omitempty"`
	Collapsed *bool      `yaml:"collapsed,omitempty"`
}

// RawSection is a sidebar section as authored.
type RawSection struct {
	Text      string    `yaml:"text"`
	Collapsed *bool     `yaml:"collapsed,omitempty"`
	Items     []RawItem `yaml:"items"`
}

// RawSidebar accepts either a sequence of sections or a mapping from route
// prefix to a sequence of sections.
type RawSidebar struct {
	Sections []RawSection
	Routes   map[string][]RawSection
}

// UnmarshalYAML decodes either sidebar form.
func (s *RawSidebar) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&s.Sections)
	case yaml.MappingNode:
		return node.Decode(&s.Routes)
	default:
		return errors.Newf("line %d: sidebar must be a list of sections or a map of route prefix to sections", node.Line)
	}
}

// MarshalYAML encodes whichever form is populated.
func (s RawSidebar) MarshalYAML() (any, error) {
	if len(s.Routes) > 0 {
		return s.Routes, nil
	}
	if s.Sections == nil {
		return []RawSection{}, nil
	}
	return s.Sections, nil
}

// RoutePrefixes returns the route keys in sorted order.
func (s RawSidebar) RoutePrefixes() []string {
	keys := make([]string, 0, len(s.Routes))
	for k := range s.Routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RawTree is the authored nav and sidebar pair.
type RawTree struct {
	Nav     []RawItem  `yaml:"nav,omitempty"`
	Sidebar RawSidebar `yaml:"sidebar,omitempty"`
}

// NewLeaf returns a raw leaf entry.
func NewLeaf(text, link string) RawItem {
	return RawItem{Text: text, Link: link}
}

// NewGroup returns a raw group entry. A nil items argument still produces a
// group with an empty child list.
func NewGroup(text string, items ...RawItem) RawItem {
	if items == nil {
		items = []RawItem{}
	}
	return RawItem{Text: text, Items: &items}
}
