package nav

// Item is a navigation entry. It is either a *Leaf or a *Group; no other
// implementations exist, so a type switch over the two is exhaustive.
type Item interface {
	// Label returns the display text.
	Label() string
	isItem()
}

// Leaf is a link with no children.
type Leaf struct {
	Text string
	Link string
}

// Group holds an ordered list of children.
type Group struct {
	Text string
	// Link is optional. A group that sets it is both a page and a container;
	// the link is resolved and checked like a leaf's.
	Link  string
	Items []Item
	// Collapsed is nil when the group is not collapsible.
	Collapsed *bool
}

// Label returns the leaf text.
func (l *Leaf) Label() string { return l.Text }

// Label returns the group text.
func (g *Group) Label() string { return g.Text }

func (*Leaf) isItem()  {}
func (*Group) isItem() {}

// Section is a top-level sidebar block.
type Section struct {
	Text      string
	Collapsed bool
	Items     []Item
}

// Route is a sidebar bound to a path prefix such as "/guide/".
type Route struct {
	Prefix   string
	Sections []Section
}

// Sidebar is either a single section list or a set of per-prefix lists.
// Exactly one of Sections or Routes is populated; Routes are sorted by prefix.
type Sidebar struct {
	Sections []Section
	Routes   []Route
}

// Multi reports whether the sidebar is keyed by route prefix.
func (s Sidebar) Multi() bool {
	return len(s.Routes) > 0
}

// Tree is the validated navigation bar and sidebar of one site or locale.
type Tree struct {
	Nav     []Item
	Sidebar Sidebar
}
