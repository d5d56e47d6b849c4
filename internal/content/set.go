package content

import (
	"sort"
	"strings"

	"github.com/thoreinstein/docsite/internal/validator"
)

// Set is an immutable, path-ordered collection of documents.
type Set struct {
	docs    []*Document
	byRoute map[string]*Document
	issues  *validator.Result
}

// NewSet builds a set from docs, sorted by path. When two documents map to
// the same route the first by path wins.
func NewSet(docs []*Document) *Set {
	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	s := &Set{
		docs:    sorted,
		byRoute: make(map[string]*Document, len(sorted)),
		issues:  &validator.Result{},
	}
	for _, d := range sorted {
		if first, ok := s.byRoute[d.Route]; ok {
			s.issues.Add(validator.Issue{
				Severity: validator.SeverityWarning,
				Location: d.Path,
				Message:  "route already served by another document",
				Value:    d.Route,
				Context:  map[string]string{"first": first.Path},
			})
			continue
		}
		s.byRoute[d.Route] = d
	}
	return s
}

// Documents returns the documents ordered by path.
func (s *Set) Documents() []*Document {
	return s.docs
}

// Len returns the number of documents.
func (s *Set) Len() int {
	return len(s.docs)
}

// Issues returns problems found while scanning, such as unreadable
// frontmatter. The result is never nil.
func (s *Set) Issues() *validator.Result {
	return s.issues
}

// Routes returns every served route in sorted order.
func (s *Set) Routes() []string {
	routes := make([]string, 0, len(s.byRoute))
	for r := range s.byRoute {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}

// Lookup returns the document served at route.
func (s *Set) Lookup(route string) (*Document, bool) {
	d, ok := s.byRoute[route]
	return d, ok
}

// Resolve finds the document an internal link points at. base is the
// directory relative links are resolved against ("/" for the root locale).
// A link without a trailing slash also matches a directory index, so
// "/guide" finds "guide/index.md" when there is no "guide.md".
//
// External links never resolve; check Ref.External before treating a miss
// as broken.
func (s *Set) Resolve(link, base string) (*Document, Ref, error) {
	ref, err := ParseLink(link, base)
	if err != nil || ref.External {
		return nil, ref, err
	}
	if d, ok := s.byRoute[ref.Route]; ok {
		return d, ref, nil
	}
	if !strings.HasSuffix(ref.Route, "/") {
		if d, ok := s.byRoute[ref.Route+"/"]; ok {
			return d, ref, nil
		}
	}
	return nil, ref, nil
}
