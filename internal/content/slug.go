package content

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns heading text into the anchor the site generator emits.
// Letters and digits of any script are kept and lowercased, diacritics are
// stripped, and every other run of characters becomes a single "-".
// "Café au lait" is "cafe-au-lait" and "安装指南" is kept as is.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var sb strings.Builder
	pending := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return sb.String()
}

// headingIDs is a parser.IDs that slugs headings with Slugify. Repeated
// slugs get "-1", "-2" suffixes in document order.
type headingIDs struct {
	seen map[string]struct{}
}

var _ parser.IDs = (*headingIDs)(nil)

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]struct{})}
}

func (h *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := Slugify(string(value))
	if slug == "" {
		slug = "id"
		if kind == ast.KindHeading {
			slug = "heading"
		}
	}
	id := slug
	for i := 1; h.taken(id); i++ {
		id = slug + "-" + strconv.Itoa(i)
	}
	h.seen[id] = struct{}{}
	return []byte(id)
}

func (h *headingIDs) Put(value []byte) {
	h.seen[string(value)] = struct{}{}
}

func (h *headingIDs) taken(id string) bool {
	_, ok := h.seen[id]
	return ok
}
