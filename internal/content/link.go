package content

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/thoreinstein/docsite/internal/errors"
)

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsExternal reports whether link points outside the site: any URL with a
// scheme (http:, https:, mailto:, tel:) or a protocol-relative "//host" link.
func IsExternal(link string) bool {
	return strings.HasPrefix(link, "//") || schemeRe.MatchString(link)
}

// Ref is a link normalized to the route it targets.
type Ref struct {
	// Link is the link as authored.
	Link string
	// Route is the normalized target, e.g. "/guide/intro" or "/guide/".
	Route string
	// Fragment is the percent-decoded anchor without the leading "#".
	Fragment string
	External bool
}

// ParseLink normalizes link the way the site generator resolves it. Query
// strings and ".md"/".html" suffixes are dropped, an "index" page maps to its
// directory, and relative links are resolved against base. An empty base
// means "/".
func ParseLink(link, base string) (Ref, error) {
	ref := Ref{Link: link}
	if strings.TrimSpace(link) == "" {
		return ref, errors.New("empty link")
	}
	if IsExternal(link) {
		ref.External = true
		return ref, nil
	}

	p, frag, _ := strings.Cut(link, "#")
	p, _, _ = strings.Cut(p, "?")
	fragment, err := url.PathUnescape(frag)
	if err != nil {
		return ref, errors.Wrapf(err, "decoding fragment of %q", link)
	}
	ref.Fragment = fragment

	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return ref, errors.Wrapf(err, "decoding link %q", link)
	}
	p = unescaped

	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base = path.Dir(base) + "/"
	}

	switch {
	case p == "":
		p = base
	case !strings.HasPrefix(p, "/"):
		p = base + p
	}

	dir := strings.HasSuffix(p, "/")
	p = path.Clean(p)
	p = strings.TrimSuffix(p, ".md")
	p = strings.TrimSuffix(p, ".html")
	if path.Base(p) == "index" {
		p = path.Dir(p)
		dir = true
	}
	if dir && p != "/" {
		p += "/"
	}

	ref.Route = p
	return ref, nil
}
