package content

import (
	"bytes"
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/pkg/frontmatter"
)

// Frontmatter holds the document metadata docsite reads.
type Frontmatter struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Layout      string `yaml:"layout" json:"layout,omitempty"`
	Draft       bool   `yaml:"draft" json:"draft,omitempty"`
}

// Document is one Markdown page of the content set.
type Document struct {
	// Path is slash-separated and relative to the source directory.
	Path  string      `json:"path"`
	Route string      `json:"route"`
	Meta  Frontmatter `json:"meta"`
	// H1 is the text of the first level-one heading, if any.
	H1 string `json:"h1,omitempty"`
	// Anchors are the heading IDs in document order.
	Anchors []string `json:"anchors,omitempty"`
}

// Title returns the frontmatter title, falling back to the first H1 and then
// to the file name.
func (d *Document) Title() string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	if d.H1 != "" {
		return d.H1
	}
	return strings.TrimSuffix(path.Base(d.Path), ".md")
}

// HasAnchor reports whether the document has a heading with the given ID.
func (d *Document) HasAnchor(id string) bool {
	return slices.Contains(d.Anchors, id)
}

// RouteFor maps a source path to the route it is served at:
// "guide/intro.md" is "/guide/intro", "guide/index.md" is "/guide/".
func RouteFor(relPath string) string {
	p := strings.TrimSuffix(path.Clean("/"+relPath), ".md")
	if path.Base(p) == "index" {
		dir := path.Dir(p)
		if dir == "/" {
			return "/"
		}
		return dir + "/"
	}
	return p
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	)
}

// Parse reads a document's frontmatter and headings. relPath is
// slash-separated and relative to the source directory.
func Parse(relPath string, content []byte) (*Document, error) {
	return parseWith(newMarkdown(), relPath, content)
}

func parseWith(md goldmark.Markdown, relPath string, content []byte) (*Document, error) {
	doc := &Document{
		Path:  relPath,
		Route: RouteFor(relPath),
	}

	body, err := frontmatter.Parse(bytes.NewReader(content), &doc.Meta)
	if err != nil {
		return doc, errors.Wrapf(err, "parsing frontmatter of %s", relPath)
	}

	pc := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 && doc.H1 == "" {
			doc.H1 = nodeText(h, body)
		}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				doc.Anchors = append(doc.Anchors, string(b))
			}
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return doc, errors.Wrapf(err, "reading headings of %s", relPath)
	}
	return doc, nil
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
