// Package frontmatter parses and writes the YAML frontmatter block at the
// top of Markdown content documents.
//
//	type Meta struct {
//		Title string `yaml:"title"`
//		Draft bool   `yaml:"draft"`
//	}
//
//	var meta Meta
//	body, err := frontmatter.Parse(f, &meta)
//
// Frontmatter is optional: a document without a leading "---" line parses
// to a zero Meta and its full content as body.
package frontmatter
