// Package content discovers the Markdown documents of a site and resolves
// navigation links against them.
//
// A [Set] maps every document to the route the site generator serves it at.
// [Set.Resolve] applies the generator's link rules (relative links, ".md" and
// ".html" suffixes, directory indexes) so a link in the navigation tree can
// be checked without building the site.
package content
