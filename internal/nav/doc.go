// Package nav builds the navigation bar and sidebar of a documentation site.
//
// Entries are authored as RawItem values: text plus an optional link and an
// optional list of children. [Build] decodes them into a tree of [Item]
// values, each either a [*Leaf] (a link) or a [*Group] (children and an
// optional link), so a node can never be both. Along the way it reports,
// without stopping:
//
//   - entries with no text, or with neither link nor items (errors)
//   - nav entries nested deeper than two levels (errors)
//   - duplicate section titles, duplicate sibling links, empty groups (warnings)
//
// Sections default to collapsed: false. Output order is authoring order, and
// [Marshal] is deterministic, so the same input always yields the same bytes.
package nav
