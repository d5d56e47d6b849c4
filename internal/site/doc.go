// Package site loads, validates, and normalizes the build-time site
// configuration and assembles the navigation trees it declares.
//
// The pipeline is Load, then Build. Build validates the struct, fills
// defaults, builds the root and per-locale navigation trees, and checks
// their links against the content set. The Built result marshals to the
// normalized JSON document the site generator consumes.
package site
