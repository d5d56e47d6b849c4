// Package theme models the utility-CSS theme definition: design tokens
// (fonts, shadows, colors, widths), the ordered preset and transformer
// registrations, and web font declarations.
//
// The CSS engine itself is external. This package only checks that what is
// handed to it names real presets and well-formed tokens.
package theme
