// Package paths resolves the directories docsite reads from and writes to:
// its own XDG config and cache directories, and the project root and
// content directory of the site being checked.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory compliance.
package paths
