package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "docsite"

// DefaultSiteFile is the site file location relative to the project root.
const DefaultSiteFile = "docs/.vitepress/site.yaml"

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used. It is a no-op for existing directories.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the docsite config directory.
// DOCSITE_CONFIG_DIR overrides the XDG location.
func ConfigDir() string {
	if dir := os.Getenv("DOCSITE_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// CacheDir returns the docsite cache directory, <CacheHome>/docsite.
// DOCSITE_CACHE_DIR overrides the XDG location.
func CacheDir() string {
	if dir := os.Getenv("DOCSITE_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, AppName)
}

// SrcDir resolves a site's srcDir against the directory holding its site file.
// The site file lives in <root>/<srcDir>/.vitepress/ by convention, but srcDir
// in the file is relative to the project root, which is the working directory
// the generator runs in. Absolute srcDir values are returned cleaned.
func SrcDir(projectRoot, srcDir string) string {
	if srcDir == "" {
		srcDir = "."
	}
	if filepath.IsAbs(srcDir) {
		return filepath.Clean(srcDir)
	}
	return filepath.Join(projectRoot, srcDir)
}

// ProjectRoot infers the project root from a site file path. A site file
// inside a ".vitepress" directory has its root two levels up
// (<root>/docs/.vitepress/site.yaml); any other site file has its own
// directory as the root.
func ProjectRoot(siteFile string) string {
	dir := filepath.Dir(siteFile)
	if filepath.Base(dir) == ".vitepress" {
		return filepath.Dir(filepath.Dir(dir))
	}
	return dir
}
