package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/docsite/internal/paths"
)

// Dir returns the root backup directory, <cache>/docsite/backups.
func Dir() string {
	return filepath.Join(paths.CacheDir(), "backups")
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ProjectKey returns a stable, filesystem-safe key for a project root: the
// directory name followed by a short hash of its absolute path.
func ProjectKey(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	sum := sha256.Sum256([]byte(abs))

	name := unsafeChars.ReplaceAllString(strings.ToLower(filepath.Base(abs)), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "project"
	}
	return name + "-" + hex.EncodeToString(sum[:4])
}
