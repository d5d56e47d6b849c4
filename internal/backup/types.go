package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/docsite/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per project.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the project.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backed up file no longer matches the
	// hash recorded in its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	// Project is the key of the project the files belong to.
	Project string `json:"project"`
	// Reason says what prompted the backup, e.g. "init --force".
	Reason string `json:"reason,omitempty"`
	Files  []File `json:"files"`
	// ToolVersion is the docsite version that wrote the backup.
	ToolVersion string `json:"docsite_version"`

	// ID is the backup directory name. It is filled in when loading.
	ID string `json:"-"`
}

// File describes a single backed up file.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`
	// RelPath is the copy's path within the backup directory.
	RelPath    string      `json:"rel_path"`
	SHA256Hash string      `json:"sha256_hash"`
	Mode       fs.FileMode `json:"mode"`
}
