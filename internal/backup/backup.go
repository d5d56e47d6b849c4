package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// idFormat is the timestamp layout of backup IDs.
const idFormat = "20060102T150405"

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir        string
	retentionCount int
	toolVersion    string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups Backup keeps per project.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithToolVersion sets the version recorded in new manifests.
func WithToolVersion(v string) Option {
	return func(m *Manager) {
		m.toolVersion = v
	}
}

// NewManager creates a Manager rooted at Dir unless an option says otherwise.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        Dir(),
		retentionCount: DefaultRetentionCount,
		toolVersion:    "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the given files into a new backup for project and prunes
// the project down to the retention count. Missing files are skipped;
// directories are copied recursively. It fails when nothing was copied.
func (m *Manager) Backup(project, reason string, paths []string) (*Manifest, error) {
	if project == "" {
		return nil, errors.New("project is required")
	}
	if len(paths) == 0 {
		return nil, errors.New("at least one path is required")
	}

	created := m.now().UTC()
	backupID, backupPath, err := m.reserve(project, created)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", p)
		}

		info, err := os.Stat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if info.IsDir() {
			dirFiles, err := m.backupDirectory(abs, backupPath)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up directory %s", p)
			}
			files = append(files, dirFiles...)
			continue
		}

		bf, err := m.backupFile(abs, backupPath)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up file %s", p)
		}
		files = append(files, *bf)
	}

	if len(files) == 0 {
		os.RemoveAll(backupPath)
		return nil, errors.New("no files to back up")
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Project:     project,
		Reason:      reason,
		Files:       files,
		ToolVersion: m.toolVersion,
		ID:          backupID,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(backupPath, "manifest.json"), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(project, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// reserve creates the directory of a new backup. IDs are timestamps; a
// numeric suffix separates backups taken within the same second.
func (m *Manager) reserve(project string, created time.Time) (id, dir string, err error) {
	if err := os.MkdirAll(m.projectDir(project), 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := created.Format(idFormat)
	for n := 1; n < 100; n++ {
		id = base
		if n > 1 {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		dir = m.backupPath(project, id)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
	return "", "", errors.Newf("too many backups at %s", base)
}

// backupFile copies a single file into the backup directory.
func (m *Manager) backupFile(src, backupPath string) (*File, error) {
	relPath := generateRelPath(src)
	dst := filepath.Join(backupPath, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &File{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

// backupDirectory recursively backs up every file under srcDir.
func (m *Manager) backupDirectory(srcDir, backupPath string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		bf, err := m.backupFile(path, backupPath)
		if err != nil {
			return err
		}
		files = append(files, *bf)
		return nil
	})

	return files, err
}

// Restore copies the files of a backup back to their original locations,
// restoring their permissions. Every copy is verified against its manifest
// hash before any file is written.
func (m *Manager) Restore(project, backupID string) (*Manifest, error) {
	manifest, err := m.Get(project, backupID)
	if err != nil {
		return nil, err
	}

	backupPath := m.backupPath(project, backupID)

	for _, bf := range manifest.Files {
		hash, err := hashFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
	}

	for _, bf := range manifest.Files {
		if err := os.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}
		if _, _, err := copyFile(filepath.Join(backupPath, bf.RelPath), bf.OriginalPath); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
		if err := os.Chmod(bf.OriginalPath, bf.Mode); err != nil {
			return nil, errors.Wrapf(err, "setting permissions for %s", bf.OriginalPath)
		}
	}

	return manifest, nil
}

// List returns the backups of a project, newest first.
func (m *Manager) List(project string) ([]Manifest, error) {
	if project == "" {
		return nil, errors.New("project is required")
	}

	entries, err := os.ReadDir(m.projectDir(project))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(project, entry.Name())
		if err != nil {
			// Skip directories without a readable manifest
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return manifests, nil
}

// Latest returns the newest backup of a project.
func (m *Manager) Latest(project string) (*Manifest, error) {
	manifests, err := m.List(project)
	if err != nil {
		return nil, err
	}
	return &manifests[0], nil
}

// Prune removes all but the newest keep backups of a project.
func (m *Manager) Prune(project string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(project)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(project, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(project, backupID string) (*Manifest, error) {
	if project == "" {
		return nil, errors.New("project is required")
	}
	if backupID == "" || strings.ContainsAny(backupID, `/\`) || backupID == ".." {
		return nil, errors.Newf("invalid backup ID %q", backupID)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(project, backupID), "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

func (m *Manager) backupPath(project, backupID string) string {
	return filepath.Join(m.projectDir(project), backupID)
}

func (m *Manager) projectDir(project string) string {
	return filepath.Join(m.rootDir, project)
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the SHA256 hash and mode of src.
// dst ends up with the mode of src.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode().Perm()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// generateRelPath maps an absolute path to its location inside a backup:
// the path without its root, with drive-letter colons removed.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	if vol := filepath.VolumeName(clean); vol != "" {
		clean = strings.ReplaceAll(vol, ":", "") + clean[len(vol):]
	}
	clean = strings.TrimLeft(clean, `/\`)
	return strings.ReplaceAll(clean, ":", "")
}
