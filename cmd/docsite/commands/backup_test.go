package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/backup"
	"github.com/thoreinstein/docsite/internal/errors"
)

func TestBackupCreate(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)

	out, _, err := execute(t, "backup", "create", siteFile)
	require.NoError(t, err)
	assert.Regexp(t, `^✓ Created backup \d{8}T\d{6} \(4 files\)\n$`, out)

	manifest, err := backup.NewManager().Latest(projectKey(siteFile))
	require.NoError(t, err)
	assert.Equal(t, "backup create", manifest.Reason)

	root := filepath.Dir(filepath.Dir(filepath.Dir(siteFile)))
	var got []string
	for _, f := range manifest.Files {
		rel, err := filepath.Rel(root, f.OriginalPath)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{
		"docs/.vitepress/site.yaml",
		"docs/index.md",
		"docs/guide/intro.md",
		"docs/notes/wip.md",
	}, got)
}

func TestBackupCreate_MissingSite(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "backup", "create", filepath.Join(t.TempDir(), "site.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestBackupList(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)

	out, _, err := execute(t, "backup", "list", siteFile)
	require.NoError(t, err)
	assert.Equal(t, "No backups available\n\nCreate one with: docsite backup create\n", out)

	_, _, err = execute(t, "-q", "backup", "create", siteFile)
	require.NoError(t, err)

	out, _, err = execute(t, "backup", "list", siteFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "CREATED", "FILES", "REASON", "VERSION"}, strings.Fields(lines[0]))
	fields := strings.Fields(lines[1])
	require.Len(t, fields, 7)
	assert.Equal(t, "4", fields[3])
	assert.Equal(t, "backup", fields[4])
	assert.Equal(t, "create", fields[5])
}

func TestBackupList_JSON(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)

	_, _, err := execute(t, "-q", "backup", "create", siteFile)
	require.NoError(t, err)

	out, _, err := execute(t, "backup", "list", siteFile, "--json")
	require.NoError(t, err)

	var got struct {
		Project string       `json:"project"`
		Backups []backupInfo `json:"backups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, projectKey(siteFile), got.Project)
	require.Len(t, got.Backups, 1)
	assert.Equal(t, 4, got.Backups[0].FileCount)
	assert.Equal(t, "backup create", got.Backups[0].Reason)
}

func TestBackupRestore(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)
	intro := filepath.Join(filepath.Dir(filepath.Dir(siteFile)), "guide", "intro.md")

	_, _, err := execute(t, "-q", "backup", "create", siteFile)
	require.NoError(t, err)
	manifest, err := backup.NewManager().Latest(projectKey(siteFile))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(intro, []byte("# Rewritten\n"), 0o644))

	out, _, err := execute(t, "backup", "restore", manifest.ID, siteFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored "+intro+"\n")
	assert.True(t, strings.HasSuffix(out, "✓ Restored backup "+manifest.ID+" (4 files)\n"), out)

	data, err := os.ReadFile(intro)
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Intro\n---\n\n## Install\n", string(data))
}

func TestBackupRestore_NoBackups(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)

	_, _, err := execute(t, "backup", "restore", "", siteFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, backup.ErrNoBackupsFound)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	_, _, err = execute(t, "backup", "restore", "20260101T000000", siteFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, backup.ErrNoBackupsFound)
}
