package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/doctor"
	"github.com/thoreinstein/docsite/internal/errors"
)

func TestDoctor_Healthy(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "doctor", newProject(t, validSite))
	require.NoError(t, err)
	assert.Equal(t, "Summary: 5 passed, 1 info, 0 warnings, 0 errors\n", out)
}

func TestDoctor_All(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "doctor", "--all", newProject(t, validSite))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ [content] links: all 2 link(s) resolve")
	assert.Contains(t, out, "ℹ [site] theme: no theme defined")
}

func TestDoctor_Warnings(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, `
		title: Notes
		srcDir: docs
		themeConfig:
		  nav:
		    - text: WIP
		      link: /notes/wip
	`)

	out, _, err := execute(t, "doctor", siteFile)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, out, "⚠ [content] links: 1 warning(s)")
	assert.Contains(t, out, "link targets a draft")
}

func TestDoctor_Errors(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "doctor", newProject(t, brokenLinkSite))
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, out, "✗ [content] links: 1 broken link(s) of 2")
	assert.Contains(t, out, "Summary: 4 passed, 1 info, 0 warnings, 1 errors")
}

func TestDoctor_JSON(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "doctor", "--json", newProject(t, validSite))
	require.NoError(t, err)

	var report doctor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 6)
	assert.Equal(t, "config", report.Results[0].Name)
	assert.Equal(t, doctor.SeverityInfo, report.Results[4].Status)
	assert.Equal(t, 5, report.Summary.Passed)
}

func TestDoctor_ExclusiveOutputFlags(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)

	_, _, err := execute(t, "doctor", "--json", "--all", siteFile)
	assert.Error(t, err)

	_, _, err = execute(t, "-q", "doctor", "--json", siteFile)
	assert.Error(t, err)
}

func TestDoctor_Quiet(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "-q", "doctor", newProject(t, brokenLinkSite))
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Empty(t, out)
}

func TestDoctor_Fix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix permissions do not apply on Windows")
	}
	isolate(t)
	siteFile := newProject(t, validSite)
	docs := filepath.Join(projectRoot(siteFile), "docs")
	require.NoError(t, os.Chmod(docs, 0o777))

	_, _, err := execute(t, "doctor", siteFile)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	out, _, err := execute(t, "doctor", "--fix", siteFile)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ fixed "+docs)

	info, err := os.Stat(docs)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o775), info.Mode().Perm())
}

func TestDoctor_IgnoresBrokenConfig(t *testing.T) {
	isolate(t)
	bad := writeFile(t, t.TempDir(), "config.yaml", "format: xml\n")

	out, _, err := execute(t, "--config", bad, "doctor", newProject(t, validSite))
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, out, "✗ [config] config: config file has 1 invalid value(s)")
}
