package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/errors"
)

// stubEditor replaces the editor and records the files it is asked to open.
func stubEditor(t *testing.T) *[]string {
	t.Helper()
	var opened []string
	orig := openEditor
	openEditor = func(_ context.Context, path string) error {
		opened = append(opened, path)
		return nil
	}
	t.Cleanup(func() { openEditor = orig })
	return &opened
}

func projectRoot(siteFile string) string {
	return filepath.Dir(filepath.Dir(filepath.Dir(siteFile)))
}

func TestFind_Print(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "find", newProject(t, validSite), "install")
	require.NoError(t, err)

	assert.Equal(t, "[root] Guide › Install → /guide/intro#install\n"+
		"  location: themeConfig.sidebar[0].items[0]\n"+
		"  document: guide/intro.md (Intro)\n", out)
}

func TestFind_AllEntries(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, `
		title: Notes
		srcDir: docs
		themeConfig:
		  nav:
		    - text: Guide
		      link: /guide/intro
		    - text: WIP
		      link: /notes/wip
		    - text: Typo
		      link: /guide/intor
		    - text: VitePress
		      link: https://vitepress.dev
	`)

	out, _, err := execute(t, "find", "--print", siteFile)
	require.NoError(t, err)
	for _, want := range []string{
		"document: guide/intro.md (Intro)",
		"document: notes/wip.md (WIP)\n  draft:    true",
		"[root] Typo → /guide/intor\n  location: themeConfig.nav[2]\n  document: (not found)",
		"document: (external)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFind_DefaultSiteFile(t *testing.T) {
	isolate(t)
	siteFile := newProject(t, validSite)
	t.Chdir(projectRoot(siteFile))

	out, _, err := execute(t, "find", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "/guide/intro#install")
}

func TestFind_NoMatch(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "find", newProject(t, validSite), "changelog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no navigation entry matches "changelog"`)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestFind_NoEntries(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "find", newProject(t, "title: Notes\nsrcDir: docs\n"))
	require.NoError(t, err)
	assert.Equal(t, "No navigation entries found\n", out)
}

func TestFind_Edit(t *testing.T) {
	isolate(t)
	opened := stubEditor(t)
	siteFile := newProject(t, validSite)

	_, _, err := execute(t, "find", "--edit", siteFile, "install")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(projectRoot(siteFile), "docs", "guide", "intro.md")}, *opened)
}

func TestFind_EditNeedsOneMatch(t *testing.T) {
	isolate(t)
	opened := stubEditor(t)

	_, _, err := execute(t, "find", "-e", newProject(t, validSite), "guide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `2 entries match "guide"`)
	assert.Empty(t, *opened)
}

func TestFind_EditWithoutDocument(t *testing.T) {
	isolate(t)
	opened := stubEditor(t)

	_, _, err := execute(t, "find", "--edit", newProject(t, brokenLinkSite), "typo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/guide/intor has no local document")
	assert.Empty(t, *opened)
}

func TestNavEntry_Matches(t *testing.T) {
	e := navEntry{Locale: "zh", Text: "安装", Link: "/zh/guide/install", Breadcrumb: []string{"指南"}}
	assert.Equal(t, "[zh] 指南 › 安装 → /zh/guide/install", e.label())
	assert.True(t, e.matches("GUIDE/INSTALL"))
	assert.True(t, e.matches("指南"))
	assert.False(t, e.matches("config"))
}
