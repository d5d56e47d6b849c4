package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/docsite/internal/linkcheck"
	"github.com/thoreinstein/docsite/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(dedent.Dedent(content)), 0o644))
	return p
}

// newProject writes a site file and a small content directory.
func newProject(t *testing.T, siteYAML string) *Workspace {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "docs/index.md", "# Home\n")
	writeFile(t, root, "docs/guide/intro.md", "---\ntitle: Intro\n---\n\n## Install\n")
	writeFile(t, root, "docs/notes/wip.md", "---\ndraft: true\n---\n# WIP\n")
	return &Workspace{
		SiteFile:  writeFile(t, root, "site.yaml", siteYAML),
		LinkCheck: linkcheck.Options{Enabled: true, Anchors: true},
		Logger:    logging.ForTest(t),
	}
}

const validSite = `
	title: Notes
	srcDir: docs
	themeConfig:
	  nav:
	    - text: Guide
	      link: /guide/intro
	  sidebar:
	    - text: Guide
	      items:
	        - text: Install
	          link: /guide/intro#install
`

func TestConfigCheck(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DOCSITE_CONFIG_DIR", t.TempDir())
		t.Chdir(t.TempDir())

		r := NewConfigCheck(&Workspace{}).Run(context.Background())
		assert.Equal(t, SeverityPass, r.Status)
		assert.Equal(t, "no config file, defaults apply", r.Message)
	})

	tests := []struct {
		name       string
		content    string
		wantStatus Severity
		wantMsg    string
	}{
		{"valid", "site_file: site.toml\nformat: json\n", SeverityPass, "config file is valid"},
		{"bad yaml", "format: [json\n", SeverityError, "config file is not valid YAML"},
		{"bad values", "version: 2\nformat: xml\n", SeverityError, "config file has 2 invalid value(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)
			r := NewConfigCheck(&Workspace{ConfigFile: path}).Run(context.Background())
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantMsg, r.Message)
			assert.Equal(t, path, r.Details["path"])
		})
	}

	t.Run("found in config dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("DOCSITE_CONFIG_DIR", dir)
		t.Chdir(t.TempDir())
		writeFile(t, dir, "config.yaml", "link_check:\n  enabled: false\n")

		r := NewConfigCheck(&Workspace{}).Run(context.Background())
		assert.Equal(t, SeverityPass, r.Status)
		assert.Equal(t, false, r.Details["link_check"])
	})
}

func TestSiteFileCheck(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		ws := &Workspace{SiteFile: filepath.Join(t.TempDir(), "site.yaml")}
		r := NewSiteFileCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "site file not found", r.Message)
		assert.Equal(t, "Run: docsite init", r.FixHint)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		ws := &Workspace{SiteFile: writeFile(t, t.TempDir(), "site.json", "{}")}
		r := NewSiteFileCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "site file has an unsupported extension", r.Message)
	})

	t.Run("undecodable", func(t *testing.T) {
		ws := &Workspace{SiteFile: writeFile(t, t.TempDir(), "site.yaml", "title: [broken\n")}
		r := NewSiteFileCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "site file cannot be decoded", r.Message)
		assert.Contains(t, r.Details, "error")
	})

	t.Run("invalid", func(t *testing.T) {
		ws := newProject(t, "srcDir: docs\nbase: docs\n")
		r := NewSiteFileCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "2 error(s), 0 warning(s)", r.Message)
		assert.Len(t, r.Details["issues"], 2)
	})

	t.Run("valid with masked search key", func(t *testing.T) {
		ws := newProject(t, `
			title: Notes
			srcDir: docs
			locales:
			  zh: {label: 中文, link: /zh/}
			  root: {label: English}
			search:
			  provider: algolia
			  options:
			    appId: APP123
			    apiKey: 0123456789abcdef
			    indexName: notes
		`)
		r := NewSiteFileCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityPass, r.Status, r.Details["issues"])
		assert.Equal(t, "yaml", r.Details["format"])
		assert.Equal(t, []string{"root", "zh"}, r.Details["locales"])

		opts := r.Details["search_options"].(map[string]any)
		assert.Equal(t, "****cdef", opts["apiKey"])
		assert.Equal(t, "APP123", opts["appId"])
	})
}

func TestContentCheck(t *testing.T) {
	t.Run("documents", func(t *testing.T) {
		r := NewContentCheck(newProject(t, validSite)).Run(context.Background())
		assert.Equal(t, SeverityPass, r.Status)
		assert.Equal(t, "3 document(s), 1 draft(s)", r.Message)
		assert.Equal(t, 3, r.Details["documents"])
	})

	t.Run("missing directory", func(t *testing.T) {
		r := NewContentCheck(newProject(t, "title: Notes\nsrcDir: nowhere\n")).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "content directory not found", r.Message)
	})

	t.Run("empty directory", func(t *testing.T) {
		ws := newProject(t, "title: Notes\nsrcDir: empty\n")
		require.NoError(t, os.Mkdir(filepath.Join(filepath.Dir(ws.SiteFile), "empty"), 0o755))
		r := NewContentCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityWarning, r.Status)
	})

	t.Run("site unavailable", func(t *testing.T) {
		ws := &Workspace{SiteFile: filepath.Join(t.TempDir(), "site.yaml")}
		r := NewContentCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityInfo, r.Status)
		assert.Equal(t, "skipped: site file unavailable", r.Message)
	})
}

func TestLinksCheck(t *testing.T) {
	t.Run("all resolve", func(t *testing.T) {
		r := NewLinksCheck(newProject(t, validSite)).Run(context.Background())
		assert.Equal(t, SeverityPass, r.Status, r.Details["issues"])
		assert.Equal(t, "all 2 link(s) resolve", r.Message)
	})

	t.Run("broken", func(t *testing.T) {
		ws := newProject(t, `
			title: Notes
			srcDir: docs
			themeConfig:
			  nav:
			    - text: Guide
			      link: /guide/intro
			    - text: Typo
			      link: /guide/intor
		`)
		r := NewLinksCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
		assert.Equal(t, "1 broken link(s) of 2", r.Message)
		assert.Equal(t, []string{
			"error: themeConfig.nav[1]: link does not resolve to a document (got /guide/intor)",
		}, r.Details["issues"])
	})

	t.Run("disabled", func(t *testing.T) {
		ws := newProject(t, validSite)
		ws.LinkCheck.Enabled = false
		r := NewLinksCheck(ws).Run(context.Background())
		assert.Equal(t, SeverityInfo, r.Status)
		assert.Equal(t, "link checking is disabled", r.Message)
	})

	t.Run("content unavailable", func(t *testing.T) {
		r := NewLinksCheck(newProject(t, "title: Notes\nsrcDir: nowhere\n")).Run(context.Background())
		assert.Equal(t, SeverityInfo, r.Status)
		assert.Equal(t, "skipped: content directory unavailable", r.Message)
	})
}

func TestThemeCheck(t *testing.T) {
	tests := []struct {
		name       string
		site       string
		wantStatus Severity
		wantMsg    string
	}{
		{
			name:       "no theme",
			site:       "title: Notes\n",
			wantStatus: SeverityInfo,
			wantMsg:    "no theme defined",
		},
		{
			name: "valid",
			site: `
				title: Notes
				theme:
				  colors:
				    primary: "#1772d0"
				  presets: [uno, typography]
			`,
			wantStatus: SeverityPass,
			wantMsg:    "theme is valid",
		},
		{
			name: "unknown preset",
			site: `
				title: Notes
				theme:
				  presets: [uno, tailwind]
			`,
			wantStatus: SeverityError,
			wantMsg:    "1 error(s), 0 warning(s)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &Workspace{SiteFile: writeFile(t, t.TempDir(), "site.yaml", tt.site)}
			r := NewThemeCheck(ws).Run(context.Background())
			assert.Equal(t, tt.wantStatus, r.Status, r.Details["issues"])
			assert.Equal(t, tt.wantMsg, r.Message)
		})
	}
}

func TestDefaultChecks(t *testing.T) {
	t.Setenv("DOCSITE_CONFIG_DIR", t.TempDir())
	t.Chdir(t.TempDir())

	ws := newProject(t, validSite)
	r := NewRunner(logging.ForTest(t))
	var names []string
	for _, c := range DefaultChecks(ws) {
		names = append(names, c.Name())
		r.AddCheck(c)
	}
	assert.Equal(t, []string{"config", "site-file", "content", "links", "theme", "path-permissions"}, names)

	report := r.Run(context.Background())
	require.Len(t, report.Results, 6)
	assert.False(t, report.HasErrors(), report.Results)
	assert.Equal(t, 1, report.Summary.Info, "no theme defined")
}
