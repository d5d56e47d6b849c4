package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/docsite/internal/config"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/internal/site"
	"github.com/thoreinstein/docsite/internal/theme"
	"github.com/thoreinstein/docsite/internal/translate"
	"github.com/thoreinstein/docsite/internal/validator"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// maxListedIssues caps the issue lines copied into check details.
const maxListedIssues = 20

// skipped reports a check that depends on something another check already
// flagged.
func skipped(c Check, reason string) *CheckResult {
	return newResult(c, SeverityInfo, "skipped: "+reason)
}

// fromValidation turns a validation result into a check result: any error
// fails the check, any warning downgrades it.
func fromValidation(c Check, result *validator.Result, passMsg string, details map[string]any) *CheckResult {
	r := newResult(c, SeverityPass, passMsg)
	r.Details = details
	errs, warns := result.Errors(), result.Warnings()
	switch {
	case len(errs) > 0:
		r.Status = SeverityError
		r.Message = fmt.Sprintf("%d error(s), %d warning(s)", len(errs), len(warns))
	case len(warns) > 0:
		r.Status = SeverityWarning
		r.Message = fmt.Sprintf("%d warning(s)", len(warns))
	}
	if len(errs)+len(warns) > 0 {
		r.with("issues", issueLines(append(errs, warns...)))
	}
	return r
}

func issueLines(issues []validator.Issue) []string {
	lines := make([]string, 0, min(len(issues), maxListedIssues+1))
	for i, issue := range issues {
		if i == maxListedIssues {
			lines = append(lines, fmt.Sprintf("... and %d more", len(issues)-maxListedIssues))
			break
		}
		lines = append(lines, issue.Error())
	}
	return lines
}

// ConfigCheck validates the docsite tool configuration file.
type ConfigCheck struct {
	ws *Workspace
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a new tool configuration check.
func NewConfigCheck(ws *Workspace) *ConfigCheck {
	return &ConfigCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// locate returns the config file in effect, or "" when defaults apply.
func (c *ConfigCheck) locate() string {
	if c.ws.ConfigFile != "" {
		return c.ws.ConfigFile
	}
	for _, dir := range []string{".", paths.ConfigDir()} {
		p := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Run decodes the config file over the defaults and validates it, the way
// config.Load does, without touching the loaded process configuration.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	path := c.locate()
	if path == "" {
		return newResult(c, SeverityPass, "no config file, defaults apply").
			with("searched", []string{".", paths.ConfigDir()})
	}

	fail := func(msg string, details map[string]any) *CheckResult {
		r := newResult(c, SeverityError, msg).hint("Edit " + path)
		r.Details = details
		return r.with("path", path)
	}

	data, err := fileutil.ReadFileWithLimit(path, 0)
	if err != nil {
		return fail("cannot read config file", map[string]any{"error": err.Error()})
	}

	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fail("config file is not valid YAML", map[string]any{"error": err.Error()})
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fail(fmt.Sprintf("config file has %d invalid value(s)", len(errs)), map[string]any{"errors": msgs})
	}

	return newResult(c, SeverityPass, "config file is valid").
		with("path", path).
		with("site_file", cfg.SiteFile).
		with("link_check", cfg.LinkCheck.Enabled)
}

// SiteFileCheck loads and validates the site file.
type SiteFileCheck struct {
	ws *Workspace
}

var _ Check = (*SiteFileCheck)(nil)

// NewSiteFileCheck creates a new site file check.
func NewSiteFileCheck(ws *Workspace) *SiteFileCheck {
	return &SiteFileCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *SiteFileCheck) Name() string {
	return "site-file"
}

// Category returns the grouping for this check.
func (c *SiteFileCheck) Category() string {
	return "site"
}

// Run executes the site file check.
func (c *SiteFileCheck) Run(_ context.Context) *CheckResult {
	path := c.ws.SiteFile
	fail := func(msg, hint string, err error) *CheckResult {
		r := newResult(c, SeverityError, msg).with("path", path).hint(hint)
		if err != nil {
			r.with("error", err.Error())
		}
		return r
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fail("site file not found", "Run: docsite init", nil)
		}
		return fail("cannot stat site file", "", err)
	}

	format, err := translate.FormatOf(path)
	if err != nil {
		return fail("site file has an unsupported extension", "Use .yaml, .yml or .toml", nil)
	}

	s, err := c.ws.Site()
	if err != nil {
		return fail("site file cannot be decoded", "Edit "+path, err)
	}

	details := map[string]any{
		"path":   path,
		"format": string(format),
		"title":  s.Title,
	}
	if len(s.Locales) > 0 {
		keys := make([]string, 0, len(s.Locales))
		for k := range s.Locales {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		details["locales"] = keys
	}
	if s.Search != nil {
		details["search_provider"] = s.Search.Provider
		if len(s.Search.Options) > 0 {
			details["search_options"] = MaskOptions(s.Search.Options)
		}
	}

	return fromValidation(c, site.Validate(s), "site file is valid", details)
}

// ContentCheck scans the content directory.
type ContentCheck struct {
	ws *Workspace
}

var _ Check = (*ContentCheck)(nil)

// NewContentCheck creates a new content directory check.
func NewContentCheck(ws *Workspace) *ContentCheck {
	return &ContentCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *ContentCheck) Name() string {
	return "content"
}

// Category returns the grouping for this check.
func (c *ContentCheck) Category() string {
	return "content"
}

// Run executes the content directory check.
func (c *ContentCheck) Run(ctx context.Context) *CheckResult {
	s, err := c.ws.Site()
	if err != nil {
		return skipped(c, "site file unavailable")
	}
	srcDir := c.ws.SrcDir(s)

	set, err := c.ws.Content(ctx)
	if err != nil {
		r := newResult(c, SeverityError, "cannot scan content directory").
			with("src_dir", srcDir).
			with("error", err.Error())
		if errors.Is(err, errors.ErrNotFound) {
			r.Message = "content directory not found"
			r.hint("Set srcDir in the site file")
		}
		return r
	}

	drafts := 0
	for _, d := range set.Documents() {
		if d.Meta.Draft {
			drafts++
		}
	}
	details := map[string]any{
		"src_dir":   srcDir,
		"documents": set.Len(),
		"drafts":    drafts,
	}

	if set.Len() == 0 {
		r := newResult(c, SeverityWarning, "no Markdown documents found")
		r.Details = details
		return r
	}

	msg := fmt.Sprintf("%d document(s), %d draft(s)", set.Len(), drafts)
	return fromValidation(c, set.Issues(), msg, details)
}

// LinksCheck builds every navigation tree and checks its links.
type LinksCheck struct {
	ws *Workspace
}

var _ Check = (*LinksCheck)(nil)

// NewLinksCheck creates a new link check.
func NewLinksCheck(ws *Workspace) *LinksCheck {
	return &LinksCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *LinksCheck) Name() string {
	return "links"
}

// Category returns the grouping for this check.
func (c *LinksCheck) Category() string {
	return "content"
}

// Run executes the link check. Structural tree problems are left to the
// site-file check.
func (c *LinksCheck) Run(ctx context.Context) *CheckResult {
	s, err := c.ws.Site()
	if err != nil {
		return skipped(c, "site file unavailable")
	}
	set, err := c.ws.Content(ctx)
	if err != nil {
		return skipped(c, "content directory unavailable")
	}

	built, _ := site.Build(s, nil, site.Options{Logger: c.ws.logger()})
	if !built.LinkOptions(c.ws.LinkCheck).Enabled {
		return newResult(c, SeverityInfo, "link checking is disabled").
			hint("Set link_check.enabled: true")
	}

	links := 0
	for _, key := range built.Locales() {
		links += len(built.Trees[key].Links())
	}

	result := built.CheckLinks(set, c.ws.LinkCheck)
	r := fromValidation(c, result, fmt.Sprintf("all %d link(s) resolve", links), map[string]any{
		"links":   links,
		"locales": len(built.Locales()),
	})
	if errs := result.Errors(); len(errs) > 0 {
		r.Message = fmt.Sprintf("%d broken link(s) of %d", len(errs), links)
		r.hint("Fix the links or add patterns to linkCheck.ignore")
	}
	return r
}

// ThemeCheck validates the utility-CSS theme definition.
type ThemeCheck struct {
	ws *Workspace
}

var _ Check = (*ThemeCheck)(nil)

// NewThemeCheck creates a new theme check.
func NewThemeCheck(ws *Workspace) *ThemeCheck {
	return &ThemeCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *ThemeCheck) Name() string {
	return "theme"
}

// Category returns the grouping for this check.
func (c *ThemeCheck) Category() string {
	return "site"
}

// Run executes the theme check.
func (c *ThemeCheck) Run(_ context.Context) *CheckResult {
	s, err := c.ws.Site()
	if err != nil {
		return skipped(c, "site file unavailable")
	}
	if s.Theme == nil {
		return newResult(c, SeverityInfo, "no theme defined")
	}

	t := s.Theme
	details := map[string]any{
		"presets":      len(t.Presets),
		"transformers": len(t.Transformers),
		"colors":       len(t.Colors),
		"web_fonts":    len(t.WebFonts),
	}
	return fromValidation(c, theme.Validate(t, "theme."), "theme is valid", details)
}

// DefaultChecks returns the standard check set in run order.
func DefaultChecks(ws *Workspace) []Check {
	return []Check{
		NewConfigCheck(ws),
		NewSiteFileCheck(ws),
		NewContentCheck(ws),
		NewLinksCheck(ws),
		NewThemeCheck(ws),
		NewPathPermissionCheck(ws),
	}
}
