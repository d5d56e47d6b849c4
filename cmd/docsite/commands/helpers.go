package commands

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/linkcheck"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/internal/site"
	"github.com/thoreinstein/docsite/internal/validator"
)

// siteFileArg returns the site file named on the command line, or the
// configured default.
func siteFileArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.SiteFile
}

// linkOptions returns the tool-level link check settings.
func linkOptions(logger *slog.Logger) linkcheck.Options {
	return linkcheck.Options{
		Enabled: cfg.LinkCheck.Enabled,
		Anchors: cfg.LinkCheck.Anchors,
		Ignore:  cfg.LinkCheck.Ignore,
		Logger:  logger,
	}
}

// loadSite reads the site file, mapping failures to user errors.
func loadSite(siteFile string) (*site.Site, error) {
	s, err := site.Load(siteFile)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrUnsupportedFormat):
			return nil, errors.NewUserError(err, "Use a .yaml, .yml or .toml site file")
		case errors.Is(err, errors.ErrNotFound):
			return nil, errors.NewUserError(err, "Run: docsite init")
		}
		return nil, errors.NewUserError(err, "Check the site file path and syntax")
	}
	return s, nil
}

// contentDir returns the content directory of s.
func contentDir(siteFile string, s *site.Site) string {
	srcDir := s.SrcDir
	if srcDir == "" {
		srcDir = site.DefaultSrcDir
	}
	return paths.SrcDir(paths.ProjectRoot(siteFile), srcDir)
}

// scanContent scans the content directory of s.
func scanContent(ctx context.Context, siteFile string, s *site.Site) (*content.Set, error) {
	set, err := content.NewScanner(logging.FromContext(ctx)).Scan(ctx, contentDir(siteFile, s))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NewUserError(err, "Set srcDir in the site file to the Markdown directory")
		}
		return nil, errors.NewSystemError(err, "Check that the content directory is readable")
	}
	return set, nil
}

// analysis is a loaded, built and optionally link-checked site.
type analysis struct {
	siteFile string
	built    *site.Built
	set      *content.Set
	// structural holds site validation and tree building issues.
	structural *validator.Result
	// links holds link check issues. It is empty when checking was skipped.
	links *validator.Result
}

// analyze loads siteFile, builds its trees and, unless skipLinks is set,
// scans the content and checks every link.
func analyze(ctx context.Context, siteFile string, skipLinks bool) (*analysis, error) {
	logger := logging.FromContext(ctx)

	s, err := loadSite(siteFile)
	if err != nil {
		return nil, err
	}

	a := &analysis{siteFile: siteFile, links: &validator.Result{}}
	a.built, a.structural = site.Build(s, nil, site.Options{Logger: logger})

	if skipLinks {
		return a, nil
	}
	tool := linkOptions(logger)
	if !a.built.LinkOptions(tool).Enabled {
		logger.Info("link checking disabled")
		return a, nil
	}

	a.set, err = scanContent(ctx, siteFile, s)
	if err != nil {
		return nil, err
	}
	a.links = a.built.CheckLinks(a.set, tool)
	a.links.Merge(a.set.Issues())
	logger.Debug("checked links", "documents", a.set.Len(), "issues", len(a.links.Issues))
	return a, nil
}

// result merges every issue found.
func (a *analysis) result() *validator.Result {
	r := &validator.Result{}
	r.Merge(a.structural)
	r.Merge(a.links)
	return r
}

// err converts the issues into the command's failure. Structural errors take
// precedence over broken links.
func (a *analysis) err() error {
	if err := a.structural.Err(errors.ErrInvalidConfig); err != nil {
		return errors.NewUserError(err, "Fix the site file errors listed above")
	}
	if err := a.links.Err(errors.ErrBrokenLinks); err != nil {
		return errors.NewUserError(err, "Fix the links or list exceptions in linkCheck.ignore")
	}
	return nil
}
