package doctor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thoreinstein/docsite/internal/content"
	"github.com/thoreinstein/docsite/internal/linkcheck"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/paths"
	"github.com/thoreinstein/docsite/internal/site"
)

// Workspace is the project under diagnosis.
type Workspace struct {
	// SiteFile is the path of the site file.
	SiteFile string

	// ConfigFile is the explicit tool config path. Empty means the default
	// search locations.
	ConfigFile string

	// LinkCheck holds the tool-level link check settings.
	LinkCheck linkcheck.Options

	Logger *slog.Logger

	once   sync.Once
	set    *content.Set
	setErr error
}

func (w *Workspace) logger() *slog.Logger {
	if w.Logger == nil {
		return logging.NewDiscard()
	}
	return w.Logger
}

// Site loads a fresh copy of the site file. Build normalizes in place, so
// every check gets its own.
func (w *Workspace) Site() (*site.Site, error) {
	return site.Load(w.SiteFile)
}

// SrcDir returns the content directory of s on disk.
func (w *Workspace) SrcDir(s *site.Site) string {
	srcDir := site.DefaultSrcDir
	if s != nil && s.SrcDir != "" {
		srcDir = s.SrcDir
	}
	return paths.SrcDir(paths.ProjectRoot(w.SiteFile), srcDir)
}

// Content scans the content directory once and caches the set.
func (w *Workspace) Content(ctx context.Context) (*content.Set, error) {
	w.once.Do(func() {
		var s *site.Site
		s, w.setErr = w.Site()
		if w.setErr != nil {
			return
		}
		w.set, w.setErr = content.NewScanner(w.logger()).Scan(ctx, w.SrcDir(s))
	})
	return w.set, w.setErr
}
