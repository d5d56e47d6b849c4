package content

import (
	"cmp"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/thoreinstein/docsite/internal/errors"
	"github.com/thoreinstein/docsite/internal/logging"
	"github.com/thoreinstein/docsite/internal/validator"
	"github.com/thoreinstein/docsite/pkg/fileutil"
)

// Scanner discovers Markdown documents under a source directory.
type Scanner struct {
	logger *slog.Logger
	// Limit caps the size of a single document. Zero means fileutil.MaxFileSize.
	Limit int64
}

// NewScanner creates a Scanner. A nil logger discards output.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Scanner{logger: logger}
}

// Scan walks srcDir and parses every *.md file it finds. Hidden directories
// and node_modules are skipped. Documents that cannot be read or parsed are
// reported as warnings on the set rather than failing the scan.
func (s *Scanner) Scan(ctx context.Context, srcDir string) (*Set, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "source directory %s", srcDir)
		}
		return nil, errors.Wrapf(err, "reading source directory %s", srcDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("source path %s is not a directory", srcDir)
	}

	paths, err := s.discover(srcDir)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("discovered documents", "dir", srcDir, "count", len(paths))

	docs, problems, err := s.parseAll(ctx, srcDir, paths)
	if err != nil {
		return nil, err
	}

	set := NewSet(docs)
	problems.Merge(set.issues)
	set.issues = problems
	return set, nil
}

func (s *Scanner) discover(srcDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				s.logger.Warn("permission denied", "path", p)
				return nil
			}
			return err
		}
		if d.IsDir() {
			if p != srcDir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".md") {
			rel, err := filepath.Rel(srcDir, p)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", srcDir)
	}
	return paths, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

type parsed struct {
	doc *Document
	err error
}

// parseAll parses documents with a worker pool bounded by GOMAXPROCS.
func (s *Scanner) parseAll(ctx context.Context, srcDir string, paths []string) ([]*Document, *validator.Result, error) {
	problems := &validator.Result{}
	if len(paths) == 0 {
		return nil, problems, nil
	}

	workers := min(runtime.GOMAXPROCS(0), len(paths))
	work := make(chan string, len(paths))
	results := make(chan parsed, len(paths))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			md := newMarkdown()
			for rel := range work {
				if ctx.Err() != nil {
					results <- parsed{err: ctx.Err()}
					continue
				}
				data, err := fileutil.ReadFileWithLimit(filepath.Join(srcDir, filepath.FromSlash(rel)), s.Limit)
				if err != nil {
					results <- parsed{doc: &Document{Path: rel, Route: RouteFor(rel)}, err: err}
					continue
				}
				doc, err := parseWith(md, rel, data)
				results <- parsed{doc: doc, err: err}
			}
		}()
	}

	for _, p := range paths {
		work <- p
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	docs := make([]*Document, 0, len(paths))
	for r := range results {
		if r.doc == nil {
			continue
		}
		if r.err != nil {
			s.logger.Warn("failed to parse document", "path", r.doc.Path, "error", r.err)
			problems.AddWarning(r.doc.Path, "document could not be parsed", r.err.Error())
		}
		docs = append(docs, r.doc)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Workers finish in any order.
	slices.SortStableFunc(problems.Issues, func(a, b validator.Issue) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return docs, problems, nil
}
