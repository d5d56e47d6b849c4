package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/thoreinstein/docsite/internal/paths"
)

// PathPermissionCheck validates the files and directories docsite reads:
// the site file, the content directory and the tool config directory.
type PathPermissionCheck struct {
	PermissionFixer

	ws *Workspace
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a new path permission check.
func NewPathPermissionCheck(ws *Workspace) *PathPermissionCheck {
	return &PathPermissionCheck{ws: ws}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// pathTarget is one path the check inspects.
type pathTarget struct {
	path string
	role string
	dir  bool
}

func (c *PathPermissionCheck) targets() []pathTarget {
	targets := []pathTarget{{path: c.ws.SiteFile, role: "site file"}}
	if s, err := c.ws.Site(); err == nil {
		targets = append(targets, pathTarget{path: c.ws.SrcDir(s), role: "content directory", dir: true})
	}
	targets = append(targets, pathTarget{path: paths.ConfigDir(), role: "config directory", dir: true})
	return targets
}

// Run executes the path and permission diagnostic check.
func (c *PathPermissionCheck) Run(_ context.Context) *CheckResult {
	var issues []pathIssue
	var checked int

	for _, t := range c.targets() {
		var found []pathIssue
		var ok bool
		if t.dir {
			found, ok = c.checkDirectory(t)
		} else {
			found, ok = c.checkFile(t)
		}
		if ok {
			checked++
		}
		issues = append(issues, found...)
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Role        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
}

// checkFile validates a file path and its permissions. Missing files are
// left to the checks that need them.
func (c *PathPermissionCheck) checkFile(t pathTarget) ([]pathIssue, bool) {
	info, err := os.Stat(t.path)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		return []pathIssue{{
			Path:     t.path,
			Role:     t.role,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}, true
	}
	if info.IsDir() {
		return []pathIssue{{
			Path:     t.path,
			Role:     t.role,
			Type:     "file",
			Problem:  "expected file but found directory",
			Severity: SeverityError,
		}}, true
	}

	var issues []pathIssue
	f, err := os.Open(t.path)
	if err != nil {
		issues = append(issues, pathIssue{
			Path:        t.path,
			Role:        t.role,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + t.path,
		})
	} else {
		f.Close()
	}

	// Unix permissions do not apply on Windows
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        t.path,
			Role:        t.role,
			Type:        "file",
			Problem:     "file is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + t.path,
		})
	}
	return issues, true
}

// checkDirectory validates a directory path and its permissions.
func (c *PathPermissionCheck) checkDirectory(t pathTarget) ([]pathIssue, bool) {
	info, err := os.Stat(t.path)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		return []pathIssue{{
			Path:     t.path,
			Role:     t.role,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}, true
	}
	if !info.IsDir() {
		return []pathIssue{{
			Path:     t.path,
			Role:     t.role,
			Type:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}, true
	}

	var issues []pathIssue
	if _, err := os.ReadDir(t.path); err != nil {
		issues = append(issues, pathIssue{
			Path:        t.path,
			Role:        t.role,
			Type:        "directory",
			Problem:     "directory is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 755 " + t.path,
		})
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        t.path,
			Role:        t.role,
			Type:        "directory",
			Problem:     "directory is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 755 " + t.path,
		})
	}
	return issues, true
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return newResult(c, SeverityPass, fmt.Sprintf("all %d paths have valid permissions", checked))
	}

	status := SeverityWarning
	issueDetails := make([]map[string]any, 0, len(issues))
	var fixHints []string
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			status = SeverityError
		}
		m := map[string]any{
			"path":     issue.Path,
			"role":     issue.Role,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			m["permissions"] = issue.Permissions
		}
		issueDetails = append(issueDetails, m)
		if issue.Fixable && issue.FixHint != "" {
			fixHints = append(fixHints, issue.FixHint)
		}
	}

	r := newResult(c, status, fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked)).
		with("checked_paths", checked).
		with("issue_count", len(issues)).
		with("issues", issueDetails).
		hint(strings.Join(fixHints, "; "))
	r.Fixable = len(fixHints) > 0
	return r
}

// formatPermissions returns the octal permission bits, e.g. "0644".
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
