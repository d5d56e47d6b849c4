package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/docsite/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// PermissionFixer repairs permission problems found by PathPermissionCheck.
// It clears the world-write bit and restores owner access, leaving the
// other bits alone.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			count++
		}
	}
	return count
}

// Fix applies one chmod per fixable path. A path with several issues is
// repaired once.
func (f *PermissionFixer) Fix() []FixResult {
	seen := make(map[string]bool)
	var results []FixResult
	for _, issue := range f.issues {
		if !issue.Fixable || seen[issue.Path] {
			continue
		}
		seen[issue.Path] = true
		results = append(results, fixPermissions(issue))
	}
	return results
}

func fixPermissions(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	var owner os.FileMode
	switch issue.Type {
	case "file":
		owner = 0o600
	case "directory":
		owner = 0o700
	default:
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	info, err := os.Stat(issue.Path)
	if err != nil {
		result.Description = fmt.Sprintf("cannot stat: %v", err)
		result.Error = errors.Wrapf(err, "stat %s", issue.Path)
		return result
	}

	target := (info.Mode().Perm() &^ 0o002) | owner
	if err := os.Chmod(issue.Path, target); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", target, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", target, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", target)
	return result
}

// setIssues stores the issues found by the check for later fixing.
func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}
