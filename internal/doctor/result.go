package doctor

import (
	"slices"
	"time"

	"github.com/thoreinstein/docsite/internal/errors"
)

// Severity ranks the outcome of a check. Higher values are worse.
type Severity int

const (
	// SeverityPass means the check found nothing to report.
	SeverityPass Severity = iota
	// SeverityInfo is informational, such as a skipped or disabled check.
	SeverityInfo
	// SeverityWarning is a problem docsite can work around.
	SeverityWarning
	// SeverityError is a problem that breaks validate or build.
	SeverityError
)

var severityNames = [...]string{"pass", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	i := slices.Index(severityNames[:], string(b))
	if i < 0 {
		return errors.Newf("unknown severity %q", string(b))
	}
	*s = Severity(i)
	return nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`
	// Details holds check-specific context, such as the issues found.
	Details map[string]any `json:"details,omitempty"`
	// Fixable is set when docsite doctor --fix can repair the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// newResult starts a result for c.
func newResult(c Check, status Severity, msg string) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  msg,
	}
}

// with sets a detail and returns r.
func (r *CheckResult) with(key string, value any) *CheckResult {
	if r.Details == nil {
		r.Details = make(map[string]any)
	}
	r.Details[key] = value
	return r
}

// hint sets the fix hint and returns r.
func (r *CheckResult) hint(h string) *CheckResult {
	r.FixHint = h
	return r
}

// Summary counts results by status.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) count(status Severity) {
	switch status {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}

// Report collects the results of one doctor run.
type Report struct {
	// Timestamp is when the run started.
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

func (r *Report) add(result *CheckResult) {
	r.Results = append(r.Results, result)
	r.Summary.count(result.Status)
}

// Worst returns the most severe status in the report, or SeverityPass for
// an empty one.
func (r *Report) Worst() Severity {
	switch {
	case r.Summary.Errors > 0:
		return SeverityError
	case r.Summary.Warnings > 0:
		return SeverityWarning
	case r.Summary.Info > 0:
		return SeverityInfo
	}
	return SeverityPass
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
