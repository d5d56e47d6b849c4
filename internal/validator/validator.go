package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/docsite/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so JSON reports are readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", string(b))
	}
	return nil
}

// Issue represents a single validation problem.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity"`
	// Location is the position of the offending node, e.g. "sidebar[0].items[2]".
	Location string `json:"location,omitempty"`
	// Field identifies the field with the issue (optional).
	Field string `json:"field,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Value is the actual value that failed validation (optional).
	Value any `json:"value,omitempty"`
	// Context carries extra detail such as a suggested replacement link.
	Context map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Location != "" {
		sb.WriteString(i.Location)
		sb.WriteString(": ")
	}
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues in the order they were found.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

func (r *Result) count(s Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Add appends a fully populated issue.
func (r *Result) Add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// AddError adds an error issue at location.
func (r *Result) AddError(location, message string, value any) {
	r.Add(Issue{Severity: SeverityError, Location: location, Message: message, Value: value})
}

// AddWarning adds a warning issue at location.
func (r *Result) AddWarning(location, message string, value any) {
	r.Add(Issue{Severity: SeverityWarning, Location: location, Message: message, Value: value})
}

// AddInfo adds an info issue at location.
func (r *Result) AddInfo(location, message string, value any) {
	r.Add(Issue{Severity: SeverityInfo, Location: location, Message: message, Value: value})
}

// Merge appends every issue of other, preserving order. A nil other is a no-op.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}

// Err converts the result into a single error wrapping sentinel, listing
// every error issue on its own line. It returns nil when there are no errors.
func (r *Result) Err(sentinel error) error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(errs))
	for _, i := range errs {
		lines = append(lines, "  - "+i.Error())
	}
	err := errors.Newf("%s: %d problem(s)\n%s", sentinel.Error(), len(errs), strings.Join(lines, "\n"))
	return errors.Mark(err, sentinel)
}
