package doctor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thoreinstein/docsite/internal/logging"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "config", "content").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run(ctx context.Context) *CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	logger *slog.Logger
}

// NewRunner creates a new diagnostic runner. A nil logger discards output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Runner{
		checks: make([]Check, 0),
		logger: logger,
	}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in run order.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes all registered checks in order and returns a report. Checks
// not yet started when ctx is cancelled are reported as errors.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		var result *CheckResult
		if err := ctx.Err(); err != nil {
			result = newResult(check, SeverityError, "not run: "+err.Error())
		} else {
			start := time.Now()
			result = check.Run(ctx)
			r.logger.Debug("check finished",
				"check", check.Name(),
				"status", result.Status.String(),
				"elapsed", time.Since(start))
		}
		report.add(result)
	}

	return report
}
