// Package errors provides error handling conventions for the docsite CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions. Wrapping helpers are re-exported
// from github.com/cockroachdb/errors so stack traces and error chains are
// preserved across package boundaries.
//
// # Sentinel Errors
//
//	if errors.Is(err, docerrors.ErrBrokenLinks) {
//	    // report the link check result
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid site file, broken links, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := docerrors.NewUserError(docerrors.ErrBrokenLinks, "Fix the links listed above")
//	os.Exit(docerrors.ExitCode(err))
package errors
