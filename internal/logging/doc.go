// Package logging builds the slog loggers docsite writes diagnostics with.
//
// Diagnostics go to stderr so that stdout stays reserved for command output
// such as the normalized configuration. The level follows the -v count (see
// [LevelFromVerbosity]); [LevelTrace] sits below Debug and is used for
// per-node tree walks.
//
// Text output goes through [Handler], which writes one line per record and
// colors it according to a [ColorMode]. JSON output uses
// [slog.JSONHandler]. [Tee] fans records out to several handlers, which is
// how --log-file adds a JSON file next to the terminal output.
//
// Commands hand their logger down through the context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("scanned content", "documents", n)
//
// Tests use [ForTest], which routes records to the test log at Trace level.
package logging
