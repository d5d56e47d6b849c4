// Package validator provides the issue and result types shared by every
// docsite check: navigation tree structure, dead links, site metadata and
// theme definitions.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Issue]: A single problem, located in the tree (e.g. "nav[1].items[0]").
//   - [Result]: Aggregates issues in discovery order.
//
// Checks never stop at the first problem. A [Result] collects all of them
// and [Result.Err] folds the errors into one build-time error:
//
//	result := linkcheck.Check(tree, set, opts)
//	if err := result.Err(errors.ErrBrokenLinks); err != nil {
//		return err
//	}
package validator
