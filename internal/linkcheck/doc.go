// Package linkcheck verifies that every link in a navigation tree points at
// a document in the content set.
//
// All broken links are collected in one pass. A caller that wants a
// build-time failure converts the result with
// validator.Result.Err(errors.ErrBrokenLinks).
package linkcheck
