// Package doctor runs diagnostic checks against a docsite project.
//
// A Runner executes Checks in registration order and collects a
// Report. Checks share a Workspace, which knows where the site file
// lives and how link checking is configured. Checks that can repair what
// they find implement Fixer.
package doctor
