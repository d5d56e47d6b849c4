package config

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not 1.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidPattern indicates an ignore pattern that cannot be matched.
	ErrInvalidPattern = errors.New("invalid ignore pattern")
)

// Validate checks a Config for validity.
// Returns nil if valid, or every validation error found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnsupportedVersion, cfg.Version))
	}

	switch cfg.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidFormat, cfg.Format))
	}

	if strings.ContainsRune(cfg.SiteFile, '\x00') {
		errs = append(errs, &PathError{Field: "site_file", Path: cfg.SiteFile, Err: ErrInvalidPath})
	}

	for _, pattern := range cfg.LinkCheck.Ignore {
		// path.Match reports ErrBadPattern regardless of the name
		if _, err := path.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidPattern, pattern))
		}
	}

	return errs
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
