package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/docsite/internal/errors"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	// ColorAuto colors terminals unless the environment opts out.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors every writer.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string is ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	}
	return "", errors.Newf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled reports whether output written to w should be colored.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return SupportsColor(w)
}

// IsTTY reports whether w is a terminal. Any writer with an Fd method, such
// as *os.File, is checked.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether w is a terminal that accepts ANSI colors.
// NO_COLOR (https://no-color.org) and TERM=dumb turn color off; a non-empty
// FORCE_COLOR other than "0" turns it on for any writer.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

func colorAllowed(tty bool) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	return tty
}
