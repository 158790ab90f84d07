package render

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls when output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ErrUnknownColorMode is returned by ParseColorMode for unsupported names.
var ErrUnknownColorMode = errors.New("unknown color mode")

// ParseColorMode validates a color mode name. Boolean spellings are accepted
// for the plain on/off toggle.
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "true", "yes", "1":
		return ColorAlways, nil
	case "never", "false", "no", "0":
		return ColorNever, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColorMode, name)
	}
}

// Enabled resolves the mode. terminal reports whether the output is a
// terminal and noColor whether the user opted out through NO_COLOR.
func (m ColorMode) Enabled(terminal, noColor bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal && !noColor
	}
}
