package output

import (
	"fmt"
	"io"
	"os"
)

// Values accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidateColorMode rejects --color values other than auto, always and
// never. The empty string counts as auto.
func ValidateColorMode(colorMode string) error {
	switch colorMode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", colorMode)
	}
}

// ResolveColorMode decides whether a Printer styles its output. "never" and
// "always" win outright; anything else follows isTTY, except that a
// non-empty NO_COLOR environment variable turns styling off.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal. Buffers and pipes are not.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
