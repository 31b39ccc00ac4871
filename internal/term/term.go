// Package term resolves the configured color mode into fatih/color's global
// switch and reports whether colored output is active.
//
// Auto mode makes the same decision fatih/color makes at startup: colors
// only when stdout is a terminal, NO_COLOR is unset and TERM is not "dumb".
// It is recomputed so a later "auto" undoes an earlier "always" or "never".
package term

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/backmassage/sitemedia/internal/config"
)

// Configure sets color.NoColor from mode. Call once during startup (from
// [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default: // ColorAuto
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("NO_COLOR") != "" ||
			os.Getenv("TERM") == "dumb" ||
			(!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd))
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return !color.NoColor }
