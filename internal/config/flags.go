package config

// pflag.Value adapters so enum types can be bound with fs.Var, plus the
// --color / --no-color precedence shared by every command.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ColorFlags holds the color-related persistent flags. They are applied
// after parsing so a config-file value holds unless a flag is given.
type ColorFlags struct {
	Mode    ColorMode
	NoColor bool
}

// BindColorFlags registers --color and --no-color on fs.
func BindColorFlags(fs *pflag.FlagSet, f *ColorFlags) {
	fs.Var(&colorModeValue{&f.Mode}, "color", "Colored logs: auto | always | never")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored logs")
}

// Apply copies flag values into cfg. --no-color wins over --color.
func (f *ColorFlags) Apply(cfg *Config) {
	if f.NoColor {
		cfg.ColorMode = ColorNever
		return
	}
	if f.Mode != "" {
		cfg.ColorMode = f.Mode
	}
}

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
