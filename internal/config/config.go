// Package config holds runtime configuration: defaults, file/env loading, and
// validation. Values are read from an optional YAML file and SITEMEDIA_* env
// vars, then CLI flags override them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// DefaultPath is consulted when no --config flag is given. A missing file at
// this location is not an error.
const DefaultPath = "~/.config/sitemedia/config.yaml"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. Struct tags drive cleanenv (yaml, env,
// env-default) and validator (validate).
type Config struct {
	FFmpegBin string    `yaml:"ffmpeg_bin" env:"SITEMEDIA_FFMPEG_BIN" env-default:"ffmpeg" validate:"required"`
	ColorMode ColorMode `yaml:"color" env:"SITEMEDIA_COLOR" env-default:"auto" validate:"oneof=auto always never"`
	LogFile   string    `yaml:"log_file" env:"SITEMEDIA_LOG_FILE"`
	Verbose   bool      `yaml:"verbose" env:"SITEMEDIA_VERBOSE"`

	Manifest  ManifestConfig  `yaml:"manifest" env-prefix:"SITEMEDIA_MANIFEST_"`
	Transcode TranscodeConfig `yaml:"transcode" env-prefix:"SITEMEDIA_TRANSCODE_"`
}

// ManifestConfig configures the images.json builder.
type ManifestConfig struct {
	Dir       string `yaml:"dir" env:"DIR" env-default:"." validate:"required"`
	Prefix    string `yaml:"prefix" env:"PREFIX"`
	BasePath  string `yaml:"base_path" env:"BASE_PATH" env-default:"/images/"`
	ExactCase bool   `yaml:"exact_case" env:"EXACT_CASE"` // Legacy literal-suffix matching.
}

// TranscodeConfig configures the batch mkv -> mp4 conversion. The ffmpeg
// parameters themselves are fixed and live in the ffmpeg package.
type TranscodeConfig struct {
	InputDir  string `yaml:"input_dir" env:"INPUT_DIR" env-default:"videos" validate:"required"`
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR" env-default:"videos_mp4" validate:"required"`
	DryRun    bool   `yaml:"dry_run" env:"DRY_RUN"`
}

var validate = validator.New()

// DefaultConfig returns a Config with the same values Load produces when no
// file and no environment overrides are present.
func DefaultConfig() Config {
	return Config{
		FFmpegBin: "ffmpeg",
		ColorMode: ColorAuto,
		Manifest: ManifestConfig{
			Dir:      ".",
			BasePath: "/images/",
		},
		Transcode: TranscodeConfig{
			InputDir:  "videos",
			OutputDir: "videos_mp4",
		},
	}
}

// Load reads configuration from path (or DefaultPath when path is empty) and
// the environment. An explicitly named file must exist.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path %q: %w", path, err)
	}

	if _, err := os.Stat(expanded); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s: %w", expanded, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(expanded, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", expanded, err)
	}
	return cfg, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks struct tags, expands "~" in path fields, and rejects a
// transcode output directory equal to its input directory.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, p := range []*string{&c.FFmpegBin, &c.LogFile, &c.Manifest.Dir, &c.Transcode.InputDir, &c.Transcode.OutputDir} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	c.Manifest.Dir = NormalizeDirArg(c.Manifest.Dir)
	c.Transcode.InputDir = NormalizeDirArg(c.Transcode.InputDir)
	c.Transcode.OutputDir = NormalizeDirArg(c.Transcode.OutputDir)

	return c.ValidatePaths()
}

// ValidatePaths ensures conversions are written to a second folder rather
// than next to their sources.
func (c *Config) ValidatePaths() error {
	in, err := filepath.Abs(c.Transcode.InputDir)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(c.Transcode.OutputDir)
	if err != nil {
		return err
	}
	if in == out {
		return errors.New("transcode output directory must differ from input directory")
	}
	return nil
}
