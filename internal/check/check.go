// Package check provides system diagnostics (the check command) and the
// pre-batch dependency validation (CheckDeps) for ffmpeg and the libx264 and
// aac encoders the conversion relies on.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/sitemedia/internal/config"
)

// ErrFfmpegNotFound is wrapped by CheckDeps when the configured binary cannot
// be resolved.
var ErrFfmpegNotFound = errors.New("ffmpeg not found")

// requiredEncoders are the encoders named by the fixed conversion command.
var requiredEncoders = []string{"libx264", "aac"}

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Remediation returns human-readable install instructions for ffmpeg.
func Remediation() []string {
	return []string{
		"Please install FFmpeg:",
		"  Windows: Download from https://ffmpeg.org/download.html",
		"  Mac: brew install ffmpeg",
		"  Linux: sudo apt-get install ffmpeg",
	}
}

// CheckDeps verifies the configured ffmpeg binary can be located. It runs
// once before a batch starts so a missing tool aborts before any file is
// attempted.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return fmt.Errorf("%w (%s): %v", ErrFfmpegNotFound, cfg.FFmpegBin, err)
	}
	return nil
}

// RunCheck runs the interactive diagnostics: ffmpeg version, required
// encoders, and a tiny test conversion. Returns false if anything is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	if !checkFfmpeg(cfg.FFmpegBin, log) {
		for _, l := range Remediation() {
			log.Info("%s", l)
		}
		return false
	}
	ok := checkEncoders(cfg.FFmpegBin, log)
	if !checkTestEncode(cfg.FFmpegBin, log) {
		ok = false
	}
	return ok
}

// checkFfmpeg verifies ffmpeg is resolvable and logs its version string.
func checkFfmpeg(bin string, log Logger) bool {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("ffmpeg not found: %s", bin)
		return false
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return false
	}
	log.Success("ffmpeg: %s", firstLine(string(out)))
	return true
}

// checkEncoders confirms every required encoder appears in `ffmpeg -encoders`.
func checkEncoders(bin string, log Logger) bool {
	out, err := exec.Command(bin, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}
	listed := parseEncoders(string(out))
	ok := true
	for _, enc := range requiredEncoders {
		if listed[enc] {
			log.Success("Encoder available: %s", enc)
		} else {
			log.Error("Encoder missing: %s", enc)
			ok = false
		}
	}
	return ok
}

// checkTestEncode runs a minimal libx264 + aac encode to a null muxer.
func checkTestEncode(bin string, log Logger) bool {
	log.Info("Testing H.264/AAC encode...")
	err := exec.Command(bin,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:v", "libx264", "-c:a", "aac",
		"-f", "null", "-",
	).Run()
	if err != nil {
		log.Error("Test encode failed: %v", err)
		return false
	}
	log.Success("Test encode works")
	return true
}

// parseEncoders extracts encoder names from `ffmpeg -encoders` output. Each
// encoder line is " FLAGS name description"; the header lines before the
// "------" separator are skipped.
func parseEncoders(out string) map[string]bool {
	names := make(map[string]bool)
	inList := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "---") {
			inList = true
			continue
		}
		if !inList {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) >= 2 {
			names[fields[1]] = true
		}
	}
	return names
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
