package ffmpeg

import (
	"errors"
	"io/fs"
	"os/exec"
	"strings"
)

// IsToolMissing reports whether err means the ffmpeg executable could not be
// started at all, as opposed to ffmpeg running and exiting non-zero.
func IsToolMissing(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}

// ExitCode returns the process exit status carried by err, or -1 when err is
// not an exit error.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// StderrTail returns the last n non-empty lines of stderr.
func StderrTail(stderr string, n int) []string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}
	out := make([]string, 0, len(lines)-start)
	for _, l := range lines[start:] {
		if l = strings.TrimRight(l, "\r"); l != "" {
			out = append(out, l)
		}
	}
	return out
}
