package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/backmassage/sitemedia/internal/config"
	"github.com/backmassage/sitemedia/internal/term"
)

// Level is a log severity with its display tag and color.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	return []string{"DEBUG", "INFO", "SUCCESS", "WARN", "ERROR"}[l]
}

// Color returns the tag color for l. The color objects honor color.NoColor.
func (l Level) Color() *color.Color {
	return []*color.Color{
		color.New(color.FgHiCyan, color.Bold),   // Debug
		color.New(color.FgHiBlue, color.Bold),   // Info
		color.New(color.FgHiGreen, color.Bold),  // Success
		color.New(color.FgHiYellow, color.Bold), // Warn
		color.New(color.FgHiRed, color.Bold),    // Error
	}[l]
}

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	file   *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile for
// appending. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{out: os.Stdout, errOut: os.Stderr}
	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

// New returns a Logger writing to out and errOut with no file sink.
func New(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(lv Level, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	tag := "[" + lv.String() + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if lv == LevelError {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+lv.Color().Sprint(tag)+" "+text+"\n")
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" "+tag+" "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(LevelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(LevelError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line(LevelDebug, fmt.Sprintf(format, args...))
}
