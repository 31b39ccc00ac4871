// Package pipeline orchestrates the batch conversion: discovery, per-file
// execution with isolated failures, and the summary report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/sitemedia/internal/check"
	"github.com/backmassage/sitemedia/internal/config"
	"github.com/backmassage/sitemedia/internal/display"
	"github.com/backmassage/sitemedia/internal/ffmpeg"
	"github.com/backmassage/sitemedia/internal/logging"
)

// ErrToolMissing is returned when ffmpeg cannot be started, either at the
// upfront check or during the batch. No further files are attempted.
var ErrToolMissing = errors.New("ffmpeg unavailable, batch aborted")

const stderrTailLines = 20

// Executor runs one ffmpeg command line.
type Executor interface {
	Execute(ctx context.Context, args []string) ffmpeg.ExecResult
}

// ProcessExecutor runs commands as child processes. Tee, when set, receives
// ffmpeg's stderr live.
type ProcessExecutor struct {
	Tee io.Writer
}

// Execute implements Executor.
func (p ProcessExecutor) Execute(ctx context.Context, args []string) ffmpeg.ExecResult {
	return ffmpeg.Execute(ctx, args, p.Tee)
}

// Run is the top-level batch entry point. It converts every SourceExt file in
// cfg.Transcode.InputDir, one at a time, and returns aggregate stats.
//
// A file whose conversion fails is reported and skipped. A missing ffmpeg
// binary, detected before the loop or on any invocation, stops the batch
// and returns ErrToolMissing.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, ex Executor) (RunStats, error) {
	stats := RunStats{RunID: uuid.New()}
	inputDir, outputDir := cfg.Transcode.InputDir, cfg.Transcode.OutputDir

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	files, err := Discover(inputDir, ffmpeg.SourceExt)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		log.Warn("No MKV files found in %s", inputDir)
		return stats, nil
	}
	stats.Total = len(files)

	if !cfg.Transcode.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			logRemediation(log)
			stats.Aborted = true
			return stats, fmt.Errorf("%w: %w", ErrToolMissing, err)
		}
	}

	logBatchHeader(cfg, log, &stats)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		res := processFile(ctx, cfg, log, ex, path, &stats)
		stats.record(res)

		if res.Outcome == OutcomeAborted {
			logRemediation(log)
			log.Error("Aborted after %d of %d files", stats.Current, stats.Total)
			return stats, fmt.Errorf("%w: %w", ErrToolMissing, res.Err)
		}
	}

	logSummary(cfg, log, &stats)
	return stats, ctx.Err()
}

// processFile converts one file and classifies the result.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	ex Executor,
	path string,
	stats *RunStats,
) FileResult {
	task := ffmpeg.TaskFor(path, cfg.Transcode.OutputDir, ffmpeg.TargetExt)
	res := FileResult{Task: task, ExitCode: -1}

	log.Info("[%d/%d] Converting: %s -> %s", stats.Current, stats.Total,
		filepath.Base(task.SourcePath), filepath.Base(task.DestPath))
	if fi, err := os.Stat(path); err == nil {
		res.InputBytes = fi.Size()
	}

	args := ffmpeg.Build(cfg.FFmpegBin, task)
	log.Debug(cfg.Verbose, "  %s", strings.Join(args, " "))

	if cfg.Transcode.DryRun {
		log.Success("[DRY] Would convert: %s", filepath.Base(task.SourcePath))
		res.Outcome = OutcomePlanned
		return res
	}

	start := time.Now()
	result := ex.Execute(ctx, args)
	res.Elapsed = time.Since(start)
	res.Stderr = result.Stderr
	res.Err = result.Err

	switch {
	case result.Err == nil:
		res.Outcome = OutcomeConverted
		if fi, err := os.Stat(task.DestPath); err == nil {
			res.OutputBytes = fi.Size()
		}
		log.Success("Successfully converted: %s (%ds)", filepath.Base(task.DestPath), int(res.Elapsed.Seconds()))

	case ffmpeg.IsToolMissing(result.Err):
		res.Outcome = OutcomeAborted
		log.Error("ffmpeg could not be started: %v", result.Err)

	default:
		res.Outcome = OutcomeFailed
		res.ExitCode = ffmpeg.ExitCode(result.Err)
		log.Error("Error converting %s: %v", filepath.Base(task.SourcePath), result.Err)
		logStderr(log, result.Stderr)
		os.Remove(task.DestPath)
	}
	return res
}

func logStderr(log *logging.Logger, stderr string) {
	lines := ffmpeg.StderrTail(stderr, stderrTailLines)
	if len(lines) == 0 {
		return
	}
	log.Error("Last ffmpeg output:")
	for _, l := range lines {
		log.Error("  %s", l)
	}
}

func logRemediation(log *logging.Logger) {
	for _, l := range check.Remediation() {
		log.Error("%s", l)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Run %s", stats.RunID)
	log.Info("Found %d MKV files to convert", stats.Total)
	log.Info("In:  %s", cfg.Transcode.InputDir)
	log.Info("Out: %s", cfg.Transcode.OutputDir)
	if cfg.Transcode.DryRun {
		log.Warn("DRY RUN - no files will be written")
	}
	log.Info("")
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if cfg.Transcode.DryRun {
		log.Info("Done: %d planned (dry run)", stats.Planned)
		return
	}

	log.Info("Done: %d converted, %d failed", stats.Converted, stats.Failed)
	for _, r := range stats.Results {
		if r.Outcome == OutcomeFailed {
			log.Warn("  Failed: %s (exit %d)", filepath.Base(r.Task.SourcePath), r.ExitCode)
		}
	}
	if stats.Converted > 0 {
		log.Info("  Output size: %s (input %s, %s)",
			display.FormatBytes(stats.TotalOutputBytes),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytesWithSign(-stats.SpaceSaved()))
		log.Success("Conversion complete! MP4 files saved to '%s'", cfg.Transcode.OutputDir)
	} else {
		log.Warn("No files were converted")
	}
	log.Info("")
	log.Info("Next steps:")
	for i, step := range display.NextSteps(cfg.Transcode.InputDir, cfg.Transcode.OutputDir) {
		log.Info("%d. %s", i+1, step)
	}
}
