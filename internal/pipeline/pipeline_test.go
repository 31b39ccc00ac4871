package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/sitemedia/internal/config"
	"github.com/backmassage/sitemedia/internal/ffmpeg"
	"github.com/backmassage/sitemedia/internal/logging"
)

// --- Discover tests ---

func TestDiscover_ExactSuffix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.mkv")
	touch(t, dir, "a.mkv")
	touch(t, dir, "c.MKV")
	touch(t, dir, "d.mp4")
	touch(t, dir, "e.mkv.part")

	files, err := Discover(dir, ".mkv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mkv", "b.mkv"}, basenames(files))
}

func TestDiscover_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.mkv")
	sub := filepath.Join(dir, "season1.mkv")
	require.NoError(t, os.Mkdir(sub, 0o755))
	touch(t, sub, "ep1.mkv")

	files, err := Discover(dir, ".mkv")
	require.NoError(t, err)
	assert.Equal(t, []string{"top.mkv"}, basenames(files))
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".mkv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// --- Run tests ---

func TestRun_NoFiles(t *testing.T) {
	cfg := testConfig(t)
	ex := &fakeExecutor{}
	var out bytes.Buffer

	stats, err := Run(context.Background(), cfg, logging.New(&out, &out), ex)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, ex.calls)
	assert.Contains(t, out.String(), "No MKV files found")
	assert.DirExists(t, cfg.Transcode.OutputDir)
}

func TestRun_IsolatesPerFileFailure(t *testing.T) {
	cfg := testConfig(t)
	for _, n := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		touch(t, cfg.Transcode.InputDir, n)
	}
	ex := &fakeExecutor{fail: map[string]error{"b.mkv": errors.New("exit status 1")}}
	var out bytes.Buffer

	stats, err := Run(context.Background(), cfg, logging.New(&out, &out), ex)
	require.NoError(t, err)
	assert.Len(t, ex.calls, 3)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Converted)
	assert.Equal(t, 1, stats.Failed)
	assert.False(t, stats.Aborted)

	assert.FileExists(t, filepath.Join(cfg.Transcode.OutputDir, "a.mp4"))
	assert.FileExists(t, filepath.Join(cfg.Transcode.OutputDir, "c.mp4"))
	assert.NoFileExists(t, filepath.Join(cfg.Transcode.OutputDir, "b.mp4"))

	require.Len(t, stats.Results, 3)
	assert.Equal(t, OutcomeFailed, stats.Results[1].Outcome)
	assert.Equal(t, -1, stats.Results[1].ExitCode)

	log := out.String()
	assert.Contains(t, log, "Done: 2 converted, 1 failed")
	assert.Contains(t, log, "Next steps:")
	assert.Contains(t, log, "3. Delete the old MKV files")
}

func TestRun_CommandLine(t *testing.T) {
	cfg := testConfig(t)
	touch(t, cfg.Transcode.InputDir, "movie.mkv")
	ex := &fakeExecutor{}

	_, err := Run(context.Background(), cfg, logging.New(&bytes.Buffer{}, &bytes.Buffer{}), ex)
	require.NoError(t, err)
	require.Len(t, ex.calls, 1)

	args := ex.calls[0]
	assert.Equal(t, cfg.FFmpegBin, args[0])
	assert.Equal(t, filepath.Join(cfg.Transcode.InputDir, "movie.mkv"), args[indexOf(args, "-i")+1])
	assert.Equal(t, filepath.Join(cfg.Transcode.OutputDir, "movie.mp4"), args[len(args)-1])
}

func TestRun_ToolMissingUpfront(t *testing.T) {
	cfg := testConfig(t)
	cfg.FFmpegBin = filepath.Join(t.TempDir(), "no-ffmpeg")
	touch(t, cfg.Transcode.InputDir, "a.mkv")
	ex := &fakeExecutor{}
	var out bytes.Buffer

	stats, err := Run(context.Background(), cfg, logging.New(&out, &out), ex)
	require.ErrorIs(t, err, ErrToolMissing)
	assert.True(t, stats.Aborted)
	assert.Empty(t, ex.calls)
	assert.Contains(t, out.String(), "Please install FFmpeg:")
}

func TestRun_ToolMissingMidBatch(t *testing.T) {
	cfg := testConfig(t)
	for _, n := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		touch(t, cfg.Transcode.InputDir, n)
	}
	ex := &fakeExecutor{fail: map[string]error{
		"a.mkv": &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound},
	}}
	var out bytes.Buffer

	stats, err := Run(context.Background(), cfg, logging.New(&out, &out), ex)
	require.ErrorIs(t, err, ErrToolMissing)
	assert.Len(t, ex.calls, 1, "no further files attempted")
	assert.True(t, stats.Aborted)
	assert.Zero(t, stats.Converted)
	assert.NotContains(t, out.String(), "Next steps:")
}

func TestRun_DryRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.FFmpegBin = filepath.Join(t.TempDir(), "no-ffmpeg")
	cfg.Transcode.DryRun = true
	touch(t, cfg.Transcode.InputDir, "a.mkv")
	touch(t, cfg.Transcode.InputDir, "b.mkv")
	ex := &fakeExecutor{}
	var out bytes.Buffer

	stats, err := Run(context.Background(), cfg, logging.New(&out, &out), ex)
	require.NoError(t, err)
	assert.Empty(t, ex.calls)
	assert.Equal(t, 2, stats.Planned)
	assert.Contains(t, out.String(), "Done: 2 planned (dry run)")

	entries, err := os.ReadDir(cfg.Transcode.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	cfg := testConfig(t)
	touch(t, cfg.Transcode.InputDir, "a.mkv")
	ex := &fakeExecutor{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, logging.New(&bytes.Buffer{}, &bytes.Buffer{}), ex)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ex.calls)
}

// --- Stats tests ---

func TestRunStats_Record(t *testing.T) {
	var s RunStats
	s.record(FileResult{Outcome: OutcomeConverted, InputBytes: 1000, OutputBytes: 400})
	s.record(FileResult{Outcome: OutcomeConverted, InputBytes: 500, OutputBytes: 700})
	s.record(FileResult{Outcome: OutcomeFailed, InputBytes: 9999})

	assert.Equal(t, 2, s.Converted)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, int64(1500), s.TotalInputBytes)
	assert.Equal(t, int64(1100), s.TotalOutputBytes)
	assert.Equal(t, int64(400), s.SpaceSaved())
	assert.Len(t, s.Results, 3)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "converted", OutcomeConverted.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "aborted", OutcomeAborted.String())
	assert.Equal(t, "planned", OutcomePlanned.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

// --- Helpers ---

// fakeExecutor records invocations and writes a small output file for every
// source not listed in fail.
type fakeExecutor struct {
	mu    sync.Mutex
	calls [][]string
	fail  map[string]error
}

func (f *fakeExecutor) Execute(_ context.Context, args []string) ffmpeg.ExecResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)

	src := filepath.Base(args[indexOf(args, "-i")+1])
	if err, ok := f.fail[src]; ok {
		return ffmpeg.ExecResult{Stderr: "Invalid data found when processing input\n", Err: err}
	}
	if err := os.WriteFile(args[len(args)-1], []byte("mp4"), 0o644); err != nil {
		return ffmpeg.ExecResult{Err: err}
	}
	return ffmpeg.ExecResult{}
}

// testConfig returns a config with fresh input and output directories. The
// ffmpeg binary is the test executable itself so the upfront lookup succeeds.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	self, err := os.Executable()
	require.NoError(t, err)

	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.FFmpegBin = self
	cfg.Transcode.InputDir = filepath.Join(root, "videos")
	cfg.Transcode.OutputDir = filepath.Join(root, "videos_mp4")
	require.NoError(t, os.Mkdir(cfg.Transcode.InputDir, 0o755))
	return &cfg
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("mkv"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	sort.Strings(out)
	return out
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}
