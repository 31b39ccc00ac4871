// Package ffmpeg builds and executes the fixed mkv -> mp4 conversion command.
package ffmpeg

import (
	"path/filepath"
	"strings"

	tcffmpeg "github.com/floostack/transcoder/ffmpeg"
)

// Source and target extensions of the batch conversion.
const (
	SourceExt = ".mkv"
	TargetExt = ".mp4"
)

// Fixed transcoding parameters. H.264 + AAC with the moov atom up front plays
// in every HTML5 video element without a full download.
const (
	videoCodec         = "libx264"
	audioCodec         = "aac"
	audioBitrate       = "192k"
	strictExperimental = -2 // "-strict experimental"
	movFlags           = "+faststart"
)

// Task is one conversion: a source file and the output path derived from it.
type Task struct {
	SourcePath string
	DestPath   string
}

// TaskFor places src's base name, with only its final extension swapped for
// targetExt, inside outDir.
func TaskFor(src, outDir, targetExt string) Task {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return Task{
		SourcePath: src,
		DestPath:   filepath.Join(outDir, stem+targetExt),
	}
}

// Options returns the fixed encoder options. They are not configurable.
func Options() *tcffmpeg.Options {
	vc, ac, ab := videoCodec, audioCodec, audioBitrate
	strict := strictExperimental
	mf := movFlags
	return &tcffmpeg.Options{
		VideoCodec:   &vc,
		AudioCodec:   &ac,
		AudioBitrate: &ab,
		Strict:       &strict,
		MovFlags:     &mf,
	}
}

// Build constructs the complete argument slice (binary first) for t.
func Build(bin string, t Task) []string {
	opts := Options().GetStrArguments()

	args := make([]string, 0, len(opts)+8)
	// --- Preamble ---
	args = append(args, bin, "-hide_banner", "-nostdin", "-y")
	// --- Input ---
	args = append(args, "-i", t.SourcePath)
	// --- Codecs, bitrate, container flags ---
	args = append(args, opts...)
	// --- Output ---
	args = append(args, t.DestPath)
	return args
}
