package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"under a KiB", 1023, "1023 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1 << 20, "1.0 MiB"},
		{"short clip 48 MiB", 48 << 20, "48.0 MiB"},
		{"1 GiB", 1 << 30, "1.0 GiB"},
		{"feature film 4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatBytesWithSign(t *testing.T) {
	assert.Equal(t, "+ 2.0 MiB", FormatBytesWithSign(2<<20))
	assert.Equal(t, "- 2.0 MiB", FormatBytesWithSign(-(2 << 20)))
	assert.Equal(t, "0 B", FormatBytesWithSign(0))
}

func TestNextSteps(t *testing.T) {
	steps := NextSteps("videos", "videos_mp4")
	require.Len(t, steps, 3)
	assert.Contains(t, steps[0], "'videos_mp4'")
	assert.Contains(t, steps[0], "'videos'")
	assert.Contains(t, steps[1], ".mp4")
	assert.True(t, strings.HasPrefix(steps[2], "Delete the old MKV files"))
}

func TestPrintBanner_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "|___/_|")
}
