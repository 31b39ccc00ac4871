//go:build unix

package pipeline

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_OnlyRegularFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "real.mkv")
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "pipe.mkv"), 0o644))

	other := t.TempDir()
	touch(t, other, "target.mkv")
	require.NoError(t, os.Symlink(filepath.Join(other, "target.mkv"), filepath.Join(dir, "link.mkv")))
	require.NoError(t, os.Symlink(other, filepath.Join(dir, "season.mkv")))

	files, err := Discover(dir, ".mkv")
	require.NoError(t, err)
	assert.Equal(t, []string{"link.mkv", "real.mkv"}, basenames(files))
}
