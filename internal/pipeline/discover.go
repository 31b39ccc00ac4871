package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists inputDir (non-recursively) and returns the paths of regular
// files, symlinks followed, whose name ends with ext. The suffix test is
// exact, so ".MKV" does not match ".mkv". Order follows the directory
// listing, which is sorted by name.
func Discover(inputDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", inputDir, err)
	}
	var files []string
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(inputDir, e.Name())
		if !e.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			if e.Type()&os.ModeSymlink == 0 {
				continue
			}
			if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	return files, nil
}
