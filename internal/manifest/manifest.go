// Package manifest builds images.json, the ordered list of gallery images a
// site page fetches to render a folder of screenshots.
//
// A manifest is derived entirely from one directory listing: files whose
// name starts with a prefix and ends in a recognized image extension become
// entries, sorted by filename, with their rank as id. Nothing persists
// between runs; [Write] replaces the whole file atomically.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the manifest written into the scanned folder.
const FileName = "images.json"

// DefaultExtensions are the recognized image suffixes (lowercase, with dot).
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// Entry describes one image. Loc and Thumb are site-relative paths and are
// always identical; no separate thumbnails are generated.
type Entry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Loc   string `json:"loc"`
	Thumb string `json:"thumb"`
}

// Manifest is the ordered entry list. It always encodes as a JSON array.
type Manifest []Entry

// Options selects and names the files of a folder.
type Options struct {
	// Prefix is a literal, case-sensitive filename prefix. Empty matches all.
	Prefix string
	// BasePath is prepended to each filename to form Loc and Thumb.
	BasePath string
	// Extensions overrides DefaultExtensions when non-empty.
	Extensions []string
	// ExactCase accepts only all-lower or all-upper suffixes (".png", ".PNG")
	// instead of any casing.
	ExactCase bool
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// Matches reports whether name belongs in the manifest.
func Matches(name string, opts Options) bool {
	if !strings.HasPrefix(name, opts.Prefix) {
		return false
	}
	for _, ext := range opts.extensions() {
		if opts.ExactCase {
			if strings.HasSuffix(name, strings.ToLower(ext)) || strings.HasSuffix(name, strings.ToUpper(ext)) {
				return true
			}
			continue
		}
		if len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
			return true
		}
	}
	return false
}

// DisplayName strips the first occurrence of prefix and the final extension
// segment: DisplayName("shot_Dune.png", "shot_") == "Dune".
func DisplayName(name, prefix string) string {
	name = strings.Replace(name, prefix, "", 1)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// SitePath concatenates base and name, inserting a "/" when a non-empty base
// lacks one.
func SitePath(base, name string) string {
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + name
}

// Build lists dir (non-recursively) and returns the manifest for the files
// matching opts. Only regular files, or symlinks resolving to one, are
// included, whatever their name.
func Build(dir string, opts Options) (Manifest, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, de := range dirEntries {
		if !Matches(de.Name(), opts) || !isRegular(dir, de) {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	m := make(Manifest, 0, len(names))
	for i, name := range names {
		loc := SitePath(opts.BasePath, name)
		m = append(m, Entry{
			ID:    i,
			Name:  DisplayName(name, opts.Prefix),
			Loc:   loc,
			Thumb: loc,
		})
	}
	return m, nil
}

// isRegular reports whether de is a regular file, following a symlink.
func isRegular(dir string, de os.DirEntry) bool {
	if de.Type().IsRegular() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, de.Name()))
	return err == nil && fi.Mode().IsRegular()
}
