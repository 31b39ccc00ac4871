package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
)

// Encode renders m as two-space indented UTF-8 JSON with a trailing newline.
// HTML characters are left unescaped so filenames read as-is.
func (m Manifest) Encode() ([]byte, error) {
	if m == nil {
		m = Manifest{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces dir/images.json with m and returns the path written. The
// file is swapped in atomically, so readers never observe a partial manifest.
func Write(dir string, m Manifest) (string, error) {
	data, err := m.Encode()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := atomicwriter.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Generate builds the manifest for dir and writes it. Nothing is written when
// the listing fails.
func Generate(dir string, opts Options) (Manifest, string, error) {
	m, err := Build(dir, opts)
	if err != nil {
		return nil, "", err
	}
	path, err := Write(dir, m)
	if err != nil {
		return nil, "", err
	}
	return m, path, nil
}
