package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCaption writes caption text into dir/name encoded with enc. A nil enc
// writes UTF-8.
func WriteCaption(t testing.TB, dir, name, text string, enc encoding.Encoding) string {
	t.Helper()

	data := []byte(text)
	if enc != nil {
		encoded, err := enc.NewEncoder().String(text)
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		data = []byte(encoded)
	}
	return WriteFile(t, filepath.Join(dir, name), data)
}

// SRT joins caption blocks with blank lines. Each block is written as given,
// so callers control index lines, time syntax and text.
func SRT(blocks ...string) string {
	trimmed := make([]string, 0, len(blocks))
	for _, block := range blocks {
		trimmed = append(trimmed, strings.Trim(block, "\n"))
	}
	return strings.Join(trimmed, "\n\n") + "\n"
}
