// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFileTree materializes a directory fixture under dir. Keys are
// slash-separated relative paths, values the file sizes; intermediate
// directories come into being as needed. Files are filled with zero
// bytes of the requested length.
func WriteFileTree(t *testing.T, dir string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}
}

// MakeDirs creates empty directories under dir, for fixtures where a
// directory must exist without holding any files.
func MakeDirs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, rel := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(rel)), 0o755))
	}
}

// StripANSI removes ANSI escape sequences, leaving the plain text a
// styled render would show.
func StripANSI(str string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
