package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes each entry of files below root, creating directories as
// needed. Keys are slash-separated relative paths.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// Lines joins lines with "\n" and appends a trailing newline, which is the
// shape effect files usually have on disk.
func Lines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
