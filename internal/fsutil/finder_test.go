package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "a.HCL"))
	writeFile(t, filepath.Join(root, "c.yaml"))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "a.HCL"),
	}, files)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	single := filepath.Join(root, "manifest.txt")
	writeFile(t, single)
	writeFile(t, filepath.Join(root, "dir", "one.hcl"))
	writeFile(t, filepath.Join(root, "dir", "two.yml"))
	writeFile(t, filepath.Join(root, "dir", "skip.md"))

	files, err := ExpandPaths([]string{
		single,
		filepath.Join(root, "dir"),
		filepath.Join(root, "missing"),
		single,
	}, ".hcl", ".yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		single,
		filepath.Join(root, "dir", "one.hcl"),
		filepath.Join(root, "dir", "two.yml"),
	}, files)
}
