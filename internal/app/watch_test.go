package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/effectc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RecomposesOnChange(t *testing.T) {
	// Arrange
	dir := simpleProject(t)
	outDir := filepath.Join(t.TempDir(), "out")
	a, _, logs := setupAppTest(t,
		Config{ManifestPath: dir, OutDir: outDir, Watch: true},
		WithDebounce(20*time.Millisecond),
	)
	vertexPath := filepath.Join(outDir, "Diffuse", "vertex.glsl")
	read := func() string {
		data, _ := os.ReadFile(vertexPath)
		return string(data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(read(), "void main() {}")
	}, 5*time.Second, 10*time.Millisecond, "initial composition")

	// Act
	testutil.WriteFiles(t, dir, map[string]string{
		"shaders/Simple.glsl": testutil.Lines(
			"--Vertex",
			"#version 330",
			"void main() { gl_Position = vec4(0.0); }",
			"--Fragment",
			"void main() {}",
		),
	})

	// Assert
	require.Eventually(t, func() bool {
		return strings.Contains(read(), "gl_Position = vec4(0.0);")
	}, 5*time.Second, 10*time.Millisecond, "recomposition after change")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Contains(t, logs.String(), "Recomposed.")
}

func TestWatch_KeepsRunningAfterFailure(t *testing.T) {
	// Arrange
	dir := simpleProject(t)
	outDir := filepath.Join(t.TempDir(), "out")
	a, _, logs := setupAppTest(t,
		Config{ManifestPath: dir, OutDir: outDir, Watch: true},
		WithDebounce(20*time.Millisecond),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(outDir, "Diffuse", "fragment.glsl"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	// Act
	testutil.WriteFiles(t, dir, map[string]string{
		"shaders/Simple.glsl": testutil.Lines("--Vertex", "#include Gone.Part", "--Fragment", "int f;"),
	})
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Recomposition failed.")
	}, 5*time.Second, 10*time.Millisecond)

	testutil.WriteFiles(t, dir, map[string]string{
		"shaders/Simple.glsl": testutil.Lines("--Vertex", "int fixed;", "--Fragment", "int f;"),
	})

	// Assert
	require.Eventually(t, func() bool {
		data, _ := os.ReadFile(filepath.Join(outDir, "Diffuse", "vertex.glsl"))
		return strings.Contains(string(data), "int fixed;")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchDirs(t *testing.T) {
	dir := simpleProject(t)
	testutil.WriteFiles(t, dir, map[string]string{"shaders/nested/Extra.glsl": "--A\n"})
	a, _, _ := setupAppTest(t, Config{ManifestPath: dir})

	dirs := a.watchDirs()

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "shaders"),
		filepath.Join(dir, "shaders", "nested"),
		dir,
	}, dirs)
}

func TestClassify(t *testing.T) {
	a, _, _ := setupAppTest(t, Config{ManifestPath: simpleProject(t)})

	assert.Equal(t, changeEffect, a.classify("x/Simple.GLSL"))
	assert.Equal(t, changeManifest, a.classify("x/effects.hcl"))
	assert.Equal(t, changeNone, a.classify("x/notes.txt"))
}

func TestWatch_PicksUpNewDirectories(t *testing.T) {
	// Arrange
	base := t.TempDir()
	testutil.WriteFiles(t, base, map[string]string{"Keep.glsl": "--Main\nint keep;\n"})
	outDir := filepath.Join(t.TempDir(), "out")
	a, _, logs := setupAppTest(t,
		Config{Keys: []string{"Nested/Deep/Extra.Main"}, BasePath: base, OutDir: outDir, Watch: true},
		WithDebounce(20*time.Millisecond),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Recomposition failed.")
	}, 5*time.Second, 10*time.Millisecond, "initial composition fails, the effect does not exist yet")

	// Act
	testutil.WriteFiles(t, base, map[string]string{"Nested/Deep/Extra.glsl": "--Main\nint extra;\n"})

	// Assert
	outPath := filepath.Join(outDir, "Nested", "Deep", "Extra.Main.glsl")
	require.Eventually(t, func() bool {
		data, _ := os.ReadFile(outPath)
		return strings.Contains(string(data), "int extra;")
	}, 5*time.Second, 10*time.Millisecond)

	testutil.WriteFiles(t, base, map[string]string{"Nested/Deep/Extra.glsl": "--Main\nint edited;\n"})
	require.Eventually(t, func() bool {
		data, _ := os.ReadFile(outPath)
		return strings.Contains(string(data), "int edited;")
	}, 5*time.Second, 10*time.Millisecond, "edits inside a directory created after startup are watched")

	cancel()
	require.NoError(t, <-done)
}
