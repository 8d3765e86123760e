package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/specialistvlad/effectc/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Compose(t *testing.T) {
	// Arrange
	args := []string{
		"--log-level", "DEBUG", "--log-format", "json",
		"compose", "effects.hcl",
		"-k", "Lighting/Phong.Fragment", "--key", "Simple.Vertex",
		"-p", "Diffuse", "-o", "out", "-w", "3", "--watch",
		"--base-path", "shaders", "--extension", "frag",
	}
	out := &bytes.Buffer{}

	// Act
	cfg, shouldExit, err := Parse(args, out)

	// Assert
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, &app.Config{
		Mode:         app.ModeCompose,
		ManifestPath: "effects.hcl",
		Keys:         []string{"Lighting/Phong.Fragment", "Simple.Vertex"},
		Program:      "Diffuse",
		OutDir:       "out",
		BasePath:     "shaders",
		Extension:    "frag",
		Watch:        true,
		WorkerCount:  3,
		LogFormat:    "json",
		LogLevel:     "debug",
	}, cfg)
}

func TestParse_ComposeDefaults(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{"compose", "-k", "A.B"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, runtime.NumCPU(), cfg.WorkerCount)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ManifestPath)
}

func TestParse_Sections(t *testing.T) {
	cfg, _, err := Parse([]string{"sections", "Phong.glsl"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, app.ModeSections, cfg.Mode)
	assert.Equal(t, "Phong.glsl", cfg.SectionsFile)
}

func TestParse_Diag(t *testing.T) {
	cfg, _, err := Parse([]string{"diag", "-m", "effects.hcl", "Simple.Fragment", "compile.log"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, app.ModeDiag, cfg.Mode)
	assert.Equal(t, "effects.hcl", cfg.ManifestPath)
	assert.Equal(t, []string{"Simple.Fragment"}, cfg.Keys)
	assert.Equal(t, "compile.log", cfg.LogPath)
}

func TestParse_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}, {"compose", "--help"}} {
		out := &bytes.Buffer{}

		cfg, shouldExit, err := Parse(args, out)

		require.NoError(t, err, args)
		assert.True(t, shouldExit, args)
		assert.Nil(t, cfg, args)
		assert.Contains(t, out.String(), "Usage:", args)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "unknown flag",
			args:    []string{"compose", "--this-is-not-a-valid-flag"},
			wantMsg: "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:    "unknown command",
			args:    []string{"explode"},
			wantMsg: `unknown command "explode"`,
		},
		{
			name:    "nothing to compose",
			args:    []string{"compose"},
			wantMsg: "either a manifest path or at least one --key is required",
		},
		{
			name:    "bad log format",
			args:    []string{"--log-format", "xml", "compose", "-k", "A.B"},
			wantMsg: "invalid log-format",
		},
		{
			name:    "bad log level",
			args:    []string{"--log-level", "loud", "compose", "-k", "A.B"},
			wantMsg: "invalid log level",
		},
		{
			name:    "zero workers",
			args:    []string{"compose", "-k", "A.B", "-w", "0"},
			wantMsg: "workers must be at least 1",
		},
		{
			name:    "sections needs a file",
			args:    []string{"sections"},
			wantMsg: "accepts 1 arg(s), received 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.False(t, shouldExit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
