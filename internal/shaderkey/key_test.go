package shaderkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelative(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		dir       string
		expectErr bool
		expected  Key
	}{
		{
			name:     "simple key",
			raw:      "Simple.Fragment",
			expected: Key{Source: "Simple", Section: "Fragment"},
		},
		{
			name:     "splits on the first dot of the file part",
			raw:      "Path/to/CoolShader.Fragment.Diffuse",
			expected: Key{Source: "Path/to/CoolShader", Section: "Fragment.Diffuse"},
		},
		{
			name:     "dots in directories are kept",
			raw:      "v1.2/Shader.Vertex",
			expected: Key{Source: "v1.2/Shader", Section: "Vertex"},
		},
		{
			name:     "relative to the including directory",
			raw:      "Common.Lighting",
			dir:      "Lighting",
			expected: Key{Source: "Lighting/Common", Section: "Lighting"},
		},
		{
			name:     "parent directory",
			raw:      "../Noise.Perlin",
			dir:      "Lighting/Deferred",
			expected: Key{Source: "Lighting/Noise", Section: "Perlin"},
		},
		{
			name:     "rooted key ignores the including directory",
			raw:      "/Shared/Common.Header",
			dir:      "Lighting",
			expected: Key{Source: "Shared/Common", Section: "Header"},
		},
		{
			name:     "backslashes are normalized",
			raw:      `Lib\Noise.Simplex`,
			expected: Key{Source: "Lib/Noise", Section: "Simplex"},
		},
		{name: "error - empty", raw: "  ", expectErr: true},
		{name: "error - no section", raw: "Simple", expectErr: true},
		{name: "error - empty section", raw: "Simple.", expectErr: true},
		{name: "error - no source name", raw: "dir/.Fragment", expectErr: true},
		{name: "error - escapes root", raw: "../../Up.Main", dir: "one", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := ParseRelative(tc.raw, tc.dir)

			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidKey))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, key)
		})
	}
}

func TestKey_DirAndString(t *testing.T) {
	k, err := Parse("Lighting/Phong.Fragment.Diffuse")
	require.NoError(t, err)
	assert.Equal(t, "Lighting", k.Dir())
	assert.Equal(t, "Lighting/Phong.Fragment.Diffuse", k.String())

	k, err = Parse("Phong.Vertex")
	require.NoError(t, err)
	assert.Equal(t, "", k.Dir())
}

func TestParseStage(t *testing.T) {
	for name, expected := range map[string]Stage{
		"vertex":       StageVertex,
		"FRAG":         StageFragment,
		" geometry ":   StageGeometry,
		"tess_control": StageTessControl,
		"tese":         StageTessEvaluation,
		"compute":      StageCompute,
	} {
		got, err := ParseStage(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, got, name)
	}

	_, err := ParseStage("pixel")
	assert.Error(t, err)
	assert.Equal(t, "fragment", StageFragment.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
