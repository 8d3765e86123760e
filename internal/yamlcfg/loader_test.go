package yamlcfg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/shaderkey"
	"github.com/specialistvlad/effectc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"effects.yaml": testutil.Lines(
			"settings:",
			"  base_path: shaders",
			"  extension: glsl",
			"  embed_root: assets",
			"sources:",
			"  - name: Lighting",
			"    path: lib/lighting.glsl",
			"  - path: noise/simplex.glsl",
			"    embedded: true",
			"programs:",
			"  - name: Diffuse",
			"    shaders:",
			"      fragment: Simple.Fragment.Diffuse",
			"      vertex: Simple.Vertex",
		),
	})

	// Act
	model, err := NewLoader().Load(context.Background(), dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		BasePath:  filepath.Join(dir, "shaders"),
		Extension: "glsl",
		EmbedRoot: filepath.Join(dir, "assets"),
	}, model.Settings)
	assert.Equal(t, []*config.Source{
		{Name: "Lighting", Path: filepath.Join(dir, "lib", "lighting.glsl")},
		{Path: "noise/simplex.glsl", Embedded: true},
	}, model.Sources)
	require.Len(t, model.Programs, 1)
	assert.Equal(t, []*config.Shader{
		{Stage: shaderkey.StageVertex, Key: "Simple.Vertex"},
		{Stage: shaderkey.StageFragment, Key: "Simple.Fragment.Diffuse"},
	}, model.Programs[0].Shaders)
}

func TestLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"empty.yml": ""})

	model, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Empty(t, model.Programs)
	assert.Len(t, model.Files, 1)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "setings:\n  base_path: x\n",
			wantErr: "failed to decode YAML file",
		},
		{
			name:    "malformed",
			content: "programs: [\n",
			wantErr: "failed to decode YAML file",
		},
		{
			name:    "unknown stage",
			content: "programs:\n  - name: A\n    shaders:\n      pixel: A.B\n",
			wantErr: `unknown shader stage "pixel"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFiles(t, dir, map[string]string{"m.yaml": tc.content})

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
