package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/hcl"
	"github.com/specialistvlad/effectc/internal/testutil"
	"github.com/specialistvlad/effectc/internal/yamlcfg"
)

// manifestLoader is the loader the entrypoint wires in.
func manifestLoader() config.Loader {
	return config.ByExtension{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlcfg.NewLoader(),
		".yml":  yamlcfg.NewLoader(),
	}
}

// setupAppTest creates an app with debug logging captured in a buffer and
// composed output captured in another.
func setupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}
	cfg.LogLevel = "debug"

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	opts = append([]Option{WithLogWriter(logs)}, opts...)
	a := NewApp(out, &cfg, manifestLoader(), opts...)

	t.Cleanup(func() {
		if os.Getenv("EFFECTC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}

// simpleProject writes a manifest with one program and its effect file.
func simpleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"effects.hcl": `
settings {
  base_path = "${manifest_dir}/shaders"
}

program "Diffuse" {
  shader "vertex"   { key = "Simple.Vertex" }
  shader "fragment" { key = "Simple.Fragment" }
}
`,
		"shaders/Simple.glsl": testutil.Lines(
			"--Vertex",
			"#version 330",
			"void main() {}",
			"--Fragment",
			"#version 330",
			"#include Common.Math",
			"out vec4 color;",
			"void main() { color = vec4(saturate(1.0)); }",
		),
	})
	return dir
}
