package compose

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/effectc/internal/effectcache"
	"github.com/specialistvlad/effectc/internal/source"
	"github.com/specialistvlad/effectc/internal/testutil"
	"github.com/stretchr/testify/require"
)

// newComposer builds a composer over in-memory effect files rooted at "shaders".
func newComposer(files map[string]string) (*Composer, *testutil.CountingProvider) {
	inner := make(map[string]string, len(files))
	for name, text := range files {
		inner["shaders/"+name] = text
	}
	counting := testutil.NewCountingProvider(testutil.NewMapProvider(inner))
	reg := source.NewRegistry(source.WithBasePath("shaders"), source.WithFiles(counting))
	return New(reg, effectcache.New(reg)), counting
}

// location returns the registry location of a fixture file.
func location(name string) string {
	return filepath.Join("shaders", filepath.FromSlash(name))
}

// verifyLineMapping replays the line directives of res.Source the way a GLSL
// compiler counts lines and checks that every ordinary line maps back to the
// identical physical line of the file its directive names.
func verifyLineMapping(t *testing.T, res *Result, files map[string]string) {
	t.Helper()

	physical := make(map[string][]string, len(files))
	for name, text := range files {
		physical[location(name)] = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	}

	line, file := 0, -1
	for n, l := range strings.Split(strings.TrimSuffix(res.Source, "\n"), "\n") {
		if strings.HasPrefix(l, "#line ") {
			_, err := fmt.Sscanf(l, "#line %d %d", &line, &file)
			require.NoError(t, err, "output line %d: malformed directive %q", n+1, l)
			continue
		}
		if strings.HasPrefix(l, VersionDirective) {
			line++
			continue
		}
		require.GreaterOrEqual(t, file, 0, "output line %d %q has no line directive before it", n+1, l)

		sf, ok := res.File(file)
		require.True(t, ok, "output line %d: file index %d out of range", n+1, file)
		lines := physical[sf.Location]
		require.True(t, line >= 1 && line <= len(lines), "output line %d: %s has no line %d", n+1, sf.Location, line)
		require.Equal(t, lines[line-1], l, "output line %d maps to %s:%d", n+1, sf.Location, line)
		line++
	}
}
