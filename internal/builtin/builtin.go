// Package builtin embeds a small library of effect files compiled into the
// binary. It is the default embedded container of the app.
package builtin

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/specialistvlad/effectc/internal/source"
)

//go:embed effects
var effects embed.FS

// FS returns the builtin effects, rooted at the effects directory.
func FS() fs.FS {
	sub, err := fs.Sub(effects, "effects")
	if err != nil {
		panic(err)
	}
	return sub
}

// Provider returns a source.Provider over the builtin effects.
func Provider() source.Provider {
	return source.FSProvider{FS: FS()}
}

// Declarations lists every effect in fsys with the given extension as an
// embedded declaration named after its resource path without the extension.
func Declarations(fsys fs.FS, extension string) ([]source.Declaration, error) {
	var decls []source.Declaration
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != "."+extension {
			return nil
		}
		decls = append(decls, source.NewDeclaration(p, "", true, extension))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls, nil
}
