package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/effect"
	"github.com/specialistvlad/effectc/internal/source"
)

// ListSections prints the key and first body line of every section of an
// effect file, in declaration order. Parse warnings are logged.
func (a *App) ListSections(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read effect: %w", err)
	}
	origin := source.SourceFile{
		LogicalName: source.DefaultName(path, false, ""),
		Location:    path,
	}
	eff := effect.Parse(string(data), origin)
	for _, w := range eff.Warnings() {
		logger.Warn(w.Message, "kind", w.Kind, "key", w.Key, "line", w.Line)
	}

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tLINE")
	for _, s := range eff.Sections() {
		fmt.Fprintf(tw, "%s\t%d\n", s.Key, s.FirstLineNumber)
	}
	return tw.Flush()
}
