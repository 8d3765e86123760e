package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/effectc/internal/diag"
)

// Explain composes the single configured key and rewrites a compiler info
// log for it so positions name effect files instead of file indices.
func (a *App) Explain(ctx context.Context) error {
	outputs, err := a.ComposeAll(ctx)
	if err != nil {
		return err
	}
	res := outputs[0].Result

	var r io.Reader = a.inR
	if p := a.config.LogPath; p != "" && p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open compiler log: %w", err)
		}
		defer f.Close()
		r = f
	}
	log, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read compiler log: %w", err)
	}

	for _, m := range diag.Parse(string(log)) {
		if loc, ok := diag.Locate(res.Files, m.FileIndex, m.Line); ok {
			a.logger.Debug("Compiler message.", "severity", m.Severity, "at", loc, "text", m.Text)
		}
	}
	_, err = io.WriteString(a.outW, diag.Rewrite(string(log), res.Files))
	return err
}
