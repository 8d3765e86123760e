package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/effectc/internal/ctxlog"
)

// Run executes the main application logic based on the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	switch a.config.Mode {
	case ModeSections:
		return a.ListSections(ctx, a.config.SectionsFile)
	case ModeDiag:
		return a.Explain(ctx)
	}

	if a.config.Watch {
		return a.Watch(ctx)
	}
	if err := a.composeAndWrite(ctx); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) composeAndWrite(ctx context.Context) error {
	outputs, err := a.ComposeAll(ctx)
	if err != nil {
		return fmt.Errorf("composition failed: %w", err)
	}
	if len(outputs) == 0 {
		a.logger.Warn("Nothing to compose.")
		return nil
	}
	return a.writeOutputs(outputs)
}
