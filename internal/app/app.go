package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/specialistvlad/effectc/internal/builtin"
	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/source"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	inR    io.Reader
	logW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	model  *config.Model

	debounce time.Duration
}

// Option customizes an App.
type Option func(*App)

// WithLogWriter sends log output to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithInput sets the reader used for a compiler log read from "-".
func WithInput(r io.Reader) Option {
	return func(a *App) { a.inR = r }
}

// NewApp is the constructor for the main application. Composed sources and
// listings are written to outW. A manifest that fails to load is a fatal
// startup error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:   outW,
		inR:    os.Stdin,
		logW:   os.Stderr,
		config: appConfig,
		loader: loader,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(appConfig.LogLevel, appConfig.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")

	if appConfig.Mode == ModeSections {
		return a
	}

	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	model, err := a.loadModel(ctx)
	if err != nil {
		panic(err)
	}
	a.model = model
	a.logger.Debug("Manifest loaded.",
		"files", len(model.Files),
		"sources", len(model.Sources),
		"programs", len(model.Programs),
		"base_path", model.Settings.BasePath,
		"extension", model.Settings.Extension,
	)
	return a
}

// Model returns the loaded manifest model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// loadModel reads the manifest, if any, and applies the command-line
// overrides and defaults to its settings.
func (a *App) loadModel(ctx context.Context) (*config.Model, error) {
	model := config.NewModel()
	if a.config.ManifestPath != "" {
		if _, err := os.Stat(a.config.ManifestPath); err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		m, err := a.loader.Load(ctx, a.config.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		model = m
	}

	if a.config.BasePath != "" {
		model.Settings.BasePath = a.config.BasePath
	}
	if a.config.Extension != "" {
		model.Settings.Extension = a.config.Extension
	}
	if model.Settings.BasePath == "" {
		model.Settings.BasePath = source.DefaultBasePath
	}
	if model.Settings.Extension == "" {
		model.Settings.Extension = source.DefaultExtension
	}
	return model, nil
}

// newRegistry builds a source registry from the current model. The embedded
// container is the manifest's embed root when set, the builtin effects
// otherwise. Its effects are fallback declarations, so manifest sources and
// files under the base path both shadow them.
func (a *App) newRegistry() (*source.Registry, error) {
	settings := a.model.Settings

	fsys := builtin.FS()
	if settings.EmbedRoot != "" {
		fsys = os.DirFS(settings.EmbedRoot)
	}
	embeddedDecls, err := builtin.Declarations(fsys, settings.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded effects: %w", err)
	}

	return source.NewRegistry(
		source.WithBasePath(settings.BasePath),
		source.WithExtension(settings.Extension),
		source.WithEmbedded(source.FSProvider{FS: fsys}),
		source.WithDeclarations(a.model.Declarations()...),
		source.WithFallbackDeclarations(embeddedDecls...),
		source.WithLogger(a.logger),
	), nil
}
