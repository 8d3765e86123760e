package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/effectc/internal/app"
	"github.com/specialistvlad/effectc/internal/cli"
	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/hcl"
	"github.com/specialistvlad/effectc/internal/yamlcfg"
)

// main is the entrypoint for the effectc application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors, so we recover here to
	// provide a clean error to the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	effectcApp := app.NewApp(outW, appConfig, manifestLoader())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return effectcApp.Run(ctx)
}

// manifestLoader dispatches manifests to the HCL or YAML loader by extension.
func manifestLoader() config.Loader {
	yamlLoader := yamlcfg.NewLoader()
	return config.ByExtension{
		hcl.Extension: hcl.NewLoader(),
		".yaml":       yamlLoader,
		".yml":        yamlLoader,
	}
}
