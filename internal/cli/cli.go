package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/specialistvlad/effectc/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type globalFlags struct {
	logFormat string
	logLevel  string
}

type sourceFlags struct {
	basePath  string
	extension string
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly (help was shown),
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	var global globalFlags
	build := func(c app.Config) error {
		format := strings.ToLower(global.logFormat)
		if !slices.Contains(app.LogFormats, format) {
			return errors.New("invalid log-format: must be 'text' or 'json'")
		}
		if _, err := app.ParseLevel(global.logLevel); err != nil {
			return err
		}
		c.LogFormat = format
		c.LogLevel = strings.ToLower(global.logLevel)

		validated, err := app.NewConfig(c)
		if err != nil {
			return err
		}
		cfg = validated
		return nil
	}

	root := &cobra.Command{
		Use:   "effectc",
		Short: "effectc composes shader sources from sectioned effect files.",
		Long: `effectc composes shader sources from sectioned effect files.

An effect file is split into sections by lines starting with "--". A shader
key "Name.Section" selects the longest matching section of effect "Name" and
expands its #include directives into a single source with #line markers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)
	root.PersistentFlags().StringVar(&global.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	root.PersistentFlags().StringVar(&global.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	root.AddCommand(
		newComposeCmd(build),
		newSectionsCmd(build),
		newDiagCmd(build),
	)

	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		slog.Debug("No command ran, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "mode", cfg.Mode)
	return cfg, false, nil
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVar(&f.basePath, "base-path", "", "Directory effect files are looked up in (overrides the manifest).")
	cmd.Flags().StringVar(&f.extension, "extension", "", "Default effect file extension (overrides the manifest).")
}

func newComposeCmd(build func(app.Config) error) *cobra.Command {
	var (
		src     sourceFlags
		keys    []string
		program string
		outDir  string
		workers int
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "compose [MANIFEST]",
		Short: "Compose every program of a manifest and any --key.",
		Long: `Compose every program of a manifest and any --key.

MANIFEST is a .hcl or .yaml file, or a directory of them. Composed sources are
written to --out/<program>/<stage>.<ext>, each with a .files list of the files
its #line markers refer to, or to standard output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Config{
				Mode:        app.ModeCompose,
				Keys:        keys,
				Program:     program,
				OutDir:      outDir,
				BasePath:    src.basePath,
				Extension:   src.extension,
				WorkerCount: workers,
				Watch:       watch,
			}
			if len(args) == 1 {
				c.ManifestPath = args[0]
			}
			return build(c)
		},
	}
	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "Shader key to compose, e.g. Lighting/Phong.Fragment (repeatable).")
	cmd.Flags().StringVarP(&program, "program", "p", "", "Only compose this program.")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory. Empty writes to standard output.")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of programs composed concurrently.")
	cmd.Flags().BoolVar(&watch, "watch", false, "Recompose when effect files or the manifest change.")
	addSourceFlags(cmd, &src)
	return cmd
}

func newSectionsCmd(build func(app.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE",
		Short: "List the sections of an effect file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return build(app.Config{Mode: app.ModeSections, SectionsFile: args[0], WorkerCount: 1})
		},
	}
}

func newDiagCmd(build func(app.Config) error) *cobra.Command {
	var (
		src      sourceFlags
		manifest string
	)
	cmd := &cobra.Command{
		Use:   "diag KEY [LOG]",
		Short: "Map a compiler info log onto the effect files of a composed key.",
		Long: `Map a compiler info log onto the effect files of a composed key.

KEY is composed the same way "compose" does it. LOG is read from the named file,
or from standard input when it is "-" or omitted, and printed with every
"<file index>:<line>" position replaced by "<path>:<line>".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Config{
				Mode:         app.ModeDiag,
				ManifestPath: manifest,
				Keys:         args[:1],
				BasePath:     src.basePath,
				Extension:    src.extension,
				WorkerCount:  1,
			}
			if len(args) == 2 {
				c.LogPath = args[1]
			}
			if err := build(c); err != nil {
				return fmt.Errorf("diag: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "Manifest file or directory.")
	addSourceFlags(cmd, &src)
	return cmd
}
