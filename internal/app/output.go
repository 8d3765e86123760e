package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// filesSuffix names the sidecar listing the files of a composed source, in
// file index order.
const filesSuffix = ".files"

// OutputPath returns where a job's source is written below dir: programs go
// to <dir>/<program>/<stage>.<ext>, ad-hoc keys to <dir>/<key>.<ext>.
func OutputPath(dir string, job Job, ext string) string {
	if job.Program == "" {
		return filepath.Join(dir, filepath.FromSlash(job.Key)+"."+ext)
	}
	return filepath.Join(dir, job.Program, job.Stage.String()+"."+ext)
}

// writeOutputs writes every output to the output directory, or to the
// output writer when no directory is configured.
func (a *App) writeOutputs(outputs []Output) error {
	if a.config.OutDir == "" {
		return writeStream(a.outW, outputs)
	}

	ext := a.model.Settings.Extension
	for _, out := range outputs {
		path := OutputPath(a.config.OutDir, out.Job, ext)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(out.Result.Source), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := os.WriteFile(path+filesSuffix, []byte(fileList(out)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path+filesSuffix, err)
		}
		a.logger.Debug("Wrote composed source.", "job", out.Job.Name(), "path", path)
	}
	return nil
}

// writeStream prints a single output verbatim and several outputs each
// under a "// ==> name <==" banner.
func writeStream(w io.Writer, outputs []Output) error {
	if len(outputs) == 1 {
		_, err := io.WriteString(w, outputs[0].Result.Source)
		return err
	}
	for _, out := range outputs {
		if _, err := fmt.Fprintf(w, "// ==> %s <==\n%s\n", out.Job.Name(), out.Result.Source); err != nil {
			return err
		}
	}
	return nil
}

func fileList(out Output) string {
	var b strings.Builder
	for i, f := range out.Result.Files {
		fmt.Fprintf(&b, "%d\t%s\n", i, f.Location)
	}
	return b.String()
}
