package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/effectc/internal/compose"
	"github.com/specialistvlad/effectc/internal/config"
	"github.com/specialistvlad/effectc/internal/ctxlog"
	"github.com/specialistvlad/effectc/internal/effectcache"
	"github.com/specialistvlad/effectc/internal/shaderkey"
	"golang.org/x/sync/errgroup"
)

// Job is a single composition: one shader of a program, or an ad-hoc key.
type Job struct {
	Program string // empty for ad-hoc keys
	Stage   shaderkey.Stage
	Key     string
}

// Name identifies the job in logs and output paths.
func (j Job) Name() string {
	if j.Program == "" {
		return j.Key
	}
	return j.Program + "/" + j.Stage.String()
}

// Output is the result of a successful job.
type Output struct {
	Job    Job
	Result *compose.Result
}

// Jobs lists the compositions selected by the configuration, programs
// first in manifest order, then ad-hoc keys. Diagnostics only compose the
// ad-hoc key.
func (a *App) Jobs() ([]Job, error) {
	var jobs []Job
	programs := a.model.Programs
	if a.config.Mode == ModeDiag {
		programs = nil
	} else if a.config.Program != "" {
		p, ok := a.model.Program(a.config.Program)
		if !ok {
			return nil, fmt.Errorf("program %q is not defined", a.config.Program)
		}
		programs = []*config.Program{p}
	}
	for _, p := range programs {
		for _, sh := range p.Shaders {
			jobs = append(jobs, Job{Program: p.Name, Stage: sh.Stage, Key: sh.Key})
		}
	}
	for _, key := range a.config.Keys {
		jobs = append(jobs, Job{Key: key})
	}
	return jobs, nil
}

// ComposeAll runs every job with a fresh registry and effect cache shared by
// all of them, at most WorkerCount at a time. The first failure cancels the
// jobs that have not started yet. Outputs are returned in job order.
func (a *App) ComposeAll(ctx context.Context) ([]Output, error) {
	logger := ctxlog.FromContext(ctx)

	jobs, err := a.Jobs()
	if err != nil {
		return nil, err
	}
	reg, err := a.newRegistry()
	if err != nil {
		return nil, err
	}
	composer := compose.New(reg, effectcache.New(reg))

	outputs := make([]Output, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := composer.Compose(ctxlog.With(gctx, "job", job.Name()), job.Key)
			if err != nil {
				return fmt.Errorf("failed to compose %s: %w", job.Name(), err)
			}
			outputs[i] = Output{Job: job, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Composition finished.", "jobs", len(jobs))
	return outputs, nil
}
