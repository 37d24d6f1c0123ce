// Package app implements the application layer for rbwasm.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/rbwasm/internal/engine/native"
	"go.trai.ch/rbwasm/internal/engine/pipeline"
	"go.trai.ch/rbwasm/internal/engine/vfs"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Deps are the adapters the application is assembled from.
type Deps struct {
	Workspaces ports.WorkspaceFactory
	Stager     ports.ToolStager
	Cache      ports.BuildCache
	Resolver   ports.SourceResolver
	Runner     ports.CommandRunner
	Walker     ports.TreeWalker
	Generator  ports.ObjectGenerator
	Verifier   ports.ModuleVerifier
	Tracer     ports.Tracer
	Telemetry  ports.Telemetry
	Logger     ports.Logger
}

// App represents the main application logic.
type App struct {
	deps Deps
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{deps: deps}
}

// Build produces the executable described by opts.
//
// The pipeline runs next to the telemetry recorder, which is closed once the
// pipeline is done. A failed build is logged here and returned joined with
// domain.ErrBuildExecutionFailed.
func (a *App) Build(ctx context.Context, opts domain.Options) (err error) {
	if err := opts.Validate(); err != nil {
		return err
	}
	a.deps.Logger.SetVerbose(opts.Verbose)

	ws, err := a.deps.Workspaces.Create(opts.WorkspaceDir, opts.SaveTemps)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if opts.SaveTemps || opts.Verbose {
		a.journal(filepath.Join(ws.Layout().Temporary, domain.StageLogDir))
	}

	driver := native.NewDriver(a.deps.Runner, ws, opts.Parallelism())
	p := pipeline.New(opts, pipeline.Deps{
		Workspace:   ws,
		Stager:      a.deps.Stager,
		Builder:     native.NewBuilder(ws.Layout(), a.deps.Cache, a.deps.Resolver, driver, a.deps.Logger),
		Synthesizer: vfs.NewSynthesizer(a.deps.Walker, a.deps.Logger),
		Generator:   a.deps.Generator,
		Runner:      a.deps.Runner,
		Verifier:    a.deps.Verifier,
		Tracer:      a.deps.Tracer,
		Logger:      a.deps.Logger,
	})

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	// Telemetry Routine
	g.Go(func() error {
		<-done
		return a.deps.Telemetry.Close()
	})

	// Pipeline Routine
	g.Go(func() error {
		defer close(done)
		defer func() {
			_ = a.deps.Tracer.Shutdown(ctx)
		}()

		res, runErr := p.Run(ctx)
		if runErr != nil {
			a.deps.Logger.Error(runErr)
			return errors.Join(domain.ErrBuildExecutionFailed, runErr)
		}
		a.deps.Logger.Info("wrote " + res.Output)
		return nil
	})

	return g.Wait()
}

// journal keeps the per-stage output in dir. A failure only costs the logs.
func (a *App) journal(dir string) {
	if err := a.deps.Telemetry.Journal(dir); err != nil {
		a.deps.Logger.Warn(err.Error())
		return
	}
	a.deps.Logger.Info("writing stage logs to " + dir)
}

// Builds lists the completed native builds recorded in the workspace cache.
func (a *App) Builds(_ context.Context, workspaceDir string) ([]domain.BuildRecord, error) {
	root, err := filepath.Abs(workspaceDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace"), "root", workspaceDir)
	}
	return a.deps.Cache.Records(domain.NewLayout(root))
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	WorkspaceDir string
	// All also removes the downloaded toolchain.
	All bool
}

// Clean removes build artifacts from the workspace.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	root, err := filepath.Abs(options.WorkspaceDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve workspace"), "root", options.WorkspaceDir)
	}
	layout := domain.NewLayout(root)

	var errs error
	remove := func(path, name string) {
		a.deps.Logger.Info("removing " + name + "...")
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.deps.Logger.Info("removed " + name)
	}

	remove(layout.Build, "build directories")
	remove(layout.Cache, "installed builds")
	remove(layout.Temporary, "temporary files")
	if options.All {
		remove(layout.Downloads, "downloaded toolchain")
	}

	return errs
}
