// Package pipeline drives a build from the toolchain to the verified executable.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/rbwasm/internal/engine/native"
	"go.trai.ch/rbwasm/internal/engine/vfs"
	"go.trai.ch/zerr"
)

// Deps are the collaborators of a Pipeline.
type Deps struct {
	Workspace   ports.Workspace
	Stager      ports.ToolStager
	Builder     *native.Builder
	Synthesizer *vfs.Synthesizer
	Generator   ports.ObjectGenerator
	Runner      ports.CommandRunner
	Verifier    ports.ModuleVerifier
	Tracer      ports.Tracer
	Logger      ports.Logger
}

// Result describes how far a run got and what it produced.
type Result struct {
	// Stage is the last stage reached.
	Stage       domain.Stage
	Output      string
	Support     domain.BuildResult
	Interpreter domain.BuildResult
	Objects     []string
}

// Pipeline is a sequential state machine over domain.Stage.
type Pipeline struct {
	opts domain.Options
	deps Deps

	output    string
	toolchain domain.Toolchain
	objects   []domain.Object
	result    Result
}

// New creates a Pipeline for one build run.
func New(opts domain.Options, deps Deps) *Pipeline {
	return &Pipeline{opts: opts, deps: deps}
}

type step struct {
	stage domain.Stage
	run   func(ctx context.Context, span ports.Span) (domain.StageStatus, error)
}

// Run executes every stage in order and stops at the first failure.
// The returned Result is valid even when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	output, err := filepath.Abs(p.opts.Output)
	if err != nil {
		return p.result, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "output", p.opts.Output)
	}
	p.output = output
	p.result.Output = output

	steps := []step{
		{domain.StageToolchainReady, p.installToolchain},
		{domain.StageSupportBuilt, p.buildSupport},
		{domain.StageInterpreterBuilt, p.buildInterpreter},
		{domain.StageObjectsGenerated, p.generateObjects},
		{domain.StageLinked, p.link},
		{domain.StagePostProcessed, p.asyncify},
		{domain.StageVerified, p.verify},
	}

	for _, s := range steps {
		status, err := p.runStage(ctx, s)
		if err != nil {
			return p.result, err
		}
		if status != domain.StageStatusSkipped {
			p.result.Stage = s.stage
		}
	}
	return p.result, nil
}

func (p *Pipeline) runStage(ctx context.Context, s step) (domain.StageStatus, error) {
	ctx, span := p.deps.Tracer.Start(ctx, s.stage.String())
	defer span.End()

	status, err := s.run(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetAttribute("status", string(domain.StageStatusFailed))
		return domain.StageStatusFailed, zerr.With(err, "stage", s.stage.String())
	}

	if status == domain.StageStatusCached {
		span.MarkCached()
	}
	span.SetAttribute("status", string(status))
	return status, nil
}

func (p *Pipeline) installToolchain(ctx context.Context, span ports.Span) (domain.StageStatus, error) {
	tc, err := p.deps.Stager.Install(ctx, p.deps.Workspace.Layout(), p.opts.Toolchain)
	if err != nil {
		return "", err
	}
	p.toolchain = tc
	span.SetAttribute("wasi_sdk.version", tc.Version)
	return domain.StageStatusCompleted, nil
}

func (p *Pipeline) buildSupport(ctx context.Context, span ports.Span) (domain.StageStatus, error) {
	input := domain.BuildInput{
		Source:           p.opts.SupportSource,
		StackSize:        p.opts.AsyncifyStackSize,
		ExtraCFlags:      p.opts.ExtraCCArgs,
		Target:           domain.DefaultTarget,
		ToolchainVersion: p.toolchain.Version,
	}

	res, err := p.deps.Builder.Build(ctx, p.toolchain, native.SupportRecipe(), input)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrSupportBuildFailed.Error())
	}
	p.result.Support = res
	span.SetAttribute("install_dir", res.InstallDir)
	return buildStatus(res), nil
}

func (p *Pipeline) buildInterpreter(ctx context.Context, span ports.Span) (domain.StageStatus, error) {
	input := domain.BuildInput{
		Source:            p.opts.CRubySource,
		StackSize:         p.opts.AsyncifyStackSize,
		Features:          p.opts.EnabledExtensions,
		ExtraCFlags:       p.opts.ExtraCCArgs,
		Target:            domain.DefaultTarget,
		ToolchainVersion:  p.toolchain.Version,
		TransientHeapSize: p.opts.TransientHeapSize,
		Dependencies:      []string{p.result.Support.InstallDir},
	}

	res, err := p.deps.Builder.Build(ctx, p.toolchain, native.InterpreterRecipe(), input)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrInterpreterBuildFailed.Error())
	}
	p.result.Interpreter = res
	span.SetAttribute("install_dir", res.InstallDir)

	if p.opts.BuildHook != "" {
		if err := p.runBuildHook(ctx, res.InstalledRoot()); err != nil {
			return "", err
		}
	}
	return buildStatus(res), nil
}

func (p *Pipeline) runBuildHook(ctx context.Context, rubyRoot string) error {
	err := p.deps.Runner.Run(ctx, &domain.Command{
		Name:        p.opts.BuildHook,
		Env:         []string{"RUBY_ROOT=" + rubyRoot},
		Description: "build-hook " + p.opts.BuildHook,
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildHookFailed.Error()), "hook", p.opts.BuildHook)
	}
	return nil
}

func (p *Pipeline) generateObjects(ctx context.Context, span ports.Span) (domain.StageStatus, error) {
	interp := p.result.Interpreter
	hostRoot := interp.InstalledRoot()

	var raw []domain.PathMapping
	if !p.opts.NoBuiltinFiles {
		builtins, err := p.deps.Synthesizer.BuiltinMappings(hostRoot)
		if err != nil {
			return "", err
		}
		raw = builtins
	}
	raw = append(raw, p.opts.Mappings...)

	if len(raw) == 0 && len(p.opts.PresetArgs) == 0 {
		return domain.StageStatusSkipped, nil
	}

	workDir, err := p.deps.Workspace.TempDir("objects")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrImageGenerationFailed.Error())
	}

	if len(raw) > 0 {
		spec := p.deps.Synthesizer.Synthesize(raw, hostRoot, interp.GuestRoot())
		obj, err := p.deps.Generator.GenerateFilesystem(ctx, p.toolchain, workDir, spec)
		if err != nil {
			return "", err
		}
		p.dumpSource(ctx, "vfs", "fs.c", obj.Source)
		p.objects = append(p.objects, obj)
		span.SetAttribute("vfs.mappings", spec.Len())
	}

	if len(p.opts.PresetArgs) > 0 {
		obj, err := p.deps.Generator.GeneratePresetArgs(ctx, p.toolchain, workDir, domain.PresetArgv0, p.opts.PresetArgs)
		if err != nil {
			return "", err
		}
		p.dumpSource(ctx, "preset args", "preset-args.c", obj.Source)
		p.objects = append(p.objects, obj)
	}

	for _, obj := range p.objects {
		p.result.Objects = append(p.result.Objects, obj.Name)
	}
	return domain.StageStatusCompleted, nil
}

// dumpSource exports generated C source into the temporary directory in verbose mode.
// Failing to do so only warns.
func (p *Pipeline) dumpSource(ctx context.Context, what, name string, src []byte) {
	if !p.opts.Verbose {
		return
	}

	path := filepath.Join(p.deps.Workspace.Layout().Temporary, name)
	p.deps.Logger.Info("exporting " + what + " intermediate source to " + path)
	if err := os.WriteFile(path, src, domain.FilePerm); err != nil {
		msg := "failed to export " + what + " intermediate source into " + path + ": " + err.Error()
		p.deps.Logger.Warn(msg)
		if v, ok := ports.VertexFromContext(ctx); ok {
			v.Log(domain.LogLevelWarn, msg)
		}
	}
}

func (p *Pipeline) link(ctx context.Context, span ports.Span) (domain.StageStatus, error) {
	p.deps.Logger.Info("link single ruby binary")

	if err := os.MkdirAll(filepath.Dir(p.output), domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "output", p.output)
	}

	args := []string{
		filepath.Join(p.result.Interpreter.InstalledRoot(), "bin", "ruby"),
		"--stack-first",
		"-z", "stack-size=" + strconv.Itoa(p.opts.StackSize),
		"-o", p.output,
	}
	args = append(args, p.opts.ExtraLinkerArgs...)

	for _, obj := range p.objects {
		path, err := p.deps.Workspace.TempFile(obj.Name, obj.Bytes)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrLinkFailed.Error())
		}
		args = append(args, path)
	}
	args = append(args, p.toolchain.VfsLibrary)

	err := p.deps.Runner.Run(ctx, &domain.Command{
		Name:        p.toolchain.LD(),
		Args:        args,
		Description: "linker",
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrLinkFailed.Error())
	}
	span.SetAttribute("objects", len(p.objects))
	return domain.StageStatusCompleted, nil
}

func (p *Pipeline) asyncify(ctx context.Context, _ ports.Span) (domain.StageStatus, error) {
	p.deps.Logger.Info("asyncify ruby binary")

	args := []string{p.output, "--asyncify", "-O"}
	if p.opts.DebugInfo {
		args = append(args, "-g")
	}
	args = append(args, "--pass-arg=asyncify-ignore-imports", "-o", p.output)

	err := p.deps.Runner.Run(ctx, &domain.Command{
		Name:        p.toolchain.WasmOpt,
		Args:        args,
		Description: "asyncify",
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrAsyncifyFailed.Error())
	}
	return domain.StageStatusCompleted, nil
}

func (p *Pipeline) verify(ctx context.Context, _ ports.Span) (domain.StageStatus, error) {
	if p.opts.NoVerify {
		return domain.StageStatusSkipped, nil
	}
	if err := p.deps.Verifier.Verify(ctx, p.output); err != nil {
		return "", err
	}
	return domain.StageStatusCompleted, nil
}

func buildStatus(res domain.BuildResult) domain.StageStatus {
	if res.Cached {
		return domain.StageStatusCached
	}
	return domain.StageStatusCompleted
}
