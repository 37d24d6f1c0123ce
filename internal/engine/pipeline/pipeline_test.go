package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rbwasm/internal/adapters/fs"
	"go.trai.ch/rbwasm/internal/adapters/telemetry"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/rbwasm/internal/core/ports/mocks"
	"go.trai.ch/rbwasm/internal/engine/native"
	"go.trai.ch/rbwasm/internal/engine/pipeline"
	"go.trai.ch/rbwasm/internal/engine/vfs"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root      string
	layout    domain.Layout
	toolchain domain.Toolchain
	opts      domain.Options

	runner    *mocks.MockCommandRunner
	generator *mocks.MockObjectGenerator
	verifier  *mocks.MockModuleVerifier
	deps      pipeline.Deps

	commands []*domain.Command
}

// objectsDir is where the generated objects of a run are compiled.
func (f *fixture) objectsDir() string {
	return filepath.Join(f.layout.Temporary, "objects-1")
}

// newFixture wires a pipeline whose native builds are all cache hits.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	layout := domain.NewLayout(filepath.Join(root, ".rbwasm"))
	for _, dir := range layout.Dirs() {
		require.NoError(t, os.MkdirAll(dir, 0o750))
	}

	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Debug(gomock.Any()).AnyTimes()
	lg.EXPECT().Warn(gomock.Any()).AnyTimes()
	lg.EXPECT().Verbose().Return(false).AnyTimes()

	ws := mocks.NewMockWorkspace(ctrl)
	ws.EXPECT().Layout().Return(layout).AnyTimes()
	ws.EXPECT().TempDir("objects").DoAndReturn(func(pattern string) (string, error) {
		dir := filepath.Join(layout.Temporary, pattern+"-1")
		return dir, os.MkdirAll(dir, 0o750)
	}).AnyTimes()
	ws.EXPECT().TempFile(gomock.Any(), gomock.Any()).DoAndReturn(func(pattern string, data []byte) (string, error) {
		path := filepath.Join(layout.Temporary, pattern+"-1")
		return path, os.WriteFile(path, data, 0o600)
	}).AnyTimes()

	cache := mocks.NewMockBuildCache(ctrl)
	cache.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(l domain.Layout, name string, _ domain.BuildInput) (string, string) {
			return filepath.Join(l.Build, name), filepath.Join(l.Cache, name)
		}).AnyTimes()
	cache.EXPECT().Exists(gomock.Any()).Return(true).AnyTimes()

	tc := domain.Toolchain{
		SDKRoot:    filepath.Join(layout.Downloads, "wasi-sdk-14.0"),
		Version:    "14.0",
		WasmOpt:    "/usr/bin/wasm-opt",
		VfsLibrary: filepath.Join(layout.Downloads, "libwasi_vfs.a"),
	}
	stager := mocks.NewMockToolStager(ctrl)
	stager.EXPECT().Install(gomock.Any(), layout, gomock.Any()).Return(tc, nil).AnyTimes()

	f := &fixture{
		root:      root,
		layout:    layout,
		toolchain: tc,
		runner:    mocks.NewMockCommandRunner(ctrl),
		generator: mocks.NewMockObjectGenerator(ctrl),
		verifier:  mocks.NewMockModuleVerifier(ctrl),
	}
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Command) error {
		f.commands = append(f.commands, c)
		return nil
	}).AnyTimes()

	f.opts = domain.DefaultOptions()
	f.opts.Output = filepath.Join(root, "out", "ruby.wasm")
	f.opts.NoBuiltinFiles = true

	driver := native.NewDriver(f.runner, ws, 1)
	f.deps = pipeline.Deps{
		Workspace:   ws,
		Stager:      stager,
		Builder:     native.NewBuilder(layout, cache, mocks.NewMockSourceResolver(ctrl), driver, lg),
		Synthesizer: vfs.NewSynthesizer(fs.NewWalker(), lg),
		Generator:   f.generator,
		Runner:      f.runner,
		Verifier:    f.verifier,
		Tracer:      telemetry.NewNoOpTracer(),
		Logger:      lg,
	}
	return f
}

func (f *fixture) run(t *testing.T) (pipeline.Result, error) {
	t.Helper()
	return pipeline.New(f.opts, f.deps).Run(context.Background())
}

func (f *fixture) command(label string) *domain.Command {
	for _, c := range f.commands {
		if c.Label() == label {
			return c
		}
	}
	return nil
}

func (f *fixture) interpreterRoot() string {
	return filepath.Join(f.layout.Cache, native.InterpreterName, "embd-root", "ruby")
}

func TestPipeline_Run_LinksAndAsyncifies(t *testing.T) {
	f := newFixture(t)
	f.opts.Mappings = []domain.PathMapping{{Guest: "/app", Host: "/src/app"}}
	f.opts.PresetArgs = []string{"/app/main.rb"}

	f.generator.EXPECT().GenerateFilesystem(gomock.Any(), f.toolchain, f.objectsDir(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Toolchain, _ string, spec domain.VfsImageSpec) (domain.Object, error) {
			assert.Equal(t, []domain.PathMapping{{Guest: "/app", Host: "/src/app"}}, spec.Mappings())
			return domain.Object{Name: "fs.o", Bytes: []byte("fs")}, nil
		})
	f.generator.EXPECT().GeneratePresetArgs(gomock.Any(), f.toolchain, f.objectsDir(), domain.PresetArgv0, []string{"/app/main.rb"}).
		Return(domain.Object{Name: "preset_args.o", Bytes: []byte("args")}, nil)
	f.verifier.EXPECT().Verify(gomock.Any(), f.opts.Output).Return(nil)

	res, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, domain.StageVerified, res.Stage)
	assert.Equal(t, f.opts.Output, res.Output)
	assert.True(t, res.Support.Cached)
	assert.True(t, res.Interpreter.Cached)
	assert.Equal(t, []string{"fs.o", "preset_args.o"}, res.Objects)

	require.Len(t, f.commands, 2)
	link := f.commands[0]
	assert.Equal(t, "linker", link.Label())
	assert.Equal(t, f.toolchain.LD(), link.Name)
	assert.Equal(t, []string{
		filepath.Join(f.interpreterRoot(), "bin", "ruby"),
		"--stack-first",
		"-z", "stack-size=16777216",
		"-o", f.opts.Output,
		filepath.Join(f.layout.Temporary, "fs.o-1"),
		filepath.Join(f.layout.Temporary, "preset_args.o-1"),
		f.toolchain.VfsLibrary,
	}, link.Args)
	assert.DirExists(t, filepath.Dir(f.opts.Output))

	asyncify := f.commands[1]
	assert.Equal(t, "asyncify", asyncify.Label())
	assert.Equal(t, f.toolchain.WasmOpt, asyncify.Name)
	assert.Equal(t, []string{
		f.opts.Output, "--asyncify", "-O", "--pass-arg=asyncify-ignore-imports", "-o", f.opts.Output,
	}, asyncify.Args)
}

func TestPipeline_Run_NoObjects(t *testing.T) {
	f := newFixture(t)
	f.opts.ExtraLinkerArgs = []string{"--export=foo"}
	f.opts.DebugInfo = true
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.run(t)
	require.NoError(t, err)
	assert.Empty(t, res.Objects)

	link := f.command("linker")
	require.NotNil(t, link)
	n := len(link.Args)
	assert.Equal(t, []string{"--export=foo", f.toolchain.VfsLibrary}, link.Args[n-2:])

	asyncify := f.command("asyncify")
	require.NotNil(t, asyncify)
	assert.Contains(t, asyncify.Args, "-g")
}

func TestPipeline_Run_NoVerify(t *testing.T) {
	f := newFixture(t)
	f.opts.NoVerify = true
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

	res, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePostProcessed, res.Stage)
}

func TestPipeline_Run_BuiltinFiles(t *testing.T) {
	f := newFixture(t)
	f.opts.NoBuiltinFiles = false
	f.opts.Mappings = []domain.PathMapping{{Guest: "/app", Host: "@ruby_root/share"}}

	root := f.interpreterRoot()
	lib := filepath.Join(root, "lib", "ruby", "3.0.0", "set.rb")
	require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0o750))
	require.NoError(t, os.WriteFile(lib, []byte("class Set; end"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "ruby"), []byte("\x00asm"), 0o600))

	f.generator.EXPECT().GenerateFilesystem(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Toolchain, _ string, spec domain.VfsImageSpec) (domain.Object, error) {
			assert.Equal(t, []domain.PathMapping{
				{Guest: "/ruby/lib/ruby/3.0.0/set.rb", Host: lib},
				{Guest: "/app", Host: filepath.Join(root, "share")},
			}, spec.Mappings())
			return domain.Object{Name: "fs.o"}, nil
		})
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.run(t)
	require.NoError(t, err)
}

func TestPipeline_Run_BuildHook(t *testing.T) {
	f := newFixture(t)
	f.opts.BuildHook = "./install-gems.sh"
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.run(t)
	require.NoError(t, err)

	require.Len(t, f.commands, 3)
	hook := f.commands[0]
	assert.Equal(t, "./install-gems.sh", hook.Name)
	assert.Equal(t, []string{"RUBY_ROOT=" + f.interpreterRoot()}, hook.Env)
	assert.Equal(t, "linker", f.commands[1].Label())
}

func TestPipeline_Run_LinkFailure(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockCommandRunner(ctrl)
	failing.EXPECT().Run(gomock.Any(), gomock.Any()).Return(errors.New("undefined symbol: rb_foo"))
	f.deps.Runner = failing
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

	res, err := f.run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link failed")
	assert.Contains(t, err.Error(), "undefined symbol: rb_foo")
	assert.Equal(t, domain.StageInterpreterBuilt, res.Stage)
}

func TestPipeline_Run_ToolchainFailure(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	stager := mocks.NewMockToolStager(ctrl)
	stager.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Toolchain{}, domain.ErrToolchainInstallFailed)
	f.deps.Stager = stager

	res, err := f.run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install build toolchain")
	assert.Equal(t, domain.StageInit, res.Stage)
	assert.Empty(t, f.commands)
}

func TestPipeline_Run_VerboseDumpsSources(t *testing.T) {
	f := newFixture(t)
	f.opts.Verbose = true
	f.opts.Mappings = []domain.PathMapping{{Guest: "/app", Host: "/src/app"}}
	f.opts.PresetArgs = []string{"-e", "puts 1"}

	f.generator.EXPECT().GenerateFilesystem(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Object{Name: "fs.o", Source: []byte("/* fs */")}, nil)
	f.generator.EXPECT().GeneratePresetArgs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Object{Name: "preset_args.o", Source: []byte("/* args */")}, nil)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.run(t)
	require.NoError(t, err)

	fsSrc, err := os.ReadFile(filepath.Join(f.layout.Temporary, "fs.c"))
	require.NoError(t, err)
	assert.Equal(t, "/* fs */", string(fsSrc))

	argsSrc, err := os.ReadFile(filepath.Join(f.layout.Temporary, "preset-args.c"))
	require.NoError(t, err)
	assert.Equal(t, "/* args */", string(argsSrc))
}

func TestPipeline_Run_Spans(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil)

	var started []string
	var cached []string
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, name string) (context.Context, ports.Span) {
		started = append(started, name)
		span := mocks.NewMockSpan(ctrl)
		span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
		span.EXPECT().MarkCached().Do(func() { cached = append(cached, name) }).AnyTimes()
		span.EXPECT().End()
		return ctx, span
	}).Times(7)
	f.deps.Tracer = tracer

	_, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"toolchain", "rb-wasm-support", "ruby", "objects", "link", "asyncify", "verify"}, started)
	assert.Equal(t, []string{"rb-wasm-support", "ruby"}, cached)
}
