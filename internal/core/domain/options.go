package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

const (
	// DefaultStackSize is the wasm shadow stack size passed to the linker.
	DefaultStackSize = 16777216
	// DefaultAsyncifyStackSize is the frame buffer size of the support runtime.
	DefaultAsyncifyStackSize = 6144
	// DefaultCRubySource is the interpreter source used when none is configured.
	DefaultCRubySource = "github:kateinoigakukun/ruby@v3_0_2_wasm-alpha1"
	// DefaultSupportSource is the support runtime source used when none is configured.
	DefaultSupportSource = "github:kateinoigakukun/rb-wasm-support@0.4.0"
	// DefaultWasiSDKVersion is the wasi-sdk release the toolchain is staged from.
	DefaultWasiSDKVersion = "14.0"
	// DefaultWasiVfsVersion is the wasi-vfs release providing libwasi_vfs.a.
	DefaultWasiVfsVersion = "0.1.1"
	// PresetArgv0 is the program name stored in front of preset arguments.
	PresetArgv0 = "ruby.wasm"
)

// Options is the complete, resolved configuration of one build run.
// It is produced by the CLI from defaults, config files, environment and
// flags, and is the only channel through which those reach the engine.
type Options struct {
	// WorkspaceDir is the root of the workspace.
	WorkspaceDir string
	// Output is the path of the produced executable.
	Output string

	Mappings          []PathMapping
	NoBuiltinFiles    bool
	EnabledExtensions []string

	StackSize         int
	AsyncifyStackSize int

	SaveTemps bool
	DebugInfo bool
	Verbose   bool
	NoVerify  bool

	CRubySource   BuildSource
	SupportSource BuildSource

	ExtraCCArgs     []string
	ExtraLinkerArgs []string
	PresetArgs      []string

	// BuildHook is an executable run after the interpreter is built.
	BuildHook string
	// TransientHeapSize overrides the interpreter's transient heap size when set.
	TransientHeapSize string
	// Jobs is the parallelism handed to make. Zero means the number of CPUs.
	Jobs int

	Toolchain ToolchainOptions
}

// ToolchainOptions selects the versions and locations of the staged tools.
type ToolchainOptions struct {
	WasiSDKVersion string
	// WasiSDKURL overrides the release tarball location.
	WasiSDKURL     string
	WasiVfsVersion string
	// WasiVfsURL overrides the wasi-vfs release tarball location.
	WasiVfsURL string
	// WasiVfsLibrary points at a prebuilt libwasi_vfs.a, skipping its download.
	WasiVfsLibrary string
	// WasmOpt points at the wasm-opt binary. Looked up on PATH when empty.
	WasmOpt string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	cruby, _ := ParseBuildSource(DefaultCRubySource)
	support, _ := ParseBuildSource(DefaultSupportSource)
	return Options{
		WorkspaceDir:      DefaultWorkspaceDirName,
		EnabledExtensions: DefaultExtensions(),
		StackSize:         DefaultStackSize,
		AsyncifyStackSize: DefaultAsyncifyStackSize,
		CRubySource:       cruby,
		SupportSource:     support,
		Toolchain: ToolchainOptions{
			WasiSDKVersion: DefaultWasiSDKVersion,
			WasiVfsVersion: DefaultWasiVfsVersion,
		},
	}
}

// Validate checks the options for values the pipeline cannot work with.
func (o *Options) Validate() error {
	if o.Output == "" {
		return ErrMissingOutput
	}
	if o.StackSize <= 0 {
		return zerr.With(ErrInvalidStackSize, "flag", "stack-size")
	}
	if o.AsyncifyStackSize <= 0 {
		return zerr.With(ErrInvalidStackSize, "flag", "asyncify-stack-size")
	}
	if o.CRubySource.Kind == 0 {
		return zerr.With(ErrInvalidBuildSource, "flag", "cruby-src")
	}
	if o.SupportSource.Kind == 0 {
		return zerr.With(ErrInvalidBuildSource, "flag", "rb-wasm-support-src")
	}
	return nil
}

// Parallelism returns the number of make jobs to run.
func (o *Options) Parallelism() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.NumCPU()
}
