package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Environment variables read by the CLI. Nothing below the CLI layer reads the environment.
const (
	EnvWorkspace     = "RBWASM_ROOT"
	EnvDebug         = "RBWASM_DEBUG"
	EnvTransientHeap = "TRANSIENT_HEAP_TOTAL_SIZE"
)

func registerBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "Path of the produced executable")
	f.StringArray("mapdir", nil, "Embed a host directory as GUEST::HOST (repeatable)")
	f.Bool("no-builtin-files", false, "Do not embed the installed Ruby library files")
	f.String("enabled-exts", "", "Comma separated list of statically linked extensions (default: the bundled set)")
	f.Int("stack-size", domain.DefaultStackSize, "Wasm stack size in bytes")
	f.Int("asyncify-stack-size", domain.DefaultAsyncifyStackSize, "Asyncify frame buffer size in bytes")
	f.Bool("save-temps", false, "Keep temporary files")
	f.BoolP("debug-info", "g", false, "Preserve debug information")
	f.String("cruby-src", domain.DefaultCRubySource, "CRuby source as github:owner/repo@ref or path:dir")
	f.String("rb-wasm-support-src", domain.DefaultSupportSource, "Support runtime source as github:owner/repo@ref or path:dir")
	f.StringArray("Xcc", nil, "Pass an argument to the C compiler (repeatable)")
	f.StringArray("Xlinker", nil, "Pass an argument to the linker (repeatable)")
	f.String("build-hook", "", "Executable run after Ruby is built, with RUBY_ROOT set to the installed tree")
	f.Bool("no-verify", false, "Skip verification of the produced module")
	f.IntP("jobs", "j", 0, "Number of parallel make jobs (default: number of CPUs)")
	f.BoolP("verbose", "v", false, "Show build tool output and full command lines")
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string) error {
	presetArgs, err := splitPresetArgs(cmd, args)
	if err != nil {
		return err
	}

	opts, err := c.resolveOptions(cmd.Flags())
	if err != nil {
		return err
	}
	if cmd.ArgsLenAtDash() >= 0 {
		opts.PresetArgs = presetArgs
	}

	if opts.Output == "" && cmd.Flags().NFlag() == 0 && len(args) == 0 {
		// Display command usage help without returning an error
		_ = cmd.Help()
		return nil
	}

	return c.app.Build(cmd.Context(), opts)
}

// splitPresetArgs returns the arguments following "--". Anything before it is rejected.
func splitPresetArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	switch {
	case dash < 0 && len(args) > 0:
		return nil, zerr.With(domain.ErrUnexpectedArguments, "args", strings.Join(args, " "))
	case dash > 0:
		return nil, zerr.With(domain.ErrUnexpectedArguments, "args", strings.Join(args[:dash], " "))
	case dash == 0:
		return args, nil
	default:
		return nil, nil
	}
}

// resolveOptions layers defaults, config files, environment and flags, lowest first.
func (c *CLI) resolveOptions(flags *pflag.FlagSet) (domain.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return domain.Options{}, zerr.Wrap(err, "failed to get working directory")
	}

	opts, err := c.loader.Load(cwd, domain.DefaultOptions())
	if err != nil {
		return domain.Options{}, err
	}

	applyEnv(&opts)
	if err := applyFlags(flags, &opts); err != nil {
		return domain.Options{}, err
	}
	return opts, nil
}

func applyEnv(opts *domain.Options) {
	if root := os.Getenv(EnvWorkspace); root != "" {
		opts.WorkspaceDir = root
	}
	if os.Getenv(EnvDebug) != "" {
		opts.Verbose = true
	}
	if size := os.Getenv(EnvTransientHeap); size != "" {
		opts.TransientHeapSize = size
	}
}

// applyFlags overrides opts with the flags set on the command line.
// Flags missing from the set are ignored, so subcommands share the resolution.
//
//nolint:cyclop,gocognit // one branch per flag
func applyFlags(f *pflag.FlagSet, opts *domain.Options) error {
	if f.Changed("output") {
		opts.Output, _ = f.GetString("output")
	}
	if f.Changed("mapdir") {
		raw, _ := f.GetStringArray("mapdir")
		for _, r := range raw {
			m, err := domain.ParseMapping(r)
			if err != nil {
				return zerr.With(err, "flag", "mapdir")
			}
			opts.Mappings = append(opts.Mappings, m)
		}
	}
	if f.Changed("no-builtin-files") {
		opts.NoBuiltinFiles, _ = f.GetBool("no-builtin-files")
	}
	if f.Changed("enabled-exts") {
		raw, _ := f.GetString("enabled-exts")
		opts.EnabledExtensions = domain.ParseExtensions(raw)
	}
	if f.Changed("stack-size") {
		opts.StackSize, _ = f.GetInt("stack-size")
	}
	if f.Changed("asyncify-stack-size") {
		opts.AsyncifyStackSize, _ = f.GetInt("asyncify-stack-size")
	}
	if f.Changed("save-temps") {
		opts.SaveTemps, _ = f.GetBool("save-temps")
	}
	if f.Changed("debug-info") {
		opts.DebugInfo, _ = f.GetBool("debug-info")
	}
	for flag, dst := range map[string]*domain.BuildSource{
		"cruby-src":           &opts.CRubySource,
		"rb-wasm-support-src": &opts.SupportSource,
	} {
		if !f.Changed(flag) {
			continue
		}
		raw, _ := f.GetString(flag)
		src, err := domain.ParseBuildSource(raw)
		if err == nil {
			src, err = src.Absolute()
		}
		if err != nil {
			return zerr.With(err, "flag", flag)
		}
		*dst = src
	}
	if f.Changed("Xcc") {
		xcc, _ := f.GetStringArray("Xcc")
		opts.ExtraCCArgs = append(opts.ExtraCCArgs, xcc...)
	}
	if f.Changed("Xlinker") {
		xlinker, _ := f.GetStringArray("Xlinker")
		opts.ExtraLinkerArgs = append(opts.ExtraLinkerArgs, xlinker...)
	}
	if f.Changed("build-hook") {
		opts.BuildHook, _ = f.GetString("build-hook")
	}
	if f.Changed("no-verify") {
		opts.NoVerify, _ = f.GetBool("no-verify")
	}
	if f.Changed("jobs") {
		opts.Jobs, _ = f.GetInt("jobs")
	}
	if f.Changed("verbose") {
		opts.Verbose, _ = f.GetBool("verbose")
	}
	return nil
}
