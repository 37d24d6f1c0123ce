// Package commands implements the CLI commands for rbwasm.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rbwasm/internal/app"
	"go.trai.ch/rbwasm/internal/build"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
)

// CLI represents the command line interface for rbwasm.
type CLI struct {
	app     Application
	loader  ports.ConfigLoader
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts domain.Options) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Builds(ctx context.Context, workspaceDir string) ([]domain.BuildRecord, error)
}

// New creates a new CLI instance with the given app.
func New(a Application, loader ports.ConfigLoader) *CLI {
	c := &CLI{
		app:    a,
		loader: loader,
	}

	rootCmd := &cobra.Command{
		Use:   "rbwasm [flags] -- [preset args...]",
		Short: "Build a single-file Ruby interpreter for WebAssembly/WASI",
		Long: "rbwasm cross compiles CRuby for wasm32-wasi, embeds files into a virtual\n" +
			"filesystem and links everything into one executable module.\n\n" +
			"The toolchain is downloaded into the workspace on first use. To link a\n" +
			"prebuilt wasi-vfs runtime instead of the release archive, set\n" +
			"toolchain.wasiVfs.library in " + domain.ConfigFileName + ".",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		RunE:          c.runBuild,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	registerBuildFlags(rootCmd)

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newBuildsCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
