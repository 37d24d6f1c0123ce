package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rbwasm/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build directories and installed builds from the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			opts, err := c.resolveOptions(cmd.Flags())
			if err != nil {
				return err
			}

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				WorkspaceDir: opts.WorkspaceDir,
				All:          all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the downloaded toolchain")

	return cmd
}
