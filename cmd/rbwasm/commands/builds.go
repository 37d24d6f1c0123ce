package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builds",
		Short: "List the native builds installed in the workspace cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.resolveOptions(cmd.Flags())
			if err != nil {
				return err
			}

			records, err := c.app.Builds(cmd.Context(), opts.WorkspaceDir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KEY\tSOURCE\tBUILT")
			for _, r := range records {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Key, r.Source, r.Timestamp.Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}
