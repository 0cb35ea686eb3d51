package commands

import (
	"github.com/spf13/cobra"

	"github.com/quenchcheck/quench/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	var opts app.CheckOptions

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Run all enabled checks over the project tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = "."
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return c.buildApp(cmd).Check(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Maximum traversal depth (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.ForceParallel, "force-parallel", false, "Force parallel traversal")
	cmd.Flags().BoolVar(&opts.ForceSequential, "force-sequential", false, "Force sequential traversal")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the file cache for this run")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Cap total reported violations (0 = unlimited)")
	cmd.MarkFlagsMutuallyExclusive("force-parallel", "force-sequential")

	return cmd
}
