package cli

import (
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/github"
	"gitlite.dev/gitlite/internal/output"
)

// newCompareCmd creates the compare command
func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare local files against the remote tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()

			files, err := c.loadProjectFiles()
			if err != nil {
				return err
			}

			client, owner, repoName, branch, err := c.remoteTarget(ctx)
			if err != nil {
				return err
			}

			comparison, err := client.CompareWithRemote(ctx, owner, repoName, toLocalFiles(files), branch)
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			splog.Info("Comparing against %s/%s@%s", owner, repoName, output.Branch(branch))
			splog.Newline()
			printComparison(splog, comparison)
			return nil
		},
	}

	return cmd
}

func printComparison(splog *output.Splog, comparison *github.Comparison) {
	for _, path := range comparison.Added {
		splog.Info("  %s %s (local only)", output.Added("A"), path)
	}
	for _, path := range comparison.Modified {
		splog.Info("  %s %s", output.Modified("M"), path)
	}
	for _, path := range comparison.Deleted {
		splog.Info("  %s %s (remote only)", output.Deleted("D"), path)
	}
	for _, path := range comparison.Unchanged {
		splog.Info("  %s %s", output.Unchanged("="), path)
	}
}
