package cli

import (
	"time"

	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var (
		limit  int
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent commits, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			splog := output.NewSplog()

			if remote {
				client, owner, repoName, branch, err := c.remoteTarget(ctx)
				if err != nil {
					return err
				}
				commits, err := client.GetCommits(ctx, owner, repoName, branch, limit)
				if err != nil {
					return err
				}
				for _, commit := range commits {
					splog.Info("%s %s (%s, %s)",
						output.SHA(shortID(commit.SHA)), commit.Message,
						commit.Author, commit.Date.Format(time.DateOnly))
				}
				return nil
			}

			commits, err := c.Service.History(ctx, c.ProjectID, limit)
			if err != nil {
				return err
			}
			for _, commit := range commits {
				when := time.UnixMilli(commit.Timestamp).Format(time.DateTime)
				splog.Info("%s %s (%s, %s)",
					output.SHA(shortID(commit.ID)), commit.Message, commit.Author, when)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of commits to show")
	cmd.Flags().BoolVar(&remote, "remote", false, "Show commits from the remote branch instead")

	return cmd
}
