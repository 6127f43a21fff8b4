package cli

import (
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
	"gitlite.dev/gitlite/internal/repo"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record changes since the last commit",
		Long: `Record the current changes as a new commit on the current branch.

When no message is given, one is generated from the change summary using
the project's commit message template if configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			files, err := c.loadProjectFiles()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if message == "" {
				status, err := c.Service.Status(ctx, c.ProjectID, files)
				if err != nil {
					return err
				}
				state, err := c.Service.State(ctx, c.ProjectID)
				if err != nil {
					return err
				}
				template := ""
				if state != nil {
					template = state.Config.CommitMessageTemplate
				}
				message = repo.GenerateCommitMessage(status.Changes, template)
			}

			commit, err := c.Service.Commit(ctx, c.ProjectID, message, files)
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			splog.Info("[%s %s] %s", output.Branch(commit.Branch), output.SHA(shortID(commit.ID)), commit.Message)
			splog.Info("%d change(s) recorded", len(commit.Changes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
