package cli

import (
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
	"gitlite.dev/gitlite/internal/repo"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show changes since the last commit",
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

			status, err := c.Service.Status(cmd.Context(), c.ProjectID, files)
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			if !status.HasGit {
				splog.Info("Project %s is not tracked", c.ProjectID)
				splog.Tip("Run gitlite init to start tracking")
				return nil
			}

			splog.Info("On branch %s", output.Branch(status.CurrentBranch))
			if len(status.Changes) == 0 {
				splog.Info("Nothing to commit")
				return nil
			}

			splog.Newline()
			for _, change := range status.Changes {
				switch change.Type {
				case repo.ChangeAdded:
					splog.Info("  %s %s", output.Added("A"), change.File.Name)
				case repo.ChangeModified:
					splog.Info("  %s %s", output.Modified("M"), change.File.Name)
				case repo.ChangeDeleted:
					splog.Info("  %s %s", output.Deleted("D"), change.File.Name)
				}
			}
			return nil
		},
	}

	return cmd
}
