package cli

import (
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
	"gitlite.dev/gitlite/internal/repo"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		author string
		email  string
		remote string
		branch string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize version tracking for a project",
		Long: `Initialize version tracking for a project.

Loads the existing project record when one exists, otherwise creates a new
one seeded with an initial commit. Running init twice is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			state, err := c.Service.Init(cmd.Context(), c.ProjectID, repo.Config{
				UserName:  author,
				UserEmail: email,
				RemoteURL: remote,
				Branch:    branch,
			})
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			splog.Info("Initialized project %s on branch %s", state.ProjectID, output.Branch(state.CurrentBranch))
			if state.Config.RemoteURL != "" {
				splog.Info("Remote: %s", state.Config.RemoteURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author name recorded on commits")
	cmd.Flags().StringVar(&email, "email", "", "Author email")
	cmd.Flags().StringVar(&remote, "remote", "", "Remote repository URL (https://<host>/<owner>/<repo>)")
	cmd.Flags().StringVar(&branch, "branch", "", "Initial branch name (default: main)")

	return cmd
}
