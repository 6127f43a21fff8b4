package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var (
		from       string
		pushRemote bool
	)

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create a new one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			splog := output.NewSplog()

			if len(args) == 0 {
				state, err := c.Service.State(ctx, c.ProjectID)
				if err != nil {
					return err
				}
				if state == nil {
					splog.Info("Project %s is not tracked", c.ProjectID)
					return nil
				}
				names := make([]string, 0, len(state.Branches))
				for name := range state.Branches {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					marker := " "
					label := name
					if name == state.CurrentBranch {
						marker = "*"
						label = output.Branch(name)
					}
					splog.Info("%s %s", marker, label)
				}
				return nil
			}

			name := args[0]
			branch, err := c.Service.CreateBranch(ctx, c.ProjectID, name, from)
			if err != nil {
				return err
			}
			splog.Info("Created branch %s at %s", output.Branch(branch.Name), output.SHA(shortID(branch.Head)))

			if pushRemote {
				client, owner, repoName, remoteBranch, err := c.remoteTarget(ctx)
				if err != nil {
					return err
				}
				if from != "" {
					remoteBranch = from
				}
				if err := client.CreateBranch(ctx, owner, repoName, name, remoteBranch); err != nil {
					return err
				}
				splog.Info("Created remote branch %s", output.Branch(name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Branch to fork from (default: current branch)")
	cmd.Flags().BoolVar(&pushRemote, "remote", false, "Also create the branch on the remote")

	return cmd
}
