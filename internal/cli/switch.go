package cli

import (
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
)

// newSwitchCmd creates the switch command
func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch <branch>",
		Short: "Switch the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			name := args[0]
			if err := c.Service.SwitchBranch(cmd.Context(), c.ProjectID, name); err != nil {
				return err
			}

			output.NewSplog().Info("Switched to branch %s", output.Branch(name))
			return nil
		},
	}

	return cmd
}
