// Package cli wires the gitlite commands. Commands are thin: they load
// project files, call into the repository service or the sync bridge, and
// render results.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitlite",
		Short: "Gitlite is a lightweight version tracker with GitHub sync",
		Long: `Gitlite tracks a project's flat set of files in a local commit history
and synchronizes them with a GitHub repository through atomic multi-file
pushes and previewed pulls.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("dir", ".", "Project directory")
	rootCmd.PersistentFlags().String("project", "", "Project id (defaults to the directory name)")
	rootCmd.PersistentFlags().String("config", "", "Path to the global config file")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
