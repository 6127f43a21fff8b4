package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/output"
)

// newPullCmd creates the pull command
func newPullCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Preview and apply changes from the remote",
		Long: `Fetch the remote tree, show how it differs from the local files, and
after confirmation write the remote content into the project directory.

Nothing is written locally before the preview is confirmed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			splog := output.NewSplog()

			if _, err := c.Service.Pull(ctx, c.ProjectID); err != nil {
				return err
			}

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

			candidates := len(comparison.Modified) + len(comparison.Deleted)
			if candidates == 0 {
				splog.Info("Already up to date with %s/%s@%s", owner, repoName, output.Branch(branch))
				return nil
			}

			printComparison(splog, comparison)
			splog.Newline()

			if !yes {
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Overwrite %d local file(s) with remote content?", candidates),
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					splog.Info("Pull aborted; no files were changed")
					return nil
				}
			}

			remoteFiles, err := client.PullChanges(ctx, owner, repoName, branch)
			if err != nil {
				return err
			}

			written := 0
			for _, file := range remoteFiles {
				// Only flat names; the local model has no directories
				if filepath.Base(file.Path) != file.Path {
					continue
				}
				path := filepath.Join(c.Dir, file.Path)
				if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", file.Path, err)
				}
				written++
			}

			splog.Info("Pulled %d file(s) from %s/%s@%s", written, owner, repoName, output.Branch(branch))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without asking for confirmation")

	return cmd
}
