package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/errors"
	"gitlite.dev/gitlite/internal/github"
	"gitlite.dev/gitlite/internal/output"
	"gitlite.dev/gitlite/internal/repo"
)

// pushedChanges describes the files a push will write, as changes against
// the remote tree, so the auto-generated message reflects the pushed set.
func pushedChanges(comparison *github.Comparison) []repo.FileChange {
	changes := make([]repo.FileChange, 0, len(comparison.Added)+len(comparison.Modified))
	for _, path := range comparison.Added {
		changes = append(changes, repo.FileChange{Type: repo.ChangeAdded, File: repo.ProjectFile{Name: path}})
	}
	for _, path := range comparison.Modified {
		changes = append(changes, repo.FileChange{Type: repo.ChangeModified, File: repo.ProjectFile{Name: path}})
	}
	return changes
}

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	var (
		message string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push files to the remote as one atomic commit",
		Long: `Push project files to the remote repository as a single commit.

By default only files that differ from the remote tree are pushed; --all
pushes every project file. The branch ref is advanced non-destructively: if
the remote branch moved since the comparison, the push fails without
touching the remote and can be retried.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCmdContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			splog := output.NewSplog()

			files, err := c.loadProjectFiles()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				splog.Info("No files to push")
				return nil
			}

			client, owner, repoName, branch, err := c.remoteTarget(ctx)
			if err != nil {
				return err
			}

			local := toLocalFiles(files)
			var comparison *github.Comparison
			if !all || message == "" {
				comparison, err = client.CompareWithRemote(ctx, owner, repoName, local, branch)
				if err != nil {
					return err
				}
			}
			if !all {
				changed := make(map[string]bool, len(comparison.Added)+len(comparison.Modified))
				for _, path := range comparison.Added {
					changed[path] = true
				}
				for _, path := range comparison.Modified {
					changed[path] = true
				}
				filtered := local[:0]
				for _, file := range local {
					if changed[file.Path] {
						filtered = append(filtered, file)
					}
				}
				local = filtered
			}

			if len(local) == 0 {
				splog.Info("Everything up to date")
				return nil
			}

			if message == "" {
				message = repo.GenerateCommitMessage(pushedChanges(comparison), "")
			}

			sha, err := client.PushMultipleFiles(ctx, owner, repoName, local, message, branch)
			if err != nil {
				if stderrors.Is(err, errors.ErrStaleTip) {
					splog.Warn("The remote branch moved during the push; nothing was changed")
					splog.Tip("Run gitlite push again to retry against the new tip")
				}
				return err
			}

			if err := c.Service.Push(ctx, c.ProjectID); err != nil {
				return err
			}

			splog.Info("Pushed %d file(s) to %s/%s@%s as %s",
				len(local), owner, repoName, output.Branch(branch), output.SHA(shortID(sha)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message for the remote commit")
	cmd.Flags().BoolVar(&all, "all", false, "Push every project file, not only changed ones")

	return cmd
}
