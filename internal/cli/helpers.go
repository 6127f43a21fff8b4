package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitlite.dev/gitlite/internal/config"
	"gitlite.dev/gitlite/internal/errors"
	"gitlite.dev/gitlite/internal/github"
	"gitlite.dev/gitlite/internal/gitutil"
	"gitlite.dev/gitlite/internal/repo"
	"gitlite.dev/gitlite/internal/store"
)

// cmdContext bundles everything a command needs: the resolved project, the
// repository service and the global configuration.
type cmdContext struct {
	Dir       string
	ProjectID string
	Config    *config.Config
	Service   *repo.Service

	closeStore func() error
}

// newCmdContext resolves flags, opens the state store and constructs the
// repository service. Callers must Close when done.
func newCmdContext(cmd *cobra.Command) (*cmdContext, error) {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	projectID, _ := cmd.Flags().GetString("project")
	if projectID == "" {
		projectID = filepath.Base(absDir)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.StateDB
	if dbPath == "" {
		dbPath, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return &cmdContext{
		Dir:        absDir,
		ProjectID:  projectID,
		Config:     cfg,
		Service:    repo.NewService(st),
		closeStore: st.Close,
	}, nil
}

// Close releases the state store.
func (c *cmdContext) Close() {
	if c.closeStore != nil {
		_ = c.closeStore()
	}
}

// loadProjectFiles reads the project's flat file set: regular files directly
// in the project directory, dotfiles skipped.
func (c *cmdContext) loadProjectFiles() ([]repo.ProjectFile, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	var files []repo.ProjectFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(c.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		files = append(files, repo.ProjectFile{
			Name:    entry.Name(),
			Content: string(content),
		})
	}
	return files, nil
}

// remoteTarget resolves the project's remote coordinates and an
// authenticated bridge client.
func (c *cmdContext) remoteTarget(ctx context.Context) (github.Client, string, string, string, error) {
	state, err := c.Service.State(ctx, c.ProjectID)
	if err != nil {
		return nil, "", "", "", err
	}
	if state == nil || state.Config.RemoteURL == "" {
		return nil, "", "", "", errors.ErrNoRemoteConfigured
	}

	owner, repoName, err := gitutil.ParseRemoteURL(state.Config.RemoteURL)
	if err != nil {
		return nil, "", "", "", err
	}

	branch := state.Config.Branch
	if branch == "" {
		branch = "main"
	}

	client, err := github.NewClient(ctx, c.Config.ResolveToken())
	if err != nil {
		return nil, "", "", "", err
	}

	return client, owner, repoName, branch, nil
}

func toLocalFiles(files []repo.ProjectFile) []github.LocalFile {
	local := make([]github.LocalFile, len(files))
	for i, f := range files {
		local[i] = github.LocalFile{Path: f.Name, Content: f.Content}
	}
	return local
}
