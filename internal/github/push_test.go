package github_test

import (
	"context"
	"testing"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/require"

	gitliteerrors "gitlite.dev/gitlite/internal/errors"
	"gitlite.dev/gitlite/internal/github"
	"gitlite.dev/gitlite/testhelpers"
)

func newBridge(t *testing.T, config *testhelpers.MockGitDataServerConfig) (github.Client, string, string) {
	t.Helper()
	client, owner, repo := testhelpers.NewMockGitDataClient(t, config)
	return github.NewClientFromGitHub(client), owner, repo
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("fails without a token", func(t *testing.T) {
		t.Parallel()
		_, err := github.NewClient(context.Background(), "")
		require.ErrorIs(t, err, gitliteerrors.ErrNotAuthenticated)
	})

	t.Run("succeeds with a token", func(t *testing.T) {
		t.Parallel()
		client, err := github.NewClient(context.Background(), "token123")
		require.NoError(t, err)
		require.NotNil(t, client)
	})
}

func TestPushMultipleFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	files := []github.LocalFile{
		{Path: "a.txt", Content: "alpha"},
		{Path: "b.txt", Content: "beta"},
		{Path: "c.txt", Content: "gamma"},
	}

	t.Run("creates blobs, tree, commit and advances the ref", func(t *testing.T) {
		t.Parallel()
		config := testhelpers.NewMockGitDataServerConfig()
		bridge, owner, repo := newBridge(t, config)

		sha, err := bridge.PushMultipleFiles(ctx, owner, repo, files, "sync files", "main")
		require.NoError(t, err)
		require.Equal(t, "newcommit", sha)

		require.Len(t, config.CreatedBlobs, 3)
		require.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, config.CreatedBlobs)
		require.Len(t, config.CreatedTreeEntries, 3)
		require.Equal(t, []string{"sync files"}, config.CreatedCommitMessages)
		require.Equal(t, []string{"tip0000"}, config.CreatedCommitParents)
		require.Equal(t, []string{"newcommit"}, config.RefUpdates)
		require.Equal(t, "newcommit", config.TipSHA())
	})

	t.Run("a failing blob aborts the push with the ref untouched", func(t *testing.T) {
		t.Parallel()
		config := testhelpers.NewMockGitDataServerConfig()
		config.FailBlobIndex = 1
		bridge, owner, repo := newBridge(t, config)

		tipBefore := config.TipSHA()
		_, err := bridge.PushMultipleFiles(ctx, owner, repo, files, "sync files", "main")
		require.Error(t, err)

		var remoteErr *gitliteerrors.RemoteAPIError
		require.ErrorAs(t, err, &remoteErr)
		require.Empty(t, config.RefUpdates)
		require.Equal(t, tipBefore, config.TipSHA())
	})

	t.Run("a rejected ref update surfaces as a stale tip", func(t *testing.T) {
		t.Parallel()
		config := testhelpers.NewMockGitDataServerConfig()
		config.StaleRef = true
		bridge, owner, repo := newBridge(t, config)

		_, err := bridge.PushMultipleFiles(ctx, owner, repo, files, "sync files", "main")
		require.ErrorIs(t, err, gitliteerrors.ErrStaleTip)

		var staleErr *gitliteerrors.StaleTipError
		require.ErrorAs(t, err, &staleErr)
		require.Equal(t, "main", staleErr.Branch)
		require.Empty(t, config.RefUpdates)
	})
}

func TestGetLatestCommit(t *testing.T) {
	t.Parallel()

	config := testhelpers.NewMockGitDataServerConfig()
	config.RefSHA = "abc123"
	bridge, owner, repo := newBridge(t, config)

	sha, err := bridge.GetLatestCommit(context.Background(), owner, repo, "main")
	require.NoError(t, err)
	require.Equal(t, "abc123", sha)
}

func TestGetFileContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decodes content and hash", func(t *testing.T) {
		t.Parallel()
		config := testhelpers.NewMockGitDataServerConfig()
		config.FileContents["notes.txt"] = "remember"
		config.FileSHAs["notes.txt"] = "sha-notes"
		bridge, owner, repo := newBridge(t, config)

		file, err := bridge.GetFileContent(ctx, owner, repo, "notes.txt", "main")
		require.NoError(t, err)
		require.NotNil(t, file)
		require.Equal(t, "notes.txt", file.Path)
		require.Equal(t, "remember", file.Content)
		require.Equal(t, "sha-notes", file.SHA)
	})

	t.Run("absence is a nil result, not an error", func(t *testing.T) {
		t.Parallel()
		config := testhelpers.NewMockGitDataServerConfig()
		bridge, owner, repo := newBridge(t, config)

		file, err := bridge.GetFileContent(ctx, owner, repo, "missing.txt", "main")
		require.NoError(t, err)
		require.Nil(t, file)
	})
}

func TestGetCommits(t *testing.T) {
	t.Parallel()

	config := testhelpers.NewMockGitDataServerConfig()
	config.ListedCommits = []*gogithub.RepositoryCommit{
		{
			SHA: gogithub.String("c2"),
			Commit: &gogithub.Commit{
				Message: gogithub.String("second"),
				Author:  &gogithub.CommitAuthor{Name: gogithub.String("alice")},
			},
		},
		{
			SHA: gogithub.String("c1"),
			Commit: &gogithub.Commit{
				Message: gogithub.String("first"),
				Author:  &gogithub.CommitAuthor{Name: gogithub.String("alice")},
			},
		},
	}
	bridge, owner, repo := newBridge(t, config)

	commits, err := bridge.GetCommits(context.Background(), owner, repo, "main", 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "c2", commits[0].SHA)
	require.Equal(t, "second", commits[0].Message)
	require.Equal(t, "alice", commits[0].Author)
}

func TestCreateBranch(t *testing.T) {
	t.Parallel()

	config := testhelpers.NewMockGitDataServerConfig()
	config.RefSHA = "tipsha"
	bridge, owner, repo := newBridge(t, config)

	err := bridge.CreateBranch(context.Background(), owner, repo, "feature", "main")
	require.NoError(t, err)
	require.Equal(t, []string{"refs/heads/feature"}, config.CreatedRefs)
}
