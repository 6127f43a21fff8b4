package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gitliteerrors "gitlite.dev/gitlite/internal/errors"
	"gitlite.dev/gitlite/internal/repo"
	"gitlite.dev/gitlite/internal/store"
)

func newTestService(t *testing.T) (*repo.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return repo.NewService(mem), mem
}

func initProject(t *testing.T, svc *repo.Service, projectID string) *repo.State {
	t.Helper()
	state, err := svc.Init(context.Background(), projectID, repo.Config{
		UserName:  "alice",
		UserEmail: "alice@example.com",
	})
	require.NoError(t, err)
	return state
}

func TestInit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("seeds a new project with an initial commit", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		state := initProject(t, svc, "proj")
		require.Equal(t, "main", state.CurrentBranch)
		require.Len(t, state.Commits, 1)
		require.Equal(t, "Initial commit", state.Commits[0].Message)
		require.Equal(t, repo.CommitKindShallow, state.Commits[0].Kind)
		require.Empty(t, state.Commits[0].Changes)

		branch := state.Branches["main"]
		require.NotNil(t, branch)
		require.Equal(t, state.Commits[0].ID, branch.Head)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		first := initProject(t, svc, "proj")
		again, err := svc.Init(ctx, "proj", repo.Config{UserName: "bob"})
		require.NoError(t, err)

		require.Len(t, again.Commits, 1)
		require.Equal(t, first.Commits[0].ID, again.Commits[0].ID)
		// The existing record wins over the new config
		require.Equal(t, "alice", again.Config.UserName)
	})

	t.Run("honors a configured branch name", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		state, err := svc.Init(ctx, "proj", repo.Config{Branch: "trunk"})
		require.NoError(t, err)
		require.Equal(t, "trunk", state.CurrentBranch)
		require.Contains(t, state.Branches, "trunk")
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reports untracked projects", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		status, err := svc.Status(ctx, "unknown", nil)
		require.NoError(t, err)
		require.False(t, status.HasGit)
	})

	t.Run("classifies added, modified and deleted files", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.Commit(ctx, "proj", "base", []repo.ProjectFile{
			{Name: "keep.txt", Content: "keep"},
			{Name: "change.txt", Content: "before"},
			{Name: "remove.txt", Content: "bye"},
		})
		require.NoError(t, err)

		status, err := svc.Status(ctx, "proj", []repo.ProjectFile{
			{Name: "keep.txt", Content: "keep"},
			{Name: "change.txt", Content: "after"},
			{Name: "new.txt", Content: "hi"},
		})
		require.NoError(t, err)
		require.True(t, status.HasGit)
		require.Len(t, status.Changes, 3)

		byName := map[string]repo.FileChange{}
		for _, change := range status.Changes {
			byName[change.File.Name] = change
		}
		require.Equal(t, repo.ChangeModified, byName["change.txt"].Type)
		require.Equal(t, "before", byName["change.txt"].PreviousContent)
		require.Equal(t, "after", byName["change.txt"].CurrentContent)
		require.Equal(t, repo.ChangeAdded, byName["new.txt"].Type)
		require.Equal(t, repo.ChangeDeleted, byName["remove.txt"].Type)
		require.Equal(t, "bye", byName["remove.txt"].PreviousContent)
		require.NotContains(t, byName, "keep.txt")
	})

	t.Run("reports ahead and behind as zero placeholders", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		status, err := svc.Status(ctx, "proj", nil)
		require.NoError(t, err)
		require.Zero(t, status.Ahead)
		require.Zero(t, status.Behind)
	})
}

func TestCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("appends exactly one commit and advances the head", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		commit, err := svc.Commit(ctx, "proj", "add readme", []repo.ProjectFile{
			{Name: "README.md", Content: "# hi"},
		})
		require.NoError(t, err)
		require.Equal(t, "add readme", commit.Message)
		require.Equal(t, "alice", commit.Author)

		state, err := svc.State(ctx, "proj")
		require.NoError(t, err)
		require.Len(t, state.Commits, 2)
		require.Equal(t, commit.ID, state.Branches["main"].Head)
		require.Equal(t, []string{state.Commits[0].ID, commit.ID}, state.Branches["main"].Commits)
	})

	t.Run("fails with no-op commit and leaves state byte-for-byte unchanged", func(t *testing.T) {
		t.Parallel()
		svc, mem := newTestService(t)
		initProject(t, svc, "proj")

		files := []repo.ProjectFile{{Name: "a.txt", Content: "a"}}
		_, err := svc.Commit(ctx, "proj", "first", files)
		require.NoError(t, err)

		before := mem.Dump("proj")
		_, err = svc.Commit(ctx, "proj", "again", files)
		require.ErrorIs(t, err, gitliteerrors.ErrNoOpCommit)
		require.Equal(t, before, mem.Dump("proj"))
	})

	t.Run("tracks deletions so they are not re-reported", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.Commit(ctx, "proj", "add", []repo.ProjectFile{{Name: "a.txt", Content: "a"}})
		require.NoError(t, err)
		_, err = svc.Commit(ctx, "proj", "remove", nil)
		require.NoError(t, err)

		status, err := svc.Status(ctx, "proj", nil)
		require.NoError(t, err)
		require.Empty(t, status.Changes)
	})
}

func TestHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newTestService(t)
	initProject(t, svc, "proj")

	_, err := svc.Commit(ctx, "proj", "one", []repo.ProjectFile{{Name: "a", Content: "1"}})
	require.NoError(t, err)
	_, err = svc.Commit(ctx, "proj", "two", []repo.ProjectFile{{Name: "a", Content: "2"}})
	require.NoError(t, err)

	commits, err := svc.History(ctx, "proj", 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "two", commits[0].Message)
	require.Equal(t, "one", commits[1].Message)

	all, err := svc.History(ctx, "proj", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Initial commit", all[2].Message)
}

func TestCreateBranch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("copies the source branch head and commits", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.Commit(ctx, "proj", "work", []repo.ProjectFile{{Name: "a", Content: "1"}})
		require.NoError(t, err)

		branch, err := svc.CreateBranch(ctx, "proj", "feature", "")
		require.NoError(t, err)

		state, err := svc.State(ctx, "proj")
		require.NoError(t, err)
		require.Equal(t, state.Branches["main"].Head, branch.Head)
		require.Equal(t, state.Branches["main"].Commits, branch.Commits)
	})

	t.Run("fails when the name is taken regardless of source", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.CreateBranch(ctx, "proj", "main", "nope")
		require.ErrorIs(t, err, gitliteerrors.ErrBranchExists)
	})

	t.Run("fails when the source branch is unknown", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.CreateBranch(ctx, "proj", "feature", "ghost")
		require.ErrorIs(t, err, gitliteerrors.ErrSourceBranchNotFound)
	})
}

func TestSwitchBranch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("updates the current branch", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.CreateBranch(ctx, "proj", "feature", "")
		require.NoError(t, err)
		require.NoError(t, svc.SwitchBranch(ctx, "proj", "feature"))

		state, err := svc.State(ctx, "proj")
		require.NoError(t, err)
		require.Equal(t, "feature", state.CurrentBranch)
	})

	t.Run("leaves the current branch on failure", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		err := svc.SwitchBranch(ctx, "proj", "ghost")
		require.ErrorIs(t, err, gitliteerrors.ErrBranchNotFound)

		state, err := svc.State(ctx, "proj")
		require.NoError(t, err)
		require.Equal(t, "main", state.CurrentBranch)
	})
}

func TestPushPullSimulation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("push requires a remote", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		err := svc.Push(ctx, "proj")
		require.ErrorIs(t, err, gitliteerrors.ErrNoRemoteConfigured)
	})

	t.Run("push records the timestamp", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		_, err := svc.Init(ctx, "proj", repo.Config{
			RemoteURL: "https://github.com/alice/proj",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Push(ctx, "proj"))

		state, err := svc.State(ctx, "proj")
		require.NoError(t, err)
		require.NotZero(t, state.LastPush)
	})

	t.Run("pull requires a remote and returns no changes", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		initProject(t, svc, "proj")

		_, err := svc.Pull(ctx, "proj")
		require.ErrorIs(t, err, gitliteerrors.ErrNoRemoteConfigured)

		_, err = svc.Init(ctx, "proj2", repo.Config{RemoteURL: "https://github.com/alice/proj2"})
		require.NoError(t, err)
		changes, err := svc.Pull(ctx, "proj2")
		require.NoError(t, err)
		require.Empty(t, changes)
	})
}
