package gitutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	gitliteerrors "gitlite.dev/gitlite/internal/errors"
)

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	t.Run("parses plain https URL", func(t *testing.T) {
		t.Parallel()
		owner, repo, err := ParseRemoteURL("https://github.com/octocat/hello-world")
		require.NoError(t, err)
		require.Equal(t, "octocat", owner)
		require.Equal(t, "hello-world", repo)
	})

	t.Run("strips .git suffix", func(t *testing.T) {
		t.Parallel()
		owner, repo, err := ParseRemoteURL("https://github.com/octocat/hello-world.git")
		require.NoError(t, err)
		require.Equal(t, "octocat", owner)
		require.Equal(t, "hello-world", repo)
	})

	t.Run("accepts other hosts", func(t *testing.T) {
		t.Parallel()
		owner, repo, err := ParseRemoteURL("https://git.example.com/team/project")
		require.NoError(t, err)
		require.Equal(t, "team", owner)
		require.Equal(t, "project", repo)
	})

	t.Run("rejects ssh URLs", func(t *testing.T) {
		t.Parallel()
		_, _, err := ParseRemoteURL("git@github.com:octocat/hello-world.git")
		require.ErrorIs(t, err, gitliteerrors.ErrInvalidRemoteURL)
	})

	t.Run("rejects URLs without a repo segment", func(t *testing.T) {
		t.Parallel()
		_, _, err := ParseRemoteURL("https://github.com/octocat")
		require.ErrorIs(t, err, gitliteerrors.ErrInvalidRemoteURL)
	})

	t.Run("rejects deep paths", func(t *testing.T) {
		t.Parallel()
		_, _, err := ParseRemoteURL("https://github.com/octocat/hello/world")
		require.ErrorIs(t, err, gitliteerrors.ErrInvalidRemoteURL)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()
		_, _, err := ParseRemoteURL("")
		require.ErrorIs(t, err, gitliteerrors.ErrInvalidRemoteURL)
	})
}

func TestBlobSHA(t *testing.T) {
	t.Parallel()

	// Known git blob hashes
	require.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", BlobSHA("hello\n"))
	require.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", BlobSHA(""))

	// Hash equality tracks content equality
	require.Equal(t, BlobSHA("same"), BlobSHA("same"))
	require.NotEqual(t, BlobSHA("one"), BlobSHA("two"))
}
