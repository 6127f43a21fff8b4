// Package github provides the sync bridge to GitHub's low-level Git Data
// API: blobs, trees, commits and refs.
package github

import (
	"context"
	"time"
)

// TreeEntry is one entry from a recursive tree listing.
// These are simplified structs to avoid coupling callers to the go-github library.
type TreeEntry struct {
	Path string
	SHA  string
	Type string // blob or tree
}

// RemoteFile is a decoded file fetched from the remote.
type RemoteFile struct {
	Path    string
	Content string
	SHA     string
}

// LocalFile is a local file handed to the bridge for pushing or comparison.
type LocalFile struct {
	Path    string
	Content string
}

// CommitInfo describes one remote commit for display.
type CommitInfo struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

// Comparison partitions local paths against the remote tree. Every local
// path lands in exactly one of Added, Modified or Unchanged; every
// remote-only path lands in Deleted. Order within each bucket follows the
// input listing.
type Comparison struct {
	Added     []string
	Modified  []string
	Unchanged []string
	Deleted   []string
}

// Client is the interface for remote sync operations.
type Client interface {
	// GetLatestCommit resolves a branch ref to its tip commit sha.
	GetLatestCommit(ctx context.Context, owner, repo, branch string) (string, error)

	// GetFileContent fetches and decodes one file. Returns (nil, nil) when
	// the file does not exist on the remote; absence is an expected outcome
	// during tree comparison, not an error.
	GetFileContent(ctx context.Context, owner, repo, path, branch string) (*RemoteFile, error)

	// GetRepositoryTree lists the full recursive tree at the branch tip.
	GetRepositoryTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error)

	// PushMultipleFiles writes the given files as one atomic commit and
	// advances the branch ref. Returns the new commit sha. Failure before
	// the final ref update leaves the remote untouched.
	PushMultipleFiles(ctx context.Context, owner, repo string, files []LocalFile, message, branch string) (string, error)

	// PullChanges fetches every file reachable from the branch tip.
	PullChanges(ctx context.Context, owner, repo, branch string) ([]RemoteFile, error)

	// CompareWithRemote diffs local files against the remote tree by blob hash.
	CompareWithRemote(ctx context.Context, owner, repo string, localFiles []LocalFile, branch string) (*Comparison, error)

	// GetCommits lists recent commits on a branch.
	GetCommits(ctx context.Context, owner, repo, branch string, perPage int) ([]CommitInfo, error)

	// CreateBranch creates a new ref pointing at fromBranch's tip.
	CreateBranch(ctx context.Context, owner, repo, newBranch, fromBranch string) error
}
