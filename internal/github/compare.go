package github

import (
	"context"

	"gitlite.dev/gitlite/internal/gitutil"
)

// PullChanges fetches the full remote tree and the content of every file in
// it. No filtering against local state happens here; that is
// CompareWithRemote's job.
func (c *APIClient) PullChanges(ctx context.Context, owner, repo, branch string) ([]RemoteFile, error) {
	entries, err := c.GetRepositoryTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	files := make([]RemoteFile, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		file, err := c.GetFileContent(ctx, owner, repo, entry.Path, branch)
		if err != nil {
			return nil, err
		}
		if file == nil {
			// Listed but gone by the time we fetched it
			continue
		}
		files = append(files, *file)
	}
	return files, nil
}

// CompareWithRemote partitions local files against the remote tree: added
// (local only), modified (hash mismatch), unchanged (hash match) and deleted
// (remote only). Local content is hashed as a git blob so no remote file
// body needs to be fetched.
func (c *APIClient) CompareWithRemote(ctx context.Context, owner, repo string, localFiles []LocalFile, branch string) (*Comparison, error) {
	entries, err := c.GetRepositoryTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	remote := make(map[string]string)
	remotePaths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		remote[entry.Path] = entry.SHA
		remotePaths = append(remotePaths, entry.Path)
	}

	result := &Comparison{
		Added:     []string{},
		Modified:  []string{},
		Unchanged: []string{},
		Deleted:   []string{},
	}

	local := make(map[string]bool, len(localFiles))
	for _, file := range localFiles {
		local[file.Path] = true
		remoteSHA, exists := remote[file.Path]
		switch {
		case !exists:
			result.Added = append(result.Added, file.Path)
		case gitutil.BlobSHA(file.Content) == remoteSHA:
			result.Unchanged = append(result.Unchanged, file.Path)
		default:
			result.Modified = append(result.Modified, file.Path)
		}
	}

	for _, path := range remotePaths {
		if !local[path] {
			result.Deleted = append(result.Deleted, path)
		}
	}

	return result, nil
}
