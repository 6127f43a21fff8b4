package github

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/google/go-github/v62/github"

	gitliteerrors "gitlite.dev/gitlite/internal/errors"
)

// PushMultipleFiles writes files as one atomic logical commit: resolve the
// branch tip, resolve its base tree, create one blob per file, layer a new
// tree on the base tree, create a commit pointing at it, then advance the
// branch ref. Steps before the ref update only create objects, so any
// failure there leaves the remote untouched. The ref update is non-forced;
// a rejected update surfaces as StaleTipError and must not be retried
// without recomputing the base tree.
func (c *APIClient) PushMultipleFiles(ctx context.Context, owner, repo string, files []LocalFile, message, branch string) (string, error) {
	// 1. current branch tip
	tipSHA, err := c.GetLatestCommit(ctx, owner, repo, branch)
	if err != nil {
		return "", err
	}

	// 2. base tree of the tip commit
	baseCommit, _, err := c.client.Git.GetCommit(ctx, owner, repo, tipSHA)
	if err != nil {
		return "", wrapRemoteError(err)
	}
	baseTreeSHA := baseCommit.GetTree().GetSHA()

	// 3. one blob per file; blobs are independent, create them concurrently
	blobSHAs := make([]string, len(files))
	blobErrs := make([]error, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file LocalFile) {
			defer wg.Done()
			blob, _, err := c.client.Git.CreateBlob(ctx, owner, repo, &github.Blob{
				Content:  github.String(file.Content),
				Encoding: github.String("utf-8"),
			})
			if err != nil {
				blobErrs[i] = err
				return
			}
			blobSHAs[i] = blob.GetSHA()
		}(i, file)
	}
	wg.Wait()
	for _, err := range blobErrs {
		if err != nil {
			return "", wrapRemoteError(err)
		}
	}

	// 4. new tree layering the blobs on the base tree
	entries := make([]*github.TreeEntry, len(files))
	for i, file := range files {
		entries[i] = &github.TreeEntry{
			Path: github.String(file.Path),
			Mode: github.String("100644"),
			Type: github.String("blob"),
			SHA:  github.String(blobSHAs[i]),
		}
	}
	newTree, _, err := c.client.Git.CreateTree(ctx, owner, repo, baseTreeSHA, entries)
	if err != nil {
		return "", wrapRemoteError(err)
	}

	// 5. commit pointing at the new tree with the old tip as parent
	newCommit, _, err := c.client.Git.CreateCommit(ctx, owner, repo, &github.Commit{
		Message: github.String(message),
		Tree:    newTree,
		Parents: []*github.Commit{
			{SHA: github.String(tipSHA)},
		},
	}, nil)
	if err != nil {
		return "", wrapRemoteError(err)
	}

	// 6. advance the ref, non-destructively
	_, resp, err := c.client.Git.UpdateRef(ctx, owner, repo, &github.Reference{
		Ref: github.String("refs/heads/" + branch),
		Object: &github.GitObject{
			SHA: newCommit.SHA,
		},
	}, false)
	if err != nil {
		if isStaleTip(err, resp) {
			return "", gitliteerrors.NewStaleTipError(branch, wrapRemoteError(err))
		}
		return "", wrapRemoteError(err)
	}

	return newCommit.GetSHA(), nil
}

// isStaleTip reports whether a rejected ref update means the branch advanced
// underneath the push. GitHub answers 422 when a non-forced update is not a
// fast-forward.
func isStaleTip(err error, resp *github.Response) bool {
	if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
		return true
	}
	var errResp *github.ErrorResponse
	if stderrors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}
