package github

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	gitliteerrors "gitlite.dev/gitlite/internal/errors"
)

// APIClient implements Client against the real GitHub API.
type APIClient struct {
	client *github.Client
}

// NewClient creates an APIClient authenticated with a bearer token. Fails
// with ErrNotAuthenticated when no token is supplied.
func NewClient(ctx context.Context, token string) (*APIClient, error) {
	if token == "" {
		return nil, gitliteerrors.ErrNotAuthenticated
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &APIClient{client: github.NewClient(tc)}, nil
}

// NewClientFromGitHub wraps an existing go-github client. Used by tests to
// point the bridge at a mock server.
func NewClientFromGitHub(client *github.Client) *APIClient {
	return &APIClient{client: client}
}

// GetLatestCommit resolves a branch ref to its tip commit sha.
func (c *APIClient) GetLatestCommit(ctx context.Context, owner, repo, branch string) (string, error) {
	ref, _, err := c.client.Git.GetRef(ctx, owner, repo, "heads/"+branch)
	if err != nil {
		return "", wrapRemoteError(err)
	}
	return ref.GetObject().GetSHA(), nil
}

// GetFileContent fetches and decodes one file's content and current hash.
// Returns (nil, nil) when the file does not exist on the branch.
func (c *APIClient) GetFileContent(ctx context.Context, owner, repo, path, branch string) (*RemoteFile, error) {
	fileContent, _, resp, err := c.client.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: branch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, wrapRemoteError(err)
	}
	if fileContent == nil {
		// Path resolved to a directory listing
		return nil, nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, wrapRemoteError(err)
	}

	return &RemoteFile{
		Path:    fileContent.GetPath(),
		Content: content,
		SHA:     fileContent.GetSHA(),
	}, nil
}

// GetRepositoryTree lists the full recursive tree at the branch tip.
func (c *APIClient) GetRepositoryTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	tipSHA, err := c.GetLatestCommit(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	tree, _, err := c.client.Git.GetTree(ctx, owner, repo, tipSHA, true)
	if err != nil {
		return nil, wrapRemoteError(err)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, TreeEntry{
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
			Type: entry.GetType(),
		})
	}
	return entries, nil
}

// GetCommits lists recent commits on a branch.
func (c *APIClient) GetCommits(ctx context.Context, owner, repo, branch string, perPage int) ([]CommitInfo, error) {
	if perPage <= 0 {
		perPage = 10
	}

	commits, _, err := c.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		SHA: branch,
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	})
	if err != nil {
		return nil, wrapRemoteError(err)
	}

	infos := make([]CommitInfo, 0, len(commits))
	for _, commit := range commits {
		info := CommitInfo{SHA: commit.GetSHA()}
		if c := commit.GetCommit(); c != nil {
			info.Message = c.GetMessage()
			if author := c.GetAuthor(); author != nil {
				info.Author = author.GetName()
				info.Date = author.GetDate().Time
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CreateBranch creates a new ref pointing at fromBranch's tip.
func (c *APIClient) CreateBranch(ctx context.Context, owner, repo, newBranch, fromBranch string) error {
	tipSHA, err := c.GetLatestCommit(ctx, owner, repo, fromBranch)
	if err != nil {
		return err
	}

	_, _, err = c.client.Git.CreateRef(ctx, owner, repo, &github.Reference{
		Ref: github.String("refs/heads/" + newBranch),
		Object: &github.GitObject{
			SHA: github.String(tipSHA),
		},
	})
	if err != nil {
		return wrapRemoteError(err)
	}
	return nil
}

// wrapRemoteError converts a go-github error into a RemoteAPIError carrying
// the remote's own message unmodified.
func wrapRemoteError(err error) error {
	var errResp *github.ErrorResponse
	if stderrors.As(err, &errResp) {
		status := 0
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
		return gitliteerrors.NewRemoteAPIError(status, errResp.Message, err)
	}
	return gitliteerrors.NewRemoteAPIError(0, err.Error(), err)
}
