// Package testhelpers provides a mock GitHub Git Data API server for tests.
package testhelpers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitDataServerConfig configures the behavior of a mock Git Data server.
// The zero value plus NewMockGitDataServerConfig defaults model a repository
// with a single branch whose tip commit points at a base tree.
type MockGitDataServerConfig struct {
	Owner  string
	Repo   string
	Branch string

	// RefSHA is the current branch tip. Updated by successful ref updates.
	RefSHA string
	// BaseTreeSHA is the tree of the tip commit.
	BaseTreeSHA string

	// TreeEntries is what the recursive tree listing returns.
	TreeEntries []*github.TreeEntry
	// FileContents maps path to decoded file content for the contents API.
	FileContents map[string]string
	// FileSHAs maps path to the blob sha reported by the contents API.
	FileSHAs map[string]string
	// ListedCommits is returned by the commit listing API.
	ListedCommits []*github.RepositoryCommit

	// FailBlobIndex makes the Nth blob creation (0-based) answer 500.
	// Negative disables.
	FailBlobIndex int
	// StaleRef makes ref updates answer 422, as GitHub does when a
	// non-forced update is not a fast-forward.
	StaleRef bool

	mu sync.Mutex
	// RefUpdates records every sha a ref update moved the branch to.
	RefUpdates []string
	// CreatedRefs records refs created via the create-ref API.
	CreatedRefs []string
	// CreatedBlobs records the content of every created blob.
	CreatedBlobs []string
	// CreatedTreeEntries records the entries of the last created tree.
	CreatedTreeEntries []*github.TreeEntry
	// CreatedCommitMessages records messages of created commits.
	CreatedCommitMessages []string
	// CreatedCommitParents records the parent shas of created commits.
	CreatedCommitParents []string
}

// NewMockGitDataServerConfig creates a config with defaults
func NewMockGitDataServerConfig() *MockGitDataServerConfig {
	return &MockGitDataServerConfig{
		Owner:         "owner",
		Repo:          "repo",
		Branch:        "main",
		RefSHA:        "tip0000",
		BaseTreeSHA:   "basetree",
		FileContents:  make(map[string]string),
		FileSHAs:      make(map[string]string),
		FailBlobIndex: -1,
	}
}

// TipSHA returns the branch tip the mock currently reports.
func (c *MockGitDataServerConfig) TipSHA() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.RefSHA
}

// NewMockGitDataServer creates an httptest server that mocks the Git Data
// API endpoints the sync bridge uses: ref read/update/create, blob, tree and
// commit creation, recursive tree listing, file contents and commit listing.
func NewMockGitDataServer(t *testing.T, config *MockGitDataServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitDataServerConfig()
	}

	base := fmt.Sprintf("/repos/%s/%s", config.Owner, config.Repo)
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	writeError := func(w http.ResponseWriter, status int, message string) {
		writeJSON(w, status, map[string]string{"message": message})
	}
	decodeJSON := func(w http.ResponseWriter, r *http.Request, v interface{}) bool {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
			return false
		}
		return true
	}

	mux.HandleFunc(base+"/git/ref/", func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		sha := config.RefSHA
		config.mu.Unlock()
		writeJSON(w, http.StatusOK, &github.Reference{
			Ref:    github.String("refs/heads/" + config.Branch),
			Object: &github.GitObject{SHA: github.String(sha), Type: github.String("commit")},
		})
	})

	mux.HandleFunc(base+"/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		config.mu.Lock()
		config.CreatedRefs = append(config.CreatedRefs, req.Ref)
		config.mu.Unlock()
		writeJSON(w, http.StatusCreated, &github.Reference{
			Ref:    github.String(req.Ref),
			Object: &github.GitObject{SHA: github.String(req.SHA)},
		})
	})

	// A ref update PATCHes {"sha": ..., "force": ...}, not a Reference.
	mux.HandleFunc(base+"/git/refs/", func(w http.ResponseWriter, r *http.Request) {
		if config.StaleRef {
			writeError(w, http.StatusUnprocessableEntity, "Update is not a fast forward")
			return
		}
		var req struct {
			SHA   string `json:"sha"`
			Force bool   `json:"force"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		config.mu.Lock()
		config.RefSHA = req.SHA
		config.RefUpdates = append(config.RefUpdates, req.SHA)
		config.mu.Unlock()
		writeJSON(w, http.StatusOK, &github.Reference{
			Ref:    github.String("refs/heads/" + config.Branch),
			Object: &github.GitObject{SHA: github.String(req.SHA)},
		})
	})

	mux.HandleFunc(base+"/git/commits/", func(w http.ResponseWriter, r *http.Request) {
		sha := strings.TrimPrefix(r.URL.Path, base+"/git/commits/")
		writeJSON(w, http.StatusOK, &github.Commit{
			SHA:  github.String(sha),
			Tree: &github.Tree{SHA: github.String(config.BaseTreeSHA)},
		})
	})

	mux.HandleFunc(base+"/git/blobs", func(w http.ResponseWriter, r *http.Request) {
		var blob github.Blob
		if !decodeJSON(w, r, &blob) {
			return
		}
		config.mu.Lock()
		index := len(config.CreatedBlobs)
		config.CreatedBlobs = append(config.CreatedBlobs, blob.GetContent())
		config.mu.Unlock()
		if config.FailBlobIndex >= 0 && index == config.FailBlobIndex {
			writeError(w, http.StatusInternalServerError, "blob creation failed")
			return
		}
		writeJSON(w, http.StatusCreated, &github.Blob{
			SHA: github.String(fmt.Sprintf("blob%04d", index)),
		})
	})

	mux.HandleFunc(base+"/git/trees", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			BaseTree string              `json:"base_tree"`
			Entries  []*github.TreeEntry `json:"tree"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		config.mu.Lock()
		config.CreatedTreeEntries = req.Entries
		config.mu.Unlock()
		writeJSON(w, http.StatusCreated, &github.Tree{SHA: github.String("newtree")})
	})

	mux.HandleFunc(base+"/git/trees/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, &github.Tree{
			SHA:     github.String(config.BaseTreeSHA),
			Entries: config.TreeEntries,
		})
	})

	// Commit creation sends the tree as a bare sha string.
	mux.HandleFunc(base+"/git/commits", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string   `json:"message"`
			Tree    string   `json:"tree"`
			Parents []string `json:"parents"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		config.mu.Lock()
		config.CreatedCommitMessages = append(config.CreatedCommitMessages, req.Message)
		config.CreatedCommitParents = append(config.CreatedCommitParents, req.Parents...)
		config.mu.Unlock()
		writeJSON(w, http.StatusCreated, &github.Commit{
			SHA:  github.String("newcommit"),
			Tree: &github.Tree{SHA: github.String(req.Tree)},
		})
	})

	mux.HandleFunc(base+"/contents/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, base+"/contents/")
		content, ok := config.FileContents[path]
		if !ok {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		sha := config.FileSHAs[path]
		writeJSON(w, http.StatusOK, &github.RepositoryContent{
			Type:     github.String("file"),
			Path:     github.String(path),
			SHA:      github.String(sha),
			Encoding: github.String("base64"),
			Content:  github.String(base64.StdEncoding.EncodeToString([]byte(content))),
		})
	})

	mux.HandleFunc(base+"/commits", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, config.ListedCommits)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitDataClient creates a go-github client configured to use a mock
// Git Data server.
func NewMockGitDataClient(t *testing.T, config *MockGitDataServerConfig) (*github.Client, string, string) {
	server := NewMockGitDataServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
