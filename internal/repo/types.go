// Package repo implements the local repository state: per-project commit
// history, branch pointers, and change detection against the last commit.
package repo

// ChangeType classifies a detected file change.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// CommitKindShallow marks commits that record a change list rather than a
// full tree snapshot. All commits produced by this package are shallow; the
// tag exists so a content-addressed upgrade stays additive.
const CommitKindShallow = "shallow"

// ProjectFile is a named file in a project. Identity is the name; content is
// an opaque text blob.
type ProjectFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// FileChange records one detected change to a project file.
type FileChange struct {
	Type            ChangeType  `json:"type"`
	File            ProjectFile `json:"file"`
	PreviousContent string      `json:"previousContent"`
	CurrentContent  string      `json:"currentContent"`
}

// Commit is an immutable local commit entry.
type Commit struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Message   string       `json:"message"`
	Author    string       `json:"author"`
	Timestamp int64        `json:"timestamp"` // milliseconds since epoch
	Changes   []FileChange `json:"changes"`
	Branch    string       `json:"branch"`
}

// Branch is a named pointer into the commit history.
type Branch struct {
	Name    string   `json:"name"`
	Head    string   `json:"head"`
	Commits []string `json:"commits"`
}

// Config holds per-project settings.
type Config struct {
	UserName              string `json:"userName"`
	UserEmail             string `json:"userEmail"`
	RemoteURL             string `json:"remoteUrl,omitempty"`
	Branch                string `json:"branch"`
	AutoCommit            bool   `json:"autoCommit"`
	CommitMessageTemplate string `json:"commitMessageTemplate,omitempty"`
}

// State is the full repository record for one project. It is persisted
// wholesale on every mutation and read wholesale on every query.
//
// Invariants: Commits is non-empty once the project is initialized,
// CurrentBranch always keys into Branches, and every Branch.Head references
// a commit id present in Commits.
type State struct {
	ProjectID     string             `json:"projectId"`
	Branches      map[string]*Branch `json:"branches"`
	CurrentBranch string             `json:"currentBranch"`
	Commits       []*Commit          `json:"commits"`
	Config        Config             `json:"config"`
	// Tracked maps file name to its content as of the last commit on the
	// current branch. Commits stay shallow; this working snapshot is what
	// makes "changed since last commit" well defined.
	Tracked  map[string]string `json:"tracked"`
	LastPush int64             `json:"lastPush,omitempty"` // milliseconds since epoch
}

// Status describes the current working set relative to the last commit.
type Status struct {
	HasGit        bool
	Changes       []FileChange
	CurrentBranch string
	Branches      []string
	// Ahead and Behind are placeholders pending real remote comparison.
	Ahead  int
	Behind int
}
