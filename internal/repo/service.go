package repo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"gitlite.dev/gitlite/internal/errors"
	"gitlite.dev/gitlite/internal/gitutil"
)

// Store persists one repository record per project. Load returns (nil, nil)
// when no record exists for the project id.
type Store interface {
	Load(ctx context.Context, projectID string) (*State, error)
	Save(ctx context.Context, state *State) error
}

// Service owns local repository state. Construct one per caller and inject
// it; there is no shared instance.
type Service struct {
	store Store

	now   func() time.Time
	newID func() string
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Init loads the repository record for a project, creating it with a
// synthesized initial commit when none exists. Calling it repeatedly never
// creates a second initial commit and never drops existing history.
func (s *Service) Init(ctx context.Context, projectID string, cfg Config) (*State, error) {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
		cfg.Branch = branch
	}

	initial := &Commit{
		ID:        s.newID(),
		Kind:      CommitKindShallow,
		Message:   "Initial commit",
		Author:    cfg.UserName,
		Timestamp: s.now().UnixMilli(),
		Changes:   []FileChange{},
		Branch:    branch,
	}

	state = &State{
		ProjectID:     projectID,
		CurrentBranch: branch,
		Branches: map[string]*Branch{
			branch: {
				Name:    branch,
				Head:    initial.ID,
				Commits: []string{initial.ID},
			},
		},
		Commits: []*Commit{initial},
		Config:  cfg,
		Tracked: map[string]string{},
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Status reports the current file set diffed against the last commit.
func (s *Service) Status(ctx context.Context, projectID string, files []ProjectFile) (*Status, error) {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &Status{HasGit: false}, nil
	}

	return &Status{
		HasGit:        true,
		Changes:       detectChanges(state, files),
		CurrentBranch: state.CurrentBranch,
		Branches:      branchNames(state),
	}, nil
}

// Commit records the changes since the last commit as a new shallow commit,
// advances the current branch and persists the record. Fails with
// ErrNoOpCommit when nothing changed, leaving the stored state untouched.
func (s *Service) Commit(ctx context.Context, projectID, message string, files []ProjectFile) (*Commit, error) {
	state, err := s.Init(ctx, projectID, Config{})
	if err != nil {
		return nil, err
	}

	changes := detectChanges(state, files)
	if len(changes) == 0 {
		return nil, errors.ErrNoOpCommit
	}

	commit := &Commit{
		ID:        s.newID(),
		Kind:      CommitKindShallow,
		Message:   message,
		Author:    state.Config.UserName,
		Timestamp: s.now().UnixMilli(),
		Changes:   changes,
		Branch:    state.CurrentBranch,
	}

	state.Commits = append(state.Commits, commit)
	branch := state.Branches[state.CurrentBranch]
	branch.Commits = append(branch.Commits, commit.ID)
	branch.Head = commit.ID

	for _, change := range changes {
		switch change.Type {
		case ChangeDeleted:
			delete(state.Tracked, change.File.Name)
		default:
			state.Tracked[change.File.Name] = change.CurrentContent
		}
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return commit, nil
}

// Push marks the project as pushed. The actual remote write is the sync
// bridge's job; this only validates configuration and records the timestamp.
func (s *Service) Push(ctx context.Context, projectID string) error {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return err
	}
	if state == nil || state.Config.RemoteURL == "" {
		return errors.ErrNoRemoteConfigured
	}

	state.LastPush = s.now().UnixMilli()
	return s.store.Save(ctx, state)
}

// Pull validates that a remote is configured. The authoritative pull logic
// lives in the sync bridge; locally there is nothing to merge.
func (s *Service) Pull(ctx context.Context, projectID string) ([]FileChange, error) {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Config.RemoteURL == "" {
		return nil, errors.ErrNoRemoteConfigured
	}
	return nil, nil
}

// History returns the most recent commits, most recent first. A limit of
// zero or less returns the full history.
func (s *Service) History(ctx context.Context, projectID string, limit int) ([]*Commit, error) {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}

	commits := make([]*Commit, len(state.Commits))
	for i, c := range state.Commits {
		commits[len(state.Commits)-1-i] = c
	}
	if limit > 0 && limit < len(commits) {
		commits = commits[:limit]
	}
	return commits, nil
}

// CreateBranch creates a new branch from fromBranch (default: the current
// branch), copying its head and commit list.
func (s *Service) CreateBranch(ctx context.Context, projectID, name, fromBranch string) (*Branch, error) {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, errors.ErrSourceBranchNotFound
	}

	if _, taken := state.Branches[name]; taken {
		return nil, errors.NewBranchExistsError(name)
	}

	if fromBranch == "" {
		fromBranch = state.CurrentBranch
	}
	source, ok := state.Branches[fromBranch]
	if !ok || source.Head == "" {
		return nil, errors.ErrSourceBranchNotFound
	}

	branch := &Branch{
		Name:    name,
		Head:    source.Head,
		Commits: append([]string(nil), source.Commits...),
	}
	state.Branches[name] = branch

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return branch, nil
}

// SwitchBranch updates the current branch pointer. The current branch is
// left unchanged when the target does not exist.
func (s *Service) SwitchBranch(ctx context.Context, projectID, name string) error {
	state, err := s.store.Load(ctx, projectID)
	if err != nil {
		return err
	}
	if state == nil {
		return errors.NewBranchNotFoundError(name)
	}
	if _, ok := state.Branches[name]; !ok {
		return errors.NewBranchNotFoundError(name)
	}

	state.CurrentBranch = name
	return s.store.Save(ctx, state)
}

// State returns the stored record for a project, or (nil, nil) when the
// project has not been initialized.
func (s *Service) State(ctx context.Context, projectID string) (*State, error) {
	return s.store.Load(ctx, projectID)
}

// SetConfig replaces the project configuration and persists the record.
func (s *Service) SetConfig(ctx context.Context, projectID string, cfg Config) error {
	state, err := s.Init(ctx, projectID, cfg)
	if err != nil {
		return err
	}

	if cfg.Branch == "" {
		cfg.Branch = state.Config.Branch
	}
	state.Config = cfg
	return s.store.Save(ctx, state)
}

// detectChanges diffs the current file set against the tracked snapshot from
// the last commit. Files are compared by git blob hash, consistent with the
// sync bridge's remote comparison. Input order is preserved for added and
// modified files; deletions follow in name order.
func detectChanges(state *State, files []ProjectFile) []FileChange {
	changes := []FileChange{}
	seen := make(map[string]bool, len(files))

	for _, file := range files {
		seen[file.Name] = true
		previous, tracked := state.Tracked[file.Name]
		switch {
		case !tracked:
			changes = append(changes, FileChange{
				Type:           ChangeAdded,
				File:           file,
				CurrentContent: file.Content,
			})
		case gitutil.BlobSHA(previous) != gitutil.BlobSHA(file.Content):
			changes = append(changes, FileChange{
				Type:            ChangeModified,
				File:            file,
				PreviousContent: previous,
				CurrentContent:  file.Content,
			})
		}
	}

	deleted := make([]string, 0)
	for name := range state.Tracked {
		if !seen[name] {
			deleted = append(deleted, name)
		}
	}
	sort.Strings(deleted)
	for _, name := range deleted {
		changes = append(changes, FileChange{
			Type:            ChangeDeleted,
			File:            ProjectFile{Name: name},
			PreviousContent: state.Tracked[name],
		})
	}

	return changes
}

func branchNames(state *State) []string {
	names := make([]string, 0, len(state.Branches))
	for name := range state.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
