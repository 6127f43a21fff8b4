// Package errors provides sentinel errors and custom error types for the gitlite application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotAuthenticated indicates that no GitHub credential is configured
	ErrNotAuthenticated = errors.New("not authenticated with GitHub")

	// ErrNoRemoteConfigured indicates that the project has no remote URL
	ErrNoRemoteConfigured = errors.New("no remote repository configured")

	// ErrNoOpCommit indicates that a commit was attempted with no changes
	ErrNoOpCommit = errors.New("no changes to commit")

	// ErrBranchExists indicates that a branch with the same name already exists
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrSourceBranchNotFound indicates that the branch to fork from has no head
	ErrSourceBranchNotFound = errors.New("source branch not found")

	// ErrInvalidRemoteURL indicates that a remote URL could not be parsed
	ErrInvalidRemoteURL = errors.New("invalid remote URL")

	// ErrStaleTip indicates that the remote branch tip moved during a push.
	// The safe recovery is to recompute the base tree and push again.
	ErrStaleTip = errors.New("remote branch tip is stale")
)

// BranchExistsError represents an error when creating a branch whose name is taken
type BranchExistsError struct {
	BranchName string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("branch %s already exists", e.BranchName)
}

// Is returns true if the target error is ErrBranchExists
func (e *BranchExistsError) Is(target error) bool {
	return target == ErrBranchExists
}

// NewBranchExistsError creates a new BranchExistsError
func NewBranchExistsError(branchName string) *BranchExistsError {
	return &BranchExistsError{BranchName: branchName}
}

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// RemoteAPIError represents an error response from the GitHub API.
// The remote's own message is preserved unmodified.
type RemoteAPIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error: %s", e.Message)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// NewRemoteAPIError creates a new RemoteAPIError
func NewRemoteAPIError(statusCode int, message string, err error) *RemoteAPIError {
	return &RemoteAPIError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// StaleTipError represents a ref update rejected because the remote branch
// advanced underneath the push. Unlike other remote errors this one is safe
// to retry by recomputing the base tree and pushing again.
type StaleTipError struct {
	Branch string
	Err    error
}

func (e *StaleTipError) Error() string {
	return fmt.Sprintf("branch %s moved on the remote during push", e.Branch)
}

// Is returns true if the target error is ErrStaleTip
func (e *StaleTipError) Is(target error) bool {
	return target == ErrStaleTip
}

func (e *StaleTipError) Unwrap() error {
	return e.Err
}

// NewStaleTipError creates a new StaleTipError
func NewStaleTipError(branch string, err error) *StaleTipError {
	return &StaleTipError{Branch: branch, Err: err}
}
