package reinvite

import (
	"errors"
	"fmt"
)

// Every error here is terminal: the workflow performs no retry or
// rollback, it stops at the first failure and reports it.
var (
	// ErrGHNotInstalled means the gh binary is not on PATH.
	ErrGHNotInstalled = errors.New("GitHub CLI (gh) is not installed")

	// ErrNotAuthenticated means gh has no logged-in session.
	ErrNotAuthenticated = errors.New("not authenticated with GitHub")

	// ErrInterrupted means a termination signal arrived mid-run.
	ErrInterrupted = errors.New("operation interrupted")
)

// RepoNotFoundError means the repository does not exist or the caller
// lacks access to it.
type RepoNotFoundError struct {
	Repo RepoRef
}

func (e *RepoNotFoundError) Error() string {
	return fmt.Sprintf("cannot access repository %s: not found or you don't have access", e.Repo)
}

// ServiceError wraps any remote call failure: network errors, permission
// denials, and rate limiting are not differentiated.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
