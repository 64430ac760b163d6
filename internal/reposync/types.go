// Package reposync owns the lifecycle of cloned source repositories:
// add, update (fetch + hard reset), list, and remove. Skill repositories
// are treated as read-only mirrors — update always converges the working
// tree to match upstream regardless of local perturbation.
package reposync

import (
	"errors"
	"time"
)

// Errors (spec §4.3, §7).
var (
	ErrInvalidURL    = errors.New("reposync: invalid git url")
	ErrAlreadyExists = errors.New("reposync: repository already exists")
	ErrCloneFailed   = errors.New("reposync: clone failed")
	ErrNotFound      = errors.New("reposync: repository not found")
	ErrFetchFailed   = errors.New("reposync: fetch failed")
	ErrCorruptClone  = errors.New("reposync: corrupt clone")
	ErrStorageError  = errors.New("reposync: storage error")
)

// Repository is the manager's view of a cloned source (spec §3).
type Repository struct {
	ID          string
	URL         string
	LocalPath   string
	Priority    int
	License     string
	SkillCount  int
	LastUpdated time.Time
	AutoUpdate  bool
}

// ProgressFunc receives byte/object transfer progress during clone or fetch.
// Implementations must be non-blocking and safe to call from an I/O
// goroutine; the manager throttles calls to roughly one per 100 KB of
// additional progress.
type ProgressFunc func(current, total int64, stage string)
