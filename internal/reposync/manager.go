package reposync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/Zeeeepa/mcp-skillset/internal/metadata"
)

// Store is the subset of the Metadata Store the Repository Manager needs.
type Store interface {
	AddRepo(ctx context.Context, r metadata.Repository) error
	UpdateRepo(ctx context.Context, id string, skillCount int, lastUpdated time.Time) error
	RemoveRepo(ctx context.Context, id string) error
	GetRepo(ctx context.Context, id string) (*metadata.Repository, error)
	ListRepos(ctx context.Context) ([]metadata.Repository, error)
}

// Manager owns the set of source repositories on disk (spec §4.3). It does
// not loop over repositories itself; bulk sequencing with failure isolation
// is the caller's responsibility.
type Manager struct {
	baseDir       string
	skillFilename string
	store         Store
	logger        *zap.Logger

	mu     sync.Mutex
	locks  map[string]*sync.Mutex // per-repo mutual exclusion (spec §5)
}

// New constructs a Manager. baseDir is the root under which each
// repository is cloned to baseDir/<id>.
func New(baseDir, skillFilename string, store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		baseDir:       baseDir,
		skillFilename: skillFilename,
		store:         store,
		logger:        logger,
		locks:         make(map[string]*sync.Mutex),
	}
}

// repoLock returns (creating if needed) the mutex guarding a single
// repository id, so clone/update on distinct repos never block each other.
func (m *Manager) repoLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.baseDir, id)
}

// Add clones url into a fresh working tree and records a Repository.
func (m *Manager) Add(ctx context.Context, url string, priority int, license string) (*Repository, error) {
	return m.AddWithProgress(ctx, url, priority, license, nil)
}

// AddWithProgress is Add with a byte/object progress callback.
func (m *Manager) AddWithProgress(ctx context.Context, url string, priority int, license string, cb ProgressFunc) (*Repository, error) {
	id, err := DeriveID(url)
	if err != nil {
		return nil, err
	}

	lock := m.repoLock(id)
	lock.Lock()
	defer lock.Unlock()

	if existing, err := m.store.GetRepo(ctx, id); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}

	dest := m.path(id)
	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("%w: %s already exists on disk", ErrAlreadyExists, dest)
	}

	cloneOpts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
	}
	if cb != nil {
		cloneOpts.Progress = newProgressWriter(cb)
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, cloneOpts); err != nil {
		os.RemoveAll(dest)
		return nil, fmt.Errorf("%w: %s: %v", ErrCloneFailed, url, err)
	}

	count, err := countSkillFiles(dest, m.skillFilename)
	if err != nil {
		m.logger.Warn("counting skill files after clone", zap.String("repo_id", id), zap.Error(err))
	}

	now := time.Now().UTC()
	record := metadata.Repository{
		ID:          id,
		URL:         url,
		LocalPath:   dest,
		Priority:    priority,
		License:     license,
		SkillCount:  count,
		LastUpdated: now,
		AutoUpdate:  false,
	}
	if err := m.store.AddRepo(ctx, record); err != nil {
		os.RemoveAll(dest)
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	return toRepository(record), nil
}

// Update fetches origin and hard-resets the working tree to
// origin/<active_branch> (spec §4.3).
func (m *Manager) Update(ctx context.Context, id string) (*Repository, error) {
	return m.UpdateWithProgress(ctx, id, nil)
}

// UpdateWithProgress is Update with a byte/object progress callback.
func (m *Manager) UpdateWithProgress(ctx context.Context, id string, cb ProgressFunc) (*Repository, error) {
	lock := m.repoLock(id)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.GetRepo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	repo, err := git.PlainOpen(rec.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptClone, rec.LocalPath, err)
	}

	fetchOpts := &git.FetchOptions{RemoteName: "origin", Force: true}
	if cb != nil {
		fetchOpts.Progress = newProgressWriter(cb)
	}
	if err := repo.FetchContext(ctx, fetchOpts); err != nil && err != git.NoErrAlreadyUpToDate {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, id, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: determining HEAD: %v", ErrCorruptClone, id, err)
	}
	branch := head.Name().Short()
	if !head.Name().IsBranch() {
		branch = "HEAD"
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: resolving origin/%s: %v", ErrFetchFailed, id, branch, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptClone, id, err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return nil, fmt.Errorf("%w: %s: hard reset: %v", ErrCorruptClone, id, err)
	}

	count, err := countSkillFiles(rec.LocalPath, m.skillFilename)
	if err != nil {
		m.logger.Warn("counting skill files after update", zap.String("repo_id", id), zap.Error(err))
	}

	now := time.Now().UTC()
	if err := m.store.UpdateRepo(ctx, id, count, now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	updated, err := m.store.GetRepo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}
	return toRepository(*updated), nil
}

// List returns all known repositories.
func (m *Manager) List(ctx context.Context) ([]Repository, error) {
	recs, err := m.store.ListRepos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}
	out := make([]Repository, 0, len(recs))
	for _, r := range recs {
		out = append(out, *toRepository(r))
	}
	return out, nil
}

// Remove deletes the repository record and its on-disk clone.
func (m *Manager) Remove(ctx context.Context, id string) error {
	lock := m.repoLock(id)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.GetRepo(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := m.store.RemoveRepo(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageError, err)
	}

	if err := os.RemoveAll(rec.LocalPath); err != nil {
		m.logger.Warn("removing clone directory", zap.String("repo_id", id), zap.Error(err))
	}
	return nil
}

// ShouldUpdate is a pure predicate: now - repo.LastUpdated > maxAge. When
// (and whether) to call it is owned by the surrounding server lifecycle,
// not by the manager (spec §4.3, §9 open question).
func ShouldUpdate(repo Repository, maxAge time.Duration) bool {
	return time.Since(repo.LastUpdated) > maxAge
}

// countSkillFiles recursively counts files whose basename matches
// skillFilename under root (spec §4.3 skill counting).
func countSkillFiles(root, skillFilename string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == skillFilename {
			count++
		}
		return nil
	})
	return count, err
}

func toRepository(r metadata.Repository) *Repository {
	return &Repository{
		ID:          r.ID,
		URL:         r.URL,
		LocalPath:   r.LocalPath,
		Priority:    r.Priority,
		License:     r.License,
		SkillCount:  r.SkillCount,
		LastUpdated: r.LastUpdated,
		AutoUpdate:  r.AutoUpdate,
	}
}
