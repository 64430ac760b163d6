// Package metadata persists repository records in an embedded transactional
// store: a single-writer, multi-reader SQLite database holding the
// Repository Manager's source-of-truth sync state.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Error taxonomy (spec §4.2, §7): any write returns one of these and leaves
// the store in its prior state.
var (
	ErrStorageBusy         = errors.New("metadata: storage busy")
	ErrConstraintViolation = errors.New("metadata: constraint violation")
	ErrCorrupt             = errors.New("metadata: corrupt")
	ErrNotFound            = errors.New("metadata: repository not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS repositories (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL,
	local_path   TEXT NOT NULL,
	priority     INTEGER NOT NULL DEFAULT 50,
	license      TEXT,
	skill_count  INTEGER NOT NULL DEFAULT 0,
	last_updated TEXT NOT NULL,
	auto_update  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS skill_summaries (
	skill_id    TEXT PRIMARY KEY,
	repo_id     TEXT NOT NULL REFERENCES repositories(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	updated_at  TEXT
);

CREATE INDEX IF NOT EXISTS idx_skill_summaries_repo ON skill_summaries(repo_id);
`

// Repository is the persisted record for a cloned source repository
// (spec §3). SkillCount and LastUpdated are mutated on update.
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

// SkillSummary is the optional per-skill row cascade-deleted with its
// owning repository (spec §4.2: "reserved" skill_summaries table).
type SkillSummary struct {
	SkillID   string
	RepoID    string
	Name      string
	Category  string
	UpdatedAt time.Time
}

// Store is the embedded, transactional Metadata Store.
type Store struct {
	mu sync.Mutex // single-writer; SQLite itself serializes, this guards migration + busy-retry bookkeeping
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and ensures
// its schema exists. It also performs the one-time legacy-JSON migration
// if a legacy file is found alongside path (see Migrate).
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("metadata: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single-writer discipline (spec §5)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("metadata: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("metadata: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("metadata: create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(path); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close shuts down the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddRepo inserts a new repository record.
func (s *Store) AddRepo(ctx context.Context, r Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO repositories (id, url, local_path, priority, license, skill_count, last_updated, auto_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.URL, r.LocalPath, r.Priority, r.License, r.SkillCount,
		r.LastUpdated.UTC().Format(time.RFC3339), boolToInt(r.AutoUpdate),
	)
	return classifyWriteError(err)
}

// UpdateRepo updates the mutable fields (skill_count, last_updated) on an
// existing repository record.
func (s *Store) UpdateRepo(ctx context.Context, id string, skillCount int, lastUpdated time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE repositories SET skill_count = ?, last_updated = ? WHERE id = ?`,
		skillCount, lastUpdated.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return classifyWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classifyWriteError(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// RemoveRepo deletes a repository record (and cascades to its skill
// summaries). It does not touch the on-disk clone; the Repository Manager
// owns that.
func (s *Store) RemoveRepo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM repositories WHERE id = ?", id)
	if err != nil {
		return classifyWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classifyWriteError(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// GetRepo fetches a single repository record by id.
func (s *Store) GetRepo(ctx context.Context, id string) (*Repository, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, local_path, priority, license, skill_count, last_updated, auto_update
		FROM repositories WHERE id = ?`, id)
	r, err := scanRepo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("metadata: get repo %q: %w", id, err)
	}
	return r, nil
}

// ListRepos returns all repository records ordered by priority descending,
// then id ascending for a stable tie-break.
func (s *Store) ListRepos(ctx context.Context) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, local_path, priority, license, skill_count, last_updated, auto_update
		FROM repositories ORDER BY priority DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("metadata: list repos: %w", err)
	}
	defer rows.Close()

	var out []Repository
	for rows.Next() {
		r, err := scanRepo(rows)
		if err != nil {
			return nil, fmt.Errorf("metadata: scan repo: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// row is satisfied by both *sql.Row and *sql.Rows.
type row interface {
	Scan(dest ...interface{}) error
}

func scanRepo(r row) (*Repository, error) {
	var rec Repository
	var lastUpdated string
	var autoUpdate int
	if err := r.Scan(&rec.ID, &rec.URL, &rec.LocalPath, &rec.Priority, &rec.License,
		&rec.SkillCount, &lastUpdated, &autoUpdate); err != nil {
		return nil, err
	}
	rec.LastUpdated, _ = time.Parse(time.RFC3339, lastUpdated)
	rec.AutoUpdate = autoUpdate != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// classifyWriteError maps a raw driver error into the spec's taxonomy
// (StorageBusy, ConstraintViolation, Corrupt) without leaving the store
// partially mutated — SQLite's own transaction semantics guarantee that.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case containsAny(msg, "UNIQUE constraint", "FOREIGN KEY constraint", "CHECK constraint"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case containsAny(msg, "database is locked", "busy"):
		return fmt.Errorf("%w: %v", ErrStorageBusy, err)
	case containsAny(msg, "malformed", "corrupt"):
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	default:
		return err
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
