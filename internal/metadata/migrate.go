package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// legacyRepo mirrors the flat-file JSON shape a pre-SQLite version of the
// store wrote to <data_root>/repositories.json.
type legacyRepo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	LocalPath   string    `json:"local_path"`
	Priority    int       `json:"priority"`
	License     string    `json:"license"`
	SkillCount  int       `json:"skill_count"`
	LastUpdated time.Time `json:"last_updated"`
	AutoUpdate  bool      `json:"auto_update"`
}

// legacyFilename is the flat-file snapshot Migrate looks for alongside the
// database file.
const legacyFilename = "repositories.json"

// Migrate performs the one-time migration from a legacy JSON repository
// snapshot, if one is found next to dbPath. The legacy contents are written
// into the new schema inside a single transaction, then the legacy file is
// renamed with a ".backup" suffix. If anything fails, the legacy file is
// left untouched and the database is not left partially migrated.
func (s *Store) Migrate(dbPath string) error {
	legacyPath := filepath.Join(filepath.Dir(dbPath), legacyFilename)

	data, err := os.ReadFile(legacyPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("metadata: reading legacy snapshot: %w", err)
	}

	var legacyRepos []legacyRepo
	if err := json.Unmarshal(data, &legacyRepos); err != nil {
		return fmt.Errorf("metadata: decoding legacy snapshot: %w", err)
	}

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("metadata: begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range legacyRepos {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO repositories (id, url, local_path, priority, license, skill_count, last_updated, auto_update)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			r.ID, r.URL, r.LocalPath, r.Priority, r.License, r.SkillCount,
			r.LastUpdated.UTC().Format(time.RFC3339), boolToInt(r.AutoUpdate),
		); err != nil {
			return fmt.Errorf("metadata: migrating repo %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("metadata: commit migration: %w", err)
	}

	if err := os.Rename(legacyPath, legacyPath+".backup"); err != nil {
		return fmt.Errorf("metadata: renaming legacy snapshot: %w", err)
	}

	return nil
}
