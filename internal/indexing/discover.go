package indexing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Zeeeepa/mcp-skillset/internal/skill"
)

// discoverSkills walks every repository root looking for files named
// skillFilename, parsing each one (spec §4.6 step 2: "delegated to the
// surrounding Skill Discovery service, which walks every repository root").
// Results are ordered by repo id then relative path so reindex passes are
// deterministic (spec §5 ordering guarantees).
func discoverSkills(parser *skill.Parser, repos []repoRoot) ([]*skill.Skill, []DiscoveryFailure) {
	type found struct {
		sk   *skill.Skill
		sort string
	}
	var skills []found
	var failures []DiscoveryFailure

	for _, repo := range repos {
		err := filepath.WalkDir(repo.Path, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() != parser.Filename() {
				return nil
			}

			rel, relErr := filepath.Rel(repo.Path, path)
			if relErr != nil {
				rel = path
			}

			sk, parseErr := parser.Parse(path, repo.Path, repo.ID)
			if parseErr != nil {
				failures = append(failures, DiscoveryFailure{RepoID: repo.ID, Path: rel, Err: parseErr})
				return nil
			}
			skills = append(skills, found{sk: sk, sort: repo.ID + "\x00" + rel})
			return nil
		})
		if err != nil {
			failures = append(failures, DiscoveryFailure{RepoID: repo.ID, Path: repo.Path, Err: fmt.Errorf("walking repository: %w", err)})
		}
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].sort < skills[j].sort })
	out := make([]*skill.Skill, len(skills))
	for i, f := range skills {
		out[i] = f.sk
	}
	return out, failures
}

// repoRoot is the minimal repository shape discovery needs.
type repoRoot struct {
	ID   string
	Path string
}

// DiscoveryFailure records a single skill file that failed to parse during a
// reindex pass; these are counted as failed but never abort the pass (spec
// §4.6 reindex_all failure isolation).
type DiscoveryFailure struct {
	RepoID string
	Path   string
	Err    error
}
