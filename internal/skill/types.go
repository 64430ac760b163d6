// Package skill parses skill documents from disk into validated records.
//
// A skill document is a markdown file (by default named SKILL.md) with a
// YAML front-matter block followed by a markdown body. Parse is purely
// functional with respect to time: the only non-determinism is the file's
// modification time, captured once per call.
package skill

import "time"

// Category is the closed set of skill categories.
type Category string

const (
	CategoryTesting       Category = "testing"
	CategoryDebugging     Category = "debugging"
	CategoryRefactoring   Category = "refactoring"
	CategoryArchitecture  Category = "architecture"
	CategoryData          Category = "data"
	CategorySecurity      Category = "security"
	CategoryDevops        Category = "devops"
	CategoryToolchain     Category = "toolchain"
	CategoryGeneral       Category = "general"
	CategoryOther         Category = "other"
)

// validCategories is the closed set accepted by the validator.
var validCategories = map[Category]bool{
	CategoryTesting:      true,
	CategoryDebugging:    true,
	CategoryRefactoring:  true,
	CategoryArchitecture: true,
	CategoryData:         true,
	CategorySecurity:     true,
	CategoryDevops:       true,
	CategoryToolchain:    true,
	CategoryGeneral:      true,
	CategoryOther:        true,
}

// Skill is the validated in-memory record produced by Parse.
type Skill struct {
	// ID is "{repo_id}/{relative_path_without_filename}", unique corpus-wide.
	ID string

	Name         string
	Description  string
	Instructions string // full markdown body
	Category     Category
	Tags         []string // set semantics: no duplicates, sorted
	Dependencies []string // set semantics: no duplicates, sorted
	Examples     []string // ordered

	Path       string // absolute file path
	RepoID     string
	Version    string
	Author     string
	UpdatedAt  time.Time // UTC, from file mtime

	// Warnings carries non-fatal findings from validation and the security
	// scan. Parse never fails because of these.
	Warnings []Warning
}

// WarningKind enumerates non-fatal findings attached to an otherwise valid Skill.
type WarningKind string

const (
	WarnProgressiveDisclosure WarningKind = "progressive_disclosure"
	WarnSecurityScan          WarningKind = "security_scan"
	WarnNameNormalized        WarningKind = "name_normalized"
)

// Warning is a non-fatal finding recorded on a parsed Skill.
type Warning struct {
	Kind    WarningKind
	Message string
}

// frontMatter is the raw YAML shape decoded before validation. Untyped
// front-matter never crosses the package boundary; only Skill does.
type frontMatter struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	Dependencies []string `yaml:"dependencies"`
	Version      string   `yaml:"version"`
	Author       string   `yaml:"author"`

	// Metadata and AllowedTools accommodate the nested-metadata compatibility
	// shape (spec §9 open question): some corpora nest name/description under
	// a "metadata" key and carry an "allowed-tools" list the core ignores.
	Metadata     *frontMatter `yaml:"metadata"`
	AllowedTools []string     `yaml:"allowed-tools"`
}
