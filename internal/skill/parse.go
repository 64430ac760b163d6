package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zeeeepa/mcp-skillset/internal/secrets"
)

const (
	minDescriptionLen = 10
	minInstructionsLen = 50
	maxNameLen         = 64
	maxFrontMatterLen  = 400
	maxBodyLen         = 20_000
)

// frontMatterPattern splits a file into (front-matter, body). It anchors at
// the start of the file and matches across newlines (DOTALL via (?s)).
var frontMatterPattern = regexp.MustCompile(`(?s)\A---\r?\n(.*?\r?\n)---\r?\n?(.*)\z`)

// nameNormalizePattern matches the characters an identifier-safe name must
// not contain once lowercased.
var nameNormalizePattern = regexp.MustCompile(`[^a-z0-9-]`)

// examplesHeadingPattern matches the "## Examples" heading (case sensitive,
// matching the level-2 heading convention used across the corpus).
var examplesHeadingPattern = regexp.MustCompile(`(?m)^##\s+Examples\s*$`)

// nextHeadingPattern matches any heading, used to bound the Examples section.
var nextHeadingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)

// Parser converts skill files into validated Skill records.
//
// Parser holds no mutable state of its own beyond the optional secret
// scanner; a single Parser is safe to reuse (and share) across goroutines.
type Parser struct {
	skillFilename string
	scrubber      secrets.Scrubber
}

// Option configures a Parser.
type Option func(*Parser)

// WithSkillFilename overrides the recognized skill file basename (default
// "SKILL.md").
func WithSkillFilename(name string) Option {
	return func(p *Parser) { p.skillFilename = name }
}

// WithScrubber attaches a secret scanner used for the non-fatal security
// scan (spec §4.1). If unset, NewParser uses secrets.NewNoopScrubber-style
// behavior by installing a scrubber built from secrets.DefaultConfig.
func WithScrubber(s secrets.Scrubber) Option {
	return func(p *Parser) { p.scrubber = s }
}

// NewParser constructs a Parser. By default it recognizes "SKILL.md" and
// scans for secrets using the package's default rule set.
func NewParser(opts ...Option) *Parser {
	p := &Parser{skillFilename: "SKILL.md"}
	for _, opt := range opts {
		opt(p)
	}
	if p.scrubber == nil {
		p.scrubber = secrets.MustNew(secrets.DefaultConfig())
	}
	return p
}

// Filename returns the configured skill file basename.
func (p *Parser) Filename() string {
	return p.skillFilename
}

// Parse converts a file at path into a validated Skill. repoRoot is the
// repository's local checkout root, used to derive the skill identifier as
// "{repoID}/{relative_path_without_filename}".
func (p *Parser) Parse(path, repoRoot, repoID string) (*Skill, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Kind: KindMalformedFile, Path: path, Err: err}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: KindMalformedFile, Path: path, Err: err}
	}

	matches := frontMatterPattern.FindSubmatch(raw)
	if matches == nil {
		return nil, &ParseError{Kind: KindMalformedFile, Path: path, Err: ErrNoFrontMatter}
	}
	fmText := string(matches[1])
	body := string(matches[2])

	var fm frontMatter
	if err := yaml.Unmarshal(matches[1], &fm); err != nil {
		return nil, &ParseError{Kind: KindMalformedFile, Path: path, Err: fmt.Errorf("decoding front-matter: %w", err)}
	}
	// Compatibility shape: nested "metadata:" block (spec §9 open question).
	if fm.Metadata != nil {
		if fm.Name == "" {
			fm.Name = fm.Metadata.Name
		}
		if fm.Description == "" {
			fm.Description = fm.Metadata.Description
		}
		if fm.Category == "" {
			fm.Category = fm.Metadata.Category
		}
		if len(fm.Tags) == 0 {
			fm.Tags = fm.Metadata.Tags
		}
		if len(fm.Dependencies) == 0 {
			fm.Dependencies = fm.Metadata.Dependencies
		}
	}

	if strings.TrimSpace(fm.Name) == "" {
		return nil, &ParseError{Kind: KindSchemaViolation, Path: path, Err: ErrMissingName}
	}
	if strings.TrimSpace(fm.Description) == "" {
		return nil, &ParseError{Kind: KindSchemaViolation, Path: path, Err: ErrMissingDescription}
	}
	if len(fm.Description) < minDescriptionLen {
		return nil, &ParseError{Kind: KindSchemaViolation, Path: path, Err: ErrDescriptionTooShort}
	}
	trimmedBody := strings.TrimSpace(body)
	if len(trimmedBody) < minInstructionsLen {
		return nil, &ParseError{Kind: KindSchemaViolation, Path: path, Err: ErrInstructionsTooShort}
	}
	if len(fm.Name) > maxNameLen {
		return nil, &ParseError{Kind: KindSchemaViolation, Path: path, Err: ErrNameTooLong}
	}

	var warnings []Warning

	normalizedName := nameNormalizePattern.ReplaceAllString(strings.ToLower(fm.Name), "-")
	if normalizedName != fm.Name {
		warnings = append(warnings, Warning{
			Kind:    WarnNameNormalized,
			Message: fmt.Sprintf("name %q normalized to %q for identifier derivation", fm.Name, normalizedName),
		})
	}

	if len(fmText) > maxFrontMatterLen {
		warnings = append(warnings, Warning{
			Kind:    WarnProgressiveDisclosure,
			Message: fmt.Sprintf("front-matter is %d characters, exceeds %d-character disclosure budget", len(fmText), maxFrontMatterLen),
		})
	}
	if len(trimmedBody) > maxBodyLen {
		warnings = append(warnings, Warning{
			Kind:    WarnProgressiveDisclosure,
			Message: fmt.Sprintf("body is %d characters, exceeds %d-character disclosure budget", len(trimmedBody), maxBodyLen),
		})
	}

	if p.scrubber != nil {
		if result := p.scrubber.Check(trimmedBody); result.HasFindings() {
			warnings = append(warnings, Warning{
				Kind:    WarnSecurityScan,
				Message: result.Summary(),
			})
		}
	}

	relDir, err := filepath.Rel(repoRoot, filepath.Dir(path))
	if err != nil {
		return nil, &ParseError{Kind: KindMalformedFile, Path: path, Err: fmt.Errorf("computing relative path: %w", err)}
	}
	relDir = filepath.ToSlash(relDir)

	var id string
	if relDir == "." {
		id = repoID + "/" + normalizedName
	} else {
		id = repoID + "/" + relDir
	}

	category := Category(strings.ToLower(strings.TrimSpace(fm.Category)))
	if category == "" {
		category = CategoryGeneral
	}
	if !validCategories[category] {
		category = CategoryOther
	}

	s := &Skill{
		ID:           id,
		Name:         fm.Name,
		Description:  fm.Description,
		Instructions: trimmedBody,
		Category:     category,
		Tags:         normalizeSet(fm.Tags),
		Dependencies: normalizeSet(fm.Dependencies),
		Examples:     extractExamples(trimmedBody),
		Path:         path,
		RepoID:       repoID,
		Version:      fm.Version,
		Author:       fm.Author,
		UpdatedAt:    info.ModTime().UTC(),
		Warnings:     warnings,
	}
	return s, nil
}

// normalizeSet lowercases, trims, and deduplicates a string list, returning
// it sorted for stable downstream comparisons.
func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// extractExamples locates the "## Examples" heading and returns the bullet
// lines that follow it, up to the next heading or end of body.
func extractExamples(body string) []string {
	loc := examplesHeadingPattern.FindStringIndex(body)
	if loc == nil {
		return nil
	}
	rest := body[loc[1]:]
	if next := nextHeadingPattern.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}

	var examples []string
	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			examples = append(examples, strings.TrimSpace(line[2:]))
		}
	}
	return examples
}

// RepoIDFromPath is a convenience for callers that only have a repository
// root and need the relative path used by Parse, without parsing the file.
func RepoIDFromPath(repoRoot, path string) (string, error) {
	rel, err := filepath.Rel(repoRoot, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
