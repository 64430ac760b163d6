package indexing

import (
	"strings"

	"github.com/Zeeeepa/mcp-skillset/internal/skill"
	"github.com/Zeeeepa/mcp-skillset/internal/vectorstore"
)

const embeddableInstructionsLimit = 1000

// embeddableText composes the fixed, reproducible text fed to the embedder
// (spec §4.4): name, description, category, space-joined tags, and the
// first 1,000 characters of instructions, newline-separated.
func embeddableText(s *skill.Skill) string {
	instructions := s.Instructions
	if len(instructions) > embeddableInstructionsLimit {
		instructions = instructions[:embeddableInstructionsLimit]
	}
	parts := []string{
		s.Name,
		s.Description,
		string(s.Category),
		strings.Join(s.Tags, " "),
		instructions,
	}
	return strings.Join(parts, "\n")
}

// buildMetadata assembles the vector-store metadata map for a skill (spec
// §4.4): skill_id, name, category, tags as a comma-delimited string, repo_id,
// and updated_at (ISO-8601 UTC, or empty when unset).
func buildMetadata(s *skill.Skill) map[string]interface{} {
	updatedAt := ""
	if !s.UpdatedAt.IsZero() {
		updatedAt = s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return map[string]interface{}{
		"skill_id":   s.ID,
		"name":       s.Name,
		"category":   string(s.Category),
		"tags":       tagsDelimited(s.Tags),
		"repo_id":    s.RepoID,
		"updated_at": updatedAt,
	}
}

const tagDelimiter = ","

// tagsDelimited joins tags with tagDelimiter, bracketed so substring
// matching on a single tag can anchor on delimiters on both sides (spec
// §4.4, §9: "a portability concession, not an invariant").
func tagsDelimited(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tagDelimiter + strings.Join(tags, tagDelimiter) + tagDelimiter
}

// tagsFromDelimited parses a comma-delimited tag string back into a slice
// (spec §8 round-trip law: the delimited string re-parses into the original
// tag set).
func tagsFromDelimited(s string) []string {
	trimmed := strings.Trim(s, tagDelimiter)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, tagDelimiter)
}

// skillHasTag reports whether a metadata tags string contains tag, anchored
// on delimiters (spec §4.4 tag filtering).
func skillHasTag(tagsField string, tag string) bool {
	needle := tagDelimiter + tag + tagDelimiter
	return strings.Contains(tagsField, needle)
}

// toDocument converts a skill into the vector store document shape.
func toDocument(s *skill.Skill, collection string) vectorstore.Document {
	return vectorstore.Document{
		ID:         s.ID,
		Content:    embeddableText(s),
		Metadata:   buildMetadata(s),
		Collection: collection,
	}
}
