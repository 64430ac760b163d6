// Package graph maintains a typed in-memory graph over skills, tags, and
// categories, supporting neighborhood and tag-sharing queries. The graph is
// not thread-safe by construction (spec §5): callers serialize writes and
// may run reads concurrently with no locking of their own.
package graph

import "errors"

// NodeKind discriminates the three node variants (spec §3).
type NodeKind string

const (
	NodeSkill    NodeKind = "skill"
	NodeTag      NodeKind = "tag"
	NodeCategory NodeKind = "category"
)

// Node is a tagged-variant graph node. Skill nodes carry Name and RepoID;
// Tag and Category nodes carry only their token as ID.
type Node struct {
	Kind   NodeKind
	ID     string
	Name   string
	RepoID string
}

// EdgeKind discriminates the four edge variants (spec §3). SharesTag is
// derived on demand and never stored as an Edge.
type EdgeKind string

const (
	EdgeHasTag     EdgeKind = "has_tag"
	EdgeInCategory EdgeKind = "in_category"
	EdgeDependsOn  EdgeKind = "depends_on"
)

// Edge is a typed, directed edge between two node ids.
type Edge struct {
	Kind EdgeKind
	From string
	To   string
}

// SkillInput is the subset of skill.Skill the graph needs to add a node
// (kept decoupled from the skill package so graph has no import on it).
type SkillInput struct {
	ID           string
	Name         string
	RepoID       string
	Category     string
	Tags         []string
	Dependencies []string
}

// Related is a tag-sharing result (spec §4.5 related_by_tags).
type Related struct {
	ID     string
	Shared int
}

// Neighbor is a neighborhood-query result with BFS distance (spec §4.5
// neighbors).
type Neighbor struct {
	ID       string
	Distance int
}

var (
	// ErrSelfDependency rejects a DependsOn self-edge (spec §3, §8 invariant 2).
	ErrSelfDependency = errors.New("graph: skill cannot depend on itself")
)
