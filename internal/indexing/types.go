// Package indexing orchestrates index (re)builds and hybrid retrieval: it
// fans each parsed skill out to the Vector Store and Graph Store, and fuses
// their results at query time.
package indexing

import (
	"errors"
	"time"
)

// Mode selects which signal a search draws on (spec §4.6).
type Mode string

const (
	ModeVectorOnly Mode = "vector_only"
	ModeGraphOnly  Mode = "graph_only"
	ModeHybrid     Mode = "hybrid"
)

// IndexStats summarizes a reindex_all pass.
type IndexStats struct {
	TotalSkills int       `json:"total_skills"`
	Indexed     int       `json:"indexed"`
	Failed      int       `json:"failed"`
	GraphNodes  int       `json:"graph_nodes"`
	GraphEdges  int       `json:"graph_edges"`
	LastIndexed time.Time `json:"last_indexed"`
}

// Filters narrows a search. TagHints and Category drive the graph boosts
// (spec §4.6); the remaining entries are passed through to the vector
// store's native equality filter.
type Filters struct {
	TagHints []string
	Category string
	Extra    map[string]interface{}
}

// Result is a single fused hit.
type Result struct {
	SkillID     string  `json:"skill_id"`
	SimScore    float32 `json:"sim_score"`
	GraphScore  float64 `json:"graph_score"`
	FinalScore  float64 `json:"final_score"`
	Content     string  `json:"-"`
	Metadata    map[string]interface{} `json:"-"`
}

var (
	// ErrQueryEmbeddingFailed is returned when the embedder cannot embed the
	// query text; it is never retried (spec §4.6 failure semantics).
	ErrQueryEmbeddingFailed = errors.New("indexing: query embedding failed")

	// ErrRetrievalFailed wraps a vector store read failure; no partial
	// results are returned alongside it.
	ErrRetrievalFailed = errors.New("indexing: retrieval failed")
)
