package indexing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Zeeeepa/mcp-skillset/internal/graph"
	"github.com/Zeeeepa/mcp-skillset/internal/logging"
	"github.com/Zeeeepa/mcp-skillset/internal/skill"
	"github.com/Zeeeepa/mcp-skillset/internal/vectorstore"
)

// RepoLister is the subset of the Repository Manager the engine needs to
// discover skill roots (kept decoupled so this package has no import on
// reposync).
type RepoLister interface {
	List(ctx context.Context) ([]RepoRef, error)
}

// RepoRef is a single discoverable repository root.
type RepoRef struct {
	ID   string
	Path string
}

// Engine orchestrates (re)index passes and hybrid queries (spec §4.6). It
// owns no persistence of its own; the Vector Store, Graph Store, and
// repository lister are injected.
type Engine struct {
	vector       vectorstore.Store
	embedder     vectorstore.Embedder
	graph        *graph.Store
	parser       *skill.Parser
	repos        RepoLister
	collection   string
	snapshotPath string
	logger       *logging.Logger

	vectorWeight      float64
	graphWeight       float64
	expansionFactor   int
	tagBoost          float64
	categoryBoost     float64
	neighborhoodBoost float64

	lastIndexed time.Time
}

// Config carries the fusion defaults and wiring an Engine needs.
type Config struct {
	Vector       vectorstore.Store
	// Embedder, when set, is used to validate the query text embeds
	// successfully before the vector phase runs, so embedding failures can
	// be reported distinctly from retrieval failures (spec §4.6 failure
	// semantics: QueryEmbeddingFailed is non-retried, separate from
	// RetrievalFailed).
	Embedder     vectorstore.Embedder
	Graph        *graph.Store
	Parser       *skill.Parser
	Repos        RepoLister
	Collection   string
	SnapshotPath string
	Logger       *logging.Logger

	VectorWeight      float64
	GraphWeight       float64
	ExpansionFactor   int
	TagBoost          float64
	CategoryBoost     float64
	NeighborhoodBoost float64
}

// NewEngine constructs an Engine from cfg, defaulting ExpansionFactor to 5
// (spec §4.6 default) when unset.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger, _ = logging.NewLogger(logging.NewDefaultConfig())
	}
	expansion := cfg.ExpansionFactor
	if expansion < 1 {
		expansion = 5
	}
	return &Engine{
		vector:            cfg.Vector,
		embedder:          cfg.Embedder,
		graph:             cfg.Graph,
		parser:            cfg.Parser,
		repos:             cfg.Repos,
		collection:        cfg.Collection,
		snapshotPath:      cfg.SnapshotPath,
		logger:            logger,
		vectorWeight:      cfg.VectorWeight,
		graphWeight:       cfg.GraphWeight,
		expansionFactor:   expansion,
		tagBoost:          cfg.TagBoost,
		categoryBoost:     cfg.CategoryBoost,
		neighborhoodBoost: cfg.NeighborhoodBoost,
	}
}

// IndexSkill upserts sk into the Vector Store, then the Graph Store (spec
// §4.6 index_skill). The two writes are not transactional: a Graph Store
// failure after a successful Vector Store write leaves the vector record in
// place and reports the failure; the stores are eventually consistent
// within one reindex pass.
func (e *Engine) IndexSkill(ctx context.Context, sk *skill.Skill) error {
	doc := toDocument(sk, e.collection)
	if _, err := e.vector.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		return fmt.Errorf("indexing: vector upsert %s: %w", sk.ID, err)
	}

	if err := e.graph.AddSkill(graph.SkillInput{
		ID:           sk.ID,
		Name:         sk.Name,
		RepoID:       sk.RepoID,
		Category:     string(sk.Category),
		Tags:         sk.Tags,
		Dependencies: sk.Dependencies,
	}); err != nil {
		return fmt.Errorf("indexing: graph upsert %s: %w", sk.ID, err)
	}
	return nil
}

// ReindexAll runs the full (re)index pipeline (spec §4.6 reindex_all).
func (e *Engine) ReindexAll(ctx context.Context, force bool) (IndexStats, error) {
	if force {
		if err := e.clearVectorStore(ctx); err != nil {
			return IndexStats{}, fmt.Errorf("indexing: clearing vector store: %w", err)
		}
		e.graph.Clear()
	}

	repos, err := e.repos.List(ctx)
	if err != nil {
		return IndexStats{}, fmt.Errorf("indexing: listing repositories: %w", err)
	}
	roots := make([]repoRoot, len(repos))
	for i, r := range repos {
		roots[i] = repoRoot{ID: r.ID, Path: r.Path}
	}

	skills, failures := discoverSkills(e.parser, roots)
	for _, f := range failures {
		e.logger.Warn(ctx, "skill discovery failed to parse file",
			zap.String("repo_id", f.RepoID), zap.String("path", f.Path), zap.Error(f.Err))
	}

	stats := IndexStats{TotalSkills: len(skills), Failed: len(failures)}
	for _, sk := range skills {
		if err := e.IndexSkill(ctx, sk); err != nil {
			stats.Failed++
			e.logger.Warn(ctx, "indexing skill failed", zap.String("skill_id", sk.ID), zap.Error(err))
			continue
		}
		stats.Indexed++
	}

	if e.snapshotPath != "" {
		if err := e.graph.Save(e.snapshotPath); err != nil {
			return stats, fmt.Errorf("indexing: persisting graph snapshot: %w", err)
		}
	}

	stats.GraphNodes = e.graph.NodeCount()
	stats.GraphEdges = e.graph.EdgeCount()
	e.lastIndexed = time.Now().UTC()
	stats.LastIndexed = e.lastIndexed
	return stats, nil
}

// clearVectorStore drops and recreates the working collection, tolerating
// an absent collection (spec §4.6 step 1: vector_store.clear()).
func (e *Engine) clearVectorStore(ctx context.Context) error {
	if err := e.vector.DeleteCollection(ctx, e.collection); err != nil && err != vectorstore.ErrCollectionNotFound {
		return err
	}
	exists, err := e.vector.CollectionExists(ctx, e.collection)
	if err != nil {
		return err
	}
	if !exists {
		if err := e.vector.CreateCollection(ctx, e.collection, 0); err != nil {
			return err
		}
	}
	return nil
}
