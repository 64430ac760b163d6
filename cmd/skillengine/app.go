package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/Zeeeepa/mcp-skillset/internal/config"
	"github.com/Zeeeepa/mcp-skillset/internal/embeddings"
	"github.com/Zeeeepa/mcp-skillset/internal/graph"
	"github.com/Zeeeepa/mcp-skillset/internal/indexing"
	"github.com/Zeeeepa/mcp-skillset/internal/logging"
	"github.com/Zeeeepa/mcp-skillset/internal/metadata"
	"github.com/Zeeeepa/mcp-skillset/internal/reposync"
	"github.com/Zeeeepa/mcp-skillset/internal/skill"
	"github.com/Zeeeepa/mcp-skillset/internal/vectorstore"
)

// app bundles the wired-up components a CLI command needs. Close releases
// everything that holds a file handle or network connection.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	meta     *metadata.Store
	repos    *reposync.Manager
	embedder embeddings.Provider
	vector   vectorstore.Store
	graph    *graph.Store
	engine   *indexing.Engine
}

// repoLister adapts *reposync.Manager to indexing.RepoLister.
type repoLister struct{ m *reposync.Manager }

func (r repoLister) List(ctx context.Context) ([]indexing.RepoRef, error) {
	repos, err := r.m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]indexing.RepoRef, len(repos))
	for i, rep := range repos {
		out[i] = indexing.RepoRef{ID: rep.ID, Path: rep.LocalPath}
	}
	return out, nil
}

func newApp() (*app, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = parseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("constructing logger: %w", err)
	}

	if err := os.MkdirAll(cfg.DataRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating data root: %w", err)
	}
	if err := os.MkdirAll(cfg.ReposDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating repos dir: %w", err)
	}

	metaStore, err := metadata.Open(cfg.MetadataDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	repoManager := reposync.New(cfg.ReposDir(), cfg.SkillFilename, metaStore, logger.Underlying())

	embedder, err := embeddings.NewProvider(embeddings.ProviderConfig{
		Provider: cfg.Embeddings.Provider,
		Model:    cfg.Embeddings.Model,
		BaseURL:  cfg.Embeddings.BaseURL,
		CacheDir: cfg.Embeddings.CacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("constructing embedder: %w", err)
	}

	vectorStore, err := vectorstore.NewStore(cfg, embedder, logger.Underlying())
	if err != nil {
		return nil, fmt.Errorf("constructing vector store: %w", err)
	}

	graphStore := graph.New()
	if _, statErr := os.Stat(cfg.GraphSnapshotPath()); statErr == nil {
		if loadErr := graphStore.Load(cfg.GraphSnapshotPath()); loadErr != nil {
			logger.Warn(context.Background(), "failed to load graph snapshot, starting from empty graph")
		}
	}

	parser := skill.NewParser(skill.WithSkillFilename(cfg.SkillFilename))

	engine := indexing.NewEngine(indexing.Config{
		Vector:            vectorStore,
		Embedder:          embedder,
		Graph:             graphStore,
		Parser:            parser,
		Repos:             repoLister{m: repoManager},
		Collection:        cfg.VectorStore.Chromem.DefaultCollection,
		SnapshotPath:      cfg.GraphSnapshotPath(),
		Logger:            logger,
		VectorWeight:      cfg.Fusion.VectorWeight,
		GraphWeight:       cfg.Fusion.GraphWeight,
		ExpansionFactor:   cfg.Fusion.ExpansionFactor,
		TagBoost:          cfg.Fusion.TagBoost,
		CategoryBoost:     cfg.Fusion.CategoryBoost,
		NeighborhoodBoost: cfg.Fusion.NeighborhoodBoost,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		meta:     metaStore,
		repos:    repoManager,
		embedder: embedder,
		vector:   vectorStore,
		graph:    graphStore,
		engine:   engine,
	}, nil
}

func (a *app) Close() {
	if a.embedder != nil {
		a.embedder.Close()
	}
	if a.vector != nil {
		a.vector.Close()
	}
	if a.meta != nil {
		a.meta.Close()
	}
}

func parseLevel(level string) zapcore.Level {
	l := logging.NewDefaultConfig().Level
	if level == "" {
		return l
	}
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return logging.NewDefaultConfig().Level
	}
	return l
}
