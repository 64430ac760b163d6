// Package vectorstore provides vector storage implementations.
package vectorstore

import (
	"fmt"

	"github.com/Zeeeepa/mcp-skillset/internal/config"
	"go.uber.org/zap"
)

// NewStore creates a new Store based on the configuration.
//
// This factory function examines the VectorStoreConfig.Provider field and
// creates the appropriate store implementation:
//   - "chromem" (default): Creates an embedded ChromemStore (no external deps)
//   - "qdrant": Creates a QdrantStore (requires an external Qdrant server)
//
// The chromem provider is recommended for most users as it requires no setup.
func NewStore(cfg *config.Config, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch cfg.VectorStore.Provider {
	case "chromem", "":
		chromemCfg := ChromemConfig{
			Path:              cfg.VectorStore.Chromem.Path,
			Compress:          cfg.VectorStore.Chromem.Compress,
			DefaultCollection: cfg.VectorStore.Chromem.DefaultCollection,
			VectorSize:        cfg.Embedding.Dim,
		}
		return NewChromemStore(chromemCfg, embedder, logger)

	case "qdrant":
		qdrantCfg := QdrantConfig{
			Host:           cfg.VectorStore.Qdrant.Host,
			Port:           cfg.VectorStore.Qdrant.Port,
			CollectionName: cfg.VectorStore.Qdrant.CollectionName,
			UseTLS:         cfg.VectorStore.Qdrant.UseTLS,
			VectorSize:     cfg.Embedding.Dim,
		}
		return NewQdrantStore(qdrantCfg, embedder)

	default:
		return nil, fmt.Errorf("unsupported vectorstore provider: %s (supported: chromem, qdrant)", cfg.VectorStore.Provider)
	}
}

// NewStoreFromProvider creates a store directly from provider name and specific config.
// This is useful when more control over configuration is needed, e.g. tests.
func NewStoreFromProvider(provider string, chromemCfg *ChromemConfig, qdrantCfg *QdrantConfig, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch provider {
	case "chromem", "":
		if chromemCfg == nil {
			return nil, fmt.Errorf("chromem config required for chromem provider")
		}
		return NewChromemStore(*chromemCfg, embedder, logger)

	case "qdrant":
		if qdrantCfg == nil {
			return nil, fmt.Errorf("qdrant config required for qdrant provider")
		}
		return NewQdrantStore(*qdrantCfg, embedder)

	default:
		return nil, fmt.Errorf("unsupported vectorstore provider: %s", provider)
	}
}
