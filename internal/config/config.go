package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Config holds the complete skill-engine configuration.
type Config struct {
	DataRoot      string           `koanf:"data_root"`
	SkillFilename string           `koanf:"skill_filename"`
	Embedding     EmbeddingConfig  `koanf:"embedding"`
	Fusion        FusionConfig     `koanf:"fusion"`
	AutoUpdate    AutoUpdateConfig `koanf:"auto_update"`
	VectorStore   VectorStoreConfig `koanf:"vector_store"`
	Embeddings    EmbeddingsConfig  `koanf:"embeddings"`
	Logging       LoggingConfig     `koanf:"logging"`
	Repositories  []RepositorySeed  `koanf:"repositories"`
}

// EmbeddingConfig controls the fixed vector dimension for a fresh store.
type EmbeddingConfig struct {
	Dim int `koanf:"dim"`
}

// FusionConfig holds the hybrid-search fusion defaults (spec.md §6.4, §9 open question:
// these are configuration, not hard-coded constants).
type FusionConfig struct {
	VectorWeight      float64 `koanf:"vector_weight"`
	GraphWeight       float64 `koanf:"graph_weight"`
	ExpansionFactor   int     `koanf:"expansion_factor"`
	TagBoost          float64 `koanf:"tag_boost"`
	CategoryBoost     float64 `koanf:"category_boost"`
	NeighborhoodBoost float64 `koanf:"neighborhood_boost"`
}

// AutoUpdateConfig holds the advisory staleness threshold. Scheduling is owned
// by the caller (spec.md §9 open question); this config only feeds should_update.
type AutoUpdateConfig struct {
	MaxAgeHours float64 `koanf:"max_age_hours"`
}

// VectorStoreConfig selects and configures the Vector Store backend.
type VectorStoreConfig struct {
	Provider string        `koanf:"provider"` // "chromem" or "qdrant"
	Chromem  ChromemConfig `koanf:"chromem"`
	Qdrant   QdrantConfig  `koanf:"qdrant"`
}

// ChromemConfig configures the embedded chromem-go backend.
type ChromemConfig struct {
	Path              string `koanf:"path"`
	Compress          bool   `koanf:"compress"`
	DefaultCollection string `koanf:"default_collection"`
}

// QdrantConfig configures the alternate Qdrant gRPC backend.
type QdrantConfig struct {
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	CollectionName string `koanf:"collection_name"`
	UseTLS         bool   `koanf:"use_tls"`
}

// Validate validates VectorStoreConfig.
func (c *VectorStoreConfig) Validate() error {
	switch c.Provider {
	case "chromem", "qdrant":
		return nil
	default:
		return fmt.Errorf("unsupported vector store provider: %s (supported: chromem, qdrant)", c.Provider)
	}
}

// EmbeddingsConfig selects and configures the embedder.
type EmbeddingsConfig struct {
	Provider string `koanf:"provider"` // "fastembed" or "tei"
	Model    string `koanf:"model"`
	CacheDir string `koanf:"cache_dir"`
	BaseURL  string `koanf:"base_url"` // TEI endpoint, if provider == "tei"
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

// RepositorySeed is a declared source repository (spec.md §6.4 repositories[]).
type RepositorySeed struct {
	URL        string `koanf:"url"`
	Priority   int    `koanf:"priority"`
	License    string `koanf:"license"`
	AutoUpdate bool   `koanf:"auto_update"`
}

// Validate validates the configuration as a whole.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return errors.New("data_root is required")
	}
	if c.SkillFilename == "" {
		return errors.New("skill_filename is required")
	}
	if c.Embedding.Dim <= 0 {
		return fmt.Errorf("embedding.dim must be positive, got %d", c.Embedding.Dim)
	}
	if c.Fusion.VectorWeight < 0 || c.Fusion.GraphWeight < 0 {
		return errors.New("fusion weights must be non-negative")
	}
	if c.Fusion.ExpansionFactor < 1 {
		return fmt.Errorf("fusion.expansion_factor must be >= 1, got %d", c.Fusion.ExpansionFactor)
	}
	if err := c.VectorStore.Validate(); err != nil {
		return fmt.Errorf("vector_store: %w", err)
	}
	if err := validatePath(c.DataRoot); err != nil {
		return fmt.Errorf("invalid data_root: %w", err)
	}
	for i, r := range c.Repositories {
		if r.URL == "" {
			return fmt.Errorf("repositories[%d]: url is required", i)
		}
		if r.Priority < 0 || r.Priority > 100 {
			return fmt.Errorf("repositories[%d]: priority must be 0-100, got %d", i, r.Priority)
		}
	}
	return nil
}

// validatePath rejects traversal sequences in configured filesystem roots.
func validatePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains traversal sequence: %s", path)
	}
	if filepath.IsAbs(path) {
		clean := filepath.Clean(path)
		origDepth := strings.Count(path, string(filepath.Separator))
		cleanDepth := strings.Count(clean, string(filepath.Separator))
		if cleanDepth < origDepth-1 {
			return fmt.Errorf("path traversal detected: %s (resolves to %s)", path, clean)
		}
	}
	return nil
}

// ReposDir returns the directory under which cloned repositories live.
func (c *Config) ReposDir() string {
	return filepath.Join(c.DataRoot, "repos")
}

// VectorDir returns the directory owned by the Vector Store.
func (c *Config) VectorDir() string {
	return filepath.Join(c.DataRoot, "vector")
}

// GraphSnapshotPath returns the file owned by the Graph Store.
func (c *Config) GraphSnapshotPath() string {
	return filepath.Join(c.DataRoot, "graph.snapshot")
}

// MetadataDBPath returns the file owned by the Metadata Store.
func (c *Config) MetadataDBPath() string {
	return filepath.Join(c.DataRoot, "metadata.db")
}
