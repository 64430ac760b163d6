// Package vectorstore provides vector storage abstraction for skill embeddings.
//
// The package offers a unified interface for vector storage operations with
// two provider implementations: ChromemStore (embedded, zero external
// dependencies) and QdrantStore (external gRPC service, for larger corpora).
// Both store skill documents as (id, content, embedding, metadata) tuples and
// support cosine-similarity search.
//
// # Usage
//
//	config := vectorstore.ChromemConfig{
//	    Path:              "/data/vectorstore",
//	    DefaultCollection: "skills",
//	    VectorSize:        384,
//	}
//
//	store, err := vectorstore.NewChromemStore(config, embedder, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	docs := []vectorstore.Document{
//	    {
//	        ID:      "repo-1/languages/go/SKILL.md",
//	        Content: "go backend services ... database client http server",
//	        Metadata: map[string]interface{}{"category": "languages", "tags": "go,backend"},
//	    },
//	}
//	ids, err := store.AddDocuments(ctx, docs)
//	results, err := store.Search(ctx, "writing a go http server", 10)
//
// # Provider Selection
//
// ChromemStore (default):
//   - Embedded chromem-go storage, no external dependencies
//   - Perfect for a single-process local skill index
//
// QdrantStore (optional):
//   - External Qdrant service via gRPC
//   - Use when the skill corpus outgrows what an embedded store can hold
//
// Provider selection via config:
//
//	vector_store:
//	  provider: chromem  # "chromem" (default) or "qdrant"
//
// # Collection name validation
//
// Collection names are restricted to ^[a-z0-9_]{1,64}$ to prevent path
// traversal and injection via user-controlled repository or skill names.
package vectorstore
