package vectorstore

// Document is a unit of content stored in the vector store: a skill's
// embeddable text plus the metadata needed to reconstruct and filter it
// (skill_id, name, category, tags, repo_id, updated_at).
type Document struct {
	// ID is the document identifier. For skills this is the content-addressed
	// "{repo_id}/{path}" identifier.
	ID string

	// Content is the text that was embedded.
	Content string

	// Metadata holds arbitrary key/value pairs attached to the document.
	Metadata map[string]interface{}

	// Collection optionally overrides the default collection for this
	// document. All documents in a single AddDocuments call must agree.
	Collection string
}

// SearchResult is a single hit from a similarity search.
type SearchResult struct {
	// ID is the document identifier.
	ID string

	// Content is the document's embedded text.
	Content string

	// Score is the backend's raw cosine similarity, range [-1,1], higher is
	// better. Callers that need the spec's [0,1] sim_score apply the
	// (1+cos)/2 mapping themselves (see internal/indexing/search.go).
	Score float32

	// Metadata holds the document's stored metadata.
	Metadata map[string]interface{}
}
