package indexing_test

import (
	"context"
	"sort"
	"strings"

	"github.com/Zeeeepa/mcp-skillset/internal/vectorstore"
)

// fakeVectorStore is an in-memory vectorstore.Store stand-in scoring by
// substring overlap between the query and a document's content, so tests
// can assert ranking behavior deterministically without a real embedder.
type fakeVectorStore struct {
	docs map[string]vectorstore.Document
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{docs: make(map[string]vectorstore.Document)}
}

func (f *fakeVectorStore) AddDocuments(_ context.Context, docs []vectorstore.Document) ([]string, error) {
	ids := make([]string, len(docs))
	for i, d := range docs {
		f.docs[d.ID] = d
		ids[i] = d.ID
	}
	return ids, nil
}

func (f *fakeVectorStore) Search(ctx context.Context, query string, k int) ([]vectorstore.SearchResult, error) {
	return f.SearchInCollection(ctx, "", query, k, nil)
}

func (f *fakeVectorStore) SearchWithFilters(ctx context.Context, query string, k int, filters map[string]interface{}) ([]vectorstore.SearchResult, error) {
	return f.SearchInCollection(ctx, "", query, k, filters)
}

func (f *fakeVectorStore) SearchInCollection(_ context.Context, _ string, query string, k int, filters map[string]interface{}) ([]vectorstore.SearchResult, error) {
	var out []vectorstore.SearchResult
	for _, d := range f.docs {
		if !matchesFilters(d.Metadata, filters) {
			continue
		}
		out = append(out, vectorstore.SearchResult{
			ID:       d.ID,
			Content:  d.Content,
			Score:    overlapScore(query, d.Content),
			Metadata: d.Metadata,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func matchesFilters(metadata map[string]interface{}, filters map[string]interface{}) bool {
	for k, v := range filters {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

func overlapScore(query, content string) float32 {
	qWords := strings.Fields(strings.ToLower(query))
	if len(qWords) == 0 {
		return 0
	}
	lowerContent := strings.ToLower(content)
	matched := 0
	for _, w := range qWords {
		if strings.Contains(lowerContent, w) {
			matched++
		}
	}
	return float32(matched) / float32(len(qWords))
}

func (f *fakeVectorStore) DeleteDocuments(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(f.docs, id)
	}
	return nil
}

func (f *fakeVectorStore) DeleteDocumentsFromCollection(ctx context.Context, _ string, ids []string) error {
	return f.DeleteDocuments(ctx, ids)
}

func (f *fakeVectorStore) CreateCollection(_ context.Context, _ string, _ int) error { return nil }

func (f *fakeVectorStore) DeleteCollection(_ context.Context, _ string) error {
	f.docs = make(map[string]vectorstore.Document)
	return nil
}

func (f *fakeVectorStore) CollectionExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (f *fakeVectorStore) ListCollections(_ context.Context) ([]string, error) { return nil, nil }

func (f *fakeVectorStore) GetCollectionInfo(_ context.Context, name string) (*vectorstore.CollectionInfo, error) {
	return &vectorstore.CollectionInfo{Name: name, PointCount: len(f.docs)}, nil
}

func (f *fakeVectorStore) ExactSearch(ctx context.Context, collection string, query string, k int) ([]vectorstore.SearchResult, error) {
	return f.SearchInCollection(ctx, collection, query, k, nil)
}

func (f *fakeVectorStore) Close() error { return nil }
