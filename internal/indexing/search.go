package indexing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Zeeeepa/mcp-skillset/internal/vectorstore"
)

// Search executes a retrieval per spec §4.6. vectorWeight/graphWeight
// override the engine's configured defaults when either is non-zero; pass
// 0, 0 to use the defaults.
func (e *Engine) Search(ctx context.Context, query string, topK int, filters Filters, mode Mode, vectorWeight, graphWeight float64) ([]Result, error) {
	if topK <= 0 {
		return []Result{}, nil
	}
	if vectorWeight == 0 && graphWeight == 0 {
		vectorWeight, graphWeight = e.vectorWeight, e.graphWeight
	}

	if e.graph == nil && mode != ModeVectorOnly {
		e.logger.Warn(ctx, "graph store unloaded, degrading to vector_only", zap.String("requested_mode", string(mode)))
		mode = ModeVectorOnly
	}

	if mode == ModeGraphOnly {
		return e.searchGraphOnly(query, filters, topK), nil
	}

	candidates, err := e.vectorPhase(ctx, query, topK, filters)
	if err != nil {
		return nil, err
	}

	if mode == ModeVectorOnly {
		for i := range candidates {
			candidates[i].FinalScore = float64(candidates[i].SimScore)
		}
		sortResults(candidates)
		return truncate(candidates, topK), nil
	}

	e.graphPhase(candidates, filters)
	for i := range candidates {
		candidates[i].FinalScore = vectorWeight*float64(candidates[i].SimScore) + graphWeight*candidates[i].GraphScore
	}
	sortResults(candidates)
	return truncate(candidates, topK), nil
}

// vectorPhase over-fetches top_k × expansion_factor candidates from the
// vector store (spec §4.6 step 1), then applies any tag-hint filter
// client-side since the backend's metadata filter is exact-match only and
// tags are stored delimited (see internal/indexing/document.go).
func (e *Engine) vectorPhase(ctx context.Context, query string, topK int, filters Filters) ([]Result, error) {
	// This embeds the query a second time (SearchInCollection embeds it again
	// internally); it's the only way to distinguish an embedding failure from
	// a retrieval failure through the vectorstore.Store interface, which
	// doesn't surface that distinction itself.
	if e.embedder != nil {
		if _, err := e.embedder.EmbedQuery(ctx, query); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryEmbeddingFailed, err)
		}
	}

	backendFilters := map[string]interface{}{}
	if filters.Category != "" {
		backendFilters["category"] = filters.Category
	}
	for k, v := range filters.Extra {
		backendFilters[k] = v
	}

	k := topK * e.expansionFactor
	var (
		hits []vectorstore.SearchResult
		err  error
	)
	if len(backendFilters) > 0 {
		hits, err = e.vector.SearchInCollection(ctx, e.collection, query, k, backendFilters)
	} else {
		hits, err = e.vector.SearchInCollection(ctx, e.collection, query, k, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		if len(filters.TagHints) > 0 && !hasAnyTag(h.Metadata, filters.TagHints) {
			continue
		}
		out = append(out, Result{
			SkillID:  h.ID,
			SimScore: normalizeScore(h.Score),
			Content:  h.Content,
			Metadata: h.Metadata,
		})
	}
	return out, nil
}

func hasAnyTag(metadata map[string]interface{}, tags []string) bool {
	raw, _ := metadata["tags"].(string)
	for _, t := range tags {
		if skillHasTag(raw, t) {
			return true
		}
	}
	return false
}

// normalizeScore maps a backend's raw cosine similarity (range [-1,1]) into
// sim_score ∈ [0,1] via (1+cos)/2 (spec §4.6), then clamps defensively in
// case a backend's distance metric isn't strictly bounded by cosine's range.
func normalizeScore(cos float32) float32 {
	score := (1 + cos) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// graphPhase computes tag_boost, category_boost, and neighborhood_boost for
// each candidate in place (spec §4.6 step 2).
func (e *Engine) graphPhase(candidates []Result, filters Filters) {
	if len(candidates) == 0 {
		return
	}

	var neighborhood map[string]bool
	top := candidates[0].SkillID
	if e.graph.HasSkill(top) {
		neighborhood = make(map[string]bool)
		for _, n := range e.graph.Neighbors(top, 1) {
			neighborhood[n.ID] = true
		}
	}

	for i := range candidates {
		id := candidates[i].SkillID
		score := 0.0

		if len(filters.TagHints) > 0 {
			matched := 0
			skillTags := e.graph.TagsOf(id)
			tagSet := make(map[string]bool, len(skillTags))
			for _, t := range skillTags {
				tagSet[t] = true
			}
			for _, hint := range filters.TagHints {
				if tagSet[hint] {
					matched++
				}
			}
			score += e.tagBoost * float64(matched) / float64(max(1, len(filters.TagHints)))
		}

		if filters.Category != "" {
			cat, _ := candidates[i].Metadata["category"].(string)
			if cat == filters.Category {
				score += e.categoryBoost
			}
		}

		if neighborhood[id] {
			score += e.neighborhoodBoost
		}

		candidates[i].GraphScore = clamp01(score)
	}
}

// searchGraphOnly seeds candidates from the HasTag/InCategory preimage of
// the query interpreted as a tag/category bag-of-words (its lowercased
// words, alongside any explicit tag hints and category filter), scoring
// each by graph_score alone (spec §4.6 edge case). This is what lets a
// graph_only search return results from free-text query words even when
// the caller passes no explicit filters.
func (e *Engine) searchGraphOnly(query string, filters Filters, topK int) []Result {
	tagSeeds := make([]string, 0, len(filters.TagHints)+4)
	tagSeeds = append(tagSeeds, filters.TagHints...)
	tagSeeds = append(tagSeeds, strings.Fields(strings.ToLower(query))...)

	seen := make(map[string]bool)
	var ids []string
	for _, t := range tagSeeds {
		for _, id := range e.graph.SkillsByTag(t) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if filters.Category != "" {
		for _, id := range e.graph.SkillsByCategory(filters.Category) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	for _, word := range strings.Fields(strings.ToLower(query)) {
		for _, id := range e.graph.SkillsByCategory(word) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	seedFilters := filters
	seedFilters.TagHints = tagSeeds
	candidates := make([]Result, len(ids))
	for i, id := range ids {
		candidates[i] = Result{SkillID: id}
	}
	e.graphPhase(candidates, seedFilters)
	for i := range candidates {
		candidates[i].FinalScore = candidates[i].GraphScore
	}
	sortResults(candidates)
	return truncate(candidates, topK)
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		if results[i].SimScore != results[j].SimScore {
			return results[i].SimScore > results[j].SimScore
		}
		return results[i].SkillID < results[j].SkillID
	})
}

func truncate(results []Result, topK int) []Result {
	if len(results) > topK {
		return results[:topK]
	}
	return results
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
