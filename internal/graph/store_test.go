package graph_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeeeepa/mcp-skillset/internal/graph"
)

func seedTwoRelatedSkills(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddSkill(graph.SkillInput{
		ID: "repo/a", Name: "a", RepoID: "repo", Category: "testing",
		Tags: []string{"go", "backend"},
	}))
	require.NoError(t, g.AddSkill(graph.SkillInput{
		ID: "repo/b", Name: "b", RepoID: "repo", Category: "testing",
		Tags: []string{"go", "frontend"},
	}))
	return g
}

func TestAddSkill_RejectsSelfDependency(t *testing.T) {
	g := graph.New()
	err := g.AddSkill(graph.SkillInput{ID: "repo/a", Dependencies: []string{"repo/a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrSelfDependency)
}

func TestAddSkill_CreatesPlaceholderForDependencyTarget(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddSkill(graph.SkillInput{ID: "repo/a", Dependencies: []string{"repo/b"}}))
	assert.True(t, g.HasSkill("repo/b"))
	assert.Equal(t, []string{"repo/b"}, g.DependenciesOf("repo/a", false))
}

func TestAddSkill_Idempotent(t *testing.T) {
	g := graph.New()
	input := graph.SkillInput{ID: "repo/a", Tags: []string{"go"}, Category: "testing"}
	require.NoError(t, g.AddSkill(input))
	nodesBefore, edgesBefore := g.NodeCount(), g.EdgeCount()
	require.NoError(t, g.AddSkill(input))
	assert.Equal(t, nodesBefore, g.NodeCount())
	assert.Equal(t, edgesBefore, g.EdgeCount())
}

func TestRelatedByTags(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	related := g.RelatedByTags("repo/a", 1)
	require.Len(t, related, 1)
	assert.Equal(t, "repo/b", related[0].ID)
	assert.Equal(t, 1, related[0].Shared)
}

func TestRelatedByTags_MinSharedExcludesWeakMatches(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	related := g.RelatedByTags("repo/a", 2)
	assert.Empty(t, related)
}

func TestNeighbors_DepthOne(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	neighbors := g.Neighbors("repo/a", 1)

	found := false
	for _, n := range neighbors {
		if n.ID == "repo/b" {
			found = true
		}
	}
	assert.True(t, found, "expected repo/b to be a depth-1 neighbor via shared tag")
}

func TestNeighbors_UnknownSkillReturnsEmpty(t *testing.T) {
	g := graph.New()
	assert.Empty(t, g.Neighbors("missing", 2))
}

func TestDependenciesOf_Transitive(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddSkill(graph.SkillInput{ID: "repo/a", Dependencies: []string{"repo/b"}}))
	require.NoError(t, g.AddSkill(graph.SkillInput{ID: "repo/b", Dependencies: []string{"repo/c"}}))

	direct := g.DependenciesOf("repo/a", false)
	assert.Equal(t, []string{"repo/b"}, direct)

	transitive := g.DependenciesOf("repo/a", true)
	assert.ElementsMatch(t, []string{"repo/b", "repo/c"}, transitive)
}

func TestRemoveSkill(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	g.RemoveSkill("repo/a")
	assert.False(t, g.HasSkill("repo/a"))
	assert.Empty(t, g.RelatedByTags("repo/b", 1))
}

func TestClear(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	g.Clear()
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	path := filepath.Join(t.TempDir(), "graph.snapshot")
	require.NoError(t, g.Save(path))

	loaded := graph.New()
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, g.NodeCount(), loaded.NodeCount())
	assert.Equal(t, g.EdgeCount(), loaded.EdgeCount())
	assert.ElementsMatch(t, g.RelatedByTags("repo/a", 1), loaded.RelatedByTags("repo/a", 1))
}

func TestSkillsByTagAndCategory(t *testing.T) {
	g := seedTwoRelatedSkills(t)
	assert.ElementsMatch(t, []string{"repo/a", "repo/b"}, g.SkillsByTag("go"))
	assert.ElementsMatch(t, []string{"repo/a", "repo/b"}, g.SkillsByCategory("testing"))
}
