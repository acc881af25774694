package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

func k(raw string) tagkey.Key { return tagkey.MustParse(raw) }

func keys(raw ...string) []tagkey.Key {
	out := make([]tagkey.Key, len(raw))
	for i, r := range raw {
		out[i] = k(r)
	}
	return out
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Sources())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode(k("a:x"))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.HasNode(k("a:x")))
	assert.Empty(t, g.Dependencies(k("a:x")))

	g.AddNode(k("a:x")) // idempotent
	assert.Equal(t, 1, g.Len())
}

func TestAddEdge(t *testing.T) {
	t.Run("creates endpoints", func(t *testing.T) {
		g := New()
		assert.True(t, g.AddEdge(k("a:x"), k("a:y")))

		assert.True(t, g.HasNode(k("a:x")))
		assert.True(t, g.HasNode(k("a:y")))
		assert.Equal(t, keys("a:y"), g.Dependencies(k("a:x")))
		assert.Empty(t, g.Dependencies(k("a:y")))
		assert.Equal(t, keys("a:x"), g.Sources())
	})

	t.Run("duplicate edge collapses", func(t *testing.T) {
		g := New()
		assert.True(t, g.AddEdge(k("a:x"), k("a:y")))
		assert.False(t, g.AddEdge(k("a:x"), k("a:y")))
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("self edge allowed", func(t *testing.T) {
		g := New()
		assert.True(t, g.AddEdge(k("a:x"), k("a:x")))
		assert.Equal(t, 1, g.Len())
		assert.Equal(t, keys("a:x"), g.Dependencies(k("a:x")))
	})
}

func TestDependencies_UnknownNode(t *testing.T) {
	assert.Nil(t, New().Dependencies(k("a:missing")))
}

func TestDependencies_Sorted(t *testing.T) {
	g := New()
	g.AddEdge(k("a:x"), k("b:z"))
	g.AddEdge(k("a:x"), k("a:z"))
	g.AddEdge(k("a:x"), k("a:b"))

	assert.Equal(t, keys("a:b", "a:z", "b:z"), g.Dependencies(k("a:x")))
}

func TestBuild(t *testing.T) {
	edges := []model.Edge{
		{Type: model.Item, Source: k("c:ores"), Target: k("c:iron_ores")},
		{Type: model.Item, Source: k("c:ores"), Target: k("c:gold_ores")},
		{Type: model.Block, Source: k("c:ores"), Target: k("c:iron_ores")},
		{Type: model.Item, Source: k("c:ores"), Target: k("c:iron_ores")},
	}

	graphs := Build(edges)
	require.Len(t, graphs, 2)
	assert.NotContains(t, graphs, model.EntityType)

	items := graphs[model.Item]
	assert.Equal(t, 3, items.Len())
	assert.Equal(t, 2, items.EdgeCount())
	assert.Equal(t, keys("c:gold_ores", "c:iron_ores"), items.Dependencies(k("c:ores")))

	blocks := graphs[model.Block]
	assert.Equal(t, keys("c:iron_ores"), blocks.Dependencies(k("c:ores")))
}

func TestBuild_OrderIndependent(t *testing.T) {
	edges := []model.Edge{
		{Type: model.Item, Source: k("a:x"), Target: k("a:y")},
		{Type: model.Item, Source: k("a:y"), Target: k("a:z")},
		{Type: model.Item, Source: k("b:x"), Target: k("a:x")},
	}
	reversed := []model.Edge{edges[2], edges[1], edges[0]}

	g1, g2 := Build(edges)[model.Item], Build(reversed)[model.Item]
	require.Equal(t, g1.Nodes(), g2.Nodes())
	for _, n := range g1.Nodes() {
		assert.Equal(t, g1.Dependencies(n), g2.Dependencies(n), "node %s", n)
	}
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
}
