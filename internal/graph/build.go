package graph

import (
	"github.com/vk/taglib/internal/model"
)

// Build groups edges by tag type into one graph per type. Duplicate edges
// collapse and edge order does not matter. Types without edges get no entry.
func Build(edges []model.Edge) map[model.TagType]*Graph {
	graphs := make(map[model.TagType]*Graph)
	for _, e := range edges {
		g, ok := graphs[e.Type]
		if !ok {
			g = New()
			graphs[e.Type] = g
		}
		g.AddEdge(e.Source, e.Target)
	}
	return graphs
}
