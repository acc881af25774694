package closure

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/graph"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

// Closure maps every referencing tag to the sorted tags reachable from it.
type Closure map[tagkey.Key][]tagkey.Key

// Resolve computes the closure of every source node in g.
func Resolve(g *graph.Graph) Closure {
	comps := g.Components()
	owner := make(map[tagkey.Key]int, g.Len())
	for i, c := range comps {
		for _, n := range c {
			owner[n] = i
		}
	}

	reach := make([]map[tagkey.Key]struct{}, len(comps))
	result := make(Closure)
	for i, c := range comps {
		set := make(map[tagkey.Key]struct{})
		if g.IsCycle(c) {
			for _, n := range c {
				set[n] = struct{}{}
			}
		}
		hasEdges := false
		for _, n := range c {
			for _, dep := range g.Dependencies(n) {
				hasEdges = true
				j := owner[dep]
				if j == i {
					continue
				}
				set[dep] = struct{}{}
				for r := range reach[j] {
					set[r] = struct{}{}
				}
			}
		}
		reach[i] = set
		if !hasEdges {
			continue
		}

		sorted := tagkey.SortedSet(set)
		for _, n := range c {
			if len(g.Dependencies(n)) > 0 {
				result[n] = sorted
			}
		}
	}
	return result
}

// ResolveAll resolves each tag type's graph in its own goroutine.
func ResolveAll(ctx context.Context, graphs map[model.TagType]*graph.Graph) map[model.TagType]Closure {
	logger := ctxlog.FromContext(ctx)

	var (
		mu      sync.Mutex
		results = make(map[model.TagType]Closure, len(graphs))
		eg      errgroup.Group
	)
	for t, g := range graphs {
		t, g := t, g
		eg.Go(func() error {
			c := Resolve(g)
			logger.Debug("Resolved tag closure.", "type", t, "nodes", g.Len(), "sources", len(c))

			mu.Lock()
			results[t] = c
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
