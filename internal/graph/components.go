package graph

import (
	"slices"

	"github.com/vk/taglib/internal/tagkey"
)

// Component is one strongly connected component, members sorted.
type Component []tagkey.Key

// frame is one level of the explicit DFS stack.
type frame struct {
	node tagkey.Key
	succ []tagkey.Key
	next int
}

// Components returns the strongly connected components of the graph using an
// iterative version of Tarjan's algorithm. A component is returned only after
// every component reachable from it, so callers can fold results over the
// slice in order. Roots are visited in sorted order, so the result is
// deterministic.
func (g *Graph) Components() []Component {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var (
		index   = make(map[tagkey.Key]int, len(g.adj))
		low     = make(map[tagkey.Key]int, len(g.adj))
		onStack = make(map[tagkey.Key]bool, len(g.adj))
		stack   []tagkey.Key
		result  []Component
		counter int
	)

	push := func(k tagkey.Key) *frame {
		index[k] = counter
		low[k] = counter
		counter++
		stack = append(stack, k)
		onStack[k] = true
		return &frame{node: k, succ: g.dependenciesLocked(k)}
	}

	for _, root := range g.nodesLocked() {
		if _, seen := index[root]; seen {
			continue
		}

		calls := []*frame{push(root)}
		for len(calls) > 0 {
			f := calls[len(calls)-1]
			if f.next < len(f.succ) {
				w := f.succ[f.next]
				f.next++
				if _, seen := index[w]; !seen {
					calls = append(calls, push(w))
				} else if onStack[w] {
					low[f.node] = min(low[f.node], index[w])
				}
				continue
			}

			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				parent := calls[len(calls)-1]
				low[parent.node] = min(low[parent.node], low[f.node])
			}
			if low[f.node] != index[f.node] {
				continue
			}

			var comp Component
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == f.node {
					break
				}
			}
			result = append(result, Component(tagkey.Sort(comp)))
		}
	}
	return result
}

// IsCycle reports whether c forms a cycle in g: more than one member, or a
// single member with a self edge.
func (g *Graph) IsCycle(c Component) bool {
	if len(c) > 1 {
		return true
	}
	if len(c) == 0 {
		return false
	}
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, self := g.adj[c[0]][c[0]]
	return self
}

// Cycles returns every component that forms a cycle, ordered by first member.
func (g *Graph) Cycles() []Component {
	var cycles []Component
	for _, c := range g.Components() {
		if g.IsCycle(c) {
			cycles = append(cycles, c)
		}
	}
	slices.SortFunc(cycles, func(a, b Component) int {
		return tagkey.Compare(a[0], b[0])
	})
	return cycles
}
