package graph

import (
	"sync"

	"github.com/vk/taglib/internal/tagkey"
)

// Graph is a directed graph over tag keys. It is safe for concurrent use.
type Graph struct {
	mutex sync.RWMutex
	adj   map[tagkey.Key]map[tagkey.Key]struct{}
	edges int
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		adj: make(map[tagkey.Key]map[tagkey.Key]struct{}),
	}
}

// AddNode adds k with no outgoing edges. Adding an existing node does nothing.
func (g *Graph) AddNode(k tagkey.Key) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNodeLocked(k)
}

func (g *Graph) addNodeLocked(k tagkey.Key) map[tagkey.Key]struct{} {
	out, ok := g.adj[k]
	if !ok {
		out = make(map[tagkey.Key]struct{})
		g.adj[k] = out
	}
	return out
}

// AddEdge records that from references to. Both endpoints are created on
// demand and self edges are allowed. It reports whether the edge is new.
func (g *Graph) AddEdge(from, to tagkey.Key) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.addNodeLocked(to)
	out := g.addNodeLocked(from)
	if _, ok := out[to]; ok {
		return false
	}
	out[to] = struct{}{}
	g.edges++
	return true
}

// HasNode reports whether k is a node of the graph.
func (g *Graph) HasNode(k tagkey.Key) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.adj[k]
	return ok
}

// Dependencies returns the sorted direct successors of k, or nil if k is not
// in the graph.
func (g *Graph) Dependencies(k tagkey.Key) []tagkey.Key {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.dependenciesLocked(k)
}

func (g *Graph) dependenciesLocked(k tagkey.Key) []tagkey.Key {
	out, ok := g.adj[k]
	if !ok {
		return nil
	}
	return tagkey.SortedSet(out)
}

// Nodes returns every node in sorted order.
func (g *Graph) Nodes() []tagkey.Key {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.nodesLocked()
}

func (g *Graph) nodesLocked() []tagkey.Key {
	keys := make([]tagkey.Key, 0, len(g.adj))
	for k := range g.adj {
		keys = append(keys, k)
	}
	return tagkey.Sort(keys)
}

// Sources returns the sorted nodes that have at least one outgoing edge.
func (g *Graph) Sources() []tagkey.Key {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var keys []tagkey.Key
	for k, out := range g.adj {
		if len(out) > 0 {
			keys = append(keys, k)
		}
	}
	return tagkey.Sort(keys)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.adj)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.edges
}
