// Package closure resolves tag references into full transitive membership.
//
// For every tag that references other tags, Resolve computes the set of tags
// reachable from it through one or more references. The merger then copies
// the members of every reachable tag into the referencing tag.
//
// # Algorithm
//
// The graph is condensed into strongly connected components (see
// graph.Components). Components arrive sinks first, so each component's
// reachable set is the union of its successors' sets, computed once and
// shared by every member. This keeps the pass linear in the size of the
// graph, terminates on cycles and gives the same answer for any edge order.
//
// A tag is part of its own closure only when it lies on a cycle.
package closure
