// Package graph holds the per-type dependency graph of tag references.
//
// An edge from A to B means tag A references #B, so A inherits every resolved
// member of B. Graphs are built once from the raw edges collected by the
// parser and are discarded after closure resolution.
//
// # Cycles
//
// Reference cycles are legal in tag data. The graph does not reject them;
// Components exposes the strongly connected components so that the closure
// engine can treat every cycle as a single unit, and Cycles reports them for
// diagnostics.
package graph
