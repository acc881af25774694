// Package tagstore provides the forward (tag -> members) and reverse
// (member -> tags) maps for each tag type.
//
// # Consistency
//
// Every mutation goes through Store.Bind, which inserts into both maps under
// one lock. For every tag T and member M, M is in Members(T) exactly when T
// is in TagsOf(M). CheckConsistency verifies this and is used by tests.
//
// # Concurrency Model
//
// A Store guards both maps with a single sync.RWMutex. The aggregation pass
// has a single writer, but Bind is also exported for hosts that register tags
// at runtime, so readers and writers may overlap after the pass.
package tagstore
