// Package engine runs one aggregation pass: seed the registry with the host's
// bootstrap tags, scan every bundle, apply direct bindings, then resolve tag
// references and merge them into the stores.
//
// # Concurrency Model
//
// Bundles are scanned by a bounded pool of goroutines. Each scan produces a
// private parser.Result and touches no shared state. The results are then
// reduced into the registry by a single goroutine in bundle order, so the
// registry has exactly one writer during the pass. Closure resolution runs
// one goroutine per tag type. The pass cannot be cancelled once started; a
// partial pass would leave tags half resolved.
package engine
