// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the small vocabulary shared by every stage of the tag
// aggregation pass.
//
// # Core Concepts
//
//   - TagType: the closed set of registries a tag can belong to (item, block,
//     entity_type). Every type owns its own forward and reverse store.
//
//   - Entry: one element of a tag definition's `values` list. It is either a
//     DirectBinding, naming a concrete asset, or a TagReference, naming
//     another tag whose resolved members should be inherited.
//
//   - Binding and Edge: the two outputs of scanning a bundle. Bindings are
//     applied to the stores immediately; edges are collected and only consumed
//     once every bundle has been scanned, by the graph builder.
//
// The parser produces these values, the graph and merge stages consume them;
// no stage needs to look at raw `#` prefixes again.
package model
