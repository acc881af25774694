// Package bundle gives uniform, read-only access to extension bundles: packed
// archives (.jar, .zip) and unpacked bundle directories.
//
// A Bundle exposes its file listing in a stable order together with a lazy
// opener per entry. Paths are always slash-separated and relative to the
// bundle root, e.g. `data/minecraft/tags/item/logs.json`.
//
// Discover finds bundles below a root directory. It never fails because of a
// single bad bundle: archives are opened lazily in Walk, so a corrupt archive
// surfaces as an error for that bundle alone.
package bundle
