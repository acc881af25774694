// internal/tagkey/doc.go

/*
Package tagkey provides the namespaced identifier shared by tags and the
assets they group, in the canonical format `namespace:name`.

The name part may contain `/` separators, e.g. `minecraft:logs/oak`. A key
written without a namespace belongs to the `minecraft` namespace.

This package enforces the identifier syntax and centralizes all formatting
and parsing logic.
*/
package tagkey
