// Package bootstrap loads the host's own tag definitions, the data that
// exists before any bundle is scanned.
//
// Bootstrap files are HCL:
//
//	tag "item" "minecraft:wool" {
//	  members = ["minecraft:white_wool", "minecraft:red_wool"]
//	}
//
// The first label is the tag type, the second the tag key. Bootstrap data is
// trusted, so any syntax error, unknown tag type or malformed key fails the
// load. Several blocks for the same tag are merged.
package bootstrap
