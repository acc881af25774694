// Package parser extracts tag definitions from bundle contents.
//
// A tag definition lives at `data/<namespace>/tags/<type>/<name>.json`, where
// <name> may contain further `/` separators, and holds a JSON object whose
// `values` array lists the tag's entries:
//
//	{
//	  "replace": false,
//	  "values": [
//	    "minecraft:white_wool",
//	    "#minecraft:wool",
//	    {"id": "#c:dyed", "required": false}
//	  ]
//	}
//
// Plain identifiers become model.DirectBinding entries, identifiers prefixed
// with `#` become model.TagReference entries. The JSON is read through the
// HCL JSON syntax so malformed files report source positions.
//
// Failures are local: a file that cannot be read or parsed is reported as a
// Warning and skipped, a malformed entry inside an otherwise valid file is
// reported and the remaining entries are kept.
package parser
