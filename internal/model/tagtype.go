// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed TagType enumeration and its directory names.
package model

import "fmt"

// TagType identifies which registry a tag belongs to.
type TagType int

const (
	Item TagType = iota
	Block
	EntityType
)

// TagTypes lists every TagType in declaration order.
var TagTypes = []TagType{Item, Block, EntityType}

var tagTypeNames = map[TagType]string{
	Item:       "item",
	Block:      "block",
	EntityType: "entity_type",
}

// tagTypeLookup also accepts the plural directory names used by older data
// packs.
var tagTypeLookup = map[string]TagType{
	"item":         Item,
	"block":        Block,
	"entity_type":  EntityType,
	"items":        Item,
	"blocks":       Block,
	"entity_types": EntityType,
}

// String returns the serialized name of the tag type.
func (t TagType) String() string {
	if name, ok := tagTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TagType(%d)", int(t))
}

// ParseTagType resolves a serialized or directory name to a TagType.
func ParseTagType(name string) (TagType, bool) {
	t, ok := tagTypeLookup[name]
	return t, ok
}

// MarshalText implements encoding.TextMarshaler.
func (t TagType) MarshalText() ([]byte, error) {
	if _, ok := tagTypeNames[t]; !ok {
		return nil, fmt.Errorf("unknown tag type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TagType) UnmarshalText(text []byte) error {
	parsed, ok := ParseTagType(string(text))
	if !ok {
		return fmt.Errorf("unknown tag type %q", string(text))
	}
	*t = parsed
	return nil
}
