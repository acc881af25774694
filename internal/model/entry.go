// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the tagged variant produced for each `values` element of
// a tag definition, along with the records that leave the parser.
//
// Why a variant instead of the raw string?
//
// A `values` element is classified exactly once, by the parser, according to
// its `#` prefix. Everything downstream switches on the concrete type, which
// keeps the prefix rule in one place.
package model

import (
	"strings"

	"github.com/vk/taglib/internal/tagkey"
)

// ReferencePrefix marks a `values` element that names another tag.
const ReferencePrefix = "#"

// Entry is one classified element of a tag definition.
type Entry interface {
	Target() tagkey.Key
	isEntry()
}

// DirectBinding names a concrete asset that is a member of the tag.
type DirectBinding struct {
	Key tagkey.Key
}

// TagReference names another tag whose resolved members are inherited.
type TagReference struct {
	Key tagkey.Key
}

func (d DirectBinding) Target() tagkey.Key { return d.Key }
func (r TagReference) Target() tagkey.Key  { return r.Key }

func (DirectBinding) isEntry() {}
func (TagReference) isEntry()  {}

// String renders the entry the way it is written in a tag file.
func (d DirectBinding) String() string { return d.Key.String() }

// String renders the entry the way it is written in a tag file.
func (r TagReference) String() string { return ReferencePrefix + r.Key.String() }

// ParseEntry classifies a raw `values` string.
func ParseEntry(raw string) (Entry, error) {
	if rest, isRef := strings.CutPrefix(raw, ReferencePrefix); isRef {
		key, err := tagkey.Parse(rest)
		if err != nil {
			return nil, err
		}
		return TagReference{Key: key}, nil
	}
	key, err := tagkey.Parse(raw)
	if err != nil {
		return nil, err
	}
	return DirectBinding{Key: key}, nil
}

// Binding is a direct (tag, member) pair for one tag type.
type Binding struct {
	Type   TagType
	Tag    tagkey.Key
	Member tagkey.Key
}

// Edge is a raw reference from Source to Target within one tag type. Source
// inherits every resolved member of Target. All three fields take part in
// equality, so edges of different types never collapse into one.
type Edge struct {
	Type   TagType
	Source tagkey.Key
	Target tagkey.Key
}
