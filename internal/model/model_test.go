// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taglib/internal/tagkey"
)

func TestParseTagType(t *testing.T) {
	testCases := []struct {
		name     string
		expected TagType
		ok       bool
	}{
		{"item", Item, true},
		{"block", Block, true},
		{"entity_type", EntityType, true},
		{"items", Item, true},
		{"entity_types", EntityType, true},
		{"fluid", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTagType(tc.name)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestTagType_Text(t *testing.T) {
	for _, tt := range TagTypes {
		text, err := tt.MarshalText()
		require.NoError(t, err)

		var back TagType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, tt, back)
	}

	assert.Equal(t, "entity_type", EntityType.String())
	assert.Equal(t, "TagType(9)", TagType(9).String())

	_, err := TagType(9).MarshalText()
	assert.Error(t, err)
}

func TestParseEntry(t *testing.T) {
	t.Run("direct binding", func(t *testing.T) {
		entry, err := ParseEntry("minecraft:white_wool")
		require.NoError(t, err)
		assert.Equal(t, DirectBinding{Key: tagkey.MustParse("minecraft:white_wool")}, entry)
		assert.Equal(t, "minecraft:white_wool", entry.(DirectBinding).String())
	})

	t.Run("tag reference", func(t *testing.T) {
		entry, err := ParseEntry("#minecraft:wool")
		require.NoError(t, err)
		assert.Equal(t, TagReference{Key: tagkey.MustParse("minecraft:wool")}, entry)
		assert.Equal(t, "#minecraft:wool", entry.(TagReference).String())
		assert.Equal(t, tagkey.MustParse("minecraft:wool"), entry.Target())
	})

	t.Run("malformed reference", func(t *testing.T) {
		_, err := ParseEntry("#")
		assert.ErrorIs(t, err, tagkey.ErrInvalid)
	})

	t.Run("malformed binding", func(t *testing.T) {
		_, err := ParseEntry("Not A Key")
		assert.ErrorIs(t, err, tagkey.ErrInvalid)
	})
}

func TestEdge_Identity(t *testing.T) {
	a := tagkey.MustParse("modpack:a")
	b := tagkey.MustParse("modpack:b")

	set := map[Edge]struct{}{}
	set[Edge{Type: Item, Source: a, Target: b}] = struct{}{}
	set[Edge{Type: Item, Source: a, Target: b}] = struct{}{}
	set[Edge{Type: Block, Source: a, Target: b}] = struct{}{}
	set[Edge{Type: Item, Source: b, Target: a}] = struct{}{}

	assert.Len(t, set, 3, "edges collapse only when type, source and target all match")
}
