package bootstrap

import (
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
	"github.com/vk/taglib/internal/tagstore"
)

// Seed is the host's initial tag data: tag type -> tag -> direct members.
type Seed map[model.TagType]map[tagkey.Key][]tagkey.Key

// Add appends members to tag, creating the tag if needed.
func (s Seed) Add(t model.TagType, tag tagkey.Key, members ...tagkey.Key) {
	tags, ok := s[t]
	if !ok {
		tags = make(map[tagkey.Key][]tagkey.Key)
		s[t] = tags
	}
	tags[tag] = append(tags[tag], members...)
}

// Len returns the number of tags in the seed.
func (s Seed) Len() int {
	n := 0
	for _, tags := range s {
		n += len(tags)
	}
	return n
}

// Apply writes the seed into reg. Every tag is declared, so a seeded tag with
// no members still exists in the forward store. It returns the number of new
// (tag, member) pairs.
func (s Seed) Apply(reg *tagstore.Registry) int {
	added := 0
	for t, tags := range s {
		store := reg.For(t)
		for tag, members := range tags {
			store.Declare(tag)
			added += store.BindAll(tag, members)
		}
	}
	return added
}
