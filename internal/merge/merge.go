// Package merge folds resolved tag closures into the tag stores.
//
// Apply reads the direct members of every referenced tag before it writes
// anything, so the result does not depend on the order in which sources are
// merged. It must run once per pass, after every bundle has been scanned.
package merge

import (
	"github.com/vk/taglib/internal/closure"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
	"github.com/vk/taglib/internal/tagstore"
)

// Stats summarises one Apply call.
type Stats struct {
	// Sources is the number of referencing tags in the closure.
	Sources int
	// Added is the number of new (tag, member) pairs written.
	Added int
}

// Apply adds the members of every tag in c[source] to source. Targets that
// have no forward entry contribute nothing.
func Apply(s *tagstore.Store, c closure.Closure) Stats {
	pending := make(map[tagkey.Key][]tagkey.Key, len(c))
	for source, targets := range c {
		var members []tagkey.Key
		for _, target := range targets {
			m, ok := s.Members(target)
			if !ok {
				continue
			}
			members = append(members, m...)
		}
		pending[source] = members
	}

	stats := Stats{Sources: len(c)}
	for source, members := range pending {
		stats.Added += s.BindAll(source, members)
	}
	return stats
}

// ApplyAll runs Apply for every tag type that has a closure.
func ApplyAll(reg *tagstore.Registry, closures map[model.TagType]closure.Closure) map[model.TagType]Stats {
	stats := make(map[model.TagType]Stats, len(closures))
	for _, t := range model.TagTypes {
		c, ok := closures[t]
		if !ok {
			continue
		}
		stats[t] = Apply(reg.For(t), c)
	}
	return stats
}
