package tagstore

import (
	"fmt"
	"sync"

	"github.com/vk/taglib/internal/tagkey"
)

type keySet map[tagkey.Key]struct{}

// Store holds the forward and reverse maps of one tag type.
type Store struct {
	mu      sync.RWMutex
	forward map[tagkey.Key]keySet // Key: tag, Value: set of members
	reverse map[tagkey.Key]keySet // Key: member, Value: set of tags
}

// New creates a new, empty store.
func New() *Store {
	return &Store{
		forward: make(map[tagkey.Key]keySet),
		reverse: make(map[tagkey.Key]keySet),
	}
}

// Bind adds member to tag in both directions. It reports whether the store
// changed; binding an existing pair is a no-op.
func (s *Store) Bind(tag, member tagkey.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindLocked(tag, member)
}

// BindAll binds every member to tag under a single lock and returns the
// number of new pairs.
func (s *Store) BindAll(tag tagkey.Key, members []tagkey.Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, m := range members {
		if s.bindLocked(tag, m) {
			added++
		}
	}
	return added
}

// Declare ensures tag has a forward entry, even an empty one.
func (s *Store) Declare(tag tagkey.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forward[tag]; !ok {
		s.forward[tag] = make(keySet)
	}
}

func (s *Store) bindLocked(tag, member tagkey.Key) bool {
	members, ok := s.forward[tag]
	if !ok {
		members = make(keySet)
		s.forward[tag] = members
	}
	if _, exists := members[member]; exists {
		return false
	}
	members[member] = struct{}{}

	tags, ok := s.reverse[member]
	if !ok {
		tags = make(keySet)
		s.reverse[member] = tags
	}
	tags[tag] = struct{}{}
	return true
}

// Members returns the sorted members of tag and whether the tag is known.
func (s *Store) Members(tag tagkey.Key) ([]tagkey.Key, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members, ok := s.forward[tag]
	if !ok {
		return nil, false
	}
	return tagkey.SortedSet(members), true
}

// TagsOf returns the sorted tags that contain member.
func (s *Store) TagsOf(member tagkey.Key) []tagkey.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tagkey.SortedSet(s.reverse[member])
}

// Has reports whether member belongs to tag.
func (s *Store) Has(member, tag tagkey.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.forward[tag][member]
	return ok
}

// HasTag reports whether tag has a forward entry.
func (s *Store) HasTag(tag tagkey.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.forward[tag]
	return ok
}

// Tags returns every known tag, sorted.
func (s *Store) Tags() []tagkey.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]tagkey.Key, 0, len(s.forward))
	for k := range s.forward {
		keys = append(keys, k)
	}
	return tagkey.Sort(keys)
}

// Len returns the number of tags with a forward entry.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forward)
}

// Snapshot returns a copy of the forward map with sorted member slices.
func (s *Store) Snapshot() map[tagkey.Key][]tagkey.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.forward)
}

// ReverseSnapshot returns a copy of the reverse map with sorted tag slices.
func (s *Store) ReverseSnapshot() map[tagkey.Key][]tagkey.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.reverse)
}

func snapshot(m map[tagkey.Key]keySet) map[tagkey.Key][]tagkey.Key {
	out := make(map[tagkey.Key][]tagkey.Key, len(m))
	for k, set := range m {
		out[k] = tagkey.SortedSet(set)
	}
	return out
}

// CheckConsistency verifies that the forward and reverse maps describe the
// same set of (tag, member) pairs.
func (s *Store) CheckConsistency() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for tag, members := range s.forward {
		for m := range members {
			if _, ok := s.reverse[m][tag]; !ok {
				return fmt.Errorf("member '%s' of tag '%s' is missing from the reverse map", m, tag)
			}
		}
	}
	for m, tags := range s.reverse {
		for tag := range tags {
			if _, ok := s.forward[tag][m]; !ok {
				return fmt.Errorf("reverse entry '%s' -> '%s' has no forward counterpart", m, tag)
			}
		}
	}
	return nil
}
