package tagstore

import (
	"fmt"

	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

// Registry owns one Store per tag type. It is created at the start of an
// aggregation pass and handed to every stage that needs it.
type Registry struct {
	stores map[model.TagType]*Store
}

// NewRegistry creates a registry with an empty store for every tag type.
func NewRegistry() *Registry {
	r := &Registry{stores: make(map[model.TagType]*Store, len(model.TagTypes))}
	for _, t := range model.TagTypes {
		r.stores[t] = New()
	}
	return r
}

// For returns the store of tag type t. It panics on a type outside the
// enumeration, which can only come from a programming error.
func (r *Registry) For(t model.TagType) *Store {
	s, ok := r.stores[t]
	if !ok {
		panic(fmt.Sprintf("tagstore: no store for %s", t))
	}
	return s
}

// Bind registers member under tag for tag type t, updating both directions.
func (r *Registry) Bind(t model.TagType, tag, member tagkey.Key) bool {
	return r.For(t).Bind(tag, member)
}

// CheckConsistency runs Store.CheckConsistency for every tag type.
func (r *Registry) CheckConsistency() error {
	for _, t := range model.TagTypes {
		if err := r.For(t).CheckConsistency(); err != nil {
			return fmt.Errorf("%s store: %w", t, err)
		}
	}
	return nil
}
