// internal/tagkey/types.go
package tagkey

import (
	"cmp"
	"slices"
)

// DefaultNamespace is assumed for keys written without a namespace.
const DefaultNamespace = "minecraft"

// Key identifies a tag or an asset. It is a comparable value type and can be
// used directly as a map key.
type Key struct {
	Namespace string
	Name      string
}

// String serializes the Key into its canonical `namespace:name` form.
func (k Key) String() string {
	return k.Namespace + ":" + k.Name
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k.Namespace == "" && k.Name == ""
}

// MarshalText implements encoding.TextMarshaler, which lets keys be used as
// JSON and YAML map keys.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Compare orders keys by namespace, then name.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Sort sorts keys in place and returns them.
func Sort(keys []Key) []Key {
	slices.SortFunc(keys, Compare)
	return keys
}

// SortedSet returns the members of set as a sorted slice.
func SortedSet(set map[Key]struct{}) []Key {
	keys := make([]Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return Sort(keys)
}
