// internal/tagkey/parser.go
package tagkey

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is wrapped by every parse and validation failure.
var ErrInvalid = errors.New("invalid key")

var (
	namespaceRegex = regexp.MustCompile(`^[a-z0-9._-]+$`)
	nameRegex      = regexp.MustCompile(`^[a-z0-9/._-]+$`)
)

// New validates namespace and name and returns the resulting Key.
func New(namespace, name string) (Key, error) {
	if !namespaceRegex.MatchString(namespace) {
		return Key{}, fmt.Errorf("%w: namespace %q", ErrInvalid, namespace)
	}
	if !nameRegex.MatchString(name) {
		return Key{}, fmt.Errorf("%w: name %q", ErrInvalid, name)
	}
	return Key{Namespace: namespace, Name: name}, nil
}

// MustNew is like New but panics on invalid input. Intended for fixed keys
// in code and tests.
func MustNew(namespace, name string) Key {
	k, err := New(namespace, name)
	if err != nil {
		panic(err)
	}
	return k
}

// Parse creates a Key from its string form. Both `namespace:name` and a bare
// `name` are accepted; an empty or missing namespace falls back to
// DefaultNamespace.
func Parse(raw string) (Key, error) {
	if raw == "" {
		return Key{}, fmt.Errorf("%w: key cannot be empty", ErrInvalid)
	}

	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		return New(DefaultNamespace, parts[0])
	case 2:
		namespace := parts[0]
		if namespace == "" {
			namespace = DefaultNamespace
		}
		return New(namespace, parts[1])
	default:
		return Key{}, fmt.Errorf("%w: too many separators in %q", ErrInvalid, raw)
	}
}

// MustParse is like Parse but panics on invalid input.
func MustParse(raw string) Key {
	k, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return k
}
