package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedKey marks a tag path or value whose namespace or name is invalid.
	ErrMalformedKey = errors.New("malformed tag key")
	// ErrMalformedDefinition marks a definition file that is not a JSON object
	// with a `values` array.
	ErrMalformedDefinition = errors.New("malformed tag definition")
	// ErrUnreadable marks a bundle or file that could not be read.
	ErrUnreadable = errors.New("unreadable")
)

// Warning is a non-fatal problem found while scanning a bundle.
type Warning struct {
	Bundle string
	Path   string // Empty when the whole bundle is affected
	Err    error
}

// Error implements the error interface.
func (w Warning) Error() string {
	if w.Path == "" {
		return fmt.Sprintf("%s: %v", w.Bundle, w.Err)
	}
	return fmt.Sprintf("%s!%s: %v", w.Bundle, w.Path, w.Err)
}

// Unwrap exposes the underlying cause to errors.Is.
func (w Warning) Unwrap() error {
	return w.Err
}
