package parser

import (
	"fmt"
	"regexp"

	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

// tagPathRegex captures namespace, tag type and tag name of a definition path.
var tagPathRegex = regexp.MustCompile(`^data/([^/]+)/tags/([^/]+)/(.+)\.json$`)

// MatchPath reports whether p is a tag definition path and, if so, returns the
// tag type and tag key it defines. Paths outside the convention and paths with
// an unknown tag type return ok=false and no error. A matching path whose
// namespace or name is invalid returns an ErrMalformedKey error.
func MatchPath(p string) (t model.TagType, key tagkey.Key, ok bool, err error) {
	matches := tagPathRegex.FindStringSubmatch(p)
	if matches == nil {
		return 0, tagkey.Key{}, false, nil
	}

	t, known := model.ParseTagType(matches[2])
	if !known {
		return 0, tagkey.Key{}, false, nil
	}

	key, err = tagkey.New(matches[1], matches[3])
	if err != nil {
		return 0, tagkey.Key{}, false, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}
	return t, key, true, nil
}
