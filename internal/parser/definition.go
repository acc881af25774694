package parser

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taglib/internal/model"
)

// tagFile is the decoded shape of a definition file. Unknown attributes are
// tolerated.
type tagFile struct {
	Values  hcl.Expression `hcl:"values"`
	Replace *bool          `hcl:"replace,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

// Definition is the parsed content of one tag definition file.
type Definition struct {
	Entries []model.Entry
	// Replace is the file's `replace` flag. Bundles are always merged, so it
	// is only reported.
	Replace bool
	// Invalid holds one ErrMalformedKey error per skipped `values` element.
	Invalid []error
}

// ParseDefinition parses the JSON content of a definition file. filename is
// only used in diagnostics. Invalid JSON and a missing, null or non-array
// `values` attribute yield an ErrMalformedDefinition error.
func ParseDefinition(data []byte, filename string) (*Definition, error) {
	file, diags := hcljson.Parse(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, diags)
	}

	var raw tagFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, diags)
	}

	val, diags := raw.Values.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, diags)
	}
	if val.IsNull() {
		return nil, fmt.Errorf("%w: %s: \"values\" is null", ErrMalformedDefinition, filename)
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%w: %s: \"values\" must be an array, got %s", ErrMalformedDefinition, filename, ty.FriendlyName())
	}

	def := &Definition{}
	if raw.Replace != nil {
		def.Replace = *raw.Replace
	}

	for it := val.ElementIterator(); it.Next(); {
		idx, elem := it.Element()
		entry, err := parseElement(elem)
		if err != nil {
			i, _ := idx.AsBigFloat().Int64()
			def.Invalid = append(def.Invalid, fmt.Errorf("%w: %s: values[%d]: %w", ErrMalformedKey, filename, i, err))
			continue
		}
		def.Entries = append(def.Entries, entry)
	}

	return def, nil
}

// parseElement classifies one `values` element, which is either a string or
// an object with an `id` string.
func parseElement(v cty.Value) (model.Entry, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, errors.New("null entry")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return model.ParseEntry(v.AsString())
	case ty.IsObjectType():
		if !ty.HasAttribute("id") {
			return nil, errors.New("object entry without \"id\"")
		}
		id := v.GetAttr("id")
		if id.IsNull() || id.Type() != cty.String {
			return nil, errors.New("\"id\" must be a string")
		}
		return model.ParseEntry(id.AsString())
	default:
		return nil, fmt.Errorf("unsupported entry of type %s", ty.FriendlyName())
	}
}
