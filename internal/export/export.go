// Package export writes the aggregated tag stores to a file or stream.
//
// The json and yaml formats carry both directions for every tag type. The hcl
// format carries only the forward map, written as bootstrap `tag` blocks, so
// the output of one run can seed another.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
	"github.com/vk/taglib/internal/tagstore"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatHCL}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or hcl)", name)
}

// TypeDocument is the exported form of one tag type.
type TypeDocument struct {
	// Tags maps each tag to its members.
	Tags map[string][]string `json:"tags" yaml:"tags"`
	// Members maps each member to the tags that contain it.
	Members map[string][]string `json:"members" yaml:"members"`
}

// Document is the exported form of a registry, keyed by tag type name.
type Document map[string]TypeDocument

// NewDocument copies the contents of reg into a Document.
func NewDocument(reg *tagstore.Registry) Document {
	doc := make(Document, len(model.TagTypes))
	for _, t := range model.TagTypes {
		s := reg.For(t)
		doc[t.String()] = TypeDocument{
			Tags:    stringify(s.Snapshot()),
			Members: stringify(s.ReverseSnapshot()),
		}
	}
	return doc
}

func stringify(m map[tagkey.Key][]tagkey.Key) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, values := range m {
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String()
		}
		out[k.String()] = strs
	}
	return out
}

// Write encodes reg to w in the given format.
func Write(w io.Writer, reg *tagstore.Registry, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(reg)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(reg)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatHCL:
		if _, err := w.Write(hclFile(reg).Bytes()); err != nil {
			return fmt.Errorf("failed to write hcl: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// hclFile renders the forward maps as bootstrap `tag` blocks.
func hclFile(reg *tagstore.Registry) *hclwrite.File {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	first := true
	for _, t := range model.TagTypes {
		s := reg.For(t)
		for _, tag := range s.Tags() {
			members, _ := s.Members(tag)
			if !first {
				body.AppendNewline()
			}
			first = false

			block := body.AppendNewBlock("tag", []string{t.String(), tag.String()})
			block.Body().SetAttributeValue("members", membersValue(members))
		}
	}
	return f
}

func membersValue(members []tagkey.Key) cty.Value {
	if len(members) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(members))
	for i, m := range members {
		vals[i] = cty.StringVal(m.String())
	}
	return cty.ListVal(vals)
}
