package bootstrap

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/fsutil"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "tag", LabelNames: []string{"type", "key"}},
	},
}

// hclTagBody is the body of a `tag` block.
type hclTagBody struct {
	Members []string `hcl:"members,optional"`
}

// LoadHCL reads every .hcl file under each path (a file or a directory) into a
// single Seed.
func LoadHCL(ctx context.Context, paths ...string) (Seed, error) {
	logger := ctxlog.FromContext(ctx)
	seed := make(Seed)
	parser := hclparse.NewParser()

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find bootstrap files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl bootstrap files found in path.", "path", path)
			continue
		}
		for _, file := range files {
			if err := loadFile(parser, file, seed); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Loaded bootstrap tags.", "tags", seed.Len())
	return seed, nil
}

func loadFile(parser *hclparse.Parser, filePath string, seed Seed) error {
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse bootstrap file %s: %w", filePath, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode bootstrap file %s: %w", filePath, diags)
	}

	for _, block := range content.Blocks {
		if diags := decodeTag(block, seed); diags.HasErrors() {
			return fmt.Errorf("invalid tag block in %s: %w", filePath, diags)
		}
	}
	return nil
}

func decodeTag(block *hcl.Block, seed Seed) hcl.Diagnostics {
	t, ok := model.ParseTagType(block.Labels[0])
	if !ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown tag type",
			Detail:   fmt.Sprintf("%q is not one of item, block, entity_type.", block.Labels[0]),
			Subject:  &block.LabelRanges[0],
		}}
	}
	tag, err := tagkey.Parse(block.Labels[1])
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Malformed tag key",
			Detail:   err.Error(),
			Subject:  &block.LabelRanges[1],
		}}
	}

	var body hclTagBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return diags
	}

	members := make([]tagkey.Key, 0, len(body.Members))
	for i, raw := range body.Members {
		member, err := tagkey.Parse(raw)
		if err != nil {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Malformed member key",
				Detail:   fmt.Sprintf("members[%d]: %v", i, err),
				Subject:  block.Body.MissingItemRange().Ptr(),
			}}
		}
		members = append(members, member)
	}
	seed.Add(t, tag, members...)
	return nil
}
