package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/taglib/internal/bundle"
	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/tagkey"
)

// MaxDefinitionSize bounds the size of a single definition file.
const MaxDefinitionSize = 4 << 20

// Result is everything one bundle contributes. It is private to the bundle
// until the caller merges it, so bundles can be scanned concurrently.
type Result struct {
	Bundle   string
	Bindings []model.Binding
	Edges    []model.Edge
	Warnings []Warning
	// Files counts definition files that were parsed successfully.
	Files int
	// Replacing counts parsed files that set `replace`.
	Replacing int
}

// ScanBundle reads every tag definition in b, in listing order. It never
// fails: unreadable bundles, unreadable files and malformed definitions are
// recorded as warnings.
func ScanBundle(ctx context.Context, b bundle.Bundle) *Result {
	logger := ctxlog.FromContext(ctx).With("bundle", b.Name())
	res := &Result{Bundle: b.Name()}

	err := b.Walk(func(e bundle.Entry) error {
		if e.IsDir {
			return nil
		}

		t, tag, ok, err := MatchPath(e.Path)
		if err != nil {
			res.warn(e.Path, err)
			return nil
		}
		if !ok {
			return nil
		}

		data, err := readEntry(e)
		if err != nil {
			res.warn(e.Path, err)
			return nil
		}

		def, err := ParseDefinition(data, e.Path)
		if err != nil {
			res.warn(e.Path, err)
			return nil
		}
		for _, invalid := range def.Invalid {
			res.warn(e.Path, invalid)
		}

		res.Files++
		if def.Replace {
			res.Replacing++
		}
		res.add(t, tag, def.Entries)
		logger.Debug("Parsed tag definition.", "path", e.Path, "type", t, "tag", tag, "entries", len(def.Entries))
		return nil
	})
	if err != nil {
		res.warn("", fmt.Errorf("%w: %w", ErrUnreadable, err))
	}

	logger.Debug("Bundle scanned.", "files", res.Files, "bindings", len(res.Bindings), "edges", len(res.Edges), "warnings", len(res.Warnings))
	return res
}

func (r *Result) add(t model.TagType, tag tagkey.Key, entries []model.Entry) {
	for _, entry := range entries {
		switch e := entry.(type) {
		case model.DirectBinding:
			r.Bindings = append(r.Bindings, model.Binding{Type: t, Tag: tag, Member: e.Key})
		case model.TagReference:
			r.Edges = append(r.Edges, model.Edge{Type: t, Source: tag, Target: e.Key})
		}
	}
}

func (r *Result) warn(path string, err error) {
	r.Warnings = append(r.Warnings, Warning{Bundle: r.Bundle, Path: path, Err: err})
}

func readEntry(e bundle.Entry) ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxDefinitionSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(data) > MaxDefinitionSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrUnreadable, MaxDefinitionSize)
	}
	return data, nil
}
