package engine

import (
	"time"

	"github.com/vk/taglib/internal/graph"
	"github.com/vk/taglib/internal/merge"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/parser"
)

// Report summarises one aggregation pass.
type Report struct {
	Bundles int
	// Seeded is the number of pairs the bootstrap seed added.
	Seeded int
	// Files is the number of tag definition files that were parsed.
	Files int
	// Replacing is the number of parsed files that set `replace`.
	Replacing int
	// Bindings is the number of direct bindings read, duplicates included.
	Bindings int
	// Edges is the number of references read, duplicates included.
	Edges    int
	Warnings []parser.Warning
	Cycles   map[model.TagType][]graph.Component
	Merged   map[model.TagType]merge.Stats
	Duration time.Duration
}

func newReport(bundles int) *Report {
	return &Report{
		Bundles: bundles,
		Cycles:  make(map[model.TagType][]graph.Component),
		Merged:  make(map[model.TagType]merge.Stats),
	}
}

// CycleCount returns the number of reference cycles across all tag types.
func (r *Report) CycleCount() int {
	n := 0
	for _, c := range r.Cycles {
		n += len(c)
	}
	return n
}

// AddedCount returns the number of pairs added by the merge across all types.
func (r *Report) AddedCount() int {
	n := 0
	for _, s := range r.Merged {
		n += s.Added
	}
	return n
}
