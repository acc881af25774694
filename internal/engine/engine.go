package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/vk/taglib/internal/bootstrap"
	"github.com/vk/taglib/internal/bundle"
	"github.com/vk/taglib/internal/closure"
	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/graph"
	"github.com/vk/taglib/internal/merge"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/parser"
	"github.com/vk/taglib/internal/tagstore"
	"github.com/vk/taglib/internal/tracing"
)

// DefaultWorkers is the scan pool size used when Options.Workers is not set.
const DefaultWorkers = 4

// Options configures an Aggregator.
type Options struct {
	// Workers bounds how many bundles are scanned at once.
	Workers int
	// Tracer receives the pass spans. The global tracer is used when nil.
	Tracer trace.Tracer
}

// Aggregator runs aggregation passes.
type Aggregator struct {
	workers int
	tracer  trace.Tracer
}

// New creates an Aggregator, filling in defaults for unset options.
func New(opts Options) *Aggregator {
	a := &Aggregator{workers: opts.Workers, tracer: opts.Tracer}
	if a.workers <= 0 {
		a.workers = DefaultWorkers
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer("github.com/vk/taglib/internal/engine")
	}
	return a
}

// Run performs a full pass over bundles and returns the populated registry.
// Problems in individual bundles are reported in the Report and never stop
// the pass.
func (a *Aggregator) Run(ctx context.Context, seed bootstrap.Seed, bundles []bundle.Bundle) (*tagstore.Registry, *Report) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	ctx, span := a.tracer.Start(ctx, tracing.SpanPass)
	defer span.End()

	reg := tagstore.NewRegistry()
	report := newReport(len(bundles))
	report.Seeded = seed.Apply(reg)

	edges := a.scan(ctx, reg, bundles, report)
	graphs := a.buildGraphs(ctx, edges, report)
	closures := a.resolve(ctx, graphs)
	a.merge(ctx, reg, closures, report)

	report.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int(tracing.AttrBundles, report.Bundles),
		attribute.Int(tracing.AttrWarnings, len(report.Warnings)),
	)
	logger.Info("Tag aggregation finished.",
		"bundles", report.Bundles,
		"files", report.Files,
		"bindings", report.Bindings,
		"edges", report.Edges,
		"warnings", len(report.Warnings),
		"cycles", report.CycleCount(),
		"added", report.AddedCount(),
		"duration", report.Duration,
	)
	return reg, report
}

// scan reads every bundle on the worker pool, then reduces the results into
// reg in bundle order. It returns the collected reference edges.
func (a *Aggregator) scan(ctx context.Context, reg *tagstore.Registry, bundles []bundle.Bundle, report *Report) []model.Edge {
	logger := ctxlog.FromContext(ctx)
	ctx, span := a.tracer.Start(ctx, tracing.SpanScan)
	defer span.End()

	results := make([]*parser.Result, len(bundles))
	var eg errgroup.Group
	eg.SetLimit(a.workers)
	for i, b := range bundles {
		i, b := i, b
		eg.Go(func() error {
			results[i] = parser.ScanBundle(ctx, b)
			return nil
		})
	}
	_ = eg.Wait()

	var edges []model.Edge
	for _, res := range results {
		for _, bnd := range res.Bindings {
			reg.Bind(bnd.Type, bnd.Tag, bnd.Member)
		}
		edges = append(edges, res.Edges...)
		for _, w := range res.Warnings {
			logger.Warn("Skipped tag data.", "bundle", w.Bundle, "path", w.Path, "error", w.Err)
		}

		report.Files += res.Files
		report.Replacing += res.Replacing
		report.Bindings += len(res.Bindings)
		report.Warnings = append(report.Warnings, res.Warnings...)
	}
	report.Edges = len(edges)

	span.SetAttributes(
		attribute.Int(tracing.AttrFiles, report.Files),
		attribute.Int(tracing.AttrBindings, report.Bindings),
		attribute.Int(tracing.AttrEdges, report.Edges),
	)
	if report.Replacing > 0 {
		logger.Info("Some tag files request replacement; their values are merged instead.", "files", report.Replacing)
	}
	return edges
}

func (a *Aggregator) buildGraphs(ctx context.Context, edges []model.Edge, report *Report) map[model.TagType]*graph.Graph {
	logger := ctxlog.FromContext(ctx)
	_, span := a.tracer.Start(ctx, tracing.SpanGraph)
	defer span.End()

	graphs := graph.Build(edges)
	for _, t := range model.TagTypes {
		g, ok := graphs[t]
		if !ok {
			continue
		}
		cycles := g.Cycles()
		if len(cycles) > 0 {
			report.Cycles[t] = cycles
		}
		for _, c := range cycles {
			logger.Debug("Tag reference cycle.", "type", t, "tags", c)
		}
	}
	span.SetAttributes(attribute.Int(tracing.AttrCycles, report.CycleCount()))
	return graphs
}

func (a *Aggregator) resolve(ctx context.Context, graphs map[model.TagType]*graph.Graph) map[model.TagType]closure.Closure {
	ctx, span := a.tracer.Start(ctx, tracing.SpanClosure)
	defer span.End()
	return closure.ResolveAll(ctx, graphs)
}

func (a *Aggregator) merge(ctx context.Context, reg *tagstore.Registry, closures map[model.TagType]closure.Closure, report *Report) {
	_, span := a.tracer.Start(ctx, tracing.SpanMerge)
	defer span.End()

	report.Merged = merge.ApplyAll(reg, closures)
	span.SetAttributes(attribute.Int(tracing.AttrAdded, report.AddedCount()))
}
