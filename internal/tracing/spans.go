package tracing

// Span names for the stages of an aggregation pass.
const (
	SpanPass    = "taglib.pass"
	SpanScan    = "taglib.scan"
	SpanGraph   = "taglib.graph"
	SpanClosure = "taglib.closure"
	SpanMerge   = "taglib.merge"
)

// Span attribute keys.
const (
	AttrRunID    = "run.id"
	AttrBundles  = "pass.bundles"
	AttrFiles    = "pass.files"
	AttrBindings = "pass.bindings"
	AttrEdges    = "pass.edges"
	AttrWarnings = "pass.warnings"
	AttrCycles   = "pass.cycles"
	AttrAdded    = "pass.added"
)
