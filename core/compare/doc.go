// Package compare implements the structural model comparison engine: it takes
// two element collections (one per model version) plus their node-coordinate
// maps and partitions every element into matched, only-in-A or only-in-B.
//
// The engine handles the hard parts of cross-model identity:
//   - Canonical geometric keys at a configurable decimal precision, so that
//     coordinates equal within rounding collide to the same key regardless of
//     which tool authored each file
//   - Two identity strategies: spatial position or stable external identifier
//     (GUID), selected per comparison run
//   - Importance-weighted filtering of what counts as a difference
//   - Tolerance-based fuzzy matching that degrades from exact to "close
//     enough" to unmatched while consuming each candidate at most once
//
// # Architecture
//
// The package consists of five components:
//
// 1. Key codec: PointKey, LineKey and PolygonKey turn coordinates into
// canonical string keys. Line keys are direction-independent, polygon keys
// are winding-independent with explicit disambiguator tags.
//
// 2. Extractors: one per shape kind (point, line, polygon). Each resolves an
// element's node references against the NodeMap and produces the identity key
// plus an ElementData carrying everything downstream consumers need.
//
// 3. Exact matcher: a single hash join over the two key indices, O(|A|+|B|),
// deterministic for fixed inputs.
//
// 4. Importance filter & classifier: optional pre-filtering by importance
// level and post-annotation of every bucket item, with read-side statistics.
//
// 5. Tolerance matcher: a greedy second pass that accepts numerically close
// candidates under a configurable tolerance when exact keys fail to coincide.
//
// # Purity
//
// Every matching function is a pure function of its inputs except for
// diagnostic logging through the injected zap logger. Working maps are
// constructed fresh per call and never retained, so concurrent calls for
// different element types are safe and reorderable.
//
// # Usage Example
//
//	ex := compare.NewLineExtractor(compare.ExtractorConfig{
//	    Mode:      compare.KeySpatial,
//	    Precision: 3,
//	    Logger:    log,
//	}, "id_node_start", "id_node_end", nil)
//
//	result := compare.Match(elemsA, elemsB, nodesA, nodesB, ex)
//
//	tr := compare.MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, ex,
//	    compare.ToleranceConfig{Enabled: true, Position: 1.0}, nil)
package compare
