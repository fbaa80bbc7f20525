package compare

import (
	"math"
	"sort"
)

// Default tolerances in millimetres, applied when a config field is zero.
const (
	defaultPositionTolerance = 1.0
	defaultLengthTolerance   = 1.0
)

// ToleranceConfig is the per-run tolerance policy. It is constructed once
// from user or default settings, passed by value into a comparison call and
// never mutated mid-comparison.
type ToleranceConfig struct {
	// Enabled turns tolerance matching on. When false the matcher delegates
	// entirely to the exact matcher.
	Enabled bool `json:"enabled"`
	// StrictMode forces exact matching even when Enabled is true.
	StrictMode bool `json:"strict_mode"`
	// Position is the per-axis coordinate tolerance in millimetres.
	Position float64 `json:"position_mm"`
	// Length is the member-length tolerance in millimetres, applied to
	// two-point elements.
	Length float64 `json:"length_mm"`
}

func (c ToleranceConfig) positionTolerance() float64 {
	if c.Position <= 0 {
		return defaultPositionTolerance
	}
	return c.Position
}

func (c ToleranceConfig) lengthTolerance() float64 {
	if c.Length <= 0 {
		return defaultLengthTolerance
	}
	return c.Length
}

// Verdict classifies one candidate pair during tolerance matching.
type Verdict int

const (
	// VerdictMismatch: the fields drifted beyond every tolerance.
	VerdictMismatch Verdict = iota
	// VerdictWithinTolerance: not identical, but within the configured
	// tolerances.
	VerdictWithinTolerance
	// VerdictExact: indistinguishable at the key precision.
	VerdictExact
)

// String returns the reporting name of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictExact:
		return "exact"
	case VerdictWithinTolerance:
		return "within_tolerance"
	default:
		return "mismatch"
	}
}

// FieldComparator classifies a candidate pair. Implementations must be pure:
// the matcher may call them any number of times in any order.
type FieldComparator func(a, b ElementData, cfg ToleranceConfig) Verdict

// NewCoordinateComparator builds the default comparator: it classifies a
// pair Exact when the two point sets collide at the key precision, and
// WithinTolerance when every paired axis delta stays within the position
// tolerance (plus the length tolerance for two-point elements). Pairs with
// no geometry on either side count as Exact since the identity key already
// agreed and there is nothing left to disagree on. Differing disambiguator
// tags are always a mismatch: geometric closeness never merges elements
// from different semantic groupings.
func NewCoordinateComparator(precision int) FieldComparator {
	return func(a, b ElementData, cfg ToleranceConfig) Verdict {
		if !sameTags(a.Tags, b.Tags) {
			return VerdictMismatch
		}
		if len(a.Points) == 0 && len(b.Points) == 0 {
			return VerdictExact
		}
		if len(a.Points) != len(b.Points) || len(a.Points) == 0 {
			return VerdictMismatch
		}

		if sameAtPrecision(a.Points, b.Points, precision) {
			return VerdictExact
		}

		pa, pb := pairPoints(a.Points, b.Points, precision)
		maxDelta := 0.0
		for i := range pa {
			maxDelta = math.Max(maxDelta, math.Abs(pa[i].X-pb[i].X))
			maxDelta = math.Max(maxDelta, math.Abs(pa[i].Y-pb[i].Y))
			maxDelta = math.Max(maxDelta, math.Abs(pa[i].Z-pb[i].Z))
		}
		if !(maxDelta <= cfg.positionTolerance()) {
			return VerdictMismatch
		}
		if len(pa) == 2 {
			lenDelta := math.Abs(distance(pa[0], pa[1]) - distance(pb[0], pb[1]))
			if !(lenDelta <= cfg.lengthTolerance()) {
				return VerdictMismatch
			}
		}
		return VerdictWithinTolerance
	}
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameAtPrecision reports whether the two point sets produce the same
// multiset of keys at the given precision.
func sameAtPrecision(a, b []Coordinate, precision int) bool {
	ka, ok := sortedKeys(a, precision)
	if !ok {
		return false
	}
	kb, ok := sortedKeys(b, precision)
	if !ok {
		return false
	}
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}

func sortedKeys(points []Coordinate, precision int) ([]string, bool) {
	keys := make([]string, 0, len(points))
	for _, p := range points {
		k, ok := PointKey(p, precision)
		if !ok {
			return nil, false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, true
}

// pairPoints aligns the two point sets for delta comparison. Two-point
// elements try both orientations and keep the closer one (line identity is
// direction-independent); larger sets are aligned by sorted key order, a
// greedy heuristic consistent with the matcher's overall greedy policy.
func pairPoints(a, b []Coordinate, precision int) ([]Coordinate, []Coordinate) {
	switch len(a) {
	case 1:
		return a, b
	case 2:
		direct := math.Max(pointDelta(a[0], b[0]), pointDelta(a[1], b[1]))
		crossed := math.Max(pointDelta(a[0], b[1]), pointDelta(a[1], b[0]))
		if crossed < direct {
			return a, []Coordinate{b[1], b[0]}
		}
		return a, b
	default:
		return sortByKey(a, precision), sortByKey(b, precision)
	}
}

func sortByKey(points []Coordinate, precision int) []Coordinate {
	sorted := make([]Coordinate, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		ki, _ := PointKey(sorted[i], precision)
		kj, _ := PointKey(sorted[j], precision)
		return ki < kj
	})
	return sorted
}

func pointDelta(a, b Coordinate) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Max(math.Abs(a.Y-b.Y), math.Abs(a.Z-b.Z)))
}

func distance(a, b Coordinate) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ToleranceResult is the five-way partition the tolerance matcher produces.
// Exact plus WithinTolerance is the three-way-compatible "matched" view.
type ToleranceResult struct {
	Exact           []Pair        `json:"exact"`
	WithinTolerance []Pair        `json:"within_tolerance"`
	Mismatch        []Pair        `json:"mismatch"`
	OnlyA           []ElementData `json:"only_a"`
	OnlyB           []ElementData `json:"only_b"`
	DroppedA        int           `json:"dropped_a"`
	DroppedB        int           `json:"dropped_b"`
}

// candidatePool is the per-call working structure for the A side: a
// key -> list-of-candidates map that preserves multiple same-key candidates
// for fallback scanning. It lives for exactly one MatchWithTolerance call.
type candidatePool struct {
	keys    []string
	byKey   map[string][]ElementData
	dropped int
}

func buildPool(elems []AttributeSource, nodes NodeMap, ex Extractor) *candidatePool {
	pool := &candidatePool{byKey: make(map[string][]ElementData, len(elems))}
	for _, rec := range elems {
		key, data, ok := ex.Extract(rec, nodes)
		if !ok {
			pool.dropped++
			continue
		}
		if _, exists := pool.byKey[key]; !exists {
			pool.keys = append(pool.keys, key)
		}
		pool.byKey[key] = append(pool.byKey[key], data)
	}
	return pool
}

// take removes and returns the candidate at list position i under key.
func (p *candidatePool) take(key string, i int) ElementData {
	list := p.byKey[key]
	cand := list[i]
	list = append(list[:i], list[i+1:]...)
	if len(list) == 0 {
		delete(p.byKey, key)
	} else {
		p.byKey[key] = list
	}
	return cand
}

// MatchWithTolerance partitions the two element collections with the greedy
// tolerance policy: per B element, first a same-key scan for an exact
// verdict, then an exhaustive scan over all remaining candidates for a
// within-tolerance verdict, then consumption of a same-key candidate whose
// fields drifted beyond tolerance as a mismatch pair. Candidates are
// consumed at most once; the result is order-dependent on B's input order.
// Same-key hits keep the pass O(|A|+|B|); the exhaustive fallback degrades
// to O(|A|·|B|) when most elements need it.
//
// When cfg.StrictMode is set or cfg.Enabled is not, the call delegates to
// the exact matcher and the relaxed buckets stay empty. A nil cmp gets the
// default coordinate comparator at the extractor's precision.
func MatchWithTolerance(elemsA, elemsB []AttributeSource, nodesA, nodesB NodeMap, ex Extractor, cfg ToleranceConfig, cmp FieldComparator) ToleranceResult {
	if cfg.StrictMode || !cfg.Enabled {
		exact := Match(elemsA, elemsB, nodesA, nodesB, ex)
		return ToleranceResult{
			Exact:           exact.Matched,
			WithinTolerance: []Pair{},
			Mismatch:        []Pair{},
			OnlyA:           exact.OnlyA,
			OnlyB:           exact.OnlyB,
			DroppedA:        exact.DroppedA,
			DroppedB:        exact.DroppedB,
		}
	}
	if cmp == nil {
		cmp = NewCoordinateComparator(ex.Precision())
	}

	pool := buildPool(elemsA, nodesA, ex)
	result := ToleranceResult{
		Exact:           []Pair{},
		WithinTolerance: []Pair{},
		Mismatch:        []Pair{},
		OnlyA:           []ElementData{},
		OnlyB:           []ElementData{},
		DroppedA:        pool.dropped,
	}

	var unresolved []ElementData
	for _, rec := range elemsB {
		key, data, ok := ex.Extract(rec, nodesB)
		if !ok {
			result.DroppedB++
			continue
		}

		// Same-key scan: first exact verdict wins. Remember the first
		// same-key candidate that compared as a mismatch in case nothing
		// better turns up anywhere.
		mismatchIdx := -1
		matched := false
		for i, cand := range pool.byKey[key] {
			switch cmp(cand, data, cfg) {
			case VerdictExact:
				result.Exact = append(result.Exact, Pair{A: pool.take(key, i), B: data})
				matched = true
			case VerdictMismatch:
				if mismatchIdx < 0 {
					mismatchIdx = i
				}
			}
			if matched {
				break
			}
		}
		if matched {
			continue
		}

		// Exhaustive fallback over every remaining candidate list, in key
		// insertion order: first within-tolerance verdict wins. An exact
		// verdict under a different key (same geometry, different GUID) is
		// at least as good and lands in the same bucket.
		for _, poolKey := range pool.keys {
			for i, cand := range pool.byKey[poolKey] {
				if cmp(cand, data, cfg) >= VerdictWithinTolerance {
					result.WithinTolerance = append(result.WithinTolerance, Pair{A: pool.take(poolKey, i), B: data})
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched {
			continue
		}

		// Same identity key but fields beyond tolerance: pair them up as a
		// mismatch rather than reporting one phantom removal plus one
		// phantom addition.
		if mismatchIdx >= 0 {
			result.Mismatch = append(result.Mismatch, Pair{A: pool.take(key, mismatchIdx), B: data})
			continue
		}

		unresolved = append(unresolved, data)
	}

	for _, key := range pool.keys {
		result.OnlyA = append(result.OnlyA, pool.byKey[key]...)
	}
	result.OnlyB = append(result.OnlyB, unresolved...)

	return result
}
