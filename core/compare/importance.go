package compare

import (
	"fmt"
	"strings"
)

// ImportanceLevel weights how much a difference in an element matters.
// Levels are ordered: Required > Optional > Unnecessary > NotApplicable.
// Importance drives filtering and reporting weight, never matching identity.
type ImportanceLevel int

const (
	LevelNotApplicable ImportanceLevel = iota
	LevelUnnecessary
	LevelOptional
	LevelRequired
)

// AllLevels lists the levels from highest to lowest priority, for
// deterministic report rendering.
var AllLevels = []ImportanceLevel{LevelRequired, LevelOptional, LevelUnnecessary, LevelNotApplicable}

// String returns the configuration name of the level.
func (l ImportanceLevel) String() string {
	switch l {
	case LevelRequired:
		return "required"
	case LevelOptional:
		return "optional"
	case LevelUnnecessary:
		return "unnecessary"
	case LevelNotApplicable:
		return "not_applicable"
	default:
		return fmt.Sprintf("importance(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler so levels render as their
// configuration names in JSON, including as map keys.
func (l ImportanceLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *ImportanceLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseImportanceLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseImportanceLevel parses a configuration value into an ImportanceLevel.
// Unknown values are caller bugs and fail loudly.
func ParseImportanceLevel(s string) (ImportanceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "required":
		return LevelRequired, nil
	case "optional":
		return LevelOptional, nil
	case "unnecessary":
		return LevelUnnecessary, nil
	case "not_applicable", "notapplicable":
		return LevelNotApplicable, nil
	default:
		return LevelNotApplicable, fmt.Errorf("unrecognized importance level: %q", s)
	}
}

// ImportanceResolver looks up the importance level configured for a path.
// Paths are either an element type ("column") or a per-element override
// ("column/17"); the more specific path wins. The boolean reports whether
// the path is configured at all.
type ImportanceResolver interface {
	Level(path string) (ImportanceLevel, bool)
}

// MapResolver is the map-backed ImportanceResolver the application feeds
// from configuration.
type MapResolver map[string]ImportanceLevel

func (m MapResolver) Level(path string) (ImportanceLevel, bool) {
	l, ok := m[path]
	return l, ok
}

// resolveLevel applies the per-id override, then the type path, then the
// Optional default used whenever nothing is configured or the element
// reference is missing.
func resolveLevel(res ImportanceResolver, elementType, id string) ImportanceLevel {
	if res == nil {
		return LevelOptional
	}
	if id != "" {
		if l, ok := res.Level(elementType + "/" + id); ok {
			return l
		}
	}
	if l, ok := res.Level(elementType); ok {
		return l
	}
	return LevelOptional
}

// LevelStats are the per-level counts of one comparison.
type LevelStats struct {
	Matched int `json:"matched"`
	// Mismatch counts tolerance-mode pairs whose fields drifted beyond
	// tolerance. Always zero on the exact path.
	Mismatch int `json:"mismatch,omitempty"`
	OnlyA    int `json:"only_a"`
	OnlyB    int `json:"only_b"`
	// Differences is Mismatch+OnlyA+OnlyB, kept denormalized for report
	// rendering.
	Differences int `json:"differences"`
}

// ImportanceStats aggregates bucket counts per importance level. It is a
// read-side projection: producing it never changes bucket membership.
type ImportanceStats map[ImportanceLevel]*LevelStats

func (s ImportanceStats) bucket(l ImportanceLevel) *LevelStats {
	if b, ok := s[l]; ok {
		return b
	}
	b := &LevelStats{}
	s[l] = b
	return b
}

// ImportanceResult is an exact-match Result with every item annotated by its
// importance level, plus the per-level aggregation.
type ImportanceResult struct {
	Result
	Stats ImportanceStats `json:"stats"`
}

// ImportanceOptions configure MatchWithImportance. The resolver is always
// passed in explicitly; a nil resolver resolves everything to Optional.
type ImportanceOptions struct {
	// TargetLevels, when non-empty, filters both inputs to elements of these
	// levels before matching.
	TargetLevels []ImportanceLevel
	// Resolver supplies the configured importance mapping.
	Resolver ImportanceResolver
}

// MatchWithImportance runs the exact matcher with importance-level
// pre-filtering and post-annotation for one element type.
func MatchWithImportance(elemsA, elemsB []AttributeSource, nodesA, nodesB NodeMap, ex Extractor, elementType string, opts ImportanceOptions) ImportanceResult {
	if len(opts.TargetLevels) > 0 {
		targets := make(map[ImportanceLevel]struct{}, len(opts.TargetLevels))
		for _, l := range opts.TargetLevels {
			targets[l] = struct{}{}
		}
		elemsA = filterByLevel(elemsA, elementType, opts.Resolver, targets)
		elemsB = filterByLevel(elemsB, elementType, opts.Resolver, targets)
	}

	result := ImportanceResult{
		Result: Match(elemsA, elemsB, nodesA, nodesB, ex),
		Stats:  make(ImportanceStats),
	}

	for i := range result.Matched {
		level := resolveLevel(opts.Resolver, elementType, result.Matched[i].A.ID)
		result.Matched[i].A.Importance = level
		result.Matched[i].B.Importance = level
		result.Stats.bucket(level).Matched++
	}
	for i := range result.OnlyA {
		level := resolveLevel(opts.Resolver, elementType, result.OnlyA[i].ID)
		result.OnlyA[i].Importance = level
		b := result.Stats.bucket(level)
		b.OnlyA++
		b.Differences++
	}
	for i := range result.OnlyB {
		level := resolveLevel(opts.Resolver, elementType, result.OnlyB[i].ID)
		result.OnlyB[i].Importance = level
		b := result.Stats.bucket(level)
		b.OnlyB++
		b.Differences++
	}

	return result
}

func filterByLevel(elems []AttributeSource, elementType string, res ImportanceResolver, targets map[ImportanceLevel]struct{}) []AttributeSource {
	kept := make([]AttributeSource, 0, len(elems))
	for _, rec := range elems {
		id, _ := rec.Get(AttrID)
		if _, ok := targets[resolveLevel(res, elementType, id)]; ok {
			kept = append(kept, rec)
		}
	}
	return kept
}

// ToleranceImportanceResult is a ToleranceResult with every item annotated by
// its importance level, plus the per-level aggregation.
type ToleranceImportanceResult struct {
	ToleranceResult
	Stats ImportanceStats `json:"stats"`
}

// MatchToleranceWithImportance runs the tolerance matcher with the same
// importance-level pre-filtering and post-annotation as MatchWithImportance.
// Pairs carry side A's level on both sides; exact and within-tolerance pairs
// count as matched, mismatch pairs as differences.
func MatchToleranceWithImportance(elemsA, elemsB []AttributeSource, nodesA, nodesB NodeMap, ex Extractor, elementType string, cfg ToleranceConfig, cmp FieldComparator, opts ImportanceOptions) ToleranceImportanceResult {
	if len(opts.TargetLevels) > 0 {
		targets := make(map[ImportanceLevel]struct{}, len(opts.TargetLevels))
		for _, l := range opts.TargetLevels {
			targets[l] = struct{}{}
		}
		elemsA = filterByLevel(elemsA, elementType, opts.Resolver, targets)
		elemsB = filterByLevel(elemsB, elementType, opts.Resolver, targets)
	}

	result := ToleranceImportanceResult{
		ToleranceResult: MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, ex, cfg, cmp),
		Stats:           make(ImportanceStats),
	}

	annotatePairs := func(pairs []Pair, count func(*LevelStats)) {
		for i := range pairs {
			level := resolveLevel(opts.Resolver, elementType, pairs[i].A.ID)
			pairs[i].A.Importance = level
			pairs[i].B.Importance = level
			count(result.Stats.bucket(level))
		}
	}
	annotatePairs(result.Exact, func(b *LevelStats) { b.Matched++ })
	annotatePairs(result.WithinTolerance, func(b *LevelStats) { b.Matched++ })
	annotatePairs(result.Mismatch, func(b *LevelStats) {
		b.Mismatch++
		b.Differences++
	})

	for i := range result.OnlyA {
		level := resolveLevel(opts.Resolver, elementType, result.OnlyA[i].ID)
		result.OnlyA[i].Importance = level
		b := result.Stats.bucket(level)
		b.OnlyA++
		b.Differences++
	}
	for i := range result.OnlyB {
		level := resolveLevel(opts.Resolver, elementType, result.OnlyB[i].ID)
		result.OnlyB[i].Importance = level
		b := result.Stats.bucket(level)
		b.OnlyB++
		b.Differences++
	}

	return result
}
