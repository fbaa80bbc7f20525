package compare

// TypeOutcome holds the bucket counts of one element type's comparison.
type TypeOutcome struct {
	Type            string `json:"type"`
	Exact           int    `json:"exact"`
	WithinTolerance int    `json:"within_tolerance"`
	Mismatch        int    `json:"mismatch"`
	OnlyA           int    `json:"only_a"`
	OnlyB           int    `json:"only_b"`
	DroppedA        int    `json:"dropped_a"`
	DroppedB        int    `json:"dropped_b"`
}

// Matched is the three-way-compatible matched count: exact plus within
// tolerance.
func (o TypeOutcome) Matched() int {
	return o.Exact + o.WithinTolerance
}

// Differences counts everything a reviewer has to look at.
func (o TypeOutcome) Differences() int {
	return o.Mismatch + o.OnlyA + o.OnlyB
}

// OutcomeFromResult projects an exact-match result into counts.
func OutcomeFromResult(elementType string, r Result) TypeOutcome {
	return TypeOutcome{
		Type:     elementType,
		Exact:    len(r.Matched),
		OnlyA:    len(r.OnlyA),
		OnlyB:    len(r.OnlyB),
		DroppedA: r.DroppedA,
		DroppedB: r.DroppedB,
	}
}

// OutcomeFromTolerance projects a tolerance-match result into counts.
func OutcomeFromTolerance(elementType string, r ToleranceResult) TypeOutcome {
	return TypeOutcome{
		Type:            elementType,
		Exact:           len(r.Exact),
		WithinTolerance: len(r.WithinTolerance),
		Mismatch:        len(r.Mismatch),
		OnlyA:           len(r.OnlyA),
		OnlyB:           len(r.OnlyB),
		DroppedA:        r.DroppedA,
		DroppedB:        r.DroppedB,
	}
}

// Summary rolls comparison outcomes up across element types. It is a pure
// read-side projection; producing it never changes bucket membership.
type Summary struct {
	Types           []TypeOutcome   `json:"types"`
	Exact           int             `json:"exact"`
	WithinTolerance int             `json:"within_tolerance"`
	Mismatch        int             `json:"mismatch"`
	OnlyA           int             `json:"only_a"`
	OnlyB           int             `json:"only_b"`
	Dropped         int             `json:"dropped"`
	Differences     int             `json:"differences"`
	Levels          ImportanceStats `json:"levels,omitempty"`
}

// NewSummary returns an empty summary ready for Add calls.
func NewSummary() *Summary {
	return &Summary{Types: []TypeOutcome{}, Levels: make(ImportanceStats)}
}

// Add folds one element type's outcome into the roll-up.
func (s *Summary) Add(outcome TypeOutcome) {
	s.Types = append(s.Types, outcome)
	s.Exact += outcome.Exact
	s.WithinTolerance += outcome.WithinTolerance
	s.Mismatch += outcome.Mismatch
	s.OnlyA += outcome.OnlyA
	s.OnlyB += outcome.OnlyB
	s.Dropped += outcome.DroppedA + outcome.DroppedB
	s.Differences += outcome.Differences()
}

// MergeLevels folds one element type's importance stats into the roll-up.
func (s *Summary) MergeLevels(stats ImportanceStats) {
	for level, counts := range stats {
		b := s.Levels.bucket(level)
		b.Matched += counts.Matched
		b.Mismatch += counts.Mismatch
		b.OnlyA += counts.OnlyA
		b.OnlyB += counts.OnlyB
		b.Differences += counts.Differences
	}
}
