package models

import (
	"time"

	"model-diff/core/compare"
)

// ElementRef is the report-side reference to one element: enough to find it
// in the source model without carrying the full attribute bag.
type ElementRef struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name,omitempty"`
	GUID       string                  `json:"guid,omitempty"`
	Key        string                  `json:"key"`
	Importance compare.ImportanceLevel `json:"importance"`
}

// NewElementRef projects engine element data into a report reference.
func NewElementRef(d compare.ElementData) ElementRef {
	return ElementRef{
		ID:         d.ID,
		Name:       d.Name,
		GUID:       d.GUID,
		Key:        d.Key,
		Importance: d.Importance,
	}
}

// PairRef references a matched pair, side A and side B.
type PairRef struct {
	A ElementRef `json:"a"`
	B ElementRef `json:"b"`
}

// NewPairRefs projects engine pairs into report references.
func NewPairRefs(pairs []compare.Pair) []PairRef {
	refs := make([]PairRef, 0, len(pairs))
	for _, p := range pairs {
		refs = append(refs, PairRef{A: NewElementRef(p.A), B: NewElementRef(p.B)})
	}
	return refs
}

// NewElementRefs projects engine element data into report references.
func NewElementRefs(elems []compare.ElementData) []ElementRef {
	refs := make([]ElementRef, 0, len(elems))
	for _, e := range elems {
		refs = append(refs, NewElementRef(e))
	}
	return refs
}

// TypeReport is the per-element-type section of a report.
type TypeReport struct {
	Type            string                  `json:"type"`
	Exact           []PairRef               `json:"exact"`
	WithinTolerance []PairRef               `json:"within_tolerance,omitempty"`
	Mismatch        []PairRef               `json:"mismatch,omitempty"`
	OnlyA           []ElementRef            `json:"only_a"`
	OnlyB           []ElementRef            `json:"only_b"`
	Counts          compare.TypeOutcome     `json:"counts"`
	Levels          compare.ImportanceStats `json:"levels,omitempty"`
}

// ModelRef names one side of a comparison.
type ModelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Report is the full comparison result: per-type buckets plus the global
// roll-up. This is what gets stored under the run's report key and returned
// by the run endpoint.
type Report struct {
	RunID       string          `json:"run_id"`
	ModelA      ModelRef        `json:"model_a"`
	ModelB      ModelRef        `json:"model_b"`
	KeyMode     string          `json:"key_mode"`
	Precision   int             `json:"precision"`
	Tolerance   bool            `json:"tolerance"`
	Strict      bool            `json:"strict"`
	GeneratedAt time.Time       `json:"generated_at"`
	Types       []TypeReport    `json:"types"`
	Summary     compare.Summary `json:"summary"`
}
