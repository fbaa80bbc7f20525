package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// shiftedNodes reproduces the canonical drift scenario: node n2 moved 0.2mm
// along X in model B.
func shiftedNodes() (NodeMap, NodeMap) {
	nodesA := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0},
		"n2": {X: 1000, Y: 0, Z: 0},
	}
	nodesB := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0},
		"n2": {X: 1000.2, Y: 0, Z: 0},
	}
	return nodesA, nodesB
}

func TestMatchWithTolerance_ShortCircuits(t *testing.T) {
	nodesA, nodesB := shiftedNodes()
	elemsA := []AttributeSource{lineRec("a1", "n1", "n2")}
	elemsB := []AttributeSource{lineRec("b1", "n1", "n2")}

	for _, tt := range []struct {
		name string
		cfg  ToleranceConfig
	}{
		{"Disabled", ToleranceConfig{Enabled: false}},
		{"Strict Mode", ToleranceConfig{Enabled: true, StrictMode: true}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			plain := Match(elemsA, elemsB, nodesA, nodesB, lineExtractor(3))
			tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3), tt.cfg, nil)

			assert.Equal(t, plain.Matched, tr.Exact)
			assert.Equal(t, plain.OnlyA, tr.OnlyA)
			assert.Equal(t, plain.OnlyB, tr.OnlyB)
			assert.Empty(t, tr.WithinTolerance)
			assert.Empty(t, tr.Mismatch)
		})
	}
}

func TestMatchWithTolerance_DriftScenarios(t *testing.T) {
	nodesA, nodesB := shiftedNodes()
	elemsA := []AttributeSource{lineRec("a1", "n1", "n2")}
	elemsB := []AttributeSource{lineRec("b1", "n1", "n2")}
	relaxed := ToleranceConfig{Enabled: true, Position: 1, Length: 1}

	t.Run("Integer Precision Collapses Drift To Exact", func(t *testing.T) {
		tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(0), relaxed, nil)
		assert.Len(t, tr.Exact, 1)
		assert.Empty(t, tr.WithinTolerance)
		assert.Empty(t, tr.OnlyA)
		assert.Empty(t, tr.OnlyB)
	})

	t.Run("Millimetre Precision Lands Within Tolerance", func(t *testing.T) {
		tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3), relaxed, nil)
		assert.Empty(t, tr.Exact)
		assert.Len(t, tr.WithinTolerance, 1)
		assert.Equal(t, "a1", tr.WithinTolerance[0].A.ID)
		assert.Equal(t, "b1", tr.WithinTolerance[0].B.ID)
		assert.Empty(t, tr.OnlyA)
		assert.Empty(t, tr.OnlyB)
	})

	t.Run("Exact Matcher Splits At Millimetre Precision", func(t *testing.T) {
		r := Match(elemsA, elemsB, nodesA, nodesB, lineExtractor(3))
		assert.Empty(t, r.Matched)
		assert.Equal(t, []string{"a1"}, idsOf(r.OnlyA))
		assert.Equal(t, []string{"b1"}, idsOf(r.OnlyB))
	})

	t.Run("Tolerance Narrower Than Drift Leaves Both Unmatched", func(t *testing.T) {
		narrow := ToleranceConfig{Enabled: true, Position: 0.1, Length: 0.1}
		tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3), narrow, nil)
		assert.Empty(t, tr.Exact)
		assert.Empty(t, tr.WithinTolerance)
		assert.Empty(t, tr.Mismatch)
		assert.Equal(t, []string{"a1"}, idsOf(tr.OnlyA))
		assert.Equal(t, []string{"b1"}, idsOf(tr.OnlyB))
	})

	t.Run("Widening Tolerance Never Shrinks The Matched View", func(t *testing.T) {
		narrow := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3),
			ToleranceConfig{Enabled: true, Position: 0.1, Length: 0.1}, nil)
		wide := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3), relaxed, nil)

		assert.GreaterOrEqual(t,
			len(wide.Exact)+len(wide.WithinTolerance),
			len(narrow.Exact)+len(narrow.WithinTolerance))
		assert.LessOrEqual(t,
			len(wide.OnlyA)+len(wide.OnlyB),
			len(narrow.OnlyA)+len(narrow.OnlyB))
	})
}

func TestMatchWithTolerance_MismatchPairing(t *testing.T) {
	// Same GUID on both sides, geometry drifted 5mm: one mismatch pair, not
	// one removal plus one addition.
	ex := NewLineExtractor(ExtractorConfig{Mode: KeyExternal, Precision: 3}, "id_node_start", "id_node_end", nil)
	nodesA := NodeMap{"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0}}
	nodesB := NodeMap{"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1005, Y: 0, Z: 0}}

	elemsA := []AttributeSource{MapSource{AttrID: "a1", AttrGUID: "g-1", "id_node_start": "n1", "id_node_end": "n2"}}
	elemsB := []AttributeSource{MapSource{AttrID: "b1", AttrGUID: "g-1", "id_node_start": "n1", "id_node_end": "n2"}}

	tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, ex,
		ToleranceConfig{Enabled: true, Position: 1, Length: 1}, nil)

	assert.Empty(t, tr.Exact)
	assert.Empty(t, tr.WithinTolerance)
	assert.Len(t, tr.Mismatch, 1)
	assert.Equal(t, "a1", tr.Mismatch[0].A.ID)
	assert.Equal(t, "b1", tr.Mismatch[0].B.ID)
	assert.Empty(t, tr.OnlyA)
	assert.Empty(t, tr.OnlyB)
}

func TestMatchWithTolerance_ConsumesCandidatesOnce(t *testing.T) {
	nodesA := NodeMap{"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0}}
	nodesB := NodeMap{
		"p1": {X: 0.2, Y: 0, Z: 0}, "p2": {X: 1000, Y: 0, Z: 0},
		"q1": {X: 0.3, Y: 0, Z: 0},
	}

	elemsA := []AttributeSource{lineRec("a1", "n1", "n2")}
	elemsB := []AttributeSource{
		lineRec("b1", "p1", "p2"),
		lineRec("b2", "q1", "p2"), // would also fit a1, but a1 is spent
	}

	tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3),
		ToleranceConfig{Enabled: true, Position: 1, Length: 1}, nil)

	assert.Len(t, tr.WithinTolerance, 1)
	assert.Equal(t, "b1", tr.WithinTolerance[0].B.ID)
	assert.Equal(t, []string{"b2"}, idsOf(tr.OnlyB))
	assert.Empty(t, tr.OnlyA)
}

func TestMatchWithTolerance_SameKeyScanOrder(t *testing.T) {
	nodes := NodeMap{"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0}}
	// Duplicate geometry on the A side: both share the identity key.
	elemsA := []AttributeSource{
		lineRec("a1", "n1", "n2"),
		lineRec("a2", "n1", "n2"),
	}
	elemsB := []AttributeSource{lineRec("b1", "n1", "n2")}

	tr := MatchWithTolerance(elemsA, elemsB, nodes, nodes, lineExtractor(3),
		ToleranceConfig{Enabled: true, Position: 1, Length: 1}, nil)

	assert.Len(t, tr.Exact, 1)
	assert.Equal(t, "a1", tr.Exact[0].A.ID, "first same-key candidate wins")
	assert.Equal(t, []string{"a2"}, idsOf(tr.OnlyA))
}

func TestMatchWithTolerance_TagsNeverMerge(t *testing.T) {
	ex := NewPolygonExtractor(ExtractorConfig{Precision: 0}, "node_ids", []string{"id_floor"})
	nodes := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0},
		"n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 1000, Y: 1000, Z: 0},
	}
	elemsA := []AttributeSource{MapSource{AttrID: "a1", "node_ids": "n1 n2 n3", "id_floor": "1"}}
	elemsB := []AttributeSource{MapSource{AttrID: "b1", "node_ids": "n1 n2 n3", "id_floor": "2"}}

	tr := MatchWithTolerance(elemsA, elemsB, nodes, nodes, ex,
		ToleranceConfig{Enabled: true, Position: 1000, Length: 1000}, nil)

	assert.Empty(t, tr.Exact)
	assert.Empty(t, tr.WithinTolerance)
	assert.Empty(t, tr.Mismatch)
	assert.Equal(t, []string{"a1"}, idsOf(tr.OnlyA))
	assert.Equal(t, []string{"b1"}, idsOf(tr.OnlyB))
}

func TestMatchWithTolerance_Partition(t *testing.T) {
	nodesA := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 2000, Y: 0, Z: 0}, "n4": {X: 3000, Y: 0, Z: 0},
	}
	nodesB := NodeMap{
		"n1": {X: 0.2, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 2000, Y: 0, Z: 0}, "n5": {X: 9000, Y: 0, Z: 0},
	}
	elemsA := []AttributeSource{
		lineRec("a1", "n1", "n2"),
		lineRec("a2", "n2", "n3"),
		lineRec("a3", "n3", "n4"),
	}
	elemsB := []AttributeSource{
		lineRec("b1", "n1", "n2"),
		lineRec("b2", "n2", "n3"),
		lineRec("b3", "n3", "n5"),
		lineRec("b4", "n1", "ghost"),
	}

	tr := MatchWithTolerance(elemsA, elemsB, nodesA, nodesB, lineExtractor(3),
		ToleranceConfig{Enabled: true, Position: 1, Length: 1}, nil)

	resolvedA := len(elemsA) - tr.DroppedA
	resolvedB := len(elemsB) - tr.DroppedB
	pairs := len(tr.Exact) + len(tr.WithinTolerance) + len(tr.Mismatch)
	assert.Equal(t, resolvedA+resolvedB, 2*pairs+len(tr.OnlyA)+len(tr.OnlyB))
	assert.Equal(t, 1, tr.DroppedB)
}
