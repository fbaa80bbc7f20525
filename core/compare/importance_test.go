package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImportanceLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    ImportanceLevel
		wantErr bool
	}{
		{"required", LevelRequired, false},
		{"Optional", LevelOptional, false},
		{"unnecessary", LevelUnnecessary, false},
		{"not_applicable", LevelNotApplicable, false},
		{"critical", LevelNotApplicable, true},
		{"", LevelNotApplicable, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImportanceLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportanceLevel_Ordering(t *testing.T) {
	assert.Greater(t, LevelRequired, LevelOptional)
	assert.Greater(t, LevelOptional, LevelUnnecessary)
	assert.Greater(t, LevelUnnecessary, LevelNotApplicable)
}

func TestMatchWithImportance(t *testing.T) {
	nodes := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0},
		"n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 2000, Y: 0, Z: 0},
		"n4": {X: 3000, Y: 0, Z: 0},
	}
	resolver := MapResolver{
		"column":    LevelRequired,
		"column/a3": LevelUnnecessary, // per-element override
	}

	elemsA := []AttributeSource{
		lineRec("a1", "n1", "n2"),
		lineRec("a2", "n2", "n3"),
		lineRec("a3", "n3", "n4"),
	}
	elemsB := []AttributeSource{
		lineRec("b1", "n1", "n2"),
	}

	t.Run("Filters To Target Levels", func(t *testing.T) {
		r := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "column", ImportanceOptions{
			TargetLevels: []ImportanceLevel{LevelRequired},
			Resolver:     resolver,
		})

		// a3 is overridden to unnecessary and filtered out entirely.
		assert.Len(t, r.Matched, 1)
		assert.Equal(t, []string{"a2"}, idsOf(r.OnlyA))
		assert.Empty(t, r.OnlyB)
	})

	t.Run("Annotates Every Bucket Item", func(t *testing.T) {
		r := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "column", ImportanceOptions{
			Resolver: resolver,
		})

		assert.Equal(t, LevelRequired, r.Matched[0].A.Importance)
		assert.Equal(t, LevelRequired, r.Matched[0].B.Importance)
		for _, e := range r.OnlyA {
			if e.ID == "a3" {
				assert.Equal(t, LevelUnnecessary, e.Importance)
			} else {
				assert.Equal(t, LevelRequired, e.Importance)
			}
		}
	})

	t.Run("Aggregates Per Level", func(t *testing.T) {
		r := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "column", ImportanceOptions{
			Resolver: resolver,
		})

		required := r.Stats[LevelRequired]
		assert.Equal(t, 1, required.Matched)
		assert.Equal(t, 1, required.OnlyA)
		assert.Equal(t, 0, required.OnlyB)
		assert.Equal(t, 1, required.Differences)

		unnecessary := r.Stats[LevelUnnecessary]
		assert.Equal(t, 1, unnecessary.OnlyA)
		assert.Equal(t, 1, unnecessary.Differences)
	})

	t.Run("Stats Never Change Membership", func(t *testing.T) {
		plain := Match(elemsA, elemsB, nodes, nodes, lineExtractor(0))
		annotated := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "column", ImportanceOptions{
			Resolver: resolver,
		})

		assert.Equal(t, len(plain.Matched), len(annotated.Matched))
		assert.Equal(t, idsOf(plain.OnlyA), idsOf(annotated.OnlyA))
		assert.Equal(t, idsOf(plain.OnlyB), idsOf(annotated.OnlyB))
	})

	t.Run("Unconfigured Types Default To Optional", func(t *testing.T) {
		r := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "girder", ImportanceOptions{
			Resolver: resolver,
		})
		assert.Equal(t, LevelOptional, r.Matched[0].A.Importance)
	})

	t.Run("Nil Resolver Defaults To Optional", func(t *testing.T) {
		r := MatchWithImportance(elemsA, elemsB, nodes, nodes, lineExtractor(0), "column", ImportanceOptions{})
		assert.Equal(t, LevelOptional, r.Matched[0].A.Importance)
	})
}

func TestMatchToleranceWithImportance(t *testing.T) {
	ex := NewLineExtractor(ExtractorConfig{Mode: KeyExternal, Precision: 3}, "id_node_start", "id_node_end", nil)
	nodesA := NodeMap{
		"n1": {X: 0, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 5000, Y: 0, Z: 0}, "n4": {X: 6000, Y: 0, Z: 0},
	}
	nodesB := NodeMap{
		"n1": {X: 0.2, Y: 0, Z: 0}, "n2": {X: 1000, Y: 0, Z: 0},
		"n3": {X: 5005, Y: 0, Z: 0}, "n4": {X: 6005, Y: 0, Z: 0},
	}
	resolver := MapResolver{"column": LevelRequired}
	cfg := ToleranceConfig{Enabled: true, Position: 1, Length: 1}

	elemsA := []AttributeSource{
		MapSource{AttrID: "a1", AttrGUID: "g-1", "id_node_start": "n1", "id_node_end": "n2"},
		MapSource{AttrID: "a2", AttrGUID: "g-2", "id_node_start": "n3", "id_node_end": "n4"},
	}
	elemsB := []AttributeSource{
		MapSource{AttrID: "b1", AttrGUID: "g-1", "id_node_start": "n1", "id_node_end": "n2"},
		MapSource{AttrID: "b2", AttrGUID: "g-2", "id_node_start": "n3", "id_node_end": "n4"},
	}

	r := MatchToleranceWithImportance(elemsA, elemsB, nodesA, nodesB, ex, "column", cfg, nil, ImportanceOptions{
		Resolver: resolver,
	})

	// g-1 drifted 0.2mm (within), g-2 drifted 5mm (mismatch).
	assert.Len(t, r.WithinTolerance, 1)
	assert.Len(t, r.Mismatch, 1)
	assert.Equal(t, LevelRequired, r.WithinTolerance[0].A.Importance)
	assert.Equal(t, LevelRequired, r.WithinTolerance[0].B.Importance)
	assert.Equal(t, LevelRequired, r.Mismatch[0].A.Importance)

	required := r.Stats[LevelRequired]
	assert.Equal(t, 1, required.Matched)
	assert.Equal(t, 1, required.Mismatch)
	assert.Equal(t, 1, required.Differences)

	t.Run("Filters Before Matching", func(t *testing.T) {
		filtered := MatchToleranceWithImportance(elemsA, elemsB, nodesA, nodesB, ex, "column", cfg, nil, ImportanceOptions{
			TargetLevels: []ImportanceLevel{LevelOptional},
			Resolver:     resolver,
		})
		assert.Empty(t, filtered.WithinTolerance)
		assert.Empty(t, filtered.Mismatch)
		assert.Empty(t, filtered.OnlyA)
		assert.Empty(t, filtered.OnlyB)
	})
}
