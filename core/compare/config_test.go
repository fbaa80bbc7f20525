package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Mode(t *testing.T) {
	for _, tt := range []struct {
		raw     string
		want    KeyMode
		wantErr bool
	}{
		{"spatial", KeySpatial, false},
		{"external", KeyExternal, false},
		{"guid", KeyExternal, false},
		{" External ", KeyExternal, false},
		{"positional", KeySpatial, true},
	} {
		t.Run(tt.raw, func(t *testing.T) {
			mode, err := Config{KeyMode: tt.raw}.Mode()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestConfig_Tolerance(t *testing.T) {
	cfg := Config{
		ToleranceEnabled:    true,
		Strict:              false,
		PositionToleranceMM: 2.5,
		LengthToleranceMM:   4,
	}

	tol := cfg.Tolerance()
	assert.True(t, tol.Enabled)
	assert.False(t, tol.StrictMode)
	assert.Equal(t, 2.5, tol.Position)
	assert.Equal(t, 4.0, tol.Length)
}

func TestConfig_Resolver(t *testing.T) {
	t.Run("Empty Mapping", func(t *testing.T) {
		resolver, err := Config{}.Resolver()
		assert.NoError(t, err)
		assert.Empty(t, resolver)
	})

	t.Run("Parses Pairs", func(t *testing.T) {
		resolver, err := Config{
			Importance: "column=required, slab/7=optional ,wall=not_applicable",
		}.Resolver()
		assert.NoError(t, err)
		assert.Equal(t, MapResolver{
			"column": LevelRequired,
			"slab/7": LevelOptional,
			"wall":   LevelNotApplicable,
		}, resolver)
	})

	t.Run("Tolerates Trailing Comma", func(t *testing.T) {
		resolver, err := Config{Importance: "pile=unnecessary,"}.Resolver()
		assert.NoError(t, err)
		assert.Equal(t, MapResolver{"pile": LevelUnnecessary}, resolver)
	})

	t.Run("Rejects Pair Without Separator", func(t *testing.T) {
		_, err := Config{Importance: "column"}.Resolver()
		assert.ErrorContains(t, err, "want path=level")
	})

	t.Run("Rejects Unknown Level", func(t *testing.T) {
		_, err := Config{Importance: "column=critical"}.Resolver()
		assert.ErrorContains(t, err, "critical")
	})
}

func TestConfig_Targets(t *testing.T) {
	t.Run("Empty Means All", func(t *testing.T) {
		levels, err := Config{}.Targets()
		assert.NoError(t, err)
		assert.Nil(t, levels)
	})

	t.Run("Parses List", func(t *testing.T) {
		levels, err := Config{TargetLevels: "required, optional"}.Targets()
		assert.NoError(t, err)
		assert.Equal(t, []ImportanceLevel{LevelRequired, LevelOptional}, levels)
	})

	t.Run("Rejects Unknown Level", func(t *testing.T) {
		_, err := Config{TargetLevels: "required,sometimes"}.Targets()
		assert.ErrorContains(t, err, "invalid target level list")
	})
}
