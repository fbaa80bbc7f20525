package compare

import (
	"fmt"
	"strings"
)

// Config is the application-level comparison settings bag, bound from the
// environment the same way as the other partial configurations. The engine
// functions never read it directly; the caller resolves it into explicit
// arguments through the parse methods below, which fail loudly on
// unrecognized values.
type Config struct {
	// KeyMode selects the identity strategy: spatial or external.
	KeyMode string `mapstructure:"key_mode" default:"spatial"`
	// Precision is the number of decimal digits in spatial keys. 3 matches
	// the usual working precision of millimetre models.
	Precision int `mapstructure:"precision" default:"3"`
	// ToleranceEnabled turns the tolerance matcher on.
	ToleranceEnabled bool `mapstructure:"tolerance_enabled" default:"false"`
	// Strict forces exact matching even when tolerance is enabled.
	Strict bool `mapstructure:"strict" default:"false"`
	// PositionToleranceMM is the per-axis coordinate tolerance.
	PositionToleranceMM float64 `mapstructure:"position_tolerance_mm" default:"1"`
	// LengthToleranceMM is the member-length tolerance.
	LengthToleranceMM float64 `mapstructure:"length_tolerance_mm" default:"1"`
	// Importance maps paths to levels as "path=level" pairs separated by
	// commas, e.g. "column=required,slab/7=optional".
	Importance string `mapstructure:"importance" default:""`
	// TargetLevels restricts comparison to elements of these levels, as a
	// comma-separated list. Empty compares everything.
	TargetLevels string `mapstructure:"target_levels" default:""`
	// FallbackLengthMM is the default member length for the single-node
	// line synthesis.
	FallbackLengthMM float64 `mapstructure:"fallback_length_mm" default:"1000"`
}

// Mode parses the configured key mode.
func (c Config) Mode() (KeyMode, error) {
	return ParseKeyMode(c.KeyMode)
}

// Tolerance builds the per-run tolerance policy.
func (c Config) Tolerance() ToleranceConfig {
	return ToleranceConfig{
		Enabled:    c.ToleranceEnabled,
		StrictMode: c.Strict,
		Position:   c.PositionToleranceMM,
		Length:     c.LengthToleranceMM,
	}
}

// Resolver parses the configured importance mapping.
func (c Config) Resolver() (MapResolver, error) {
	resolver := make(MapResolver)
	if strings.TrimSpace(c.Importance) == "" {
		return resolver, nil
	}
	for _, pair := range strings.Split(c.Importance, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		path, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid importance mapping %q: want path=level", pair)
		}
		level, err := ParseImportanceLevel(value)
		if err != nil {
			return nil, fmt.Errorf("invalid importance mapping %q: %w", pair, err)
		}
		resolver[strings.TrimSpace(path)] = level
	}
	return resolver, nil
}

// Targets parses the configured target level list.
func (c Config) Targets() ([]ImportanceLevel, error) {
	if strings.TrimSpace(c.TargetLevels) == "" {
		return nil, nil
	}
	var levels []ImportanceLevel
	for _, part := range strings.Split(c.TargetLevels, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		level, err := ParseImportanceLevel(part)
		if err != nil {
			return nil, fmt.Errorf("invalid target level list: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}
