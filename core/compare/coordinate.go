package compare

import "math"

// Coordinate is a 3D point in model space. Units follow the source model
// (millimetres for the structural models this service handles).
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsFinite reports whether all three axes are finite numbers. Coordinates
// with NaN or Inf axes cannot be placed and never produce an identity key.
func (c Coordinate) IsFinite() bool {
	return isFinite(c.X) && isFinite(c.Y) && isFinite(c.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NodeMap maps node ids to their coordinates. One map exists per model side
// and is a read-only input for the duration of a comparison call.
type NodeMap map[string]Coordinate
