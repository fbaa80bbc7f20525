package compare

import (
	"sort"
	"strconv"
	"strings"
)

// Delimiters for the canonical key encoding. Axis values join with axisSep,
// per-point keys join with pointSep, disambiguator tags append with tagSep.
const (
	axisSep  = ","
	pointSep = "|"
	tagSep   = ";"
)

// guidPrefix marks keys derived from an external identifier so they can
// never collide with a spatial key.
const guidPrefix = "guid:"

// PointKey encodes a coordinate as a canonical string key with each axis
// formatted to exactly precision decimal digits. It returns ok=false when
// any axis is not finite; callers must treat that as "cannot place this
// element" rather than an error.
func PointKey(c Coordinate, precision int) (string, bool) {
	if !c.IsFinite() {
		return "", false
	}
	var b strings.Builder
	b.WriteString(formatAxis(c.X, precision))
	b.WriteString(axisSep)
	b.WriteString(formatAxis(c.Y, precision))
	b.WriteString(axisSep)
	b.WriteString(formatAxis(c.Z, precision))
	return b.String(), true
}

// formatAxis renders one axis value. Values that round to zero drop the
// sign, so -0.0001 and 0.0001 collide at precision 0 like any other pair
// equal within rounding.
func formatAxis(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if s[0] != '-' {
		return s
	}
	for _, r := range s[1:] {
		if r != '0' && r != '.' {
			return s
		}
	}
	return s[1:]
}

// LineKey encodes a two-point segment. The per-endpoint keys are sorted
// lexicographically before joining, so A->B and B->A segments compare equal.
func LineKey(a, b Coordinate, precision int) (string, bool) {
	ka, ok := PointKey(a, precision)
	if !ok {
		return "", false
	}
	kb, ok := PointKey(b, precision)
	if !ok {
		return "", false
	}
	if kb < ka {
		ka, kb = kb, ka
	}
	return ka + pointSep + kb, true
}

// PolygonKey encodes a vertex ring. Vertex keys are sorted so the key is
// independent of enumeration direction and winding; the disambiguator tags
// (floor id, section id, ...) are appended afterwards so two geometrically
// identical polygons in different semantic groupings stay distinct.
func PolygonKey(vertices []Coordinate, tags []string, precision int) (string, bool) {
	if len(vertices) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(vertices))
	for _, v := range vertices {
		k, ok := PointKey(v, precision)
		if !ok {
			return "", false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strings.Join(keys, pointSep))
	for _, tag := range tags {
		b.WriteString(tagSep)
		b.WriteString(tag)
	}
	return b.String(), true
}
