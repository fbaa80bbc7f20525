package model

import (
	"model-diff/core/compare"
)

// Shape is the geometric kind of an element type, selecting which extractor
// resolves its identity.
type Shape int

const (
	// ShapePoint: single node reference (footings).
	ShapePoint Shape = iota
	// ShapeLine: two node references, undirected (framing members).
	ShapeLine
	// ShapePolygon: ordered node-id list plus disambiguator tags (planar).
	ShapePolygon
)

// Profile binds one element type name to the attributes that carry its
// geometry. The registry below is the single place where document vocabulary
// meets the extractors.
type Profile struct {
	// Type is the element type name as it appears in the document and in
	// importance paths.
	Type  string
	Shape Shape

	// NodeAttr holds the node reference for point shapes.
	NodeAttr string
	// StartAttr and EndAttr hold the two references for line shapes. For
	// vertical members these are the bottom and top attributes.
	StartAttr string
	EndAttr   string
	// NodesAttr holds the ordered vertex list for polygon shapes, TagAttrs
	// the disambiguator attributes appended to the key.
	NodesAttr string
	TagAttrs  []string

	// Fallback marks line types that tolerate the legacy single-node
	// encoding (plan node + top level).
	Fallback      bool
	FallbackNode  string
	FallbackLevel string
}

// NewExtractor builds the extractor for this profile. fallbackLength is the
// synthesized member length for profiles with the single-node fallback.
func (p Profile) NewExtractor(cfg compare.ExtractorConfig, fallbackLength float64) compare.Extractor {
	switch p.Shape {
	case ShapePoint:
		return compare.NewPointExtractor(cfg, p.NodeAttr)
	case ShapePolygon:
		return compare.NewPolygonExtractor(cfg, p.NodesAttr, p.TagAttrs)
	default:
		var fallback *compare.LineFallback
		if p.Fallback {
			fallback = &compare.LineFallback{
				NodeAttr:      p.FallbackNode,
				LevelAttr:     p.FallbackLevel,
				DefaultLength: fallbackLength,
			}
		}
		return compare.NewLineExtractor(cfg, p.StartAttr, p.EndAttr, fallback)
	}
}

// DefaultProfiles returns the registry of known element types in reporting
// order. Comparisons iterate this slice, so the order is stable across runs.
func DefaultProfiles() []Profile {
	return []Profile{
		{Type: "column", Shape: ShapeLine, StartAttr: "id_node_bottom", EndAttr: "id_node_top"},
		{Type: "post", Shape: ShapeLine, StartAttr: "id_node_bottom", EndAttr: "id_node_top"},
		{Type: "girder", Shape: ShapeLine, StartAttr: "id_node_start", EndAttr: "id_node_end"},
		{Type: "beam", Shape: ShapeLine, StartAttr: "id_node_start", EndAttr: "id_node_end"},
		{Type: "brace", Shape: ShapeLine, StartAttr: "id_node_start", EndAttr: "id_node_end"},
		{
			Type: "pile", Shape: ShapeLine,
			StartAttr: "id_node_start", EndAttr: "id_node_end",
			Fallback: true, FallbackNode: "id_node", FallbackLevel: "level_top",
		},
		{Type: "footing", Shape: ShapePoint, NodeAttr: "id_node"},
		{Type: "slab", Shape: ShapePolygon, NodesAttr: "node_ids", TagAttrs: []string{"id_floor", "id_section"}},
		{Type: "wall", Shape: ShapePolygon, NodesAttr: "node_ids", TagAttrs: []string{"id_floor", "id_section"}},
	}
}

// ProfileFor looks up a profile by element type name.
func ProfileFor(elementType string) (Profile, bool) {
	for _, p := range DefaultProfiles() {
		if p.Type == elementType {
			return p, true
		}
	}
	return Profile{}, false
}
