package compare

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Common attribute names every element record carries regardless of shape.
const (
	AttrID   = "id"
	AttrName = "name"
	AttrGUID = "guid"
)

// KeyMode selects the identity strategy for a comparison run.
type KeyMode int

const (
	// KeySpatial derives identity from resolved geometry.
	KeySpatial KeyMode = iota
	// KeyExternal derives identity from the element's external identifier
	// (GUID) when present, falling back to spatial per element otherwise.
	KeyExternal
)

// String returns the configuration name of the mode.
func (m KeyMode) String() string {
	switch m {
	case KeySpatial:
		return "spatial"
	case KeyExternal:
		return "external"
	default:
		return fmt.Sprintf("keymode(%d)", int(m))
	}
}

// ParseKeyMode parses a configuration value into a KeyMode. Unknown values
// are caller bugs and fail loudly.
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spatial":
		return KeySpatial, nil
	case "external", "guid":
		return KeyExternal, nil
	default:
		return KeySpatial, fmt.Errorf("unrecognized comparison key mode: %q", s)
	}
}

// ExtractorConfig carries the settings shared by all shape extractors.
type ExtractorConfig struct {
	// Mode selects spatial or external identity.
	Mode KeyMode
	// Precision is the number of decimal digits in spatial keys.
	Precision int
	// Logger receives extraction diagnostics. Nil means no logging.
	Logger *zap.Logger
}

func (c ExtractorConfig) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ElementData carries enough of a source element for downstream consumers
// (reports, persistence, rendering) without re-touching the original record.
type ElementData struct {
	// ID is the element's model-local identifier.
	ID string `json:"id"`
	// Name is the optional display name.
	Name string `json:"name,omitempty"`
	// GUID is the optional external identifier.
	GUID string `json:"guid,omitempty"`
	// Key is the identity key the element resolved to.
	Key string `json:"key"`
	// NodeIDs are the referenced node ids in reference order.
	NodeIDs []string `json:"node_ids,omitempty"`
	// Points are the resolved coordinates in reference order. May be empty
	// when identity came from a GUID and the geometry was unresolvable.
	Points []Coordinate `json:"points,omitempty"`
	// Tags are the polygon disambiguator values in declared order.
	Tags []string `json:"tags,omitempty"`
	// Importance is filled by the importance classifier, never by extraction.
	Importance ImportanceLevel `json:"importance"`
}

// Extractor resolves one element record into its identity key and carried
// data. ok=false means the element is unresolvable and must be dropped from
// all buckets; the extractor has already logged why.
type Extractor interface {
	Extract(rec AttributeSource, nodes NodeMap) (key string, data ElementData, ok bool)
	// Precision reports the spatial key precision, for callers that need to
	// build a matching field comparator.
	Precision() int
}

// geometry is the shape-resolution result shared by the extractors.
type geometry struct {
	points  []Coordinate
	nodeIDs []string
	tags    []string
}

func baseData(rec AttributeSource) ElementData {
	var d ElementData
	d.ID, _ = rec.Get(AttrID)
	d.Name, _ = rec.Get(AttrName)
	if g, ok := rec.Get(AttrGUID); ok {
		d.GUID = strings.TrimSpace(g)
	}
	return d
}

// externalKey returns the GUID-derived key when the mode asks for it and the
// element carries one. The second return reports whether external identity
// applies; when the mode is external but the GUID is absent the caller falls
// back to spatial and this function has already logged the warning.
func externalKey(cfg ExtractorConfig, data ElementData) (string, bool) {
	if cfg.Mode != KeyExternal {
		return "", false
	}
	if data.GUID != "" {
		return guidPrefix + data.GUID, true
	}
	cfg.logger().Warn("external identifier missing, falling back to spatial key",
		zap.String("element", data.ID))
	return "", false
}

// PointExtractor resolves single-node elements (footings).
type PointExtractor struct {
	cfg ExtractorConfig
	// NodeAttr is the attribute holding the node reference.
	NodeAttr string
}

// NewPointExtractor builds a point extractor for the given node attribute.
func NewPointExtractor(cfg ExtractorConfig, nodeAttr string) *PointExtractor {
	return &PointExtractor{cfg: cfg, NodeAttr: nodeAttr}
}

func (e *PointExtractor) Precision() int { return e.cfg.Precision }

func (e *PointExtractor) Extract(rec AttributeSource, nodes NodeMap) (string, ElementData, bool) {
	data := baseData(rec)

	if key, ok := externalKey(e.cfg, data); ok {
		if geo, reason := e.resolve(rec, nodes); reason == "" {
			data.NodeIDs, data.Points = geo.nodeIDs, geo.points
		}
		data.Key = key
		return key, data, true
	}

	geo, reason := e.resolve(rec, nodes)
	if reason != "" {
		e.cfg.logger().Warn("dropping unresolvable point element",
			zap.String("element", data.ID), zap.String("reason", reason))
		return "", data, false
	}
	data.NodeIDs, data.Points = geo.nodeIDs, geo.points

	key, ok := PointKey(geo.points[0], e.cfg.Precision)
	if !ok {
		e.cfg.logger().Warn("dropping point element with non-finite coordinates",
			zap.String("element", data.ID), zap.String("node", geo.nodeIDs[0]))
		return "", data, false
	}
	data.Key = key
	return key, data, true
}

func (e *PointExtractor) resolve(rec AttributeSource, nodes NodeMap) (geometry, string) {
	nodeID, ok := rec.Get(e.NodeAttr)
	nodeID = strings.TrimSpace(nodeID)
	if !ok || nodeID == "" {
		return geometry{}, "missing node reference " + e.NodeAttr
	}
	node, found := nodes[nodeID]
	if !found {
		return geometry{}, "node " + nodeID + " not found"
	}
	return geometry{points: []Coordinate{node}, nodeIDs: []string{nodeID}}, ""
}

// LineFallback describes the legacy single-node encoding some line kinds
// (piles) use instead of explicit start/end references: a plan-position node
// plus a numeric top-level attribute. The synthesized segment starts at the
// node's plan position at that level and extends DefaultLength straight down.
type LineFallback struct {
	NodeAttr      string
	LevelAttr     string
	DefaultLength float64
}

// LineExtractor resolves two-node elements (columns, girders, beams, braces,
// piles, posts).
type LineExtractor struct {
	cfg ExtractorConfig
	// StartAttr and EndAttr hold the two node references. For verticals the
	// profile maps these to the bottom/top attributes.
	StartAttr string
	EndAttr   string
	// Fallback enables the single-node synthesis when non-nil.
	Fallback *LineFallback
}

// NewLineExtractor builds a line extractor for the given node attributes.
func NewLineExtractor(cfg ExtractorConfig, startAttr, endAttr string, fallback *LineFallback) *LineExtractor {
	return &LineExtractor{cfg: cfg, StartAttr: startAttr, EndAttr: endAttr, Fallback: fallback}
}

func (e *LineExtractor) Precision() int { return e.cfg.Precision }

func (e *LineExtractor) Extract(rec AttributeSource, nodes NodeMap) (string, ElementData, bool) {
	data := baseData(rec)

	if key, ok := externalKey(e.cfg, data); ok {
		if geo, reason := e.resolve(rec, nodes, data.ID); reason == "" {
			data.NodeIDs, data.Points = geo.nodeIDs, geo.points
		}
		data.Key = key
		return key, data, true
	}

	geo, reason := e.resolve(rec, nodes, data.ID)
	if reason != "" {
		e.cfg.logger().Warn("dropping unresolvable line element",
			zap.String("element", data.ID), zap.String("reason", reason))
		return "", data, false
	}
	data.NodeIDs, data.Points = geo.nodeIDs, geo.points

	key, ok := LineKey(geo.points[0], geo.points[1], e.cfg.Precision)
	if !ok {
		e.cfg.logger().Warn("dropping line element with non-finite coordinates",
			zap.String("element", data.ID))
		return "", data, false
	}
	data.Key = key
	return key, data, true
}

func (e *LineExtractor) resolve(rec AttributeSource, nodes NodeMap, elementID string) (geometry, string) {
	startID, _ := rec.Get(e.StartAttr)
	endID, _ := rec.Get(e.EndAttr)
	startID = strings.TrimSpace(startID)
	endID = strings.TrimSpace(endID)

	if startID != "" && endID != "" {
		start, found := nodes[startID]
		if !found {
			return geometry{}, "node " + startID + " not found"
		}
		end, found := nodes[endID]
		if !found {
			return geometry{}, "node " + endID + " not found"
		}
		return geometry{points: []Coordinate{start, end}, nodeIDs: []string{startID, endID}}, ""
	}

	// Legacy 1-node encoding: a data-completion heuristic, not a
	// measurement, so it is logged whenever it fires.
	if e.Fallback != nil {
		nodeID, _ := rec.Get(e.Fallback.NodeAttr)
		nodeID = strings.TrimSpace(nodeID)
		levelRaw, _ := rec.Get(e.Fallback.LevelAttr)
		level, err := strconv.ParseFloat(strings.TrimSpace(levelRaw), 64)
		if nodeID != "" && levelRaw != "" && err == nil {
			node, found := nodes[nodeID]
			if !found {
				return geometry{}, "node " + nodeID + " not found"
			}
			head := Coordinate{X: node.X, Y: node.Y, Z: level}
			foot := Coordinate{X: node.X, Y: node.Y, Z: level - e.Fallback.DefaultLength}
			e.cfg.logger().Info("synthesized line endpoints from single-node encoding",
				zap.String("element", elementID),
				zap.String("node", nodeID),
				zap.Float64("top_level", level),
				zap.Float64("default_length", e.Fallback.DefaultLength))
			return geometry{points: []Coordinate{head, foot}, nodeIDs: []string{nodeID}}, ""
		}
	}

	return geometry{}, "missing node references " + e.StartAttr + "/" + e.EndAttr
}

// PolygonExtractor resolves planar elements (slabs, walls) from an ordered
// node-id list plus disambiguator attributes.
type PolygonExtractor struct {
	cfg ExtractorConfig
	// NodesAttr holds the ordered node-id list (whitespace separated).
	NodesAttr string
	// TagAttrs are the disambiguator attributes appended to the key in
	// declared order. Absent attributes contribute an empty tag.
	TagAttrs []string
}

// NewPolygonExtractor builds a polygon extractor for the given attributes.
func NewPolygonExtractor(cfg ExtractorConfig, nodesAttr string, tagAttrs []string) *PolygonExtractor {
	return &PolygonExtractor{cfg: cfg, NodesAttr: nodesAttr, TagAttrs: tagAttrs}
}

func (e *PolygonExtractor) Precision() int { return e.cfg.Precision }

func (e *PolygonExtractor) Extract(rec AttributeSource, nodes NodeMap) (string, ElementData, bool) {
	data := baseData(rec)

	if key, ok := externalKey(e.cfg, data); ok {
		if geo, reason := e.resolve(rec, nodes); reason == "" {
			data.NodeIDs, data.Points, data.Tags = geo.nodeIDs, geo.points, geo.tags
		}
		data.Key = key
		return key, data, true
	}

	geo, reason := e.resolve(rec, nodes)
	if reason != "" {
		e.cfg.logger().Warn("dropping unresolvable polygon element",
			zap.String("element", data.ID), zap.String("reason", reason))
		return "", data, false
	}
	data.NodeIDs, data.Points, data.Tags = geo.nodeIDs, geo.points, geo.tags

	key, ok := PolygonKey(geo.points, geo.tags, e.cfg.Precision)
	if !ok {
		e.cfg.logger().Warn("dropping polygon element with non-finite coordinates",
			zap.String("element", data.ID))
		return "", data, false
	}
	data.Key = key
	return key, data, true
}

func (e *PolygonExtractor) resolve(rec AttributeSource, nodes NodeMap) (geometry, string) {
	raw, ok := rec.Get(e.NodesAttr)
	if !ok || strings.TrimSpace(raw) == "" {
		return geometry{}, "missing node order list " + e.NodesAttr
	}
	ids := strings.Fields(raw)
	if len(ids) < 3 {
		return geometry{}, fmt.Sprintf("vertex count %d below 3", len(ids))
	}

	points := make([]Coordinate, 0, len(ids))
	for _, id := range ids {
		node, found := nodes[id]
		if !found {
			return geometry{}, "node " + id + " not found"
		}
		points = append(points, node)
	}

	tags := make([]string, 0, len(e.TagAttrs))
	for _, attr := range e.TagAttrs {
		v, _ := rec.Get(attr)
		tags = append(tags, strings.TrimSpace(v))
	}
	return geometry{points: points, nodeIDs: ids, tags: tags}, ""
}
