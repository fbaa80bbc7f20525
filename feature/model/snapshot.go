package model

import (
	"math"

	"model-diff/core/compare"
	"model-diff/feature/model/models"

	"go.uber.org/zap"
)

// Snapshot is one model document parsed into the shape the comparison engine
// consumes: a node coordinate map plus the raw element records per type.
// Snapshots are immutable once built and safe to share across comparisons.
type Snapshot struct {
	Name  string
	Units string
	Nodes compare.NodeMap
	// Elements holds the records per element type, in document order.
	Elements map[string][]compare.AttributeSource

	NodeCount    int
	ElementCount int
}

// BuildSnapshot converts a decoded document into a snapshot. Nodes with
// non-finite coordinates are logged and skipped so they can never poison a
// key; a duplicated node id keeps the later definition, matching decode
// order. Element records are adapted as-is, resolution failures surface
// later as per-element drops during comparison.
func BuildSnapshot(doc *models.Document, log *zap.Logger) *Snapshot {
	if log == nil {
		log = zap.NewNop()
	}

	nodes := make(compare.NodeMap, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if !finite(n.X) || !finite(n.Y) || !finite(n.Z) {
			log.Warn("skipping node with non-finite coordinates",
				zap.String("node", n.ID))
			continue
		}
		if _, seen := nodes[n.ID]; seen {
			log.Warn("duplicate node id, keeping later definition",
				zap.String("node", n.ID))
		}
		nodes[n.ID] = compare.Coordinate{X: n.X, Y: n.Y, Z: n.Z}
	}

	elements := make(map[string][]compare.AttributeSource, len(doc.Elements))
	total := 0
	for elementType, records := range doc.Elements {
		adapted := make([]compare.AttributeSource, 0, len(records))
		for _, rec := range records {
			adapted = append(adapted, compare.DocumentSource(rec))
		}
		elements[elementType] = adapted
		total += len(adapted)
	}

	return &Snapshot{
		Name:         doc.Name,
		Units:        doc.Units,
		Nodes:        nodes,
		Elements:     elements,
		NodeCount:    len(nodes),
		ElementCount: total,
	}
}

// TypeRecords returns the records of one element type, nil when the document
// has none of that type.
func (s *Snapshot) TypeRecords(elementType string) []compare.AttributeSource {
	return s.Elements[elementType]
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
