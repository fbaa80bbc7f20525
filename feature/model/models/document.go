package models

import "strconv"

// Document is the JSON rendering of one structural model version, the format
// producing tools export and this service stores. Element records are kept as
// raw attribute bags; the comparison profiles decide which attributes matter
// per element type.
type Document struct {
	Version string `json:"version,omitempty"`
	Name    string `json:"name"`
	Units   string `json:"units,omitempty"`
	Nodes   []Node `json:"nodes"`
	// Elements maps an element type name (column, girder, slab, ...) to its
	// records. Unknown types are preserved and simply never compared.
	Elements map[string][]map[string]any `json:"elements"`
}

// Node is one coordinate definition. Positions are millimetres.
type Node struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// Validate checks the document for the minimum shape the service can work
// with. It returns an empty string when the document is usable, otherwise a
// short reason.
func (d Document) Validate() string {
	if len(d.Nodes) == 0 && len(d.Elements) == 0 {
		return "document has no nodes and no elements"
	}
	for i, n := range d.Nodes {
		if n.ID == "" {
			return "node without id at index " + strconv.Itoa(i)
		}
	}
	return ""
}

// ElementCount returns the total number of element records across all types.
func (d Document) ElementCount() int {
	total := 0
	for _, records := range d.Elements {
		total += len(records)
	}
	return total
}
