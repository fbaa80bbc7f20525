// genmodel writes a synthetic model document for manual testing: a regular
// bays x bays x storeys frame with footings, columns, girders, and one slab
// per floor. Generate a second variant with --drift to exercise tolerance
// matching against the first.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"model-diff/feature/model/models"
)

func main() {
	var (
		bays    = flag.Int("bays", 3, "bays per horizontal axis")
		storeys = flag.Int("storeys", 2, "storeys")
		spacing = flag.Float64("spacing", 6000, "grid spacing in mm")
		height  = flag.Float64("height", 3000, "storey height in mm")
		drift   = flag.Float64("drift", 0, "max random node drift per axis in mm")
		seed    = flag.Int64("seed", 1, "drift random seed")
		name    = flag.String("name", "Generated Frame", "document name")
		out     = flag.String("out", "model.json", "output file")
	)
	flag.Parse()

	doc := buildFrame(*bays, *storeys, *spacing, *height, *name)
	if *drift > 0 {
		applyDrift(doc, *drift, *seed)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %s: %d nodes, %d elements\n", *out, len(doc.Nodes), doc.ElementCount())
}

// buildFrame lays out nodes on a (bays+1)^2 grid per level and connects them:
// footings under the ground level, columns between levels, girders along both
// axes on elevated levels, and a slab spanning each elevated level's corners.
func buildFrame(bays, storeys int, spacing, height float64, name string) *models.Document {
	grid := bays + 1
	nodeID := func(i, j, k int) string {
		return fmt.Sprintf("n-%d-%d-%d", i, j, k)
	}

	doc := &models.Document{
		Version:  "1",
		Name:     name,
		Units:    "mm",
		Elements: make(map[string][]map[string]any),
	}

	for k := 0; k <= storeys; k++ {
		for j := 0; j < grid; j++ {
			for i := 0; i < grid; i++ {
				doc.Nodes = append(doc.Nodes, models.Node{
					ID: nodeID(i, j, k),
					X:  float64(i) * spacing,
					Y:  float64(j) * spacing,
					Z:  float64(k) * height,
				})
			}
		}
	}

	add := func(elementType string, attrs map[string]any) {
		attrs["guid"] = fmt.Sprintf("%s-%s", elementType, attrs["id"])
		doc.Elements[elementType] = append(doc.Elements[elementType], attrs)
	}

	for j := 0; j < grid; j++ {
		for i := 0; i < grid; i++ {
			add("footing", map[string]any{
				"id":      fmt.Sprintf("f-%d-%d", i, j),
				"id_node": nodeID(i, j, 0),
			})
			for k := 0; k < storeys; k++ {
				add("column", map[string]any{
					"id":             fmt.Sprintf("c-%d-%d-%d", i, j, k),
					"id_node_bottom": nodeID(i, j, k),
					"id_node_top":    nodeID(i, j, k+1),
				})
			}
		}
	}

	for k := 1; k <= storeys; k++ {
		for j := 0; j < grid; j++ {
			for i := 0; i < bays; i++ {
				add("girder", map[string]any{
					"id":            fmt.Sprintf("gx-%d-%d-%d", i, j, k),
					"id_node_start": nodeID(i, j, k),
					"id_node_end":   nodeID(i+1, j, k),
				})
				add("girder", map[string]any{
					"id":            fmt.Sprintf("gy-%d-%d-%d", j, i, k),
					"id_node_start": nodeID(j, i, k),
					"id_node_end":   nodeID(j, i+1, k),
				})
			}
		}
		add("slab", map[string]any{
			"id":       fmt.Sprintf("s-%d", k),
			"node_ids": []any{nodeID(0, 0, k), nodeID(bays, 0, k), nodeID(bays, bays, k), nodeID(0, bays, k)},
			"id_floor": k,
		})
	}

	return doc
}

// applyDrift shifts every node by a uniform random offset in [-max, max] per
// axis, simulating as-built survey positions.
func applyDrift(doc *models.Document, max float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	offset := func() float64 {
		return (rng.Float64()*2 - 1) * max
	}
	for i := range doc.Nodes {
		doc.Nodes[i].X += offset()
		doc.Nodes[i].Y += offset()
		doc.Nodes[i].Z += offset()
	}
}
