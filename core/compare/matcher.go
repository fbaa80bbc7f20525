package compare

// Pair is one matched element with its counterpart from the other side.
type Pair struct {
	A ElementData `json:"a"`
	B ElementData `json:"b"`
}

// Result is the three-way partition the exact matcher produces. Every input
// element with a resolvable key lands in exactly one bucket; unresolvable
// elements are only counted.
type Result struct {
	Matched []Pair        `json:"matched"`
	OnlyA   []ElementData `json:"only_a"`
	OnlyB   []ElementData `json:"only_b"`
	// DroppedA and DroppedB count elements whose identity key could not be
	// computed. They appear in no bucket; the extractor logged each one.
	DroppedA int `json:"dropped_a"`
	DroppedB int `json:"dropped_b"`
}

// sideIndex is one side's key index. Keys keep first-insertion order so that
// repeated calls over the same inputs produce byte-identical results; the map
// keeps the last element per key (duplicate geometry on one side silently
// overwrites, a documented limitation).
type sideIndex struct {
	keys    []string
	byKey   map[string]ElementData
	dropped int
}

func buildIndex(elems []AttributeSource, nodes NodeMap, ex Extractor) *sideIndex {
	idx := &sideIndex{byKey: make(map[string]ElementData, len(elems))}
	for _, rec := range elems {
		key, data, ok := ex.Extract(rec, nodes)
		if !ok {
			idx.dropped++
			continue
		}
		if _, exists := idx.byKey[key]; !exists {
			idx.keys = append(idx.keys, key)
		}
		idx.byKey[key] = data
	}
	return idx
}

// Match partitions the two element collections by exact identity key. It is
// a single hash join: O(|A|+|B|), deterministic for fixed inputs, and holds
// no state between calls.
func Match(elemsA, elemsB []AttributeSource, nodesA, nodesB NodeMap, ex Extractor) Result {
	idxA := buildIndex(elemsA, nodesA, ex)
	idxB := buildIndex(elemsB, nodesB, ex)

	result := Result{
		Matched:  []Pair{},
		OnlyA:    []ElementData{},
		OnlyB:    []ElementData{},
		DroppedA: idxA.dropped,
		DroppedB: idxB.dropped,
	}

	consumed := make(map[string]struct{}, len(idxB.byKey))
	for _, key := range idxA.keys {
		if b, present := idxB.byKey[key]; present {
			result.Matched = append(result.Matched, Pair{A: idxA.byKey[key], B: b})
			consumed[key] = struct{}{}
			continue
		}
		result.OnlyA = append(result.OnlyA, idxA.byKey[key])
	}
	for _, key := range idxB.keys {
		if _, taken := consumed[key]; taken {
			continue
		}
		result.OnlyB = append(result.OnlyB, idxB.byKey[key])
	}

	return result
}
