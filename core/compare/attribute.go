package compare

import (
	"strings"

	"model-diff/core/utils"
)

// AttributeSource is the narrow capability the extractors require from an
// element record: string attribute lookup by name. The second return value
// reports whether the attribute exists at all.
type AttributeSource interface {
	Get(name string) (string, bool)
}

// MapSource adapts a plain attribute map, mainly for tests and synthetic
// elements.
type MapSource map[string]string

func (m MapSource) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// DocumentSource adapts one decoded JSON element from a model document.
// Scalar values are coerced to strings; list values (node order lists) are
// exposed as their elements joined by single spaces.
type DocumentSource map[string]any

func (d DocumentSource) Get(name string) (string, bool) {
	v, ok := d[name]
	if !ok || v == nil {
		return "", false
	}
	if list, isList := v.([]any); isList {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, utils.ToString(item))
		}
		return strings.Join(parts, " "), true
	}
	return utils.ToString(v), true
}
