// Package devutil trims values down to a handful of JSON keys for display.
package devutil

import "encoding/json"

// pick round-trips v through JSON and keeps only the requested keys.
func pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return pickMap(m, keys)
}

func pickMap(m map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

func Pick(v any, keys ...string) map[string]any {
	return pick(v, keys...)
}

// Project applies Pick to v, or to every element when v encodes as a JSON
// array. Elements that are not objects are kept as they are. With no keys
// v is returned unchanged.
func Project(v any, keys ...string) any {
	if len(keys) == 0 {
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var list []any
	if err := json.Unmarshal(b, &list); err == nil {
		out := make([]any, len(list))
		for i, el := range list {
			if m, ok := el.(map[string]any); ok {
				out[i] = pickMap(m, keys)
			} else {
				out[i] = el
			}
		}
		return out
	}
	return pick(v, keys...)
}
