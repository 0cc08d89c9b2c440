package spec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// normalize converts decoder-specific shapes into the plain value set used by
// the interpreter: map[string]any, []any, string, bool, float64, nil and
// *Node. Every number becomes float64 so JSON and YAML producers agree.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []float64:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []int:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = float64(item)
		}
		return out
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

// Normalize exposes the value normalisation used while decoding documents so
// that programmatically built props behave like decoded ones.
func Normalize(v any) any {
	return normalize(v)
}

func denormalize(v any) any {
	switch val := v.(type) {
	case *Node:
		return val.ToValue()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = denormalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = denormalize(item)
		}
		return out
	default:
		return v
	}
}

func asStringMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case map[any]any:
		m, _ := normalize(val).(map[string]any)
		return m, true
	default:
		return nil, false
	}
}

// Map returns v as a string-keyed map.
func Map(v any) (map[string]any, bool) {
	return asStringMap(v)
}

// Slice returns v as a list.
func Slice(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	default:
		n, ok := normalize(v).([]any)
		return n, ok && v != nil
	}
}

// Text renders scalar values as display text. Maps, lists and nil report false.
func Text(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprint(val), true
	case json.Number:
		return val.String(), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

// Number parses v as a float. Numeric strings are accepted.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val)
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int parses v as an integer; fractional values are rejected.
func Int(v any) (int, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Numbers parses v as a list of floats.
func Numbers(v any) ([]float64, bool) {
	items, ok := Slice(v)
	if !ok {
		if f, single := Number(v); single {
			return []float64{f}, true
		}
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := Number(item)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// AsNode reports whether v is node-shaped content: a *Node, or a map with a
// string type key.
func AsNode(v any) (*Node, bool) {
	switch val := v.(type) {
	case *Node:
		return val, val != nil
	default:
		m, ok := asStringMap(v)
		if !ok {
			return nil, false
		}
		if _, typed := m[KeyType].(string); !typed {
			return nil, false
		}
		return nodeFromMap(m), true
	}
}

// Lookup resolves a dot-separated accessor path into nested maps and lists.
// Numeric segments index lists. The second result is false when any segment
// is missing.
func Lookup(v any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := v
	for _, segment := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, false
			}
			current = typed[idx]
		default:
			m, ok := asStringMap(current)
			if !ok {
				return nil, false
			}
			next, ok := m[segment]
			if !ok {
				return nil, false
			}
			current = next
		}
	}
	return current, current != nil
}

// Decode maps a plain value onto a typed struct using its yaml tags. Nested
// *Node values are flattened to their wire form first.
func Decode(v any, out any) error {
	data, err := yaml.Marshal(denormalize(v))
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
