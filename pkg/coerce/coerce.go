// Package coerce converts loosely-typed JSON values into Go types.
// Firmware responses encode the same field as a number, a numeric string
// or a bool depending on model and version, so every conversion reports
// ok instead of failing.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int converts integer-like values. Numeric strings parse, floats
// truncate toward zero, bools map to 0/1.
func Int(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
		return 0, false
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Float converts float-like values, including numeric strings.
func Float(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// String converts scalar values to their string form. Integral floats
// render without an exponent so JSON numbers keep their wire shape.
func String(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// Bool converts bool-like values: bools, 0/1 numbers and the usual
// string spellings.
func Bool(v interface{}) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		if x == 0 {
			return false, true
		}
		if x == 1 {
			return true, true
		}
		return false, false
	case int:
		if x == 0 {
			return false, true
		}
		if x == 1 {
			return true, true
		}
		return false, false
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// Map asserts a JSON object.
func Map(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Slice asserts a JSON array.
func Slice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// Objects returns the object elements of a JSON array, skipping
// everything else. Non-array input yields nil.
func Objects(v interface{}) []map[string]interface{} {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// StringSlice converts a JSON array to strings, dropping elements that
// have no string form.
func StringSlice(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := String(item); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// IntPtr is Int with absent-as-nil semantics for optional fields.
func IntPtr(v interface{}) *int {
	if v == nil {
		return nil
	}
	n, ok := Int(v)
	if !ok {
		return nil
	}
	return &n
}

// StringPtr is String with absent-as-nil semantics.
func StringPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	s, ok := String(v)
	if !ok {
		return nil
	}
	return &s
}

// BoolPtr is Bool with absent-as-nil semantics.
func BoolPtr(v interface{}) *bool {
	if v == nil {
		return nil
	}
	b, ok := Bool(v)
	if !ok {
		return nil
	}
	return &b
}
