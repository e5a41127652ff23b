// Package utils holds small generic helpers shared across packages,
// notably the defensive coercion functions the resource services use to
// tolerate backend schema drift: unexpected or missing JSON fields are
// coerced to safe defaults instead of failing the whole payload.
package utils

import "encoding/json"

// Value dereferences v, returning the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// String coerces a decoded JSON value to a string, defaulting to "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

// StringOr coerces a decoded JSON value to a string, defaulting to def.
func StringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Number coerces a decoded JSON value to a float64, defaulting to 0.
// encoding/json decodes all numbers into float64; json.Number is handled
// for callers that decode with UseNumber.
func Number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case int:
		return float64(n)
	}
	return 0
}

// Bool coerces a decoded JSON value to a bool, defaulting to false.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Map coerces a decoded JSON value to an object, defaulting to nil.
func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Slice coerces a decoded JSON value to an array, defaulting to nil.
func Slice(v any) []any {
	s, _ := v.([]any)
	return s
}

// StringSlice coerces a decoded JSON array to its string elements,
// silently dropping anything that is not a string.
func StringSlice(v any) []string {
	out := make([]string, 0)
	for _, e := range Slice(v) {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
