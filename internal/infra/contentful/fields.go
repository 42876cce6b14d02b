package contentful

// Field extraction helpers. Every helper tolerates a missing or mistyped
// field and degrades to the zero value; entry-level validation lives in the
// transformer, never here.

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)

	return s
}

// boolField reads a bool field, falling back to def when absent or mistyped.
// Editors rarely touch flags like "visible", so absence means the default.
func boolField(fields map[string]any, key string, def bool) bool {
	v, ok := fields[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}

	return b
}

// intField reads a numeric field. JSON numbers decode as float64.
func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// stringSlice coerces an array field into []string. Anything that is not an
// array, and any non-string element, is dropped; the result is never nil.
func stringSlice(fields map[string]any, key string) []string {
	out := []string{}
	items, ok := fields[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
