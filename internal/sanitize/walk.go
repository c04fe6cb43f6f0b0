package sanitize

// Walk applies fn to every string leaf of a decoded JSON value. Maps and
// slices are traversed recursively; non-string leaves pass through
// unchanged. Containers are mutated in place and returned.
func Walk(v interface{}, fn func(string) string) interface{} {
	switch t := v.(type) {
	case string:
		return fn(t)
	case map[string]interface{}:
		for k, val := range t {
			t[k] = Walk(val, fn)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = Walk(val, fn)
		}
		return t
	default:
		return v
	}
}

// Map sanitizes every string leaf of a decoded JSON object with PlainText.
// Write handlers run request payloads through this before persistence.
func Map(m map[string]interface{}) map[string]interface{} {
	Walk(m, PlainText)
	return m
}
