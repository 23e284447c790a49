package postgres

import "encoding/json"

// pageLimit turns a requested page size into a LIMIT argument. Explicit
// limits are capped; non-positive means the full set (LIMIT NULL).
func pageLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return clampLimit(limit)
}

func marshalStrings(values []string) []byte {
	if len(values) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte("[]")
	}
	return b
}
