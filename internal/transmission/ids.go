package transmission

import "strconv"

// The daemon spells "recently active" with a hyphen on the wire; callers may
// use either spelling.
const recentlyActive = "recently-active"

// NormalizeIDs maps a caller-supplied torrent selector to the wire form shared
// by both dialects:
//
//   - nil or "all" -> nil (omitting ids means every torrent)
//   - "recently_active" / "recently-active" -> "recently-active"
//   - array -> element-wise: digit-only strings become integers,
//     recently-active sentinels become the hyphenated literal, everything else
//     passes through
//   - any other scalar -> single-element array, digit-only strings converted
//     to integers first
//
// The function is total over its accepted domain and idempotent: applying it
// to its own output is a no-op.
func NormalizeIDs(ids any) any {
	switch v := ids.(type) {
	case nil:
		return nil
	case string:
		if v == "all" {
			return nil
		}
		if isRecentlyActive(v) {
			return recentlyActive
		}
		return []any{normalizeOne(v)}
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, normalizeOne(elem))
		}
		return out
	case []string:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, normalizeOne(elem))
		}
		return out
	case []int:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			out = append(out, elem)
		}
		return out
	default:
		return []any{v}
	}
}

func normalizeOne(elem any) any {
	s, ok := elem.(string)
	if !ok {
		return elem
	}
	if isRecentlyActive(s) {
		return recentlyActive
	}
	if n, ok := digitsToInt(s); ok {
		return n
	}
	return s
}

func isRecentlyActive(s string) bool {
	return s == "recently_active" || s == recentlyActive
}

// digitsToInt converts a non-empty decimal string to an integer. Any string
// consisting only of digits is a torrent id, never a hash.
func digitsToInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
