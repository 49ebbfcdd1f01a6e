package transmission

import "strings"

// wireMethods maps canonical method names to the hyphenated names the legacy
// dialect expects. Methods outside the table fall back to a blanket
// underscore-to-hyphen rewrite.
var wireMethods = map[string]string{
	"session_get":          "session-get",
	"session_set":          "session-set",
	"session_stats":        "session-stats",
	"torrent_add":          "torrent-add",
	"torrent_get":          "torrent-get",
	"torrent_set":          "torrent-set",
	"torrent_remove":       "torrent-remove",
	"torrent_set_location": "torrent-set-location",
	"torrent_start":        "torrent-start",
	"torrent_stop":         "torrent-stop",
	"torrent_verify":       "torrent-verify",
	"torrent_reannounce":   "torrent-reannounce",
	"queue_move_top":       "queue-move-top",
	"queue_move_up":        "queue-move-up",
	"queue_move_down":      "queue-move-down",
	"queue_move_bottom":    "queue-move-bottom",
	"free_space":           "free-space",
	"port_test":            "port-test",
}

// MethodToWire translates a canonical method name to its legacy wire name.
func MethodToWire(method string) string {
	if wire, ok := wireMethods[method]; ok {
		return wire
	}
	return strings.ReplaceAll(method, "_", "-")
}

// ParamsToWire translates a canonical parameter mapping to the legacy wire
// shape. Keys with nil values are dropped. The "fields" key is expanded to
// carry both the canonical and camelCase spelling of every requested field so
// the daemon answers whichever it knows. Every other underscore-bearing key is
// hyphenated; keys without underscores (the daemon's own camelCase settings,
// e.g. seedRatioLimit) pass through untouched.
func ParamsToWire(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	wire := make(map[string]any, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		if key == "fields" {
			wire[key] = expandFields(value)
			continue
		}
		if strings.Contains(key, "_") {
			key = strings.ReplaceAll(key, "_", "-")
		}
		wire[key] = value
	}
	return wire
}

// expandFields returns the union of the requested field names and their
// camelCase equivalents, deduplicated, ordered by first occurrence. Expanding
// an already-expanded list adds nothing.
func expandFields(value any) []string {
	var fields []string
	switch v := value.(type) {
	case []string:
		fields = v
	case []any:
		for _, f := range v {
			if s, ok := f.(string); ok {
				fields = append(fields, s)
			}
		}
	case string:
		fields = []string{v}
	default:
		return nil
	}

	seen := make(map[string]bool, len(fields)*2)
	out := make([]string, 0, len(fields)*2)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range fields {
		add(f)
		add(toCamelCase(f))
	}
	return out
}

// toCamelCase rewrites an underscore_word name as camelCase. Names without
// underscores are returned unchanged.
func toCamelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
