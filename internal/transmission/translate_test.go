package transmission

import (
	"reflect"
	"strings"
	"testing"
)

func TestMethodToWire(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"session_get", "session-get"},
		{"session_stats", "session-stats"},
		{"torrent_set_location", "torrent-set-location"},
		{"queue_move_bottom", "queue-move-bottom"},
		{"free_space", "free-space"},
		// Unknown methods fall back to a blanket rewrite.
		{"group_get", "group-get"},
		{"already-hyphenated", "already-hyphenated"},
	}
	for _, tt := range tests {
		if got := MethodToWire(tt.method); got != tt.want {
			t.Errorf("MethodToWire(%q) = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestParamsToWireRenamesOnlyUnderscoreKeys(t *testing.T) {
	params := map[string]any{
		"download_dir":        "/srv/torrents",
		"speed_limit_up":      int64(100),
		"seedRatioLimit":      2.0,
		"seedRatioLimited":    true,
		"ids":                 []any{int64(1), int64(2)},
		"peer_limit_global":   int64(240),
		"queueStalledEnabled": true,
	}

	wire := ParamsToWire(params)

	want := map[string]any{
		"download-dir":        "/srv/torrents",
		"speed-limit-up":      int64(100),
		"seedRatioLimit":      2.0,
		"seedRatioLimited":    true,
		"ids":                 []any{int64(1), int64(2)},
		"peer-limit-global":   int64(240),
		"queueStalledEnabled": true,
	}
	if !reflect.DeepEqual(wire, want) {
		t.Fatalf("ParamsToWire = %#v, want %#v", wire, want)
	}
}

func TestParamsToWireDropsAbsentValues(t *testing.T) {
	wire := ParamsToWire(map[string]any{
		"download_dir": nil,
		"paused":       true,
	})
	if _, ok := wire["download-dir"]; ok {
		t.Fatalf("expected nil-valued key to be dropped, got %#v", wire)
	}
	if wire["paused"] != true {
		t.Fatalf("expected paused to survive, got %#v", wire)
	}
}

func TestParamsToWireExpandsFields(t *testing.T) {
	wire := ParamsToWire(map[string]any{
		"fields": []string{"id", "hash_string", "percent_done"},
	})
	fields, ok := wire["fields"].([]string)
	if !ok {
		t.Fatalf("expected fields slice, got %#v", wire["fields"])
	}
	want := []string{"id", "hash_string", "hashString", "percent_done", "percentDone"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("expanded fields = %v, want %v", fields, want)
	}
}

func TestExpandFieldsIdempotent(t *testing.T) {
	once := expandFields([]string{"hash_string", "rate_download", "name"})
	var again []any
	for _, f := range once {
		again = append(again, f)
	}
	twice := expandFields(again)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expandFields not idempotent: %v vs %v", once, twice)
	}
	seen := map[string]bool{}
	for _, f := range twice {
		if seen[f] {
			t.Fatalf("duplicate field %q after re-expansion: %v", f, twice)
		}
		seen[f] = true
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"download_dir", "downloadDir"},
		{"speed_limit_up", "speedLimitUp"},
		{"id", "id"},
		{"seedRatioLimit", "seedRatioLimit"},
	}
	for _, tt := range tests {
		if got := toCamelCase(tt.in); got != tt.want {
			t.Errorf("toCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if strings.Contains(toCamelCase("a_b_c"), "_") {
		t.Error("camelCase output must not contain underscores")
	}
}
