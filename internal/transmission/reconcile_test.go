package transmission

import (
	"reflect"
	"testing"
)

func TestReconcileSpellingPriority(t *testing.T) {
	// Underscore beats camelCase beats hyphenated, regardless of map order.
	raw := map[string]any{
		"downloaded_bytes": float64(5),
		"downloadedBytes":  float64(9),
		"downloaded-bytes": float64(13),
	}
	got := ReconcileMap(raw)
	if got["downloaded_bytes"] != float64(5) {
		t.Fatalf("expected underscore spelling to win, got %#v", got)
	}
	if len(got) != 1 {
		t.Fatalf("expected one reconciled key, got %#v", got)
	}
}

func TestReconcileCamelBeatsHyphen(t *testing.T) {
	raw := map[string]any{
		"uploadedBytes":  float64(7),
		"uploaded-bytes": float64(11),
	}
	got := ReconcileMap(raw)
	if got["uploaded_bytes"] != float64(7) {
		t.Fatalf("expected camelCase to beat hyphenated, got %#v", got)
	}
}

func TestReconcileNestedStatsBlocks(t *testing.T) {
	raw := map[string]any{
		"activeTorrentCount": float64(3),
		"current-stats": map[string]any{
			"uploadedBytes":   float64(100),
			"downloadedBytes": float64(200),
		},
		"cumulative_stats": map[string]any{
			"filesAdded":    float64(12),
			"session-count": float64(4),
		},
	}
	got := ReconcileMap(raw)

	current, ok := got["current_stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected current_stats block, got %#v", got)
	}
	if current["uploaded_bytes"] != float64(100) || current["downloaded_bytes"] != float64(200) {
		t.Fatalf("nested keys not reconciled: %#v", current)
	}

	cumulative := got["cumulative_stats"].(map[string]any)
	if cumulative["files_added"] != float64(12) || cumulative["session_count"] != float64(4) {
		t.Fatalf("nested keys not reconciled: %#v", cumulative)
	}
}

func TestReconcileArrays(t *testing.T) {
	raw := map[string]any{
		"torrents": []any{
			map[string]any{"hashString": "abc", "percentDone": 0.5},
			map[string]any{"hash-string": "def", "percent_done": 1.0},
		},
	}
	got := ReconcileMap(raw)
	torrents := got["torrents"].([]any)
	first := torrents[0].(map[string]any)
	second := torrents[1].(map[string]any)
	if first["hash_string"] != "abc" || first["percent_done"] != 0.5 {
		t.Fatalf("array element not reconciled: %#v", first)
	}
	if second["hash_string"] != "def" || second["percent_done"] != 1.0 {
		t.Fatalf("array element not reconciled: %#v", second)
	}
}

func TestParseTorrents(t *testing.T) {
	raw := map[string]any{
		"torrents": []any{
			map[string]any{
				"id":           float64(4),
				"name":         "debian.iso",
				"hashString":   "abc123",
				"status":       float64(6),
				"percentDone":  1.0,
				"totalSize":    float64(1024),
				"rateDownload": float64(0),
				"rateUpload":   float64(2048),
				"uploadRatio":  1.5,
				"eta":          float64(-1),
				"downloadDir":  "/srv/torrents",
				"errorString":  "",
			},
		},
	}
	torrents := ParseTorrents(ReconcileMap(raw))
	if len(torrents) != 1 {
		t.Fatalf("expected 1 torrent, got %d", len(torrents))
	}
	tor := torrents[0]
	if tor.ID != 4 || tor.Name != "debian.iso" || tor.HashString != "abc123" {
		t.Fatalf("unexpected torrent view: %+v", tor)
	}
	if tor.RateUpload != 2048 || tor.UploadRatio != 1.5 || tor.ETA != -1 {
		t.Fatalf("unexpected torrent view: %+v", tor)
	}
}

func TestParseSessionStats(t *testing.T) {
	raw := map[string]any{
		"activeTorrentCount": float64(2),
		"pausedTorrentCount": float64(1),
		"torrentCount":       float64(3),
		"downloadSpeed":      float64(512),
		"uploadSpeed":        float64(256),
		"current-stats": map[string]any{
			"uploadedBytes":   float64(100),
			"downloadedBytes": float64(200),
			"filesAdded":      float64(5),
			"sessionCount":    float64(1),
			"secondsActive":   float64(3600),
		},
	}
	stats := ParseSessionStats(ReconcileMap(raw))
	want := SessionStats{
		ActiveTorrentCount: 2,
		PausedTorrentCount: 1,
		TorrentCount:       3,
		DownloadSpeed:      512,
		UploadSpeed:        256,
		CurrentStats: StatsBlock{
			UploadedBytes:   100,
			DownloadedBytes: 200,
			FilesAdded:      5,
			SessionCount:    1,
			SecondsActive:   3600,
		},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Fatalf("ParseSessionStats = %+v, want %+v", stats, want)
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"download_dir", "download_dir"},
		{"downloadDir", "download_dir"},
		{"download-dir", "download_dir"},
		{"peersGettingFromUs", "peers_getting_from_us"},
		{"id", "id"},
	}
	for _, tt := range tests {
		if got := canonicalKey(tt.in); got != tt.want {
			t.Errorf("canonicalKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
