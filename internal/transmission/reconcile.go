package transmission

import (
	"strings"
	"unicode"
)

// Reconcile normalizes a response payload whose keys may arrive in any mix of
// snake_case, camelCase and hyphen-case into the canonical underscore shape.
// When the same logical attribute appears under more than one spelling the
// underscore form wins, then camelCase, then hyphenated. Nested objects and
// arrays are reconciled recursively, so stats blocks keyed current_stats,
// currentStats or current-stats all land under current_stats.
func Reconcile(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		ranks := make(map[string]int, len(val))
		for key, value := range val {
			canon := canonicalKey(key)
			rank := spellingRank(key)
			if prev, seen := ranks[canon]; seen && prev <= rank {
				continue
			}
			ranks[canon] = rank
			out[canon] = Reconcile(value)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Reconcile(elem)
		}
		return out
	default:
		return v
	}
}

// ReconcileMap is Reconcile specialized to object payloads, which is what
// every RPC result is at the top level.
func ReconcileMap(m map[string]any) map[string]any {
	out, _ := Reconcile(m).(map[string]any)
	return out
}

// canonicalKey rewrites a wire key into underscore-word form.
func canonicalKey(key string) string {
	key = strings.ReplaceAll(key, "-", "_")
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// spellingRank orders duplicate spellings: underscore beats camelCase beats
// hyphenated.
func spellingRank(key string) int {
	if strings.Contains(key, "-") {
		return 2
	}
	if key != strings.ToLower(key) {
		return 1
	}
	return 0
}

// Torrent is the canonical view of one torrent record, built once at the
// response boundary so downstream code never branches on key spelling.
type Torrent struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	HashString   string  `json:"hash_string"`
	Status       int64   `json:"status"`
	PercentDone  float64 `json:"percent_done"`
	TotalSize    int64   `json:"total_size"`
	RateDownload int64   `json:"rate_download"`
	RateUpload   int64   `json:"rate_upload"`
	UploadRatio  float64 `json:"upload_ratio"`
	ETA          int64   `json:"eta"`
	DownloadDir  string  `json:"download_dir"`
	ErrorCode    int64   `json:"error"`
	ErrorString  string  `json:"error_string"`
}

// ParseTorrents extracts the torrent list from a reconciled torrent_get
// result.
func ParseTorrents(result map[string]any) []Torrent {
	raw, _ := result["torrents"].([]any)
	torrents := make([]Torrent, 0, len(raw))
	for _, elem := range raw {
		rec, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		torrents = append(torrents, Torrent{
			ID:           asInt64(rec["id"]),
			Name:         asString(rec["name"]),
			HashString:   asString(rec["hash_string"]),
			Status:       asInt64(rec["status"]),
			PercentDone:  asFloat64(rec["percent_done"]),
			TotalSize:    asInt64(rec["total_size"]),
			RateDownload: asInt64(rec["rate_download"]),
			RateUpload:   asInt64(rec["rate_upload"]),
			UploadRatio:  asFloat64(rec["upload_ratio"]),
			ETA:          asInt64(rec["eta"]),
			DownloadDir:  asString(rec["download_dir"]),
			ErrorCode:    asInt64(rec["error"]),
			ErrorString:  asString(rec["error_string"]),
		})
	}
	return torrents
}

// StatsBlock is one of the current/cumulative counters inside session_stats.
type StatsBlock struct {
	UploadedBytes   int64 `json:"uploaded_bytes"`
	DownloadedBytes int64 `json:"downloaded_bytes"`
	FilesAdded      int64 `json:"files_added"`
	SessionCount    int64 `json:"session_count"`
	SecondsActive   int64 `json:"seconds_active"`
}

// SessionStats is the canonical view of a session_stats result.
type SessionStats struct {
	ActiveTorrentCount int64      `json:"active_torrent_count"`
	PausedTorrentCount int64      `json:"paused_torrent_count"`
	TorrentCount       int64      `json:"torrent_count"`
	DownloadSpeed      int64      `json:"download_speed"`
	UploadSpeed        int64      `json:"upload_speed"`
	CurrentStats       StatsBlock `json:"current_stats"`
	CumulativeStats    StatsBlock `json:"cumulative_stats"`
}

// ParseSessionStats builds a SessionStats from a reconciled session_stats
// result.
func ParseSessionStats(result map[string]any) SessionStats {
	return SessionStats{
		ActiveTorrentCount: asInt64(result["active_torrent_count"]),
		PausedTorrentCount: asInt64(result["paused_torrent_count"]),
		TorrentCount:       asInt64(result["torrent_count"]),
		DownloadSpeed:      asInt64(result["download_speed"]),
		UploadSpeed:        asInt64(result["upload_speed"]),
		CurrentStats:       parseStatsBlock(result["current_stats"]),
		CumulativeStats:    parseStatsBlock(result["cumulative_stats"]),
	}
}

func parseStatsBlock(v any) StatsBlock {
	block, _ := v.(map[string]any)
	return StatsBlock{
		UploadedBytes:   asInt64(block["uploaded_bytes"]),
		DownloadedBytes: asInt64(block["downloaded_bytes"]),
		FilesAdded:      asInt64(block["files_added"]),
		SessionCount:    asInt64(block["session_count"]),
		SecondsActive:   asInt64(block["seconds_active"]),
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
