package server

// Parameter types for all MCP tool implementations. Optional parameters are
// pointers so "not provided" never has to be modeled by deleting keys at
// runtime; handlers copy only populated fields into the RPC params.
//
// Field names follow the canonical underscore scheme, except the seed-ratio
// settings the daemon itself spells in camelCase on every dialect.

type SessionGetRequest struct {
	Fields []string `json:"fields,omitempty" mcp:"session settings to return (default: all)"`
}

type SessionSetRequest struct {
	DownloadDir           *string  `json:"download_dir,omitempty" mcp:"default download directory"`
	IncompleteDir         *string  `json:"incomplete_dir,omitempty" mcp:"directory for incomplete torrents"`
	IncompleteDirEnabled  *bool    `json:"incomplete_dir_enabled,omitempty" mcp:"use the incomplete directory"`
	StartAddedTorrents    *bool    `json:"start_added_torrents,omitempty" mcp:"start torrents when added"`
	SpeedLimitDown        *int64   `json:"speed_limit_down,omitempty" mcp:"download speed limit (KB/s)"`
	SpeedLimitDownEnabled *bool    `json:"speed_limit_down_enabled,omitempty" mcp:"enable download speed limit"`
	SpeedLimitUp          *int64   `json:"speed_limit_up,omitempty" mcp:"upload speed limit (KB/s)"`
	SpeedLimitUpEnabled   *bool    `json:"speed_limit_up_enabled,omitempty" mcp:"enable upload speed limit"`
	AltSpeedDown          *int64   `json:"alt_speed_down,omitempty" mcp:"alternative download speed limit (KB/s)"`
	AltSpeedUp            *int64   `json:"alt_speed_up,omitempty" mcp:"alternative upload speed limit (KB/s)"`
	AltSpeedEnabled       *bool    `json:"alt_speed_enabled,omitempty" mcp:"enable alternative speed limits"`
	PeerLimitGlobal       *int64   `json:"peer_limit_global,omitempty" mcp:"global peer limit"`
	PeerLimitPerTorrent   *int64   `json:"peer_limit_per_torrent,omitempty" mcp:"per-torrent peer limit"`
	PeerPort              *int64   `json:"peer_port,omitempty" mcp:"incoming peer port"`
	SeedRatioLimit        *float64 `json:"seedRatioLimit,omitempty" mcp:"default seed ratio limit"`
	SeedRatioLimited      *bool    `json:"seedRatioLimited,omitempty" mcp:"enable the default seed ratio limit"`
}

type SessionStatsRequest struct{}

type FreeSpaceRequest struct {
	Path string `json:"path" mcp:"directory to check"`
}

type PortTestRequest struct{}

type TorrentAddRequest struct {
	Filename          string  `json:"filename,omitempty" mcp:"magnet link, torrent URL or local .torrent path"`
	Metainfo          string  `json:"metainfo,omitempty" mcp:"base64-encoded .torrent contents"`
	DownloadDir       *string `json:"download_dir,omitempty" mcp:"download directory for this torrent"`
	Paused            *bool   `json:"paused,omitempty" mcp:"add in paused state"`
	PeerLimit         *int64  `json:"peer_limit,omitempty" mcp:"maximum peers for this torrent"`
	BandwidthPriority *int64  `json:"bandwidth_priority,omitempty" mcp:"bandwidth priority (-1, 0, 1)"`
}

type TorrentGetRequest struct {
	IDs    any      `json:"ids,omitempty" mcp:"torrent selector: id, hash, array of either, \"all\" or \"recently_active\""`
	Fields []string `json:"fields,omitempty" mcp:"torrent fields to return (default: a summary set)"`
}

type TorrentSetRequest struct {
	IDs                 any      `json:"ids,omitempty" mcp:"torrent selector"`
	DownloadLimit       *int64   `json:"download_limit,omitempty" mcp:"download limit (KB/s)"`
	DownloadLimited     *bool    `json:"download_limited,omitempty" mcp:"honor the download limit"`
	UploadLimit         *int64   `json:"upload_limit,omitempty" mcp:"upload limit (KB/s)"`
	UploadLimited       *bool    `json:"upload_limited,omitempty" mcp:"honor the upload limit"`
	HonorsSessionLimits *bool    `json:"honors_session_limits,omitempty" mcp:"honor session-wide limits"`
	QueuePosition       *int64   `json:"queue_position,omitempty" mcp:"position in the download queue"`
	SeedRatioLimit      *float64 `json:"seedRatioLimit,omitempty" mcp:"seed ratio limit for these torrents"`
	SeedRatioMode       *int64   `json:"seedRatioMode,omitempty" mcp:"0 global, 1 per-torrent, 2 unlimited"`
	Labels              []string `json:"labels,omitempty" mcp:"labels to apply"`
}

type TorrentRemoveRequest struct {
	IDs             any   `json:"ids,omitempty" mcp:"torrent selector"`
	DeleteLocalData *bool `json:"delete_local_data,omitempty" mcp:"also delete downloaded files"`
}

type TorrentSetLocationRequest struct {
	IDs      any    `json:"ids,omitempty" mcp:"torrent selector"`
	Location string `json:"location" mcp:"new data directory"`
	Move     *bool  `json:"move,omitempty" mcp:"move existing data instead of searching for it"`
}

// TorrentActionRequest covers start/stop/verify/reannounce and the four queue
// moves: each takes only a selector.
type TorrentActionRequest struct {
	IDs any `json:"ids,omitempty" mcp:"torrent selector: id, hash, array of either, \"all\" or \"recently_active\""`
}
