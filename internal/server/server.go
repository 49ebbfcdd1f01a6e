package server

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pastukhov/transmission-mcp/internal/transmission"
)

const DefaultPort = 17300

type Config struct {
	Port     int    `json:"port"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	LogFile  string `json:"log_file"`
	Debug    bool   `json:"debug"`
}

type Server struct {
	client    *transmission.Client
	logger    *log.Logger
	debug     bool
	wsManager *WebSocketManager
}

func New(client *transmission.Client, logger *log.Logger, debug bool) *Server {
	return &Server{
		client: client,
		logger: logger,
		debug:  debug,
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		Port: DefaultPort,
		URL:  transmission.DefaultURL,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	ensureConfigDefaults(&cfg)
	return cfg, nil
}

func ensureConfigDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.URL == "" {
		cfg.URL = transmission.DefaultURL
	}
}

func ApplyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TRANSMISSION_URL"); val != "" {
		cfg.URL = val
	}
	if val := os.Getenv("TRANSMISSION_USERNAME"); val != "" {
		cfg.Username = val
	}
	if val := os.Getenv("TRANSMISSION_PASSWORD"); val != "" {
		cfg.Password = val
	}
	if val := os.Getenv("TRANSMISSION_MCP_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.Port = p
		}
	}
	if val := os.Getenv("TRANSMISSION_MCP_LOG_FILE"); val != "" {
		cfg.LogFile = val
	}
	if val := os.Getenv("TRANSMISSION_MCP_DEBUG"); val != "" {
		if parsed, ok := parseBool(val); ok {
			cfg.Debug = parsed
		}
	}
}

func (s *Server) RegisterTools(mcpServer *mcp.Server) {
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "session_get",
		Description: "Get daemon session settings",
	}, s.sessionGet)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "session_set",
		Description: "Change daemon session settings",
	}, s.sessionSet)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "session_stats",
		Description: "Get transfer statistics",
	}, s.sessionStats)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "free_space",
		Description: "Check free disk space in a directory",
	}, s.freeSpace)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "port_test",
		Description: "Check if the peer port is reachable from outside",
	}, s.portTest)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_add",
		Description: "Add a torrent from a magnet link, URL, file path or base64 metainfo",
	}, s.torrentAdd)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_get",
		Description: "Get torrent details (ids: number, hash, array, \"all\" or \"recently_active\")",
	}, s.torrentGet)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_set",
		Description: "Change torrent properties",
	}, s.torrentSet)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_remove",
		Description: "Remove torrents, optionally deleting downloaded data",
	}, s.torrentRemove)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_set_location",
		Description: "Move torrent data to a new directory",
	}, s.torrentSetLocation)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_start",
		Description: "Start torrents",
	}, s.torrentStart)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_stop",
		Description: "Stop torrents",
	}, s.torrentStop)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_verify",
		Description: "Verify local torrent data",
	}, s.torrentVerify)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "torrent_reannounce",
		Description: "Reannounce torrents to their trackers",
	}, s.torrentReannounce)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "queue_move_top",
		Description: "Move torrents to the top of the queue",
	}, s.queueMoveTop)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "queue_move_up",
		Description: "Move torrents up in the queue",
	}, s.queueMoveUp)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "queue_move_down",
		Description: "Move torrents down in the queue",
	}, s.queueMoveDown)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "queue_move_bottom",
		Description: "Move torrents to the bottom of the queue",
	}, s.queueMoveBottom)
}

func parseBool(val string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
