package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pastukhov/transmission-mcp/internal/server"
	"github.com/pastukhov/transmission-mcp/internal/transmission"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath   = flag.String("config", "config.json", "Path to server config")
	portFlag     = flag.Int("port", 0, "HTTP port (overrides config)")
	urlFlag      = flag.String("url", "", "Transmission RPC URL (overrides config)")
	usernameFlag = flag.String("username", "", "Transmission RPC username (overrides config)")
	passwordFlag = flag.String("password", "", "Transmission RPC password (overrides config)")
	stdioFlag    = flag.Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	logFileFlag  = flag.String("log-file", "", "Log to a rotating file (overrides config)")
	debugFlag    = flag.Bool("debug", false, "Enable verbose debug logging")
)

func main() {
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	server.ApplyEnvOverrides(&cfg)

	if *portFlag > 0 {
		cfg.Port = *portFlag
	}
	if *urlFlag != "" {
		cfg.URL = *urlFlag
	}
	if *usernameFlag != "" {
		cfg.Username = *usernameFlag
	}
	if *passwordFlag != "" {
		cfg.Password = *passwordFlag
	}
	if *logFileFlag != "" {
		cfg.LogFile = *logFileFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}

	logger := newLogger(cfg, *stdioFlag)
	logger.Printf("Starting Transmission MCP Server")
	logger.Printf("Transmission daemon at %s", cfg.URL)

	client := transmission.New(transmission.Options{
		URL:      cfg.URL,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	srv := server.New(client, logger, cfg.Debug)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "transmission-mcp",
		Version: "0.1.0",
	}, nil)
	srv.RegisterTools(mcpServer)

	if *stdioFlag {
		if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
			logger.Fatalf("stdio transport: %v", err)
		}
		return
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.HTTPMux(mcpServer),
	}

	logger.Printf("Listening on %s", addr)
	logger.Printf("HTTP transport at http://localhost:%d/", cfg.Port)
	logger.Printf("SSE transport at http://localhost:%d/sse", cfg.Port)
	logger.Printf("WebSocket transport at ws://localhost:%d/ws", cfg.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Println("Shutting down gracefully...")

		// Give HTTP server 10 seconds to finish in-flight requests
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP server shutdown error: %v", err)
		}
		srv.Shutdown()

		logger.Println("Shutdown complete")
		os.Exit(0)
	}()

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal(err)
	}
}

// newLogger routes logs to stdout, a rotating file, or both. In stdio mode
// stdout carries the MCP protocol, so console logging moves to stderr unless
// a log file is configured.
func newLogger(cfg server.Config, stdio bool) *log.Logger {
	var out io.Writer = os.Stdout
	if stdio {
		out = os.Stderr
	}

	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
	}
	return log.New(out, "[MCP] ", log.LstdFlags)
}
