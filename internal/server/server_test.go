package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pastukhov/transmission-mcp/internal/transmission"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.URL != transmission.DefaultURL {
		t.Fatalf("expected default URL, got %q", cfg.URL)
	}
}

func TestLoadConfigFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"username":"admin","password":"hunter2"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Username != "admin" || cfg.Password != "hunter2" {
		t.Fatalf("credentials not loaded: %+v", cfg)
	}
	if cfg.Port != DefaultPort || cfg.URL != transmission.DefaultURL {
		t.Fatalf("defaults not applied for omitted fields: %+v", cfg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TRANSMISSION_URL", "http://nas.local:9091")
	t.Setenv("TRANSMISSION_USERNAME", "envuser")
	t.Setenv("TRANSMISSION_MCP_PORT", "18000")
	t.Setenv("TRANSMISSION_MCP_DEBUG", "yes")

	cfg := Config{Port: DefaultPort, URL: transmission.DefaultURL}
	ApplyEnvOverrides(&cfg)

	if cfg.URL != "http://nas.local:9091" {
		t.Fatalf("URL override not applied: %q", cfg.URL)
	}
	if cfg.Username != "envuser" {
		t.Fatalf("username override not applied: %q", cfg.Username)
	}
	if cfg.Port != 18000 {
		t.Fatalf("port override not applied: %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatal("debug override not applied")
	}
}

func TestApplyEnvOverridesIgnoresGarbage(t *testing.T) {
	t.Setenv("TRANSMISSION_MCP_PORT", "not-a-port")
	t.Setenv("TRANSMISSION_MCP_DEBUG", "maybe")

	cfg := Config{Port: DefaultPort}
	ApplyEnvOverrides(&cfg)

	if cfg.Port != DefaultPort {
		t.Fatalf("invalid port should be ignored, got %d", cfg.Port)
	}
	if cfg.Debug {
		t.Fatal("invalid debug value should be ignored")
	}
}

func TestParseBool(t *testing.T) {
	cases := map[string]struct {
		value bool
		ok    bool
	}{
		"1": {true, true}, "true": {true, true}, "YES": {true, true}, "On": {true, true},
		"0": {false, true}, "false": {false, true}, "no": {false, true}, "off": {false, true},
		"": {false, false}, "2": {false, false}, "enable": {false, false},
	}
	for input, want := range cases {
		got, ok := parseBool(input)
		if got != want.value || ok != want.ok {
			t.Errorf("parseBool(%q) = %v, %v; want %v, %v", input, got, ok, want.value, want.ok)
		}
	}
}
