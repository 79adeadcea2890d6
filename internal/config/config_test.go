package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Proxy.Timeout != 10*time.Second {
		t.Errorf("expected proxy timeout 10s, got %v", cfg.Proxy.Timeout)
	}
	if cfg.Aggregation.LocationSentiment != "sum" {
		t.Errorf("expected location_sentiment 'sum', got %q", cfg.Aggregation.LocationSentiment)
	}
	if cfg.Aggregation.PlaceRadius != 150 {
		t.Errorf("expected place_radius 150, got %v", cfg.Aggregation.PlaceRadius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
server:
  port: 9000
sources:
  feeds:
    - url: https://example.com/feed.xml
      author: Jane
logging:
  level: DEBUG
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if got := cfg.Server.AllowedOrigins; len(got) != 1 || got[0] != "http://localhost:8080" {
		t.Errorf("expected default allowed origin, got %v", got)
	}
	if cfg.Proxy.UpstreamURL != "http://localhost:5000" {
		t.Errorf("expected default upstream, got %q", cfg.Proxy.UpstreamURL)
	}
	if cfg.Sources.Feeds[0].Platform != "twitter" {
		t.Errorf("expected feed platform to default to twitter, got %q", cfg.Sources.Feeds[0].Platform)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level to be lowercased, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  port: 70000\n", "Port"},
		{"bad mode", "aggregation:\n  location_sentiment: median\n", "LocationSentiment"},
		{"bad radius", "aggregation:\n  place_radius: -5\n", "PlaceRadius"},
		{"bad level", "logging:\n  level: loud\n", "Level"},
		{"feed without url", "sources:\n  feeds:\n    - author: a\n", "URL"},
		{"feed platform", "sources:\n  feeds:\n    - url: https://x.test/rss\n      author: a\n      platform: myspace\n", "Platform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated from file")
	}
}

func TestLoadInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 0\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
}
