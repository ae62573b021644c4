package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
feed:
  dir: ./testdata/feed
resolver:
  fuzzyThreshold: 0.8
planner:
  directLimit: 4
  maxOptions: 5
logging:
  level: debug
  console: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Feed.Dir != "./testdata/feed" {
		t.Errorf("feed dir = %q", cfg.Feed.Dir)
	}
	if cfg.Resolver.FuzzyThreshold != 0.8 {
		t.Errorf("fuzzy threshold = %f", cfg.Resolver.FuzzyThreshold)
	}
	if cfg.Planner.DirectLimit != 4 || cfg.Planner.MaxOptions != 5 {
		t.Errorf("planner limits = %+v", cfg.Planner)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Console {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "feed:\n  dir: ./feed\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative port", "server:\n  port: -1\n"},
		{"threshold above one", "resolver:\n  fuzzyThreshold: 1.5\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"not yaml", "{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("want error for missing file")
	}
}
