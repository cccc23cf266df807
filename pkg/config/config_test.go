package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"show-notes/pkg/httpclient"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewDefault_Valid(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Site.OutputDir != "public" {
		t.Errorf("OutputDir = %q, want %q", cfg.Site.OutputDir, "public")
	}
	if !cfg.UsesBuiltinEpisodes() {
		t.Error("default config should use the built-in episode list")
	}
	if cfg.Archive.Mongo.Enabled() {
		t.Error("archive should be disabled by default")
	}
}

func TestLoadOptional_EmptyPathKeepsDefaults(t *testing.T) {
	cfg := NewDefault()
	if err := LoadOptional("", cfg); err != nil {
		t.Fatalf("LoadOptional failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg := NewDefault()
	err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), cfg)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoad_OverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("SHOWNOTES_TEST_MONGO", "mongodb://localhost:27017")

	path := writeConfig(t, `
site:
  title: Tim Ferriss Show Notes
  output_dir: out
http:
  client: cloudflare
  timeout: 5s
episodes:
  - blog: https://tim.blog/2017/10/09/richard-branson/
    video: https://www.youtube.com/watch?v=KxL1B_3_KHk
    category: Entrepreneurs
filters:
  categories: [Entrepreneurs]
archive:
  mongo:
    uri: ${SHOWNOTES_TEST_MONGO}
`)

	cfg := NewDefault()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Site.Title != "Tim Ferriss Show Notes" || cfg.Site.OutputDir != "out" {
		t.Errorf("unexpected site config %+v", cfg.Site)
	}
	if cfg.HTTP.ClientType() != httpclient.CloudflareClient {
		t.Errorf("ClientType = %q", cfg.HTTP.ClientType())
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.UsesBuiltinEpisodes() {
		t.Error("inline episodes should replace the built-in list")
	}

	srcs := cfg.Sources()
	if len(srcs) != 1 || srcs[0].Category != "Entrepreneurs" {
		t.Fatalf("unexpected sources %+v", srcs)
	}

	if cfg.Archive.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("env not expanded: %q", cfg.Archive.Mongo.URI)
	}
	// defaults survive when the file does not mention them
	if cfg.Archive.Mongo.Collection != "episode_notes" || cfg.Server.Port != 8080 {
		t.Errorf("defaults lost: %+v %+v", cfg.Archive.Mongo, cfg.Server)
	}
}

func TestLoad_InvalidEpisodeURL(t *testing.T) {
	path := writeConfig(t, `
episodes:
  - blog: not a url
    video: https://www.youtube.com/watch?v=abc
`)

	err := Load(path, NewDefault())
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "site: [unclosed")
	if err := Load(path, NewDefault()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	if err := (HTTPConfig{Client: "netscape"}).Validate(); err == nil {
		t.Error("unknown client type should fail")
	}
	if err := (HTTPConfig{Timeout: -time.Second}).Validate(); err == nil {
		t.Error("negative timeout should fail")
	}
	if err := (HTTPConfig{}).Validate(); err != nil {
		t.Errorf("empty HTTP config should pass: %v", err)
	}
}

func TestMongoConfig_DatabaseRequiredWhenEnabled(t *testing.T) {
	cfg := MongoConfig{URI: "mongodb://localhost"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled archive without database should fail")
	}
	cfg.Database = "shownotes"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServerConfig(t *testing.T) {
	if err := (ServerConfig{Port: 70000}).Validate(); err == nil {
		t.Error("port out of range should fail")
	}
	if got := (ServerConfig{Port: 9000}).Address(); got != ":9000" {
		t.Errorf("Address = %q", got)
	}
}
