package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/storage"
)

func TestDefault(t *testing.T) {
	cfg := Default("/home/ana/.trailguard")

	if cfg.API.BaseURL != api.DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, api.DefaultBaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Storage.Dir != "/home/ana/.trailguard/session" {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if cfg.Storage.Engine != storage.EngineBadger || !cfg.Storage.Encrypt {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if err := cfg.Verify(); err != nil {
		t.Errorf("Default().Verify() error = %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".trailguard", "cli.yaml")) {
		t.Errorf("DefaultConfigPath() = %q", path)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "cli.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Dir != filepath.Join(dir, "session") {
		t.Errorf("Storage.Dir = %q, want under %q", cfg.Storage.Dir, dir)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yaml")
	content := `
api:
  base_url: https://api.trailguard.app/api
  timeout: 3s
log:
  level: info
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAILGUARD_LOG_LEVEL", "error")

	cfg, err := Load(path, map[string]any{"output.format": "json"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.trailguard.app/api" || cfg.API.Timeout != 3*time.Second {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env value", cfg.Log.Level)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want override", cfg.Output.Format)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.yaml")

	cfg := Default(filepath.Dir(path))
	cfg.API.Timeout = 1500 * time.Millisecond
	cfg.Output.Format = "yaml"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "timeout: 1.5s") {
		t.Errorf("saved file does not write timeout as a duration:\n%s", data)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.API.Timeout != cfg.API.Timeout || got.Output.Format != "yaml" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	t.Setenv("TRAILGUARD_LOG_LEVEL", "debug")

	cfg, err := Set(path, "api.base_url", "http://10.0.2.2:3001/api")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.2.2:3001/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "level: debug") {
		t.Error("environment value was written to the file")
	}

	if _, err := Set(path, "api.nope", "x"); err == nil {
		t.Error("Set() accepted an unknown key")
	}
	if _, err := Set(path, "output.format", "xml"); err == nil {
		t.Error("Set() accepted an invalid value")
	}
	if _, err := Set(path, "api.timeout", "2s"); err != nil {
		t.Errorf("Set(api.timeout) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *CLIConfig)
	}{
		{"relative url", func(c *CLIConfig) { c.API.BaseURL = "localhost:3001" }},
		{"zero timeout", func(c *CLIConfig) { c.API.Timeout = 0 }},
		{"cert without key", func(c *CLIConfig) { c.API.ClientCert = "/c.pem" }},
		{"unknown engine", func(c *CLIConfig) { c.Storage.Engine = "sqlite" }},
		{"badger without dir", func(c *CLIConfig) { c.Storage.Dir = "" }},
		{"encrypt without key source", func(c *CLIConfig) { c.Storage.KeyFile = "" }},
		{"bad encryption key", func(c *CLIConfig) { c.Storage.EncryptionKey = "short" }},
		{"bad log level", func(c *CLIConfig) { c.Log.Level = "loud" }},
		{"bad log format", func(c *CLIConfig) { c.Log.Format = "xml" }},
		{"bad output", func(c *CLIConfig) { c.Output.Format = "csv" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			if err := cfg.Verify(); err == nil {
				t.Error("Verify() should fail")
			}
		})
	}

	mem := Default("")
	mem.Storage = StorageConfig{Engine: storage.EngineMemory}
	if err := mem.Verify(); err != nil {
		t.Errorf("memory engine without dir error = %v", err)
	}
}

func TestKeysAndFormatValue(t *testing.T) {
	keys := Keys()
	if len(keys) != len(Values(Default(""))) {
		t.Fatalf("Keys() = %v", keys)
	}
	if keys[0] != "api.base_url" {
		t.Errorf("Keys() not sorted: %v", keys)
	}

	if got := FormatValue("storage.encryption_key", "c2VjcmV0"); got != "***" {
		t.Errorf("FormatValue(encryption_key) = %q", got)
	}
	if got := FormatValue("output.color", true); got != "true" {
		t.Errorf("FormatValue(bool) = %q", got)
	}
}
