package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	API struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"api"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithOptionalConfigFile("/tmp/x.yaml"))
	if l.envPrefix != "TEST_" || l.filePath != "/tmp/x.yaml" || !l.fileOptional {
		t.Errorf("options not applied: %+v", l)
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://file:3001/api
  timeout: 5s
log:
  level: info
`)
	t.Setenv("TRAILGUARD_API_BASE_URL", "http://env:3001/api")

	l := NewLoader(
		WithConfigFile(path),
		WithDefaults(map[string]any{
			"api.base_url": "http://default/api",
			"api.timeout":  "10s",
			"log.level":    "warn",
		}),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://env:3001/api" {
		t.Errorf("base_url = %q, want env value", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want file value", cfg.API.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want override", cfg.Log.Level)
	}
}

func TestLoader_DefaultsOnly(t *testing.T) {
	l := NewLoader(WithDefaults(map[string]any{"api.timeout": "10s"}))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.API.Timeout)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	var cfg testConfig
	if err := NewLoader(WithConfigFile(missing)).Load(&cfg); err == nil {
		t.Error("Load() with missing required file should fail")
	}
	if err := NewLoader(WithOptionalConfigFile(missing)).Load(&cfg); err != nil {
		t.Errorf("Load() with missing optional file error = %v", err)
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [unclosed")

	var cfg testConfig
	if err := NewLoader(WithOptionalConfigFile(path)).Load(&cfg); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}

func TestLoader_EnvKey(t *testing.T) {
	l := NewLoader()
	tests := map[string]string{
		"TRAILGUARD_API_BASE_URL":       "api.base_url",
		"TRAILGUARD_STORAGE_KEY_FILE":   "storage.key_file",
		"TRAILGUARD_LOG_LEVEL":          "log.level",
		"TRAILGUARD_OUTPUT_FORMAT":      "output.format",
		"TRAILGUARD_API_TIMEOUT":        "api.timeout",
		"TRAILGUARD_STORAGE_ENCRYPTION": "storage.encryption",
	}
	for in, want := range tests {
		if got := l.envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoader_LoadMapNestsDottedKeys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"api.base_url": "http://x/api", "log.level": "warn"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.API.BaseURL != "http://x/api" || cfg.Log.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("timeout = %v, want unset", cfg.API.Timeout)
	}
}

func TestLoader_WithoutEnv(t *testing.T) {
	t.Setenv("TRAILGUARD_LOG_LEVEL", "debug")

	var cfg testConfig
	l := NewLoader(WithoutEnv(), WithDefaults(map[string]any{"log.level": "warn"}))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, env should be ignored", cfg.Log.Level)
	}
}
