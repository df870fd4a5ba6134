package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/storage"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// CLIConfig is the configuration of trailguard-cli.
type CLIConfig struct {
	API     APIConfig     `koanf:"api" yaml:"api"`
	Storage StorageConfig `koanf:"storage" yaml:"storage"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Output  OutputConfig  `koanf:"output" yaml:"output"`
}

// APIConfig selects the backend.
type APIConfig struct {
	BaseURL    string        `koanf:"base_url" yaml:"base_url"`
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout"`
	UserAgent  string        `koanf:"user_agent" yaml:"user_agent,omitempty"`
	CAFile     string        `koanf:"ca_file" yaml:"ca_file,omitempty"`
	ClientCert string        `koanf:"client_cert" yaml:"client_cert,omitempty"`
	ClientKey  string        `koanf:"client_key" yaml:"client_key,omitempty"`
}

// StorageConfig selects where the session token is kept.
type StorageConfig struct {
	// Engine is "badger" or "memory".
	Engine string `koanf:"engine" yaml:"engine"`
	Dir    string `koanf:"dir" yaml:"dir"`
	// Encrypt seals the token at rest. The key comes from EncryptionKey
	// (base64) or, when that is empty, from KeyFile (created on first use).
	Encrypt       bool   `koanf:"encrypt" yaml:"encrypt"`
	EncryptionKey string `koanf:"encryption_key" yaml:"encryption_key,omitempty"`
	KeyFile       string `koanf:"key_file" yaml:"key_file,omitempty"`
}

// LogConfig configures diagnostics written to stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format"`
	Color  bool   `koanf:"color" yaml:"color"`
}

// Default returns the default configuration rooted at dir
// (normally ~/.trailguard).
func Default(dir string) *CLIConfig {
	return &CLIConfig{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
			Timeout: api.DefaultTimeout,
		},
		Storage: StorageConfig{
			Engine:  storage.EngineBadger,
			Dir:     joinDir(dir, "session"),
			Encrypt: true,
			KeyFile: joinDir(dir, "session.key"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
	}
}

// Verify validates the configuration.
func (c *CLIConfig) Verify() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url: %q is not an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout: must be positive, got %v", c.API.Timeout)
	}
	if (c.API.ClientCert == "") != (c.API.ClientKey == "") {
		return fmt.Errorf("api.client_cert and api.client_key must be set together")
	}

	switch c.Storage.Engine {
	case storage.EngineBadger:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir: required for the badger engine")
		}
	case storage.EngineMemory:
	default:
		return fmt.Errorf("storage.engine: unknown engine %q (badger, memory)", c.Storage.Engine)
	}
	if c.Storage.Encrypt && c.Storage.EncryptionKey == "" && c.Storage.KeyFile == "" {
		return fmt.Errorf("storage: encryption needs encryption_key or key_file")
	}
	if c.Storage.EncryptionKey != "" {
		if _, err := storage.DecodeKey(c.Storage.EncryptionKey); err != nil {
			return fmt.Errorf("storage.encryption_key: %w", err)
		}
	}

	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format)
	}

	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output.format: must be table, json or yaml, got %q", c.Output.Format)
	}
	return nil
}
