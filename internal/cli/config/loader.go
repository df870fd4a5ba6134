package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TrailGuard-io/mobile-app/internal/infra/confloader"
)

// DirName is the per-user state directory under $HOME.
const DirName = ".trailguard"

// DefaultDir returns ~/.trailguard.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultConfigPath returns ~/.trailguard/cli.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// BaseDir returns the directory that relative state (session store, key
// file, history) lives in for the config file at path.
func BaseDir(path string) string {
	if path == "" {
		return DefaultDir()
	}
	return filepath.Dir(path)
}

func joinDir(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Load reads the configuration at path (default when empty), applying
// TRAILGUARD_* environment variables and then overrides. A missing file
// yields the defaults.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	return load(path, overrides, true)
}

// LoadFile reads only the file and defaults, ignoring the environment.
// It is the basis for editing the file.
func LoadFile(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	return load(path, nil, false)
}

func load(path string, overrides map[string]any, withEnv bool) (*CLIConfig, error) {
	def := Default(BaseDir(path))

	opts := []confloader.Option{
		confloader.WithOptionalConfigFile(path),
		confloader.WithDefaults(Values(def)),
		confloader.WithOverrides(overrides),
	}
	if !withEnv {
		opts = append(opts, confloader.WithoutEnv())
	}

	cfg := &CLIConfig{}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Values flattens cfg into dotted keys, the form accepted by Set and
// printed by "config show".
func Values(cfg *CLIConfig) map[string]any {
	return map[string]any{
		"api.base_url":           cfg.API.BaseURL,
		"api.timeout":            cfg.API.Timeout.String(),
		"api.user_agent":         cfg.API.UserAgent,
		"api.ca_file":            cfg.API.CAFile,
		"api.client_cert":        cfg.API.ClientCert,
		"api.client_key":         cfg.API.ClientKey,
		"storage.engine":         cfg.Storage.Engine,
		"storage.dir":            cfg.Storage.Dir,
		"storage.encrypt":        cfg.Storage.Encrypt,
		"storage.encryption_key": cfg.Storage.EncryptionKey,
		"storage.key_file":       cfg.Storage.KeyFile,
		"log.level":              cfg.Log.Level,
		"log.format":             cfg.Log.Format,
		"output.format":          cfg.Output.Format,
		"output.color":           cfg.Output.Color,
	}
}

// Keys returns every settable key, sorted.
func Keys() []string {
	m := Values(Default(""))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set changes one key in the file at path, validates the result and saves
// it. Environment variables are not written back.
func Set(path, key, value string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, ok := Values(Default(""))[key]; !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}

	cfg, err := load(path, map[string]any{key: value}, false)
	if err != nil {
		return nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig is the on-disk layout; durations are written as strings.
type fileConfig struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		Timeout    string `yaml:"timeout"`
		UserAgent  string `yaml:"user_agent,omitempty"`
		CAFile     string `yaml:"ca_file,omitempty"`
		ClientCert string `yaml:"client_cert,omitempty"`
		ClientKey  string `yaml:"client_key,omitempty"`
	} `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

// Save writes cfg to path as YAML with 0600 permissions, creating the
// directory with 0700.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var fc fileConfig
	fc.API.BaseURL = cfg.API.BaseURL
	fc.API.Timeout = cfg.API.Timeout.String()
	fc.API.UserAgent = cfg.API.UserAgent
	fc.API.CAFile = cfg.API.CAFile
	fc.API.ClientCert = cfg.API.ClientCert
	fc.API.ClientKey = cfg.API.ClientKey
	fc.Storage = cfg.Storage
	fc.Log = cfg.Log
	fc.Output = cfg.Output

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cli-*.yaml")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// FormatValue renders a config value for display. Secrets are masked.
func FormatValue(key string, v any) string {
	switch x := v.(type) {
	case string:
		if key == "storage.encryption_key" && x != "" {
			return "***"
		}
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
