package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/cli/config"
	"github.com/TrailGuard-io/mobile-app/internal/infra/tlsroots"
	"github.com/TrailGuard-io/mobile-app/internal/session"
	"github.com/TrailGuard-io/mobile-app/internal/storage"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/metric"
)

// ErrNotOpen is returned by accessors before Open succeeded.
var ErrNotOpen = errors.New("connection: manager is not open")

// Manager holds the per-process session and API client.
type Manager struct {
	logger logger.Logger
	stages []api.ResponseStage

	mu      sync.Mutex
	cfg     *config.CLIConfig
	kv      storage.KV
	store   *session.Store
	client  *api.Client
	metrics *metric.Registry
	certs   *tlsroots.Watcher
}

// Option configures a Manager.
type Option func(*Manager)

// WithResponseStage adds a stage to the API client built by Open.
func WithResponseStage(s api.ResponseStage) Option {
	return func(m *Manager) {
		m.stages = append(m.stages, s)
	}
}

// NewManager creates a closed manager.
func NewManager(log logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Default()
	}
	m := &Manager{logger: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open opens storage, loads the persisted session and builds the API
// client. Opening an open manager is a no-op.
func (m *Manager) Open(ctx context.Context, cfg *config.CLIConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		return nil
	}

	storeCfg, err := storageConfig(cfg.Storage)
	if err != nil {
		return err
	}
	kv, err := storage.Open(storeCfg, m.logger.With("component", "storage"))
	if err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}

	tlsCfg, certs, err := tlsroots.ClientConfig(tlsroots.ClientOptions{
		CAFile:   cfg.API.CAFile,
		CertFile: cfg.API.ClientCert,
		KeyFile:  cfg.API.ClientKey,
	}, m.logger.With("component", "tls"))
	if err != nil {
		_ = kv.Close()
		return err
	}

	store := session.NewStore(kv, session.WithLogger(m.logger))
	store.LoadPersisted(ctx)

	reg := metric.NewRegistry()
	reg.MustRegister(metric.NewSessionCollector(func() string { return store.State().String() }))

	opts := []api.Option{api.WithLogger(m.logger), api.WithMetrics(reg)}
	for _, s := range m.stages {
		opts = append(opts, api.WithResponseStage(s))
	}
	client, err := api.New(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		TLSConfig: tlsCfg,
	}, store, opts...)
	if err != nil {
		if certs != nil {
			certs.Stop()
		}
		_ = kv.Close()
		return err
	}

	m.cfg = cfg
	m.kv = kv
	m.store = store
	m.client = client
	m.metrics = reg
	m.certs = certs

	m.logger.Debug("connection opened",
		"base_url", cfg.API.BaseURL,
		"storage", cfg.Storage.Engine,
		"session", store.State().String())
	return nil
}

func storageConfig(sc config.StorageConfig) (storage.Config, error) {
	cfg := storage.DefaultConfig(sc.Dir)
	cfg.Engine = sc.Engine

	if !sc.Encrypt {
		return cfg, nil
	}
	var err error
	if sc.EncryptionKey != "" {
		cfg.EncryptionKey, err = storage.DecodeKey(sc.EncryptionKey)
	} else {
		cfg.EncryptionKey, err = storage.LoadOrCreateKeyFile(sc.KeyFile)
	}
	if err != nil {
		return cfg, fmt.Errorf("session encryption key: %w", err)
	}
	return cfg, nil
}

// IsOpen reports whether Open succeeded and Close has not run.
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store != nil
}

// Store returns the session store.
func (m *Manager) Store() (*session.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return nil, ErrNotOpen
	}
	return m.store, nil
}

// Client returns the API client.
func (m *Manager) Client() (*api.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil, ErrNotOpen
	}
	return m.client, nil
}

// Metrics returns the client metrics, or nil before Open.
func (m *Manager) Metrics() *metric.Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metrics
}

// CertWatcher returns the client certificate watcher, if one is configured.
func (m *Manager) CertWatcher() *tlsroots.Watcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.certs
}

// Close releases storage. The manager can be opened again afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if m.certs != nil {
		m.certs.Stop()
	}
	err := m.kv.Close()

	m.cfg, m.kv, m.store, m.client, m.metrics, m.certs = nil, nil, nil, nil, nil, nil
	return err
}
