package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
)

// KV is the minimal key-value contract the session store persists through.
//
// Implementations must be safe for concurrent use. Delete of a missing key
// is not an error.
type KV interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair durably.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key.
	Delete(ctx context.Context, key []byte) error

	// Close releases the engine. Calls after Close return ErrClosed.
	Close() error
}

// Engine names accepted by Config.Engine.
const (
	EngineBadger = "badger"
	EngineMemory = "memory"
)

// Config configures the storage engine.
type Config struct {
	// Engine selects the backend ("badger" or "memory").
	// Default: "badger"
	Engine string

	// Dir is the Badger data directory.
	Dir string

	// EncryptionKey, when set, seals values at rest with EncryptedKV.
	// It must decode to 32 bytes.
	EncryptionKey []byte

	Badger BadgerConfig
}

// BadgerConfig contains Badger tuning for a tiny, write-rarely database.
type BadgerConfig struct {
	// GCInterval is the interval between value log GC runs.
	// Default: 30m
	GCInterval time.Duration

	// GCThreshold is the discard ratio that makes a value log file eligible.
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 1MB
	CacheSize int64

	// MemTableSize is the memtable size in bytes.
	// Default: 8MB
	MemTableSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 16MB
	ValueLogFileSize int64

	// SyncWrites fsyncs after every write.
	// Default: true, a stored token must survive a crash right after login.
	SyncWrites bool
}

// DefaultConfig returns the default storage configuration for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Engine: EngineBadger,
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       30 * time.Minute,
		GCThreshold:      0.5,
		CacheSize:        1 << 20,
		MemTableSize:     8 << 20,
		ValueLogFileSize: 16 << 20,
		SyncWrites:       true,
	}
}

// Open creates the engine described by cfg.
func Open(cfg Config, log logger.Logger) (KV, error) {
	if log == nil {
		log = logger.Default()
	}

	var (
		kv  KV
		err error
	)
	switch strings.ToLower(cfg.Engine) {
	case "", EngineBadger:
		kv, err = NewBadgerEngine(cfg, log)
	case EngineMemory:
		kv = NewMemoryEngine()
	default:
		return nil, fmt.Errorf("storage: unknown engine %q", cfg.Engine)
	}
	if err != nil {
		return nil, err
	}

	if len(cfg.EncryptionKey) == 0 {
		return kv, nil
	}

	enc, err := NewEncryptedKV(kv, cfg.EncryptionKey)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return enc, nil
}
