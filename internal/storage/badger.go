package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// BadgerEngine implements KV using Badger v3.
type BadgerEngine struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger logger.Logger

	closed    atomic.Bool
	closeOnce sync.Once
	lastGC    atomic.Int64 // Unix milliseconds

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewBadgerEngine opens (or creates) the Badger database in cfg.Dir.
func NewBadgerEngine(cfg Config, log logger.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if log == nil {
		log = logger.Default()
	}
	log = log.With("component", "badger")

	bc := cfg.Badger
	if bc.GCInterval <= 0 {
		bc.GCInterval = DefaultBadgerConfig().GCInterval
	}
	if bc.GCThreshold <= 0 || bc.GCThreshold >= 1 {
		bc.GCThreshold = DefaultBadgerConfig().GCThreshold
	}

	opts := badger.DefaultOptions(cfg.Dir).
		WithLogger(&badgerLogger{logger: log}).
		WithSyncWrites(bc.SyncWrites).
		WithNumVersionsToKeep(1).
		WithDetectConflicts(false)
	if bc.CacheSize > 0 {
		opts = opts.WithBlockCacheSize(bc.CacheSize)
	}
	if bc.MemTableSize > 0 {
		opts = opts.WithMemTableSize(bc.MemTableSize)
	}
	if bc.ValueLogFileSize > 0 {
		opts = opts.WithValueLogFileSize(bc.ValueLogFileSize)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	e := &BadgerEngine{
		db:     db,
		cfg:    bc,
		logger: log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go e.gcLoop()

	log.Debug("badger engine opened", "dir", cfg.Dir, "sync_writes", bc.SyncWrites)
	return e, nil
}

// Get retrieves a value by key.
func (e *BadgerEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *BadgerEngine) Set(ctx context.Context, key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes a key.
func (e *BadgerEngine) Delete(ctx context.Context, key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// GC runs value log garbage collection until Badger reports nothing left
// to rewrite. It returns the number of files rewritten.
func (e *BadgerEngine) GC() (int, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}

	rewritten := 0
	for {
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
				break
			}
			return rewritten, fmt.Errorf("gc: %w", err)
		}
		rewritten++
	}

	e.lastGC.Store(time.Now().UnixMilli())
	return rewritten, nil
}

// LastGC returns the time of the last completed GC run, or the zero time.
func (e *BadgerEngine) LastGC() time.Time {
	ms := e.lastGC.Load()
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// Close stops background GC and closes the database.
func (e *BadgerEngine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.stopCh)
		<-e.doneCh

		if cerr := e.db.Close(); cerr != nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
		e.logger.Debug("badger engine closed")
	})
	return err
}

func (e *BadgerEngine) gcLoop() {
	defer close(e.doneCh)

	ticker := time.NewTicker(e.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n, err := e.GC(); err != nil {
				e.logger.Warn("value log gc failed", "error", err)
			} else if n > 0 {
				e.logger.Debug("value log gc", "rewritten", n)
			}
		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts logger.Logger to Badger's Logger interface.
// Badger is chatty at info level, so its info lines are logged at debug.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
