package session

import (
	"context"
	"errors"
	"sync"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
	"github.com/TrailGuard-io/mobile-app/internal/storage"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
	"github.com/TrailGuard-io/mobile-app/pkg/token"
)

// TokenKey is the only key the store ever persists.
const TokenKey = "token"

var tokenKey = []byte(TokenKey)

// Storage is the durable slot behind the store. storage.KV satisfies it.
// Get must return storage.ErrKeyNotFound for a missing key.
type Storage interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
}

// State is the loading state of the session.
type State int

const (
	// NotLoaded means LoadPersisted has not run yet.
	NotLoaded State = iota
	// LoadedWithToken means a token is held.
	LoadedWithToken
	// LoadedWithoutToken means no token is held.
	LoadedWithoutToken
)

func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case LoadedWithToken:
		return "loaded_with_token"
	case LoadedWithoutToken:
		return "loaded_without_token"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Token    string
	Identity string
	State    State
}

// HasToken reports whether the snapshot carries a token.
func (s Snapshot) HasToken() bool {
	return s.Token != ""
}

// Listener is called after every effective change to the session.
type Listener func(Snapshot)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is the session store. Reads return point-in-time values; concurrent
// writers resolve last-write-wins.
type Store struct {
	storage Storage
	logger  logger.Logger

	mu       sync.RWMutex
	token    string
	identity string
	loaded   bool
	loadOnce sync.Once

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store in the NotLoaded state.
func NewStore(st Storage, opts ...Option) *Store {
	s := &Store{
		storage:   st,
		logger:    logger.Default(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session")
	return s
}

// LoadPersisted reads the token slot. Only the first call touches storage;
// later calls return the current state. Read failures are logged and the
// session starts without a token. A token set in memory before the load
// completes is kept.
func (s *Store) LoadPersisted(ctx context.Context) State {
	s.loadOnce.Do(func() {
		var persisted string
		v, err := s.storage.Get(ctx, tokenKey)
		switch {
		case err == nil:
			persisted = string(v)
		case errors.Is(err, storage.ErrKeyNotFound):
		default:
			s.logger.Warn("reading persisted token failed, starting signed out", "error", err)
		}

		s.mu.Lock()
		if s.token == "" {
			s.token = persisted
		}
		s.loaded = true
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.logger.Debug("session loaded", "state", snap.State.String())
		s.notify(snap)
	})
	return s.State()
}

// SetToken stores token in memory and in the durable slot. An empty token
// is rejected. If the durable write fails the token is still held in memory
// and a *PersistenceError is returned.
func (s *Store) SetToken(ctx context.Context, tok string) error {
	if tok == "" {
		return domain.ErrInvalidArgument.WithDetails("token must not be empty")
	}

	persistErr := s.storage.Set(ctx, tokenKey, []byte(tok))

	s.mu.Lock()
	changed := !token.Equal(s.token, tok)
	s.token = tok
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.logger.Debug("session token set", "fingerprint", token.Fingerprint(tok))
		s.notify(snap)
	}

	if persistErr != nil {
		s.logger.Warn("persisting token failed, session kept in memory only", "error", persistErr)
		return &PersistenceError{Op: "set", Err: persistErr}
	}
	return nil
}

// SetIdentity records the display identity of the signed-in user.
// It is kept in memory only.
func (s *Store) SetIdentity(identity string) error {
	if identity == "" {
		return domain.ErrInvalidArgument.WithDetails("identity must not be empty")
	}

	s.mu.Lock()
	changed := s.identity != identity
	s.identity = identity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return nil
}

// Clear removes the token and identity from memory and deletes the durable
// slot. Calling it on an empty session is a no-op apart from the delete.
// Memory is cleared even when the delete fails; the failure is returned as
// a *PersistenceError.
func (s *Store) Clear(ctx context.Context) error {
	deleteErr := s.storage.Delete(ctx, tokenKey)

	s.mu.Lock()
	changed := s.token != "" || s.identity != ""
	s.token = ""
	s.identity = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.logger.Info("session cleared")
		s.notify(snap)
	}

	if deleteErr != nil {
		s.logger.Warn("deleting persisted token failed", "error", deleteErr)
		return &PersistenceError{Op: "delete", Err: deleteErr}
	}
	return nil
}

// Token returns the current token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// RequireToken returns the current token or domain.ErrNotLoggedIn.
func (s *Store) RequireToken() (string, error) {
	if t, ok := s.Token(); ok {
		return t, nil
	}
	return "", domain.ErrNotLoggedIn
}

// Identity returns the display identity. It is only reported while a token
// is held.
func (s *Store) Identity() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.identity == "" {
		return "", false
	}
	return s.identity, true
}

// State returns the loading state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Snapshot returns a consistent copy of the whole session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// OnChange registers fn to run after every effective change. The returned
// function removes the registration.
func (s *Store) OnChange(fn Listener) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) stateLocked() State {
	switch {
	case !s.loaded:
		return NotLoaded
	case s.token != "":
		return LoadedWithToken
	default:
		return LoadedWithoutToken
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Token: s.token, State: s.stateLocked()}
	if s.token != "" {
		snap.Identity = s.identity
	}
	return snap
}

func (s *Store) notify(snap Snapshot) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
