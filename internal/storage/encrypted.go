package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TrailGuard-io/mobile-app/pkg/crypto/adaptive"
	"github.com/TrailGuard-io/mobile-app/pkg/token"
)

// ErrUndecryptable is returned by EncryptedKV.Get when a stored value cannot
// be opened with the configured key (key rotated, file tampered, or value
// written without encryption).
var ErrUndecryptable = errors.New("storage: stored value cannot be decrypted")

// EncryptedKV seals values before handing them to the wrapped KV. The key
// name is bound as additional data, so a sealed value moved to another key
// fails to open.
type EncryptedKV struct {
	inner  KV
	sealer *adaptive.Sealer
}

// NewEncryptedKV wraps inner with a sealer built from a 32 byte key.
func NewEncryptedKV(inner KV, key []byte) (*EncryptedKV, error) {
	s, err := adaptive.New(key)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &EncryptedKV{inner: inner, sealer: s}, nil
}

// Get opens the sealed value stored under key.
func (e *EncryptedKV) Get(ctx context.Context, key []byte) ([]byte, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	plain, err := e.sealer.Open(sealed, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecryptable, err)
	}
	return plain, nil
}

// Set seals value and stores it under key.
func (e *EncryptedKV) Set(ctx context.Context, key, value []byte) error {
	sealed, err := e.sealer.Seal(value, key)
	if err != nil {
		return fmt.Errorf("storage: seal: %w", err)
	}
	return e.inner.Set(ctx, key, sealed)
}

// Delete removes key from the wrapped KV.
func (e *EncryptedKV) Delete(ctx context.Context, key []byte) error {
	return e.inner.Delete(ctx, key)
}

// Close closes the wrapped KV.
func (e *EncryptedKV) Close() error {
	return e.inner.Close()
}

// DecodeKey parses a base64 encoded 32 byte key.
func DecodeKey(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("storage: decode encryption key: %w", err)
	}
	if len(raw) != adaptive.KeySize {
		return nil, fmt.Errorf("storage: encryption key must be %d bytes, got %d", adaptive.KeySize, len(raw))
	}
	return raw, nil
}

// LoadOrCreateKeyFile reads the base64 key stored at path, generating and
// writing a new one (mode 0600) when the file does not exist yet.
func LoadOrCreateKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return DecodeKey(string(data))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("storage: read key file: %w", err)
	}

	encoded, err := token.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("storage: generate key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("storage: create key dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("storage: write key file: %w", err)
	}
	return DecodeKey(encoded)
}
