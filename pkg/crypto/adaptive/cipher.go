package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the only accepted key length.
const KeySize = 32

const envelopeVersion byte = 1

// CipherType identifies the AEAD algorithm of a sealed value.
type CipherType byte

const (
	CipherAESGCM   CipherType = 1
	CipherChaCha20 CipherType = 2
)

// String returns the algorithm name.
func (t CipherType) String() string {
	switch t {
	case CipherAESGCM:
		return "aes-256-gcm"
	case CipherChaCha20:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Errors returned by Seal and Open.
var (
	ErrInvalidKey     = errors.New("adaptive: key must be 32 bytes")
	ErrMalformed      = errors.New("adaptive: malformed envelope")
	ErrUnsupported    = errors.New("adaptive: unsupported envelope")
	ErrAuthentication = errors.New("adaptive: message authentication failed")
)

// Sealer encrypts and authenticates values under a single key.
// It is safe for concurrent use.
type Sealer struct {
	key       []byte
	preferred CipherType

	mu    sync.Mutex
	aeads map[CipherType]cipher.AEAD
}

// New returns a Sealer that seals with the algorithm best suited to the host.
func New(key []byte) (*Sealer, error) {
	if hasAESAcceleration() {
		return NewWithType(key, CipherAESGCM)
	}
	return NewWithType(key, CipherChaCha20)
}

// NewWithType returns a Sealer that always seals with the given algorithm.
// Open still accepts envelopes of either algorithm.
func NewWithType(key []byte, t CipherType) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	s := &Sealer{
		key:       append([]byte(nil), key...),
		preferred: t,
		aeads:     make(map[CipherType]cipher.AEAD, 2),
	}
	if _, err := s.aead(t); err != nil {
		return nil, err
	}
	return s, nil
}

// Type returns the algorithm used by Seal.
func (s *Sealer) Type() CipherType {
	return s.preferred
}

// Seal encrypts plaintext and binds it to additionalData.
func (s *Sealer) Seal(plaintext, additionalData []byte) ([]byte, error) {
	aead, err := s.aead(s.preferred)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 2+aead.NonceSize(), 2+aead.NonceSize()+len(plaintext)+aead.Overhead())
	out[0] = envelopeVersion
	out[1] = byte(s.preferred)
	nonce := out[2:]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("adaptive: read nonce: %w", err)
	}
	return aead.Seal(out, nonce, plaintext, additionalData), nil
}

// Open verifies and decrypts an envelope produced by Seal.
func (s *Sealer) Open(envelope, additionalData []byte) ([]byte, error) {
	if len(envelope) < 2 {
		return nil, ErrMalformed
	}
	if envelope[0] != envelopeVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupported, envelope[0])
	}

	aead, err := s.aead(CipherType(envelope[1]))
	if err != nil {
		return nil, err
	}

	body := envelope[2:]
	if len(body) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrMalformed
	}
	nonce, ciphertext := body[:aead.NonceSize()], body[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func (s *Sealer) aead(t CipherType) (cipher.AEAD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.aeads[t]; ok {
		return a, nil
	}

	var (
		a   cipher.AEAD
		err error
	)
	switch t {
	case CipherAESGCM:
		var block cipher.Block
		if block, err = aes.NewCipher(s.key); err == nil {
			a, err = cipher.NewGCM(block)
		}
	case CipherChaCha20:
		a, err = chacha20poly1305.New(s.key)
	default:
		return nil, fmt.Errorf("%w: algorithm %s", ErrUnsupported, t)
	}
	if err != nil {
		return nil, err
	}
	s.aeads[t] = a
	return a, nil
}

// hasAESAcceleration reports whether crypto/aes runs on hardware instructions.
// Go uses AES-NI on amd64 and the ARMv8 crypto extensions on arm64.
func hasAESAcceleration() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64", "s390x":
		return true
	default:
		return false
	}
}
