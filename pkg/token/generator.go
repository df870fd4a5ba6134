package token

import (
	"crypto/rand"
	"encoding/base64"
)

// KeyLength is the size of generated symmetric keys in bytes.
const KeyLength = 32

// GenerateBytes returns length bytes from crypto/rand.
func GenerateBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateKey returns a fresh KeyLength-byte key, standard base64 encoded.
func GenerateKey() (string, error) {
	b, err := GenerateBytes(KeyLength)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
