// Package adaptive seals small secrets with an AEAD chosen for the host.
//
// AES-256-GCM is preferred where the CPU accelerates AES, ChaCha20-Poly1305
// everywhere else. Sealed values carry a two byte header (format version and
// algorithm), so a value sealed on one machine opens on any other that holds
// the same key, whichever algorithm that machine would have picked.
//
// Envelope layout:
//
//	+---------+-----------+-------+---------------------+
//	| version | algorithm | nonce | ciphertext + tag    |
//	| 1 byte  | 1 byte    | N     | len(plaintext) + 16 |
//	+---------+-----------+-------+---------------------+
//
// Usage:
//
//	s, err := adaptive.New(key)
//	sealed, err := s.Seal([]byte(token), []byte("token"))
//	plain, err := s.Open(sealed, []byte("token"))
package adaptive
