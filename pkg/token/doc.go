// Package token holds helpers for handling opaque bearer credentials on the
// client: random key material, log-safe fingerprints, masked display forms,
// and an unverified peek at JWT expiry for status output.
//
// Nothing here validates a credential. The backend is the only authority on
// whether a token is still accepted.
package token
