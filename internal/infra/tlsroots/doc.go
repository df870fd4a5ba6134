// Package tlsroots builds the client TLS configuration for talking to the
// TrailGuard backend over https.
//
// Trust starts from the system pool and can be extended with a private CA
// bundle. A client certificate, when configured, is served through a
// Watcher that reloads the key pair when the files change.
package tlsroots
