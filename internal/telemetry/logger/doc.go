// Package logger provides structured logging for the TrailGuard client.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the dynamic level
//   - context.go: context-carried loggers and request IDs
//   - redact.go: masking of credentials before they reach a handler
//
// The CLI logs to stderr in text format at warn level unless told otherwise,
// so command output on stdout stays clean for scripting.
package logger
