// Package repl provides the interactive shell of trailguard-cli.
//
// The shell reads one command line at a time and hands the parsed
// arguments to an Executor, so every command runs against the same
// session and API client:
//
//   - repl.go: read loop, prompt and built-in commands
//   - completer.go: prefix completion (type a prefix followed by "?")
//   - history.go: line history persisted between sessions
//   - args.go: shell-style argument splitting
package repl
