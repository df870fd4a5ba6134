// Package command provides the trailguard-cli command tree.
//
// It uses urfave/cli/v2. The Before hook builds one Runtime per process
// (config, logger, printer and a lazily opened connection.Manager), so
// commands run in single-command mode and inside the shell share the same
// session store and API client:
//
//   - root.go: App, global flags, Runtime
//   - auth.go: login, register, logout, whoami
//   - rescue.go, team.go, expedition.go, subscription.go: resource commands
//   - config.go: local configuration
//   - system.go: version, status and metrics
//   - shell.go: interactive shell
//   - errors.go: user-facing messages and exit codes
package command
