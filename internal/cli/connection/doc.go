// Package connection owns everything a CLI invocation or REPL needs to talk
// to the TrailGuard backend: the token storage, the one session store, the
// API client bound to it and the client metrics.
//
// A Manager is opened once per process and shared by every command, so a
// 401 seen by one command is visible to the next.
package connection
