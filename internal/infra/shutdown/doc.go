// Package shutdown coordinates process exit for the CLI.
//
// A Handler collects close hooks (storage, watchers) and runs them once,
// in reverse registration order, under a timeout. Context cancels a
// context on SIGINT or SIGTERM so in-flight requests are abandoned before
// the hooks run.
//
//	h := shutdown.NewHandler(5*time.Second, log)
//	ctx, stop := h.Context(context.Background())
//	defer stop()
//	h.OnShutdown("storage", kv.Close)
//	...
//	err := h.Shutdown()
package shutdown
