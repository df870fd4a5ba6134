// Package metric holds the client-side Prometheus metrics.
//
//   - prometheus.go: the Registry with request, error and session counters
//   - collector.go: a collector that reports the live session state
//
// Nothing is served over HTTP. The CLI reads the registry in-process
// (`trailguard-cli system metrics`) and tests assert on it with testutil.
package metric
