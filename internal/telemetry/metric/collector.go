package metric

import "github.com/prometheus/client_golang/prometheus"

// SessionCollector reports the session state as a labelled gauge that is 1
// for the current state.
type SessionCollector struct {
	state func() string
	desc  *prometheus.Desc
}

// NewSessionCollector returns a collector that calls state on every scrape.
func NewSessionCollector(state func() string) *SessionCollector {
	return &SessionCollector{
		state: state,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "state"),
			"Current session state.",
			[]string{"state"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *SessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *SessionCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, 1, c.state())
}
