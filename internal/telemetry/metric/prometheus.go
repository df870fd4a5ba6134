package metric

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trailguard"

// Registry holds all client metrics. A nil *Registry is valid and records
// nothing, so callers never need to guard metric calls.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Errors          *prometheus.CounterVec
	SessionClears   *prometheus.CounterVec
}

// NewRegistry creates a registry with every client metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API responses received, by method and HTTP status.",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of API requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Failed API calls, by error kind (network, timeout, server, auth_expired).",
		}, []string{"kind"}),
		SessionClears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "clears_total",
			Help:      "Session clears, by reason.",
		}, []string{"reason"}),
	}

	r.reg.MustRegister(r.RequestsTotal, r.RequestDuration, r.Errors, r.SessionClears)
	return r
}

// MustRegister adds extra collectors to the registry.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	if r == nil {
		return
	}
	r.reg.MustRegister(cs...)
}

// ObserveRequest records a completed HTTP exchange.
func (r *Registry) ObserveRequest(method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncError counts a failed call of the given kind.
func (r *Registry) IncError(kind string) {
	if r == nil {
		return
	}
	r.Errors.WithLabelValues(kind).Inc()
}

// IncSessionClear counts a session clear.
func (r *Registry) IncSessionClear(reason string) {
	if r == nil {
		return
	}
	r.SessionClears.WithLabelValues(reason).Inc()
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Samples gathers the registry into a flat, sorted list. Histograms are
// reported as their _count and _sum series.
func (r *Registry) Samples() ([]Sample, error) {
	if r == nil {
		return nil, nil
	}

	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}
			labels := strings.Join(pairs, ",")

			switch {
			case m.GetCounter() != nil:
				out = append(out, Sample{mf.GetName(), labels, m.GetCounter().GetValue()})
			case m.GetGauge() != nil:
				out = append(out, Sample{mf.GetName(), labels, m.GetGauge().GetValue()})
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				out = append(out,
					Sample{mf.GetName() + "_count", labels, float64(h.GetSampleCount())},
					Sample{mf.GetName() + "_sum", labels, h.GetSampleSum()},
				)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
