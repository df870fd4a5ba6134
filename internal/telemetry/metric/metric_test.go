package metric

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_ObserveRequest(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest("GET", 200, 120*time.Millisecond)
	r.ObserveRequest("GET", 200, 80*time.Millisecond)
	r.ObserveRequest("POST", 401, 10*time.Millisecond)

	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("GET", "200")); got != 2 {
		t.Errorf("GET 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("POST", "401")); got != 1 {
		t.Errorf("POST 401 = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(r.RequestDuration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()
	r.IncError("timeout")
	r.IncError("timeout")
	r.IncSessionClear("expired")

	if got := testutil.ToFloat64(r.Errors.WithLabelValues("timeout")); got != 2 {
		t.Errorf("timeout errors = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.SessionClears.WithLabelValues("expired")); got != 1 {
		t.Errorf("expired clears = %v, want 1", got)
	}
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	r.ObserveRequest("GET", 200, time.Second)
	r.IncError("network")
	r.IncSessionClear("logout")
	r.MustRegister(NewSessionCollector(func() string { return "x" }))

	samples, err := r.Samples()
	if err != nil || samples != nil {
		t.Errorf("Samples() on nil = %v, %v", samples, err)
	}
}

func TestRegistry_Samples(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest("GET", 200, 500*time.Millisecond)
	r.IncError("server")

	samples, err := r.Samples()
	if err != nil {
		t.Fatalf("Samples() error = %v", err)
	}

	want := map[string]float64{
		"trailguard_api_requests_total|method=GET,status=200":      1,
		"trailguard_api_request_duration_seconds_count|method=GET": 1,
		"trailguard_api_request_duration_seconds_sum|method=GET":   0.5,
		"trailguard_api_errors_total|kind=server":                  1,
	}
	got := make(map[string]float64)
	for _, s := range samples {
		got[s.Name+"|"+s.Labels] = s.Value
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	for i := 1; i < len(samples); i++ {
		if samples[i-1].Name > samples[i].Name {
			t.Fatalf("samples not sorted at %d", i)
		}
	}
}

func TestSessionCollector(t *testing.T) {
	state := "loaded_without_token"
	c := NewSessionCollector(func() string { return state })

	expected := `
# HELP trailguard_session_state Current session state.
# TYPE trailguard_session_state gauge
trailguard_session_state{state="loaded_without_token"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}

	r := NewRegistry()
	r.MustRegister(c)
	state = "loaded_with_token"
	samples, _ := r.Samples()
	found := false
	for _, s := range samples {
		if s.Name == "trailguard_session_state" && s.Labels == "state=loaded_with_token" {
			found = true
		}
	}
	if !found {
		t.Error("session state sample missing from registry")
	}
}
