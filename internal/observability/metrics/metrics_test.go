package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}

func TestPortalMetricsObserveBackend(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPortalMetrics(reg)
	m.ObserveBackend("list_appointments", "ok", 0.2)
	m.ObserveBackend("list_appointments", "ok", 0.1)
	m.ObserveBackend("list_appointments", "unavailable", 1.5)

	if got := testutil.ToFloat64(m.backendTotal.WithLabelValues("list_appointments", "ok")); got != 2 {
		t.Fatalf("ok count = %v, want 2", got)
	}
	hist := findFamily(t, reg, "portal_backend_request_duration_seconds")
	if n := hist.GetMetric()[0].GetHistogram().GetSampleCount(); n != 3 {
		t.Fatalf("sample count = %d, want 3", n)
	}
}

func TestPortalMetricsObserveSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPortalMetrics(reg)
	m.ObserveSession("created")
	m.ObserveSession("destroyed")
	m.ObserveSession("created")

	if got := testutil.ToFloat64(m.sessionsTotal.WithLabelValues("created")); got != 2 {
		t.Fatalf("created = %v, want 2", got)
	}
	if fam := findFamily(t, reg, "portal_sessions_total"); len(fam.GetMetric()) != 2 {
		t.Fatalf("expected 2 label sets, got %d", len(fam.GetMetric()))
	}
}

func TestPortalMetricsNilSafe(t *testing.T) {
	var m *PortalMetrics
	m.ObserveBackend("op", "ok", 0.1)
	m.ObserveSession("created")
}
