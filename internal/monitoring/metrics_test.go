package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/analyze", http.MethodPost, 200, 12*time.Millisecond)
	m.ObserveRequest("/api/analyze", http.MethodPost, 200, 8*time.Millisecond)
	m.ObserveRequest("/api/analyze", http.MethodPost, 400, time.Millisecond)
	m.ObserveReport(SourceComputed, 5*time.Millisecond)
	m.ObserveReport(SourceCached, 0)
	m.ObserveChart("dispersion", "good")

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/analyze", "POST", "200")); got != 2 {
		t.Errorf("requests{200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.reports.WithLabelValues(SourceCached)); got != 1 {
		t.Errorf("reports{cached} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.reportSeconds); got != 1 {
		t.Errorf("report histogram series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.chartTones.WithLabelValues("dispersion", "good")); got != 1 {
		t.Errorf("chart tones = %v, want 1", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveReport(SourceComputed, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	for _, want := range []string{"swing_report_reports_total", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %s", want)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("/", "GET", 200, 0)
	m.ObserveReport(SourceComputed, 0)
	m.ObserveChart("x", "good")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("nil metrics handler status = %d", w.Code)
	}
}
