package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Report sources recorded by ObserveReport.
const (
	SourceComputed = "computed"
	SourceCached   = "cached"
)

// Metrics holds the service collectors on a private registry. A nil
// *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
	reports        *prometheus.CounterVec
	reportSeconds  prometheus.Histogram
	chartTones     *prometheus.CounterVec
}

// NewMetrics registers the service collectors plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swing_report",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "swing_report",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swing_report",
			Name:      "reports_total",
			Help:      "Reports served, by source.",
		}, []string{"source"}),
		reportSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swing_report",
			Name:      "report_build_duration_seconds",
			Help:      "Time spent building a report.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		chartTones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swing_report",
			Name:      "chart_tones_total",
			Help:      "Charts rendered, by chart key and tone.",
		}, []string{"chart", "tone"}),
	}
	m.registry.MustRegister(
		m.requests, m.requestSeconds, m.reports, m.reportSeconds, m.chartTones,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestSeconds.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveReport counts a served report. Build time is only recorded for
// computed reports.
func (m *Metrics) ObserveReport(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(source).Inc()
	if source == SourceComputed {
		m.reportSeconds.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveChart(chart, tone string) {
	if m == nil {
		return
	}
	m.chartTones.WithLabelValues(chart, tone).Inc()
}
