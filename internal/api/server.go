package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/cache"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/db"
	"github.com/banshee-data/swing.report/internal/httputil"
	"github.com/banshee-data/swing.report/internal/monitoring"
	"github.com/banshee-data/swing.report/internal/render"
	"github.com/banshee-data/swing.report/internal/timeutil"
	"github.com/banshee-data/swing.report/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Options carries the optional collaborators of a Server. Zero values fall
// back to a no-op cache, no metrics and the system clock.
type Options struct {
	Cache   cache.Cache
	Metrics *monitoring.Metrics
	Clock   timeutil.Clock
	HTML    render.Options
}

type Server struct {
	db       *db.DB
	defaults *config.RadarConfig
	engine   *analytics.Engine
	cache    cache.Cache
	metrics  *monitoring.Metrics
	clock    timeutil.Clock
	html     render.Options
}

// NewServer serves sessions from store. Request configs are overlaid on
// defaults, or on the built-in defaults when nil.
func NewServer(store *db.DB, defaults *config.RadarConfig, opts Options) *Server {
	if defaults == nil {
		defaults = config.DefaultRadarConfig()
	}
	s := &Server{
		db:       store,
		defaults: defaults,
		engine:   analytics.NewEngine(defaults),
		cache:    opts.Cache,
		metrics:  opts.Metrics,
		clock:    opts.Clock,
		html:     opts.HTML,
	}
	if s.cache == nil {
		s.cache = cache.NopCache{}
	}
	if s.clock == nil {
		s.clock = timeutil.RealClock{}
	}
	return s
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// instrument records request counts and latency by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(route, r.Method, lrw.statusCode, s.clock.Since(start))
	})
}

// ServeMux registers the API routes. Debug routes are attached separately
// with db.AttachAdminRoutes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/config", s.showConfig)
	mux.HandleFunc("GET /api/sessions", s.listSessions)
	mux.HandleFunc("POST /api/sessions", s.createSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.getSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.deleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/shots", s.appendShots)
	mux.HandleFunc("PUT /api/sessions/{id}/config", s.updateConfig)
	mux.HandleFunc("GET /api/sessions/{id}/report", s.sessionReport)
	mux.HandleFunc("GET /api/sessions/{id}/charts/{key}", s.sessionChart)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// Handler wraps mux with metrics and access logging.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	return LoggingMiddleware(s.instrument(mux))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in analytics.Input
	if err := httputil.DecodeJSON(w, r, &in); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	rep, err := s.build(in)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, rep)
}

// build runs the engine and records the build in metrics.
func (s *Server) build(in analytics.Input) (*analytics.Report, error) {
	start := s.clock.Now()
	rep, err := s.engine.Build(in)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReport(monitoring.SourceComputed, s.clock.Since(start))
	for _, c := range rep.Charts {
		s.metrics.ObserveChart(c.Key, string(c.Tone))
	}
	return rep, nil
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]interface{}{
		"version":   version.Version,
		"gitSha":    version.GitSHA,
		"chartKeys": config.ChartKeys,
		"defaults":  s.defaults,
	})
}

// writeStoreError maps store errors to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrSessionNotFound) {
		httputil.NotFound(w, err.Error())
		return
	}
	monitoring.Logf("store error: %v", err)
	httputil.InternalServerError(w, "session store error")
}
