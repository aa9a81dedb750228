package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/cache"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/db"
	"github.com/banshee-data/swing.report/internal/httputil"
	"github.com/banshee-data/swing.report/internal/monitoring"
	"github.com/banshee-data/swing.report/internal/shots"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// errNoColumns rejects sessions that carry no column metadata.
var errNoColumns = errors.New("columns are required")

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxListLimit {
			httputil.BadRequest(w, "invalid 'limit' parameter")
			return
		}
		limit = n
	}
	list, err := s.db.ListSessions(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if list == nil {
		list = []db.SessionSummary{}
	}
	httputil.WriteJSONOK(w, list)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var sess db.Session
	if err := httputil.DecodeJSON(w, r, &sess); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if len(sess.Columns) == 0 {
		httputil.BadRequest(w, errNoColumns.Error())
		return
	}
	if err := columns.Resolve(sess.Columns).CheckSpeedUnits(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := s.validateConfig(sess.Config); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	sess.ID = ""
	sess.CreatedAt = s.clock.Now().UTC()
	if err := s.db.CreateSession(r.Context(), &sess); err != nil {
		writeStoreError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, db.SessionSummary{
		ID:        sess.ID,
		Label:     sess.Label,
		Club:      sess.Club,
		CreatedAt: sess.CreatedAt,
		ShotCount: len(sess.Shots),
	})
}

// validateConfig checks a per-session config as it will be applied.
func (s *Server) validateConfig(cfg *config.RadarConfig) error {
	if cfg == nil {
		return nil
	}
	return config.Merge(s.defaults, cfg).Validate()
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.db.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httputil.WriteJSONOK(w, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.DeleteSession(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate(r, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) appendShots(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body struct {
		Shots []shots.Shot `json:"shots"`
	}
	if err := httputil.DecodeJSON(w, r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := s.db.AppendShots(r.Context(), id, body.Shots, nil); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate(r, id)
	httputil.WriteJSONOK(w, map[string]int{"appended": len(body.Shots)})
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var cfg *config.RadarConfig
	if err := httputil.DecodeJSON(w, r, &cfg); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := s.validateConfig(cfg); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := s.db.UpdateSessionConfig(r.Context(), id, cfg); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate(r, id)
	w.WriteHeader(http.StatusNoContent)
}

// invalidate drops the cached report of a changed session. Cache errors are
// logged; the entry expires on its own.
func (s *Server) invalidate(r *http.Request, id string) {
	if err := s.cache.Delete(r.Context(), cache.ReportKey(id)); err != nil {
		monitoring.Logf("cache delete %s: %v", id, err)
	}
}

// loadReport returns the encoded report of a session, from the cache when
// present. The returned source is monitoring.SourceCached or
// monitoring.SourceComputed.
func (s *Server) loadReport(r *http.Request, id string) ([]byte, string, error) {
	key := cache.ReportKey(id)
	data, ok, err := s.cache.Get(r.Context(), key)
	if err != nil {
		monitoring.Logf("cache get %s: %v", id, err)
	}
	if ok {
		s.metrics.ObserveReport(monitoring.SourceCached, 0)
		return data, monitoring.SourceCached, nil
	}

	sess, err := s.db.GetSession(r.Context(), id)
	if err != nil {
		return nil, "", err
	}
	rep, err := s.build(sess.Input())
	if err != nil {
		return nil, "", err
	}
	data, err = json.Marshal(rep)
	if err != nil {
		return nil, "", err
	}
	if err := s.cache.Set(r.Context(), key, data); err != nil {
		monitoring.Logf("cache set %s: %v", id, err)
	}
	return data, monitoring.SourceComputed, nil
}

func (s *Server) sessionReport(w http.ResponseWriter, r *http.Request) {
	data, src, err := s.loadReport(r, r.PathValue("id"))
	if err != nil {
		writeReportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Report-Source", src)
	_, _ = w.Write(data)
}

// report decodes the (possibly cached) report of a session.
func (s *Server) report(r *http.Request, id string) (*analytics.Report, error) {
	data, _, err := s.loadReport(r, id)
	if err != nil {
		return nil, err
	}
	var rep analytics.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// writeReportError separates missing sessions from stored configs that no
// longer validate.
func writeReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrSessionNotFound) {
		writeStoreError(w, err)
		return
	}
	monitoring.Logf("report error: %v", err)
	httputil.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
}
