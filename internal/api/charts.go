package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/banshee-data/swing.report/internal/httputil"
	"github.com/banshee-data/swing.report/internal/render"
)

// sessionChart serves one chart of a session report as an HTML page, or as
// a PNG image when the key ends in ".png".
func (s *Server) sessionChart(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	png := strings.HasSuffix(key, ".png")
	key = strings.TrimSuffix(key, ".png")

	rep, err := s.report(r, r.PathValue("id"))
	if err != nil {
		writeReportError(w, err)
		return
	}
	c, ok := rep.Chart(key)
	if !ok {
		httputil.NotFound(w, "chart "+key+" is not part of this report")
		return
	}

	var buf bytes.Buffer
	contentType := "text/html; charset=utf-8"
	if png {
		contentType = "image/png"
		err = render.PNG(&buf, c, 0, 0)
	} else {
		err = render.HTML(&buf, c, s.html)
	}
	if errors.Is(err, render.ErrUnsupported) {
		httputil.NotFound(w, err.Error())
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "failed to render chart: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}
