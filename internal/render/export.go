package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/fsutil"
	"github.com/banshee-data/swing.report/internal/monitoring"
	"github.com/banshee-data/swing.report/internal/security"
)

// Format is an export file type.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// AllFormats is the default export set.
var AllFormats = []Format{FormatJSON, FormatHTML, FormatPNG}

// ParseFormat accepts html, png or json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatHTML, FormatPNG, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want html, png or json)", s)
}

// Exporter writes a report and its charts under a directory.
type Exporter struct {
	FS      fsutil.FileSystem
	HTML    Options
	Width   vg.Length
	Height  vg.Length
	Formats []Format
}

// NewExporter returns an exporter writing every format to the OS filesystem.
func NewExporter() *Exporter {
	return &Exporter{FS: fsutil.OSFileSystem{}, Formats: AllFormats}
}

// Export writes rep into dir/<name>/: report.json plus one file per chart
// and format. Charts a format cannot draw are skipped. It returns the
// written paths in order.
func (e *Exporter) Export(dir, name string, rep *analytics.Report) ([]string, error) {
	out := filepath.Join(dir, security.SanitizeFilename(name))
	if err := security.ValidateExportPath(out); err != nil {
		return nil, err
	}
	if err := e.FS.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	formats := e.Formats
	if len(formats) == 0 {
		formats = AllFormats
	}

	var written []string
	for _, f := range formats {
		if f == FormatJSON {
			path := filepath.Join(out, "report.json")
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return written, fmt.Errorf("encode report: %w", err)
			}
			if err := e.FS.WriteFile(path, data, 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
			continue
		}
		for _, c := range rep.Charts {
			path := filepath.Join(out, security.SanitizeFilename(c.Key)+"."+string(f))
			var buf bytes.Buffer
			var err error
			switch f {
			case FormatHTML:
				err = HTML(&buf, c, e.HTML)
			case FormatPNG:
				err = PNG(&buf, c, e.Width, e.Height)
			}
			if errors.Is(err, ErrUnsupported) {
				monitoring.Logf("export: skipping %s for %s", f, c.Key)
				continue
			}
			if err != nil {
				return written, err
			}
			if err := e.FS.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}
