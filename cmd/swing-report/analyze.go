package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/fsutil"
	"github.com/banshee-data/swing.report/internal/httputil"
	"github.com/banshee-data/swing.report/internal/shots"
)

// fileSystem is swapped for an in-memory one in tests.
var fileSystem fsutil.FileSystem = fsutil.OSFileSystem{}

// httpClient posts to a remote server in analyze -server mode.
var httpClient httputil.HTTPClient = &http.Client{Timeout: 30 * time.Second}

func runAnalyze(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	configPath := fs.String("config", "", "Report defaults file (.json, .yaml or .yml)")
	server := fs.String("server", "", "Send the session to a running server (http://host:port) instead of analysing locally")
	club := fs.String("club", "", "Club used for the session, when the file does not say")
	format := fs.String("format", "", "Input format: csv or json (default: from the file extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: swing-report analyze [flags] <file|->")
	}

	in, err := readInput(fs.Arg(0), *format, stdin)
	if err != nil {
		return err
	}
	if *club != "" {
		in.Club = *club
	}

	var rep analytics.Report
	if *server != "" {
		url := strings.TrimSuffix(*server, "/") + "/api/analyze"
		if err := httputil.PostJSON(context.Background(), httpClient, url, in, &rep); err != nil {
			return err
		}
	} else {
		defaults, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		r, err := analytics.NewEngine(defaults).Build(*in)
		if err != nil {
			return err
		}
		rep = *r
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(&rep)
}

// readInput loads an engine input from path, or from stdin when path is "-".
// CSV files become a session with no config.
func readInput(path, format string, stdin io.Reader) (*analytics.Input, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = fileSystem.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if format == "" {
		format = "json"
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			format = "csv"
		}
	}

	switch format {
	case "csv":
		cols, rows, err := shots.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &analytics.Input{Columns: cols, Shots: rows}, nil
	case "json":
		var in analytics.Input
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return &in, nil
	default:
		return nil, fmt.Errorf("unknown input format %q (want csv or json)", format)
	}
}
