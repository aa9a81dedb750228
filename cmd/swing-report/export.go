package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/db"
	"github.com/banshee-data/swing.report/internal/render"
)

func runExport(args []string, _ io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dbPath := fs.String("db-path", defaultDBPath, "Path to the session database")
	configPath := fs.String("config", "", "Report defaults file (.json, .yaml or .yml)")
	outDir := fs.String("out", ".", "Directory receiving one sub-directory per session")
	formats := fs.String("formats", "html,png,json", "Comma separated output formats")
	assetsHost := fs.String("assets-host", "", "Host serving the echarts scripts (default: go-echarts CDN)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: swing-report export [flags] <session-id>")
	}

	var fmts []render.Format
	for _, f := range strings.Split(*formats, ",") {
		parsed, err := render.ParseFormat(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		fmts = append(fmts, parsed)
	}

	defaults, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	store, err := db.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.GetSession(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	rep, err := analytics.NewEngine(defaults).Build(sess.Input())
	if err != nil {
		return err
	}

	e := render.NewExporter()
	e.FS = fileSystem
	e.Formats = fmts
	e.HTML.AssetsHost = *assetsHost
	name := sess.Label
	if name == "" {
		name = sess.ID
	}
	files, err := e.Export(*outDir, name, rep)
	for _, f := range files {
		fmt.Fprintln(stdout, f)
	}
	return err
}
