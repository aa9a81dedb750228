package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/columns"
	"github.com/banshee-data/swing.report/internal/db"
)

func runImport(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dbPath := fs.String("db-path", defaultDBPath, "Path to the session database")
	label := fs.String("label", "", "Session label (default: file name)")
	club := fs.String("club", "", "Club used for the session")
	session := fs.String("session", "", "Append the shots to this existing session instead of creating one")
	quiet := fs.Bool("quiet", false, "Hide the progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: swing-report import [flags] <file.csv|->")
	}
	path := fs.Arg(0)

	in, err := readInput(path, "csv", stdin)
	if err != nil {
		return err
	}
	if len(in.Shots) == 0 {
		return errors.New("no shots to import")
	}
	if err := columns.Resolve(in.Columns).CheckSpeedUnits(); err != nil {
		return err
	}

	store, err := db.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var bar *progressbar.ProgressBar
	progress := func() {}
	if !*quiet {
		bar = progressbar.NewOptions(len(in.Shots),
			progressbar.OptionSetWriter(stdout),
			progressbar.OptionSetDescription("importing shots"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		progress = func() { _ = bar.Add(1) }
	}

	id, err := importShots(context.Background(), store, in, *session, sessionLabel(*label, path), *club, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s: %d shots\n", id, len(in.Shots))
	return err
}

// importShots appends to session when set, and otherwise creates a new
// session holding in. It returns the session id.
func importShots(ctx context.Context, store *db.DB, in *analytics.Input, session, label, club string, progress func()) (string, error) {
	if session != "" {
		if err := store.AppendShots(ctx, session, in.Shots, progress); err != nil {
			return "", fmt.Errorf("append shots: %w", err)
		}
		return session, nil
	}
	s := &db.Session{Label: label, Club: club, Columns: in.Columns}
	if err := store.CreateSession(ctx, s); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if err := store.AppendShots(ctx, s.ID, in.Shots, progress); err != nil {
		return "", fmt.Errorf("append shots: %w", err)
	}
	return s.ID, nil
}

func sessionLabel(label, path string) string {
	if label != "" {
		return label
	}
	if path == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
