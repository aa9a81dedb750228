package main

import (
	"flag"
	"io"

	"github.com/banshee-data/swing.report/internal/db"
)

func runMigrate(args []string, _ io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	dbPath := fs.String("db-path", defaultDBPath, "Path to the session database")
	fs.Usage = func() { db.PrintMigrateHelp(stdout) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	db.RunMigrateCommand(fs.Args(), *dbPath)
	return nil
}
