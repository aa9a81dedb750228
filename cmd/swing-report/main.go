// Command swing-report analyses launch monitor sessions: it serves the HTTP
// API, builds reports from files and manages the session store.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/version"
)

const defaultDBPath = "swing_report.db"

type command struct {
	name  string
	usage string
	run   func(args []string, stdin io.Reader, stdout io.Writer) error
}

var commands = []command{
	{"serve", "run the HTTP API", runServe},
	{"analyze", "build a report from a CSV or JSON session file", runAnalyze},
	{"import", "store a CSV session in the database", runImport},
	{"export", "write a stored session report as HTML, PNG and JSON files", runExport},
	{"migrate", "manage database migrations", runMigrate},
	{"version", "print the build version", runVersion},
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("swing-report: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stdout)
		return nil
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdin, stdout)
		}
	}
	printUsage(stdout)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: swing-report <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

func runVersion(_ []string, _ io.Reader, stdout io.Writer) error {
	_, err := fmt.Fprintln(stdout, version.String())
	return err
}

// loadConfig reads the defaults file when path is set, or returns the
// built-in defaults.
func loadConfig(path string) (*config.RadarConfig, error) {
	if path == "" {
		return config.DefaultRadarConfig(), nil
	}
	cfg, err := config.LoadRadarConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return config.Merge(config.DefaultRadarConfig(), cfg), nil
}
