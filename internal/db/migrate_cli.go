package db

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
)

// RunMigrateCommand handles the 'migrate' subcommand dispatching
func RunMigrateCommand(args []string, dbPath string) {
	if len(args) < 1 {
		PrintMigrateHelp(os.Stdout)
		os.Exit(1)
	}
	if args[0] == "help" {
		PrintMigrateHelp(os.Stdout)
		return
	}

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		log.Fatalf("Failed to get migrations filesystem: %v", err)
	}

	// Migrations manage the schema, so the database is opened without them.
	database, err := OpenDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := runMigrateAction(database, migrationsFS, args, os.Stdout, os.Stdin); err != nil {
		log.Fatalf("migrate %s: %v", args[0], err)
	}
}

func runMigrateAction(database *DB, migrationsFS fs.FS, args []string, out io.Writer, in io.Reader) error {
	action := args[0]
	arg := func() (int, error) {
		if len(args) < 2 {
			return 0, fmt.Errorf("usage: swing-report migrate %s <version_number>", action)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid version number: %s", args[1])
		}
		return v, nil
	}

	switch action {
	case "up":
		log.Printf("Running migrations...")
		if err := database.MigrateUp(migrationsFS); err != nil {
			return err
		}
		log.Println("✓ All migrations applied successfully")
		return printVersion(database, migrationsFS, out)

	case "down":
		log.Printf("Rolling back one migration...")
		if err := database.MigrateDown(migrationsFS); err != nil {
			return err
		}
		log.Println("✓ Migration rolled back successfully")
		return printVersion(database, migrationsFS, out)

	case "status":
		status, err := database.GetMigrationStatus(migrationsFS)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "=== Migration Status ===")
		fmt.Fprintf(out, "Current version: %d\n", status.CurrentVersion)
		fmt.Fprintf(out, "Latest available: %d\n", status.LatestVersion)
		fmt.Fprintf(out, "Dirty: %v\n", status.Dirty)
		fmt.Fprintf(out, "Schema migrations table exists: %v\n", status.SchemaMigrationsExists)
		if status.Dirty {
			fmt.Fprintln(out, "\n⚠️  WARNING: Database is in a dirty state!")
			fmt.Fprintln(out, "A migration failed mid-execution. Inspect the database, then run:")
			fmt.Fprintln(out, "  swing-report migrate force <version>")
		} else if status.CurrentVersion < status.LatestVersion {
			fmt.Fprintf(out, "\n%d migration(s) pending. Run 'swing-report migrate up' to update.\n",
				status.LatestVersion-status.CurrentVersion)
		}
		return nil

	case "version":
		v, err := arg()
		if err != nil {
			return err
		}
		log.Printf("Migrating to version %d...", v)
		if err := database.MigrateTo(migrationsFS, uint(v)); err != nil {
			return err
		}
		log.Printf("✓ Migrated to version %d successfully", v)
		return nil

	case "force":
		v, err := arg()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "⚠️  WARNING: Forcing migration version to %d\n", v)
		fmt.Fprintln(out, "This should only be used to recover from a dirty migration state.")
		fmt.Fprint(out, "Continue? [y/N]: ")
		var response string
		fmt.Fscanln(in, &response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
		if err := database.MigrateForce(migrationsFS, v); err != nil {
			return err
		}
		log.Printf("✓ Migration version forced to %d", v)
		return nil

	case "baseline":
		v, err := arg()
		if err != nil {
			return err
		}
		return database.BaselineAtVersion(uint(v))
	}

	PrintMigrateHelp(out)
	return fmt.Errorf("unknown migrate action: %s", action)
}

func printVersion(database *DB, migrationsFS fs.FS, out io.Writer) error {
	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Current version: %d (dirty: %v)\n", version, dirty)
	return nil
}

// PrintMigrateHelp displays the help message for the migrate command
func PrintMigrateHelp(out io.Writer) {
	fmt.Fprint(out, `Database Migration Commands

Usage: swing-report migrate <command> [options]

Commands:
  up              Apply all pending migrations
  down            Rollback one migration
  status          Show current migration status and version
  version <N>     Migrate to specific version N
  force <N>       Force migration version to N (recovery only)
  baseline <N>    Set migration version to N without running migrations
  help            Show this help message

Examples:
  swing-report migrate up
  swing-report migrate status
  swing-report migrate version 1
  swing-report -db-path sessions.db migrate down
`)
}
