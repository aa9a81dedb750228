package db

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintMigrateHelp(t *testing.T) {
	var buf bytes.Buffer
	PrintMigrateHelp(&buf)
	for _, want := range []string{"swing-report migrate", "up", "down", "status", "force <N>", "baseline <N>"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRunMigrateAction(t *testing.T) {
	db := setupMigrationTestDB(t)
	migrationsFS := setupTestMigrations(t)

	var out bytes.Buffer
	if err := runMigrateAction(db, migrationsFS, []string{"up"}, &out, strings.NewReader("")); err != nil {
		t.Fatalf("up failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current version: 2 (dirty: false)") {
		t.Errorf("unexpected up output: %q", out.String())
	}

	out.Reset()
	if err := runMigrateAction(db, migrationsFS, []string{"down"}, &out, strings.NewReader("")); err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current version: 1") {
		t.Errorf("unexpected down output: %q", out.String())
	}

	out.Reset()
	if err := runMigrateAction(db, migrationsFS, []string{"status"}, &out, strings.NewReader("")); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 migration(s) pending") {
		t.Errorf("status should report pending migration: %q", out.String())
	}

	if err := runMigrateAction(db, migrationsFS, []string{"version", "2"}, &out, strings.NewReader("")); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	version, _, _ := db.MigrateVersion(migrationsFS)
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestRunMigrateActionForce(t *testing.T) {
	db := setupMigrationTestDB(t)
	migrationsFS := setupTestMigrations(t)
	if err := db.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	var out bytes.Buffer
	if err := runMigrateAction(db, migrationsFS, []string{"force", "1"}, &out, strings.NewReader("n\n")); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	if version, _, _ := db.MigrateVersion(migrationsFS); version != 2 {
		t.Errorf("declined force must not change version, got %d", version)
	}

	if err := runMigrateAction(db, migrationsFS, []string{"force", "1"}, &out, strings.NewReader("y\n")); err != nil {
		t.Fatalf("force failed: %v", err)
	}
	if version, _, _ := db.MigrateVersion(migrationsFS); version != 1 {
		t.Errorf("expected forced version 1, got %d", version)
	}
}

func TestRunMigrateActionErrors(t *testing.T) {
	db := setupMigrationTestDB(t)
	migrationsFS := setupTestMigrations(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, "usage"},
		{[]string{"version", "abc"}, "invalid version number"},
		{[]string{"baseline", "-1"}, "invalid version number"},
		{[]string{"sideways"}, "unknown migrate action"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		err := runMigrateAction(db, migrationsFS, tt.args, &out, strings.NewReader(""))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: expected error containing %q, got %v", tt.args, tt.want, err)
		}
	}
}

func TestOpenDB(t *testing.T) {
	db := setupMigrationTestDB(t)
	if err := db.Ping(); err != nil {
		t.Errorf("Database ping failed: %v", err)
	}
	if hasTable(t, db, "sessions") {
		t.Error("OpenDB must not create the schema")
	}
}
