package db

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEmbeddedMigrationsFS verifies every embedded up migration has a down
// migration.
func TestEmbeddedMigrationsFS(t *testing.T) {
	origDevMode := DevMode
	DevMode = false
	defer func() { DevMode = origDevMode }()

	migFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS() failed: %v", err)
	}
	ups, err := fs.Glob(migFS, "*.up.sql")
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("no embedded migrations")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(migFS, down); err != nil {
			t.Errorf("%s has no matching %s", up, down)
		}
	}
}

// TestDevModeReadsSourceTree checks DevMode serves the same files as the
// embedded copy when run from the repository root.
func TestDevModeReadsSourceTree(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("Abs failed: %v", err)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	if err := os.Chdir(root); err != nil {
		t.Fatalf("Failed to change to repository root: %v", err)
	}

	origDevMode := DevMode
	DevMode = true
	defer func() { DevMode = origDevMode }()

	devFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS() failed: %v", err)
	}
	devLatest, err := GetLatestMigrationVersion(devFS)
	if err != nil {
		t.Fatalf("dev migrations unreadable: %v", err)
	}

	DevMode = false
	embFS, _ := getMigrationsFS()
	embLatest, err := GetLatestMigrationVersion(embFS)
	if err != nil {
		t.Fatalf("embedded migrations unreadable: %v", err)
	}
	if devLatest != embLatest {
		t.Errorf("dev latest %d != embedded latest %d", devLatest, embLatest)
	}
}
