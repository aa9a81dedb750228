package db

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBackupEndpoint(t *testing.T) {
	db := newTestDB(t)
	if err := db.CreateSession(context.Background(), testSession()); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	mux := http.NewServeMux()
	if err := db.AttachAdminRoutes(mux); err != nil {
		t.Fatalf("AttachAdminRoutes failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/debug/backup", nil)
	req.RemoteAddr = "127.0.0.1:40000"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=swing-backup-") {
		t.Errorf("unexpected Content-Disposition %q", w.Header().Get("Content-Disposition"))
	}

	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("backup is not gzip: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if !strings.HasPrefix(string(data), "SQLite format 3") {
		t.Error("backup is not a sqlite database")
	}

	name := strings.TrimPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=")
	if _, err := os.Stat(filepath.Join(os.TempDir(), name)); !os.IsNotExist(err) {
		t.Errorf("backup file %s left behind", name)
	}
}

func TestAdminRoutesRequireLocalAccess(t *testing.T) {
	db := newTestDB(t)
	mux := http.NewServeMux()
	if err := db.AttachAdminRoutes(mux); err != nil {
		t.Fatalf("AttachAdminRoutes failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/debug/backup", nil)
	req.RemoteAddr = "203.0.113.7:40000"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Error("backup must not be served to remote addresses")
	}
}
