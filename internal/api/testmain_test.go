package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/swing.report/internal/cache"
	"github.com/banshee-data/swing.report/internal/db"
	"github.com/banshee-data/swing.report/internal/monitoring"
	"github.com/banshee-data/swing.report/internal/timeutil"
)

// templatePath is a migrated store cloned by each test, so the migrations
// run once per package instead of once per test.
var templatePath string

func TestMain(m *testing.M) {
	os.Exit(runTestMain(m))
}

func runTestMain(m *testing.M) int {
	tmpDir, err := os.MkdirTemp("", "swing-api-template-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create template dir: %v\n", err)
		return 1
	}
	defer os.RemoveAll(tmpDir)

	templatePath = filepath.Join(tmpDir, "template.db")
	store, err := db.NewDB(templatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init template db: %v\n", err)
		return 1
	}
	if _, err := store.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "checkpoint template db: %v\n", err)
		_ = store.Close()
		return 1
	}
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close template db: %v\n", err)
		return 1
	}
	return m.Run()
}

func cloneTestDB(t *testing.T) *db.DB {
	t.Helper()
	if templatePath == "" {
		t.Fatal("template db not initialized")
	}
	path := filepath.Join(t.TempDir(), "test.db")
	if err := copyFile(templatePath, path); err != nil {
		t.Fatalf("clone template db: %v", err)
	}
	store, err := db.NewDB(path)
	if err != nil {
		t.Fatalf("open cloned db: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type testServer struct {
	*Server
	store    *db.DB
	memCache *cache.MemoryCache
	registry *monitoring.Metrics
	mock     *timeutil.MockClock
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		store:    cloneTestDB(t),
		memCache: cache.NewMemoryCache(),
		registry: monitoring.NewMetrics(),
		mock:     timeutil.NewMockClock(time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC)),
	}
	ts.Server = NewServer(ts.store, nil, Options{
		Cache:   ts.memCache,
		Metrics: ts.registry,
		Clock:   ts.mock,
	})
	ts.handler = ts.Handler(ts.ServeMux())
	return ts
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
