package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFreshStrictBoundary(t *testing.T) {
	now := time.Now()
	ttl := 12 * time.Hour

	if !Fresh(now.Add(-11*time.Hour), now, ttl) {
		t.Fatalf("11h old cache should be fresh")
	}
	// 正好到期即过期：边界取严格小于
	if Fresh(now.Add(-12*time.Hour), now, ttl) {
		t.Fatalf("exactly-at-threshold cache must be stale")
	}
	if Fresh(now.Add(-13*time.Hour), now, ttl) {
		t.Fatalf("13h old cache must be stale")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "newsData.json")
	fs := NewFileStore(path)

	if _, _, ok := fs.Load(); ok {
		t.Fatalf("missing file should load as absent")
	}

	payload := []byte(`{"V2EX热门":[]}`)
	if err := fs.Save(payload); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, mtime, ok := fs.Load()
	if !ok {
		t.Fatalf("saved cache should load")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
	if time.Since(mtime) > time.Minute {
		t.Fatalf("mtime should be recent, got %v", mtime)
	}
}

func TestFileStoreOverwriteReplacesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsData.json")
	fs := NewFileStore(path)

	if err := fs.Save([]byte(`{"old":[]}`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := fs.Save([]byte(`{"new":[]}`)); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	got, _, ok := fs.Load()
	if !ok || string(got) != `{"new":[]}` {
		t.Fatalf("overwrite should replace whole payload, got %s", got)
	}
}

func TestFileStoreEmptyFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsData.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("prep error: %v", err)
	}

	fs := NewFileStore(path)
	if _, _, ok := fs.Load(); ok {
		t.Fatalf("empty cache file should count as absent")
	}
}
