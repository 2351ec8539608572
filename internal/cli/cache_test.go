package cli

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/siderealab/orrery/pkg/cache"
)

func TestClearCacheDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()
	if err := fc.Set(ctx, "chart-a", []byte("1"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(ctx, "layout-b", []byte("2"), time.Hour); err != nil {
		t.Fatal(err)
	}

	removed, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	// Shard subdirectories are pruned along with the entries.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after clear: %v", entries)
	}

	// Clearing an already-empty cache removes nothing and does not fail.
	removed, err = clearCacheDir(dir)
	if err != nil || removed != 0 {
		t.Errorf("second clear: removed=%d err=%v", removed, err)
	}
}
