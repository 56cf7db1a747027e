package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphwalk/pkg/cache"
)

func TestCachePath(t *testing.T) {
	out, _, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir := strings.TrimSpace(out)
	if filepath.Base(dir) != "graphwalk" || filepath.Base(filepath.Dir(dir)) != "cache" {
		t.Errorf("cache path = %q, want <XDG_CACHE_HOME>/graphwalk", dir)
	}
}

func TestCacheClear(t *testing.T) {
	out, _, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestCacheClearRemovesEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	fc, err := cache.NewFileCache(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"a", "b"} {
		if err := fc.Set(context.Background(), cache.Key("svg", []byte(s)), []byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("GRAPHWALK_CACHE_DIR", dir)

	out, _, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached frames") {
		t.Errorf("output = %q", out)
	}
	if n, _, _ := fc.Stats(); n != 0 {
		t.Errorf("%d entries left", n)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:           "0 B",
		1023:        "1023 B",
		1024:        "1.0 KiB",
		1536:        "1.5 KiB",
		5 * 1 << 20: "5.0 MiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
