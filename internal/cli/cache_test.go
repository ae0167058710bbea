package cli

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pixmesh/internal/config"
	"github.com/matzehuels/pixmesh/pkg/cache"
)

func TestCacheLocationDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	tests := []struct {
		location string
		want     string
		wantErr  bool
	}{
		{"", filepath.Join("/tmp/xdg", appName), false},
		{"none", "", true},
		{"badger:/var/cache/pixmesh", "/var/cache/pixmesh", false},
		{"badger:", "", true},
		{"file:/srv/cache", "/srv/cache", false},
		{"redis://localhost:6379/0", "", true},
		{"mongodb://localhost:27017/pixmesh", "", true},
		{"/data/cache", "/data/cache", false},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, err := cacheLocationDir(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("cacheLocationDir(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("cacheLocationDir(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(nil, "", true)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()
	if err := c.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(t.Context(), "k"); hit {
		t.Error("disabled cache should never hit")
	}
}

func TestNewRunnerScopesKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg := config.Default()
	cfg.CachePrefix = "site-a:"

	runner, err := c.newRunner(cfg, "", true)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()

	key := runner.Keyer.GraphKey("abc", cache.GraphKeyOpts{})
	if !strings.HasPrefix(key, "site-a:graph:") {
		t.Errorf("GraphKey = %s, want site-a:graph: prefix", key)
	}
}
