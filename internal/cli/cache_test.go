package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tracesplit/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	got, err := configFile()
	if err != nil {
		t.Fatalf("configFile() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", appName, "config.toml"); got != want {
		t.Errorf("configFile() = %q, want %q", got, want)
	}
}

func TestCacheConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	c := New(os.Stderr, LogInfo)

	got := c.cacheConfig(false)
	if got.Backend != cache.BackendFile {
		t.Errorf("Backend = %q, want %q", got.Backend, cache.BackendFile)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); got.Dir != want {
		t.Errorf("Dir = %q, want %q", got.Dir, want)
	}

	if got := c.cacheConfig(true); got.Backend != cache.BackendNone {
		t.Errorf("noCache Backend = %q, want %q", got.Backend, cache.BackendNone)
	}

	c.Config.Cache.Backend = cache.BackendRedis
	c.Config.Cache.RedisAddr = "localhost:6379"
	got = c.cacheConfig(false)
	if got.RedisAddr != "localhost:6379" || got.Dir != "" {
		t.Errorf("redis config = %+v", got)
	}
}
