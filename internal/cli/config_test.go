package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.Server.Addr != "" {
		t.Errorf("Server.Addr = %q, want empty", cfg.Server.Addr)
	}
	if cfg.Observer.Set {
		t.Error("Observer.Set should be false when [observer] is absent")
	}
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfig(t, `
[cache]
enabled = false
dir = "/tmp/orrery-cache"

[server]
addr = ":9090"
redis = "localhost:6379"
mongo = "mongodb://localhost:27017"

[observer]
name = "home"
latitude = 52.52
longitude = 13.40
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Cache.Dir != "/tmp/orrery-cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.Redis != "localhost:6379" {
		t.Errorf("Server.Redis = %q", cfg.Server.Redis)
	}
	if cfg.Server.Mongo != "mongodb://localhost:27017" {
		t.Errorf("Server.Mongo = %q", cfg.Server.Mongo)
	}
	if !cfg.Observer.Set {
		t.Error("Observer.Set should be true when [observer] is present")
	}
	if cfg.Observer.Latitude != 52.52 || cfg.Observer.Longitude != 13.40 {
		t.Errorf("Observer = %+v", cfg.Observer)
	}
	if cfg.Observer.Name != "home" {
		t.Errorf("Observer.Name = %q", cfg.Observer.Name)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicitly configured missing file should error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "[cache\nenabled =")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoadConfigDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("missing default config should fall back to defaults")
	}
}

func TestCacheDir(t *testing.T) {
	c := &CLI{}

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := c.cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if dir != filepath.Join("/tmp/xdg", "orrery") {
			t.Errorf("cacheDir = %q", dir)
		}
	})

	t.Run("config override", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		override := &CLI{Config: &Config{Cache: CacheConfig{Dir: "/custom"}}}
		dir, err := override.cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if dir != "/custom" {
			t.Errorf("cacheDir = %q, want /custom", dir)
		}
	})
}
