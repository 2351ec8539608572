package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the CLI configuration, loaded from a TOML file.
//
// All sections are optional; the zero value of every field falls back to
// a sensible default. Example:
//
//	[cache]
//	enabled = true
//
//	[server]
//	addr = ":8080"
//	redis = "localhost:6379"
//	mongo = "mongodb://localhost:27017"
//
//	[observer]
//	name = "home"
//	latitude = 52.52
//	longitude = 13.40
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Observer ObserverConfig `toml:"observer"`
}

// CacheConfig controls the computation cache.
type CacheConfig struct {
	// Enabled toggles caching entirely. Defaults to true.
	Enabled bool `toml:"enabled"`

	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the HTTP listen address, defaulting to ":8080".
	Addr string `toml:"addr"`

	// Redis is the address of a shared Redis cache. When empty the
	// server uses the file cache.
	Redis string `toml:"redis"`

	// Mongo is the MongoDB connection URI for report storage. When
	// empty the server keeps reports in memory.
	Mongo string `toml:"mongo"`
}

// ObserverConfig provides a default location so chart commands can omit
// --lat/--lon.
type ObserverConfig struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Set       bool    `toml:"-"`
}

// defaultConfigPath returns ~/.config/orrery/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the default location
// when path is empty. A missing file yields the default config; an
// unreadable or malformed file is an error, since the user clearly
// meant to configure something.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return defaultConfig(), nil
		}
		path = p
	}

	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.Observer.Set = meta.IsDefined("observer")
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{Enabled: true},
	}
}
