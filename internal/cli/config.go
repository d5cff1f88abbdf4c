package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config carries the file-configurable defaults. Command-line flags override
// these per invocation.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig tunes arrangement and drawing defaults.
type RenderConfig struct {
	MinSpacing     float64 `toml:"min_spacing"`
	GroupMargin    float64 `toml:"group_margin"`
	Scale          float64 `toml:"scale"`
	ConnectorColor string  `toml:"connector_color"`
	ConnectorWidth float64 `toml:"connector_width"`
}

// CacheConfig selects the artifact cache backend. RedisURL wins over Dir
// when both are set; an empty config disables caching.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig tunes the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Render: RenderConfig{
			MinSpacing:     30,
			GroupMargin:    5,
			Scale:          10,
			ConnectorColor: "deepskyblue",
			ConnectorWidth: 3,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// defaultConfigPath returns ~/.config/anchormap.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "anchormap.toml"), nil
}

// loadConfig reads the TOML config file. An explicit path must exist; the
// default path is optional and silently skipped when absent. Values missing
// from the file keep their defaults.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warn("unknown config keys", "file", path, "keys", undecoded)
	}
	logger.Debug("config loaded", "file", path)
	return cfg, nil
}

// cacheDir returns the default on-disk cache location.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "anchormap"), nil
}
