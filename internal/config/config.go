package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.jukeboxrc, $XDG_CONFIG_HOME/jukebox/config.toml, ~/.config/jukebox/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath is where `jukebox config init` writes a new file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jukeboxrc"
	}
	return filepath.Join(home, ".jukeboxrc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".jukeboxrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "jukebox", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Spotify
	if v := os.Getenv("JUKEBOX_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("JUKEBOX_SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv("JUKEBOX_SPOTIFY_EXCHANGE_URL"); v != "" {
		cfg.Spotify.ExchangeURL = v
	}
	if v := os.Getenv("JUKEBOX_SPOTIFY_API_KEY"); v != "" {
		cfg.Spotify.APIKey = v
	}
	if v := os.Getenv("JUKEBOX_SPOTIFY_ORIGIN"); v != "" {
		cfg.Spotify.Origin = v
	}
	if v := os.Getenv("JUKEBOX_SPOTIFY_CALLBACK_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Spotify.CallbackPort = i
		}
	}

	// Store
	if v := os.Getenv("JUKEBOX_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("JUKEBOX_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("JUKEBOX_STORE_TERMINAL_ID"); v != "" {
		cfg.Store.TerminalID = v
	}

	// Defaults
	if v := os.Getenv("JUKEBOX_DEFAULTS_DEVICE"); v != "" {
		cfg.Defaults.Device = v
	}
	if v := os.Getenv("JUKEBOX_DEFAULTS_MARKET"); v != "" {
		cfg.Defaults.Market = v
	}

	// Tail
	if v := os.Getenv("JUKEBOX_TAIL_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Tail.Interval = i
		}
	}

	// Log
	if v := os.Getenv("JUKEBOX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("JUKEBOX_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
