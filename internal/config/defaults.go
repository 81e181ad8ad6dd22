package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			Origin:       "http://127.0.0.1:8888",
			CallbackPort: 8888,
		},
		Store: StoreConfig{
			Driver: StoreFile,
		},
		Defaults: DefaultsConfig{
			Volume: 50,
			Repeat: "off",
			Market: "US",
		},
		Tail: TailConfig{
			Interval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Spotify
	if c.Spotify.Origin == "" {
		c.Spotify.Origin = d.Spotify.Origin
	}
	if c.Spotify.CallbackPort == 0 {
		c.Spotify.CallbackPort = d.Spotify.CallbackPort
	}

	// Store
	if c.Store.Driver == "" {
		c.Store.Driver = d.Store.Driver
	}

	// Defaults
	if c.Defaults.Volume == 0 {
		c.Defaults.Volume = d.Defaults.Volume
	}
	if c.Defaults.Repeat == "" {
		c.Defaults.Repeat = d.Defaults.Repeat
	}
	if c.Defaults.Market == "" {
		c.Defaults.Market = d.Defaults.Market
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
