package config

// Config is the root configuration structure.
type Config struct {
	Spotify  SpotifyConfig  `toml:"spotify" json:"spotify"`
	Store    StoreConfig    `toml:"store" json:"store"`
	Defaults DefaultsConfig `toml:"defaults" json:"defaults"`
	Tail     TailConfig     `toml:"tail" json:"tail"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// SpotifyConfig holds the Spotify app credentials and the exchange backend
// that performs code exchange and refresh on their behalf.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" json:"client_id"`
	ClientSecret string `toml:"client_secret" json:"-"`
	ExchangeURL  string `toml:"exchange_url" json:"exchange_url"`
	APIKey       string `toml:"api_key" json:"-"`
	Origin       string `toml:"origin" json:"origin"`
	CallbackPort int    `toml:"callback_port" json:"callback_port"`
}

// Store drivers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// StoreConfig selects where sessions are persisted.
type StoreConfig struct {
	Driver     string `toml:"driver" json:"driver"`
	Path       string `toml:"path" json:"path"`
	TerminalID string `toml:"terminal_id" json:"terminal_id"`
}

// DefaultsConfig holds default playback settings.
type DefaultsConfig struct {
	Volume  int    `toml:"volume" json:"volume"`
	Shuffle bool   `toml:"shuffle" json:"shuffle"`
	Repeat  string `toml:"repeat" json:"repeat"`
	Device  string `toml:"device" json:"device"`
	Market  string `toml:"market" json:"market"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Interval int `toml:"interval" json:"interval"` // milliseconds
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
