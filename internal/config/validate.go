package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Spotify.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("spotify: %w", err))
	}
	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := c.Defaults.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}
	if err := c.Tail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tail: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks SpotifyConfig for errors. Credentials may be missing here;
// commands that need them report that themselves.
func (c *SpotifyConfig) Validate() error {
	var errs []error
	if c.ExchangeURL != "" {
		if err := validateHTTPURL(c.ExchangeURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid exchange_url: %w", err))
		}
	}
	if c.Origin != "" {
		if err := validateHTTPURL(c.Origin); err != nil {
			errs = append(errs, fmt.Errorf("invalid origin: %w", err))
		}
	}
	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		errs = append(errs, errors.New("callback_port must be between 0 and 65535"))
	}
	return errors.Join(errs...)
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// Validate checks StoreConfig for errors.
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case "", StoreFile, StoreSQLite:
		// valid
	default:
		return fmt.Errorf("invalid driver: %s (must be file or sqlite)", c.Driver)
	}
	return nil
}

// Validate checks DefaultsConfig for errors.
func (c *DefaultsConfig) Validate() error {
	if c.Volume < 0 || c.Volume > 100 {
		return errors.New("volume must be between 0 and 100")
	}
	switch c.Repeat {
	case "", "off", "track", "context":
		// valid
	default:
		return fmt.Errorf("invalid repeat mode: %s (must be off, track, or context)", c.Repeat)
	}
	if c.Market != "" && len(c.Market) != 2 {
		return fmt.Errorf("invalid market: %s (must be an ISO 3166-1 alpha-2 code)", c.Market)
	}
	return nil
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	if c.Interval < 0 {
		return errors.New("interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
