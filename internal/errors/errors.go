package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/tsijukebox/jukebox/internal/spotify/auth"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

// Error types for common failure scenarios.
var (
	ErrNoActiveDevice = errors.New("no active device")
	ErrDeviceNotFound = errors.New("device not found")
	ErrConfigNotFound = errors.New("config file not found")
)

// JukeboxError wraps an error with a user-friendly suggestion.
type JukeboxError struct {
	Err        error
	Suggestion string
}

func (e *JukeboxError) Error() string {
	return e.Err.Error()
}

func (e *JukeboxError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &JukeboxError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var jbErr *JukeboxError
	if errors.As(err, &jbErr) && jbErr.Suggestion != "" {
		return jbErr.Suggestion
	}

	// Session errors
	var cfgErr *auth.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return fmt.Sprintf("Set spotify.%s in the config file or run 'jukebox auth setup'", cfgErr.Missing)
	case errors.Is(err, auth.ErrReauthRequired):
		return "The Spotify authorization was revoked. Run 'jukebox auth login' again"
	case errors.Is(err, auth.ErrNotAuthenticated):
		return "Run 'jukebox auth login' to authenticate with Spotify"
	}
	var exErr *auth.ExchangeError
	if errors.As(err, &exErr) {
		return "The authorization code was rejected. Start over with 'jukebox auth login'"
	}
	var refreshErr *auth.RefreshError
	if errors.As(err, &refreshErr) {
		return "Could not refresh the Spotify token. Check spotify.exchange_url and try again"
	}

	// Web API errors
	if reqErr, ok := client.AsRequestError(err); ok {
		switch {
		case reqErr.IsUnauthorized():
			return "Spotify rejected the token. Run 'jukebox auth login' again"
		case reqErr.IsNoActiveDevice():
			return "Open Spotify on a device and start playing, or use --device to specify one"
		case reqErr.IsRestricted():
			return "This feature requires Spotify Premium or is not allowed on this device"
		case reqErr.Status == http.StatusTooManyRequests:
			return "Too many requests. Wait a moment and try again"
		case reqErr.Status >= 500:
			return "Spotify is having issues. Try again in a moment"
		}
	}

	if errors.Is(err, ErrNoActiveDevice) {
		return "Open Spotify on a device and start playing, or use --device to specify one"
	}
	if errors.Is(err, ErrDeviceNotFound) {
		return "Run 'jukebox devices' to see available devices"
	}
	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'jukebox config init' to create a config file"
	}

	// Network errors
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) ||
		strings.Contains(strings.ToLower(err.Error()), "connection refused") {
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
