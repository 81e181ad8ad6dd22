package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an operation needs tokens the
	// session does not hold.
	ErrNotAuthenticated = errors.New("not authenticated with Spotify")

	// ErrReauthRequired matches ReauthRequiredError through errors.Is.
	ErrReauthRequired = errors.New("spotify re-authentication required")
)

// ConfigurationError means credentials were missing before a call that needs them.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("spotify credentials not configured: missing %s", e.Missing)
}

// ExchangeError means the backend rejected an authorization code exchange.
type ExchangeError struct {
	Status  int
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("code exchange failed: %s", e.Message)
}

// RefreshError means a token refresh failed for a reason other than a dead
// refresh token. The held tokens are left as they were.
type RefreshError struct {
	Status  int
	Message string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %s", e.Message)
}

// ReauthRequiredError means the refresh token was rejected. The session has
// already cleared its tokens; the user must log in again.
type ReauthRequiredError struct {
	Message string
}

func (e *ReauthRequiredError) Error() string {
	if e.Message == "" {
		return ErrReauthRequired.Error()
	}
	return fmt.Sprintf("%s: %s", ErrReauthRequired, e.Message)
}

func (e *ReauthRequiredError) Is(target error) bool {
	return target == ErrReauthRequired
}
