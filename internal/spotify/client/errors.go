package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RequestError is a non-2xx response from the Web API.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// apiErrorBody is the Web API's error envelope.
type apiErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

func newRequestError(status int, body []byte) *RequestError {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &RequestError{Status: status, Message: parsed.Error.Message}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("Spotify API error: %d", status)}
}

// IsUnauthorized reports whether the token was rejected.
func (e *RequestError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsNoActiveDevice reports whether the call failed because no device is
// active.
func (e *RequestError) IsNoActiveDevice() bool {
	return e.Status == http.StatusNotFound
}

// IsRestricted reports a 403, which Spotify returns for player commands
// that violate a restriction (e.g. resuming what is already playing) and
// for non-premium accounts.
func (e *RequestError) IsRestricted() bool {
	return e.Status == http.StatusForbidden
}

// AsRequestError extracts a *RequestError from err.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// IsNoActiveDeviceError checks if an error is a "no active device" error.
func IsNoActiveDeviceError(err error) bool {
	reqErr, ok := AsRequestError(err)
	return ok && reqErr.IsNoActiveDevice()
}

// IsAlreadyPlayingError checks if an error is a 403 "restriction violated"
// error, which occurs when trying to resume playback that is already active.
func IsAlreadyPlayingError(err error) bool {
	reqErr, ok := AsRequestError(err)
	return ok && reqErr.IsRestricted()
}
