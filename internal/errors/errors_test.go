package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tsijukebox/jukebox/internal/spotify/auth"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("x"), "do y"), "do y"},
		{"missing secret", &auth.ConfigurationError{Missing: "client_secret"}, "spotify.client_secret"},
		{"not authenticated", fmt.Errorf("play: %w", auth.ErrNotAuthenticated), "auth login"},
		{"reauth", &auth.ReauthRequiredError{Message: "revoked"}, "revoked"},
		{"exchange", &auth.ExchangeError{Status: 400, Message: "bad code"}, "authorization code"},
		{"refresh", &auth.RefreshError{Status: 502}, "exchange_url"},
		{"401", &client.RequestError{Status: 401}, "rejected the token"},
		{"404", fmt.Errorf("pause: %w", &client.RequestError{Status: 404}), "--device"},
		{"403", &client.RequestError{Status: 403}, "Premium"},
		{"429", &client.RequestError{Status: 429}, "Too many requests"},
		{"503", &client.RequestError{Status: 503}, "having issues"},
		{"device", ErrDeviceNotFound, "jukebox devices"},
		{"timeout", context.DeadlineExceeded, "internet connection"},
		{"unknown", errors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := Format(errors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q", got)
	}
	got := Format(auth.ErrNotAuthenticated)
	if !strings.HasPrefix(got, "Error: not authenticated") || !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q", got)
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[int]
	p.AddError(nil)
	if p.HasErrors() {
		t.Error("HasErrors() = true after nil error")
	}
	p.AddError(errors.New("a"))
	if p.ErrorSummary() != "a" {
		t.Errorf("ErrorSummary() = %q", p.ErrorSummary())
	}
	p.AddError(errors.New("b"))
	if !strings.HasPrefix(p.ErrorSummary(), "2 errors occurred") {
		t.Errorf("ErrorSummary() = %q", p.ErrorSummary())
	}
}
