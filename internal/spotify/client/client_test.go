package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
	"github.com/tsijukebox/jukebox/internal/spotify/auth"
)

// staticSession hands out a fixed token and user.
type staticSession struct {
	token string
	err   error
	user  *core.User
}

func (s *staticSession) ValidToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

func (s *staticSession) ValidateToken(ctx context.Context) *core.User {
	return s.user
}

// newTestClient starts an API server running handler and returns a client
// pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&staticSession{token: "test-token", user: &core.User{ID: "user_1"}}, WithBaseURL(srv.URL))
}

func respondJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params map[string]string
		want   string
	}{
		{
			name:   "no params",
			path:   "/me",
			params: nil,
			want:   "/me",
		},
		{
			name:   "empty params",
			path:   "/me",
			params: map[string]string{},
			want:   "/me",
		},
		{
			name:   "single param",
			path:   "/search",
			params: map[string]string{"q": "test"},
			want:   "/search?q=test",
		},
		{
			name:   "multiple params sorted",
			path:   "/search",
			params: map[string]string{"type": "track", "q": "test"},
			want:   "/search?q=test&type=track",
		},
		{
			name:   "empty values skipped",
			path:   "/me/player/pause",
			params: map[string]string{"device_id": ""},
			want:   "/me/player/pause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildURL(tt.path, tt.params); got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_Headers(t *testing.T) {
	tests := []struct {
		name      string
		header    http.Header
		wantAuth  string
		wantType  string
		wantExtra string
	}{
		{
			name:     "fixed headers",
			wantAuth: "Bearer test-token",
			wantType: "application/json",
		},
		{
			name:      "caller headers merged",
			header:    http.Header{"X-Request-Id": {"abc"}},
			wantAuth:  "Bearer test-token",
			wantType:  "application/json",
			wantExtra: "abc",
		},
		{
			name:     "same key overrides",
			header:   http.Header{"content-type": {"image/jpeg"}},
			wantAuth: "Bearer test-token",
			wantType: "image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != tt.wantAuth {
					t.Errorf("Authorization = %q, want %q", got, tt.wantAuth)
				}
				if got := r.Header.Get("Content-Type"); got != tt.wantType {
					t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
				}
				if got := r.Header.Get("X-Request-Id"); got != tt.wantExtra {
					t.Errorf("X-Request-Id = %q, want %q", got, tt.wantExtra)
				}
				respondJSON(w, http.StatusOK, `{}`)
			})

			if _, err := c.Request(context.Background(), http.MethodGet, "/me", nil, tt.header); err != nil {
				t.Fatalf("Request() error = %v", err)
			}
		})
	}
}

func TestRequest_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	got, err := c.Request(context.Background(), http.MethodPut, "/me/player/pause", nil, nil)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("Request() = %q, want {}", got)
	}
}

func TestRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message from body",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"status":401,"message":"Invalid access token"}}`,
			wantMsg: "Invalid access token",
		},
		{
			name:    "non json body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "Spotify API error: 502",
		},
		{
			name:    "error without message",
			status:  http.StatusNotFound,
			body:    `{"error":{"status":404}}`,
			wantMsg: "Spotify API error: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respondJSON(w, tt.status, tt.body)
			})

			_, err := c.Request(context.Background(), http.MethodGet, "/me", nil, nil)
			reqErr, ok := AsRequestError(err)
			if !ok {
				t.Fatalf("Request() error = %v, want *RequestError", err)
			}
			if reqErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", reqErr.Status, tt.status)
			}
			if reqErr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", reqErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequest_NoRetryOnUnauthorized(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		respondJSON(w, http.StatusUnauthorized, `{"error":{"status":401,"message":"The access token expired"}}`)
	})

	_, err := c.Request(context.Background(), http.MethodGet, "/me", nil, nil)
	reqErr, ok := AsRequestError(err)
	if !ok || !reqErr.IsUnauthorized() {
		t.Fatalf("Request() error = %v, want 401 RequestError", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRequest_SessionError(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(&staticSession{err: auth.ErrNotAuthenticated}, WithBaseURL(srv.URL))
	_, err := c.Request(context.Background(), http.MethodGet, "/me", nil, nil)
	if !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("Request() error = %v, want ErrNotAuthenticated", err)
	}
	if called {
		t.Error("API called without a token")
	}
}

func TestRequest_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if body["name"] != "Party" {
			t.Errorf("body = %v", body)
		}
		respondJSON(w, http.StatusCreated, `{"id":"p1"}`)
	})

	got, err := c.Request(context.Background(), http.MethodPost, "/x", map[string]string{"name": "Party"}, nil)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if !strings.Contains(string(got), `"p1"`) {
		t.Errorf("Request() = %s", got)
	}
}

func TestRequestError_Helpers(t *testing.T) {
	tests := []struct {
		status         int
		noDevice       bool
		alreadyPlaying bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusForbidden, false, true},
		{http.StatusBadRequest, false, false},
	}

	for _, tt := range tests {
		err := error(&RequestError{Status: tt.status, Message: "x"})
		if got := IsNoActiveDeviceError(err); got != tt.noDevice {
			t.Errorf("IsNoActiveDeviceError(%d) = %v, want %v", tt.status, got, tt.noDevice)
		}
		if got := IsAlreadyPlayingError(err); got != tt.alreadyPlaying {
			t.Errorf("IsAlreadyPlayingError(%d) = %v, want %v", tt.status, got, tt.alreadyPlaying)
		}
	}

	if IsNoActiveDeviceError(errors.New("plain")) {
		t.Error("IsNoActiveDeviceError(plain error) = true")
	}
}

// An expired session refreshes once through the exchange backend before the
// API call goes out.
func TestClient_ExpiredTokenRefreshesFirst(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record("refresh:" + r.URL.Query().Get("action"))
		respondJSON(w, http.StatusOK, `{"accessToken":"fresh","refreshToken":"r2","expiresIn":3600}`)
	}))
	defer backend.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record("api:" + r.URL.Path)
		if got := r.Header.Get("Authorization"); got != "Bearer fresh" {
			t.Errorf("Authorization = %q, want Bearer fresh", got)
		}
		respondJSON(w, http.StatusOK, `{"id":"t1","name":"Song"}`)
	}))
	defer api.Close()

	session := auth.NewSession(backend.URL)
	session.SetTokens(auth.TokenSet{
		AccessToken:  "stale",
		RefreshToken: "r1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	c := New(session, WithBaseURL(api.URL))
	track, err := c.GetTrack(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTrack() error = %v", err)
	}
	if track.Name != "Song" {
		t.Errorf("GetTrack() = %+v", track)
	}

	want := []string{"refresh:refresh", "api:/tracks/t1"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}
