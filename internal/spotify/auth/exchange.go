package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tsijukebox/jukebox/internal/core"
)

// Backend actions understood by the exchange function.
const (
	actionLogin    = "login"
	actionExchange = "exchange"
	actionRefresh  = "refresh"
	actionValidate = "validate"
)

// exchangeRequest is the JSON body posted to the exchange backend. Only the
// fields relevant to the action are set.
type exchangeRequest struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	RedirectURI  string `json:"redirectUri,omitempty"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
}

// backendError is the failure body of the exchange backend.
type backendError struct {
	Error       string `json:"error"`
	NeedsReauth bool   `json:"needsReauth"`
}

// loginResponse is the body of a successful login action.
type loginResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// validateResponse is the body of a validate action.
type validateResponse struct {
	Valid bool        `json:"valid"`
	User  *remoteUser `json:"user"`
}

type remoteUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
}

func (u *remoteUser) user() *core.User {
	if u == nil || u.ID == "" {
		return nil
	}
	out := &core.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Country:     u.Country,
		Product:     u.Product,
		Followers:   u.Followers.Total,
	}
	if len(u.Images) > 0 {
		out.ImageURL = u.Images[0].URL
	}
	return out
}

// statusError is a non-2xx reply from the exchange backend.
type statusError struct {
	status int
	body   backendError
}

func (e *statusError) Error() string {
	return e.message()
}

func (e *statusError) message() string {
	if e.body.Error != "" {
		return e.body.Error
	}
	return fmt.Sprintf("exchange backend returned status %d", e.status)
}

// backend talks to the server-side function that holds the client secret
// flow: it issues auth URLs and performs code exchange, refresh and
// validation against accounts.spotify.com.
type backend struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func (b *backend) call(ctx context.Context, action string, reqBody exchangeRequest, result interface{}) error {
	u, err := url.Parse(b.url)
	if err != nil {
		return fmt.Errorf("invalid exchange url: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()

	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("apikey", b.apiKey)
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &statusError{status: resp.StatusCode}
		_ = json.Unmarshal(body, &se.body)
		return se
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse %s response: %w", action, err)
		}
	}
	return nil
}
