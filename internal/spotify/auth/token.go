package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// ExpiryBuffer is how long before the real expiry a token is treated as
// expired, so a request never leaves with a token that dies in flight.
const ExpiryBuffer = 5 * time.Minute

// Credentials identify the Spotify application.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// IsZero reports whether neither field is set.
func (c Credentials) IsZero() bool {
	return c.ClientID == "" && c.ClientSecret == ""
}

// Complete reports whether both fields are set.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// TokenSet is the access/refresh pair for one session. It is replaced
// wholesale on every exchange or refresh.
type TokenSet struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the token is expired at now, buffer included.
func (t TokenSet) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt.Add(-ExpiryBuffer))
}

// OAuth2 converts the set to an oauth2.Token.
func (t TokenSet) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
	}
}

// tokenResponse is the token body returned by the exchange backend.
type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"` // unix milliseconds
	ExpiresIn    int    `json:"expiresIn"` // seconds, used when expiresAt is absent
}

func (r tokenResponse) tokenSet(now time.Time) TokenSet {
	ts := TokenSet{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
	switch {
	case r.ExpiresAt > 0:
		ts.ExpiresAt = time.UnixMilli(r.ExpiresAt)
	case r.ExpiresIn > 0:
		ts.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	default:
		ts.ExpiresAt = now.Add(time.Hour)
	}
	return ts
}
