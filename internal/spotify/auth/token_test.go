package auth

import (
	"testing"
	"time"
)

func TestTokenSet_ExpiredAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "already expired",
			expiresAt: now.Add(-time.Hour),
			want:      true,
		},
		{
			name:      "expires in 4 minutes (within buffer)",
			expiresAt: now.Add(4 * time.Minute),
			want:      true,
		},
		{
			name:      "expires exactly at buffer edge",
			expiresAt: now.Add(ExpiryBuffer),
			want:      true,
		},
		{
			name:      "expires in 6 minutes",
			expiresAt: now.Add(6 * time.Minute),
			want:      false,
		},
		{
			name:      "valid for an hour",
			expiresAt: now.Add(time.Hour),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := TokenSet{ExpiresAt: tt.expiresAt}
			if got := token.ExpiredAt(now); got != tt.want {
				t.Errorf("ExpiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenResponse_TokenSet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("absolute expiry in milliseconds", func(t *testing.T) {
		at := now.Add(time.Hour)
		ts := tokenResponse{AccessToken: "a", ExpiresAt: at.UnixMilli()}.tokenSet(now)
		if !ts.ExpiresAt.Equal(at) {
			t.Errorf("ExpiresAt = %v, want %v", ts.ExpiresAt, at)
		}
	})

	t.Run("relative expiry in seconds", func(t *testing.T) {
		ts := tokenResponse{AccessToken: "a", ExpiresIn: 3600}.tokenSet(now)
		if want := now.Add(time.Hour); !ts.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", ts.ExpiresAt, want)
		}
	})
}

func TestTokenSet_OAuth2(t *testing.T) {
	ts := TokenSet{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)}
	tok := ts.OAuth2()

	if tok.AccessToken != "a" || tok.RefreshToken != "r" {
		t.Errorf("OAuth2() = %+v, want access a and refresh r", tok)
	}
	if tok.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", tok.TokenType)
	}
	if !tok.Expiry.Equal(ts.ExpiresAt) {
		t.Errorf("Expiry = %v, want %v", tok.Expiry, ts.ExpiresAt)
	}
}
