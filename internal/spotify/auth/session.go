package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tsijukebox/jukebox/internal/core"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultOrigin is where the local redirect receiver listens.
	DefaultOrigin = "http://127.0.0.1:8888"

	// RedirectPath is appended to the origin to form the OAuth redirect URI.
	RedirectPath = "/settings"

	refreshKey = "refresh"
)

// AuthURL is the authorization URL issued by the backend together with the
// state value the redirect must carry back.
type AuthURL struct {
	URL   string `json:"authUrl"`
	State string `json:"state"`
}

// TokenCallback is called after every token change. ok is false when the
// tokens were cleared.
type TokenCallback func(tokens TokenSet, ok bool)

// Session owns the credentials and tokens of one authenticated Spotify
// session. It is safe for concurrent use; concurrent refreshes collapse
// into one backend call.
type Session struct {
	id       string
	backend  *backend
	origin   string
	logger   *log.Logger
	now      func() time.Time
	onChange TokenCallback

	mu          sync.RWMutex
	credentials Credentials
	tokens      *TokenSet

	refreshes singleflight.Group
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOrigin sets the origin the redirect URI is derived from.
func WithOrigin(origin string) SessionOption {
	return func(s *Session) {
		if origin != "" {
			s.origin = strings.TrimRight(origin, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for backend calls.
func WithHTTPClient(c *http.Client) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.backend.httpClient = c
		}
	}
}

// WithAPIKey sets the key sent to the exchange backend.
func WithAPIKey(key string) SessionOption {
	return func(s *Session) {
		s.backend.apiKey = key
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTokenCallback registers a function called after every token change.
func WithTokenCallback(fn TokenCallback) SessionOption {
	return func(s *Session) {
		s.onChange = fn
	}
}

// NewSession creates a session that authenticates through the exchange
// backend at exchangeURL.
func NewSession(exchangeURL string, opts ...SessionOption) *Session {
	s := &Session{
		id: uuid.NewString(),
		backend: &backend{
			url:        exchangeURL,
			httpClient: &http.Client{Timeout: 30 * time.Second},
		},
		origin: DefaultOrigin,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id[:8])
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// RedirectURI returns the OAuth redirect URI for this session.
func (s *Session) RedirectURI() string {
	return s.origin + RedirectPath
}

// SetCredentials replaces the stored credentials.
func (s *Session) SetCredentials(c Credentials) {
	s.mu.Lock()
	s.credentials = c
	s.mu.Unlock()
}

// Credentials returns the stored credentials.
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials
}

// SetTokens replaces the held token set.
func (s *Session) SetTokens(t TokenSet) {
	s.mu.Lock()
	s.tokens = &t
	s.mu.Unlock()
	s.notify(t, true)
}

// Tokens returns the held token set, if any.
func (s *Session) Tokens() (TokenSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return TokenSet{}, false
	}
	return *s.tokens, true
}

// ClearTokens drops the held token set.
func (s *Session) ClearTokens() {
	s.mu.Lock()
	s.tokens = nil
	s.mu.Unlock()
	s.notify(TokenSet{}, false)
}

// IsAuthenticated reports whether an access token is held. Expiry is not
// considered.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens != nil && s.tokens.AccessToken != ""
}

// IsTokenExpired reports whether there are no tokens or the held token is
// within ExpiryBuffer of its expiry.
func (s *Session) IsTokenExpired() bool {
	tok, ok := s.Tokens()
	if !ok {
		return true
	}
	return tok.ExpiredAt(s.now())
}

// exchangeBody returns a backend request carrying the app credentials and
// redirect URI. Callers add the action's own field.
func (s *Session) exchangeBody(creds Credentials) exchangeRequest {
	return exchangeRequest{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURI:  s.RedirectURI(),
	}
}

// AuthURL asks the backend for an authorization URL.
func (s *Session) AuthURL(ctx context.Context) (AuthURL, error) {
	creds := s.Credentials()
	if creds.ClientID == "" {
		return AuthURL{}, &ConfigurationError{Missing: "client_id"}
	}

	var resp loginResponse
	err := s.backend.call(ctx, actionLogin, s.exchangeBody(creds), &resp)
	if err != nil {
		return AuthURL{}, fmt.Errorf("failed to get authorization url: %w", err)
	}

	return AuthURL{URL: resp.AuthURL, State: resp.State}, nil
}

// ExchangeCode trades an authorization code for a token set and installs it.
func (s *Session) ExchangeCode(ctx context.Context, code string) (TokenSet, error) {
	creds := s.Credentials()
	if creds.ClientID == "" {
		return TokenSet{}, &ConfigurationError{Missing: "client_id"}
	}
	if creds.ClientSecret == "" {
		return TokenSet{}, &ConfigurationError{Missing: "client_secret"}
	}

	body := s.exchangeBody(creds)
	body.Code = code

	var resp tokenResponse
	err := s.backend.call(ctx, actionExchange, body, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return TokenSet{}, &ExchangeError{Status: se.status, Message: se.message()}
		}
		return TokenSet{}, err
	}

	tokens := resp.tokenSet(s.now())
	s.SetTokens(tokens)
	s.logger.Info("authorization code exchanged", "expires_at", tokens.ExpiresAt.Format(time.RFC3339))
	return tokens, nil
}

// RefreshTokens refreshes the access token. Concurrent callers share one
// backend call and its result. The shared call is not cancelled by any one
// caller; a caller whose ctx ends stops waiting and gets ctx.Err().
func (s *Session) RefreshTokens(ctx context.Context) (TokenSet, error) {
	return s.sharedRefresh(ctx, false)
}

// refreshIfExpired is RefreshTokens for callers that saw an expired token.
// The shared call checks the held tokens again, so a caller that read them
// before another refresh landed reuses that result.
func (s *Session) refreshIfExpired(ctx context.Context) (TokenSet, error) {
	return s.sharedRefresh(ctx, true)
}

func (s *Session) sharedRefresh(ctx context.Context, onlyIfExpired bool) (TokenSet, error) {
	ch := s.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		if onlyIfExpired {
			if tok, ok := s.Tokens(); ok && !tok.ExpiredAt(s.now()) {
				return tok, nil
			}
		}
		return s.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return TokenSet{}, res.Err
		}
		return res.Val.(TokenSet), nil
	case <-ctx.Done():
		return TokenSet{}, ctx.Err()
	}
}

// refreshReply covers both shapes the backend may answer a refresh with.
type refreshReply struct {
	tokenResponse
	backendError
}

func (s *Session) refresh(ctx context.Context) (TokenSet, error) {
	s.mu.RLock()
	creds := s.credentials
	var current TokenSet
	if s.tokens != nil {
		current = *s.tokens
	}
	s.mu.RUnlock()

	if current.RefreshToken == "" {
		return TokenSet{}, ErrNotAuthenticated
	}

	s.logger.Debug("refreshing access token")

	body := s.exchangeBody(creds)
	body.RefreshToken = current.RefreshToken

	var reply refreshReply
	err := s.backend.call(ctx, actionRefresh, body, &reply)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			reply.backendError = se.body
			if !se.body.NeedsReauth {
				return TokenSet{}, &RefreshError{Status: se.status, Message: se.message()}
			}
		} else {
			return TokenSet{}, &RefreshError{Message: err.Error()}
		}
	}

	if reply.NeedsReauth {
		s.ClearTokens()
		s.logger.Warn("refresh token rejected, tokens cleared", "error", reply.Error)
		return TokenSet{}, &ReauthRequiredError{Message: reply.Error}
	}
	if reply.AccessToken == "" {
		msg := reply.Error
		if msg == "" {
			msg = "no access token in refresh response"
		}
		return TokenSet{}, &RefreshError{Status: http.StatusOK, Message: msg}
	}

	tokens := reply.tokenResponse.tokenSet(s.now())
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = current.RefreshToken
	}
	s.SetTokens(tokens)
	s.logger.Info("access token refreshed", "expires_at", tokens.ExpiresAt.Format(time.RFC3339))
	return tokens, nil
}

// ValidToken returns an access token that is not expired, refreshing once
// if needed.
func (s *Session) ValidToken(ctx context.Context) (string, error) {
	tok, ok := s.Tokens()
	if !ok {
		return "", ErrNotAuthenticated
	}
	if !tok.ExpiredAt(s.now()) {
		return tok.AccessToken, nil
	}

	refreshed, err := s.refreshIfExpired(ctx)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

// ValidateToken asks the backend who the held token belongs to. It never
// fails: any problem is reported as a nil user. An invalid token is
// refreshed and validated again at most once.
func (s *Session) ValidateToken(ctx context.Context) *core.User {
	return s.validate(ctx, true)
}

func (s *Session) validate(ctx context.Context, retry bool) *core.User {
	tok, ok := s.Tokens()
	if !ok || tok.AccessToken == "" {
		return nil
	}

	body := s.exchangeBody(s.Credentials())
	body.AccessToken = tok.AccessToken

	var resp validateResponse
	err := s.backend.call(ctx, actionValidate, body, &resp)
	if err != nil {
		s.logger.Debug("token validation failed", "error", err)
		return nil
	}

	if resp.Valid {
		return resp.User.user()
	}

	if !retry || tok.RefreshToken == "" {
		return nil
	}
	if _, err := s.RefreshTokens(ctx); err != nil {
		s.logger.Debug("refresh during validation failed", "error", err)
		return nil
	}
	return s.validate(ctx, false)
}

// TokenSource returns an oauth2.TokenSource that hands out valid tokens
// from this session, refreshing through the backend when needed.
func (s *Session) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &sessionTokenSource{ctx: ctx, session: s}
}

type sessionTokenSource struct {
	ctx     context.Context
	session *Session
}

func (ts *sessionTokenSource) Token() (*oauth2.Token, error) {
	if _, err := ts.session.ValidToken(ts.ctx); err != nil {
		return nil, err
	}
	tok, ok := ts.session.Tokens()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return tok.OAuth2(), nil
}

func (s *Session) notify(t TokenSet, ok bool) {
	if s.onChange != nil {
		s.onChange(t, ok)
	}
}
