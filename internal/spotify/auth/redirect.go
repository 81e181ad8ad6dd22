package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"
)

// RedirectResult is what the authorization server sent back to the
// redirect URI.
type RedirectResult struct {
	Code  string
	State string
	Error string
}

// RedirectReceiver serves the redirect path on a local port and hands the
// first redirect it sees to Wait.
type RedirectReceiver struct {
	server   *http.Server
	listener net.Listener
	result   chan RedirectResult
}

// NewRedirectReceiver listens on the specified port. Port 0 picks a free one.
func NewRedirectReceiver(port int) (*RedirectReceiver, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	rr := &RedirectReceiver{
		listener: listener,
		result:   make(chan RedirectResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(RedirectPath, rr.handleRedirect)

	rr.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return rr, nil
}

// Start begins serving HTTP requests in the background.
func (rr *RedirectReceiver) Start() {
	go func() {
		_ = rr.server.Serve(rr.listener)
	}()
}

// Wait blocks until a redirect is received or ctx is done.
func (rr *RedirectReceiver) Wait(ctx context.Context) (RedirectResult, error) {
	select {
	case result := <-rr.result:
		return result, nil
	case <-ctx.Done():
		return RedirectResult{}, ctx.Err()
	}
}

// Shutdown gracefully shuts down the server.
func (rr *RedirectReceiver) Shutdown(ctx context.Context) error {
	return rr.server.Shutdown(ctx)
}

// Port returns the port the receiver is listening on.
func (rr *RedirectReceiver) Port() int {
	return rr.listener.Addr().(*net.TCPAddr).Port
}

// Origin returns the origin the receiver is reachable at.
func (rr *RedirectReceiver) Origin() string {
	return fmt.Sprintf("http://127.0.0.1:%d", rr.Port())
}

func (rr *RedirectReceiver) handleRedirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result := RedirectResult{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Error: query.Get("error"),
	}

	// Only the first redirect counts
	select {
	case rr.result <- result:
	default:
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.Error != "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Jukebox - Spotify login failed</title></head>
<body>
<h1>Spotify login failed</h1>
<p>Error: %s</p>
<p>You can close this window.</p>
</body>
</html>`, html.EscapeString(result.Error))
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Jukebox - Spotify connected</title></head>
<body>
<h1>Spotify connected</h1>
<p>You can close this window and return to the terminal.</p>
</body>
</html>`)
}
