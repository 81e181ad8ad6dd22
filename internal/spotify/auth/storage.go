package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSessionFileName is the default name for the session file.
	DefaultSessionFileName = "session.json"
)

// StoredSession is what a caller persists for a session between runs.
type StoredSession struct {
	Credentials Credentials `json:"credentials"`
	Tokens      *TokenSet   `json:"tokens,omitempty"`
}

// Store persists sessions. The Session itself never persists anything;
// callers wire a Store to it through WithTokenCallback.
type Store interface {
	Load(ctx context.Context) (*StoredSession, error)
	Save(ctx context.Context, s *StoredSession) error
	Delete(ctx context.Context) error
}

// Restore installs stored credentials and tokens into the session.
func Restore(s *Session, stored *StoredSession) {
	if stored == nil {
		return
	}
	if !stored.Credentials.IsZero() {
		s.SetCredentials(stored.Credentials)
	}
	if stored.Tokens != nil {
		s.SetTokens(*stored.Tokens)
	}
}

// Snapshot returns the session's current state in storable form.
func Snapshot(s *Session) *StoredSession {
	stored := &StoredSession{Credentials: s.Credentials()}
	if tok, ok := s.Tokens(); ok {
		stored.Tokens = &tok
	}
	return stored
}

// FileStore keeps a session as JSON on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at the specified path.
// If path is empty, uses the default location (~/.config/jukebox/session.json).
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "jukebox", DefaultSessionFileName)
	}

	return &FileStore{path: path}, nil
}

// Save persists a session to disk.
func (s *FileStore) Save(_ context.Context, stored *StoredSession) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Owner only: the file holds the client secret.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session from disk. It returns nil, nil when nothing is stored.
func (s *FileStore) Load(_ context.Context) (*StoredSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored StoredSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &stored, nil
}

// Delete removes the stored session.
func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Exists returns true if a session file exists.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the session file.
func (s *FileStore) Path() string {
	return s.path
}
