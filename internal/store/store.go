// Package store keeps the Spotify sessions of a fleet of kiosk terminals in
// one SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tsijukebox/jukebox/internal/spotify/auth"
)

// DB is an open session database.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Terminal summarizes one terminal's stored session.
type Terminal struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultPath returns the database location used when none is configured.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "jukebox", "sessions.db"), nil
}

// Open opens (creating if needed) the database at path and applies
// migrations. path may be ":memory:".
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// NewTerminalID returns a fresh terminal identifier.
func NewTerminalID() string {
	return "terminal-" + uuid.NewString()[:8]
}

// Terminal returns an auth.Store bound to one terminal's row.
func (d *DB) Terminal(id string) auth.Store {
	return &terminalStore{db: d, id: id}
}

// List returns every stored terminal, most recently updated first.
func (d *DB) List(ctx context.Context) ([]Terminal, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT terminal_id, client_id, access_token, expires_at, updated_at
		FROM terminal_sessions
		ORDER BY updated_at DESC, terminal_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}
	defer rows.Close()

	var terminals []Terminal
	for rows.Next() {
		var (
			t         Terminal
			access    sql.NullString
			expiresAt sql.NullInt64
			updatedAt int64
		)
		if err := rows.Scan(&t.ID, &t.ClientID, &access, &expiresAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan terminal: %w", err)
		}
		t.Authenticated = access.Valid && access.String != ""
		if expiresAt.Valid {
			t.ExpiresAt = time.UnixMilli(expiresAt.Int64)
		}
		t.UpdatedAt = time.UnixMilli(updatedAt)
		terminals = append(terminals, t)
	}
	return terminals, rows.Err()
}

func (d *DB) load(ctx context.Context, id string) (*auth.StoredSession, error) {
	var (
		stored    auth.StoredSession
		access    sql.NullString
		refresh   sql.NullString
		expiresAt sql.NullInt64
	)
	err := d.db.QueryRowContext(ctx, `
		SELECT client_id, client_secret, access_token, refresh_token, expires_at
		FROM terminal_sessions WHERE terminal_id = ?`, id).
		Scan(&stored.Credentials.ClientID, &stored.Credentials.ClientSecret, &access, &refresh, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session for %s: %w", id, err)
	}

	if access.Valid && access.String != "" {
		stored.Tokens = &auth.TokenSet{
			AccessToken:  access.String,
			RefreshToken: refresh.String,
		}
		if expiresAt.Valid {
			stored.Tokens.ExpiresAt = time.UnixMilli(expiresAt.Int64)
		}
	}
	return &stored, nil
}

func (d *DB) save(ctx context.Context, id string, s *auth.StoredSession) error {
	var (
		access    sql.NullString
		refresh   sql.NullString
		expiresAt sql.NullInt64
	)
	if s.Tokens != nil {
		access = sql.NullString{String: s.Tokens.AccessToken, Valid: true}
		refresh = sql.NullString{String: s.Tokens.RefreshToken, Valid: true}
		expiresAt = sql.NullInt64{Int64: s.Tokens.ExpiresAt.UnixMilli(), Valid: true}
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO terminal_sessions
			(terminal_id, client_id, client_secret, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(terminal_id) DO UPDATE SET
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		id, s.Credentials.ClientID, s.Credentials.ClientSecret, access, refresh, expiresAt, d.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save session for %s: %w", id, err)
	}
	return nil
}

// Delete removes a terminal's row. Deleting an unknown terminal is not an
// error.
func (d *DB) Delete(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM terminal_sessions WHERE terminal_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session for %s: %w", id, err)
	}
	return nil
}

type terminalStore struct {
	db *DB
	id string
}

func (t *terminalStore) Load(ctx context.Context) (*auth.StoredSession, error) {
	return t.db.load(ctx, t.id)
}

func (t *terminalStore) Save(ctx context.Context, s *auth.StoredSession) error {
	return t.db.save(ctx, t.id, s)
}

func (t *terminalStore) Delete(ctx context.Context) error {
	return t.db.Delete(ctx, t.id)
}
