package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	sessionPath := filepath.Join(tmpDir, "session.json")

	store, err := NewFileStore(sessionPath)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if store.Exists() {
		t.Error("Exists() = true, want false for new store")
	}

	stored, err := store.Load(ctx)
	if err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if stored != nil {
		t.Error("Load() should return nil for non-existent session")
	}

	want := &StoredSession{
		Credentials: Credentials{ClientID: "client", ClientSecret: "secret"},
		Tokens: &TokenSet{
			AccessToken:  "access_123",
			RefreshToken: "refresh_456",
			ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
		},
	}

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !store.Exists() {
		t.Error("Exists() = false after save, want true")
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Credentials != want.Credentials {
		t.Errorf("Credentials = %+v, want %+v", loaded.Credentials, want.Credentials)
	}
	if loaded.Tokens == nil || loaded.Tokens.RefreshToken != "refresh_456" {
		t.Errorf("Tokens = %+v, want refresh token refresh_456", loaded.Tokens)
	}
	if !loaded.Tokens.ExpiresAt.Equal(want.Tokens.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", loaded.Tokens.ExpiresAt, want.Tokens.ExpiresAt)
	}

	info, err := os.Stat(sessionPath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("File permissions = %o, want 0600", mode)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Exists() {
		t.Error("Exists() = true after delete, want false")
	}
}

func TestFileStoreNestedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(filepath.Join(tmpDir, "nested", "dir", "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Save(context.Background(), &StoredSession{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !store.Exists() {
		t.Error("Session file not created in nested directory")
	}
}

func TestFileStoreDeleteNonExistent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Delete(context.Background()); err != nil {
		t.Errorf("Delete() on non-existent file error = %v", err)
	}
}

func TestRestoreAndSnapshot(t *testing.T) {
	s := NewSession("http://unused")
	Restore(s, &StoredSession{
		Credentials: Credentials{ClientID: "id", ClientSecret: "secret"},
		Tokens:      &TokenSet{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)},
	})

	if !s.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after Restore, want true")
	}

	snap := Snapshot(s)
	if snap.Credentials.ClientID != "id" {
		t.Errorf("ClientID = %q, want %q", snap.Credentials.ClientID, "id")
	}
	if snap.Tokens == nil || snap.Tokens.AccessToken != "a" {
		t.Errorf("Tokens = %+v, want access token a", snap.Tokens)
	}

	s.ClearTokens()
	if Snapshot(s).Tokens != nil {
		t.Error("Snapshot after ClearTokens should carry no tokens")
	}

	Restore(s, nil)
}
