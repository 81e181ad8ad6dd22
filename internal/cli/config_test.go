package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsijukebox/jukebox/internal/config"
)

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    interface{}
		wantErr bool
	}{
		{"defaults.volume", "70", 70, false},
		{"defaults.volume", "loud", nil, true},
		{"defaults.shuffle", "true", true, false},
		{"defaults.shuffle", "maybe", nil, true},
		{"defaults.device", "Kiosk", "Kiosk", false},
		{"store.driver", "sqlite", "sqlite", false},
		{"nope.key", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := parseConfigValue(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseConfigValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseConfigValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	initial := "[spotify]\nclient_id = \"abc\"\n\n[defaults]\nvolume = 30\n"
	if err := os.WriteFile(path, []byte(initial), 0600); err != nil {
		t.Fatal(err)
	}

	err := updateConfigFile(path, map[string]interface{}{
		"defaults.device": "Lobby",
		"store.driver":    "sqlite",
	})
	if err != nil {
		t.Fatalf("updateConfigFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), configHeader) {
		t.Errorf("config does not start with the header:\n%s", data)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Spotify.ClientID != "abc" || cfg.Defaults.Volume != 30 {
		t.Errorf("existing values lost: %+v", cfg)
	}
	if cfg.Defaults.Device != "Lobby" || cfg.Store.Driver != "sqlite" {
		t.Errorf("new values missing: %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}

func TestUpdateConfigFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := updateConfigFile(path, map[string]interface{}{"log.level": "debug"}); err != nil {
		t.Fatalf("updateConfigFile() error = %v", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestUpdateConfigFile_BadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := updateConfigFile(path, map[string]interface{}{"volume": 1}); err == nil {
		t.Error("updateConfigFile() error = nil for key without section")
	}
}

func TestMask(t *testing.T) {
	if mask("") != "" || mask("secret") != "********" {
		t.Error("mask() did not hide the secret")
	}
}

func TestWriteConfigFile_ReportsWriteErrors(t *testing.T) {
	// Writes to /dev/full fail with ENOSPC.
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	if err := writeConfigFile("/dev/full", config.Default()); err == nil {
		t.Error("writeConfigFile() error = nil, want write error")
	}
}
