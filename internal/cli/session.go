package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tsijukebox/jukebox/internal/config"
	"github.com/tsijukebox/jukebox/internal/core"
	jberrors "github.com/tsijukebox/jukebox/internal/errors"
	"github.com/tsijukebox/jukebox/internal/spotify/auth"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
	"github.com/tsijukebox/jukebox/internal/spotify/player"
	"github.com/tsijukebox/jukebox/internal/store"
)

// app is the Spotify session of the current terminal together with the
// store it is persisted in and a client bound to it.
type app struct {
	session *auth.Session
	store   auth.Store
	client  *client.Client
	closer  io.Closer

	restored bool
}

// openStore returns the configured session store. The closer is nil when
// there is nothing to release.
func openStore(ctx context.Context) (auth.Store, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		if cfg.Store.TerminalID == "" {
			return nil, nil, jberrors.WithSuggestion(
				fmt.Errorf("no terminal ID configured for the sqlite store"),
				"Set store.terminal_id, pass --terminal, or run 'jukebox terminals new'",
			)
		}
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return db.Terminal(cfg.Store.TerminalID), db, nil
	default:
		fs, err := auth.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	}
}

// newApp restores the terminal's session from its store. Token changes are
// written back to the store as they happen. Credentials set in the config
// take precedence over stored ones.
func newApp(ctx context.Context) (*app, error) {
	st, closer, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	a := &app{store: st, closer: closer}
	stored, err := st.Load(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.session = auth.NewSession(cfg.Spotify.ExchangeURL,
		auth.WithOrigin(cfg.Spotify.Origin),
		auth.WithAPIKey(cfg.Spotify.APIKey),
		auth.WithLogger(logger),
		auth.WithTokenCallback(func(auth.TokenSet, bool) { a.persist() }),
	)
	auth.Restore(a.session, stored)
	a.session.SetCredentials(mergeCredentials(a.session.Credentials(), cfg.Spotify))
	a.restored = true

	a.client = client.New(a.session, client.WithLogger(logger))
	logger.Debug("session restored",
		"session", a.session.ID(),
		"store", cfg.Store.Driver,
		"terminal", cfg.Store.TerminalID,
		"authenticated", a.session.IsAuthenticated())
	return a, nil
}

// newAuthenticatedApp is newApp for commands that need tokens.
func newAuthenticatedApp(ctx context.Context) (*app, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	if !a.session.IsAuthenticated() {
		a.Close()
		return nil, auth.ErrNotAuthenticated
	}
	return a, nil
}

func mergeCredentials(stored auth.Credentials, sc config.SpotifyConfig) auth.Credentials {
	if sc.ClientID != "" {
		stored.ClientID = sc.ClientID
	}
	if sc.ClientSecret != "" {
		stored.ClientSecret = sc.ClientSecret
	}
	return stored
}

// persist saves the session. Failures are logged; the in-memory session
// stays usable.
func (a *app) persist() {
	if !a.restored {
		return
	}
	if err := a.store.Save(context.Background(), auth.Snapshot(a.session)); err != nil {
		logger.Warn("failed to persist session", "error", err)
	}
}

// Close releases the store.
func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// player returns a player targeting deviceFlag, falling back to
// defaults.device.
func (a *app) player(ctx context.Context, deviceFlag string) (*player.Player, error) {
	p := player.New(a.client)

	target := deviceFlag
	if target == "" {
		target = cfg.Defaults.Device
	}
	if target == "" {
		return p, nil
	}

	d, err := resolveDevice(ctx, a.client, target)
	if err != nil {
		if deviceFlag == "" {
			// A stale default should not block playing on the active device.
			logger.Warn("default device unavailable", "device", target, "error", err)
			return p, nil
		}
		return nil, err
	}
	p.SetDevice(d.ID)
	return p, nil
}

// resolveDevice finds a device by ID, exact name, or name substring, in that
// order. Names compare case-insensitively.
func resolveDevice(ctx context.Context, c *client.Client, nameOrID string) (*core.Device, error) {
	devices, err := c.GetDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}
	if d := matchDevice(devices, nameOrID); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", jberrors.ErrDeviceNotFound, nameOrID)
}

func matchDevice(devices []core.Device, nameOrID string) *core.Device {
	for i := range devices {
		if devices[i].ID == nameOrID {
			return &devices[i]
		}
	}

	nameLower := strings.ToLower(nameOrID)
	for i := range devices {
		if strings.ToLower(devices[i].Name) == nameLower {
			return &devices[i]
		}
	}
	for i := range devices {
		if strings.Contains(strings.ToLower(devices[i].Name), nameLower) {
			return &devices[i]
		}
	}
	return nil
}
