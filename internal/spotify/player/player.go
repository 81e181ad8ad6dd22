package player

import (
	"context"

	"github.com/tsijukebox/jukebox/internal/core"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

// Player implements core.Player over the Web API client, sending every
// command to one target device.
type Player struct {
	client   *client.Client
	deviceID string // Optional: target device ID
}

// New creates a new Spotify player.
func New(c *client.Client) *Player {
	return &Player{client: c}
}

// SetDevice sets the target device for playback commands. Empty means the
// active device.
func (p *Player) SetDevice(deviceID string) {
	p.deviceID = deviceID
}

// Device returns the target device ID.
func (p *Player) Device() string {
	return p.deviceID
}

// Play starts or resumes playback.
func (p *Player) Play(ctx context.Context) error {
	return p.client.Play(ctx, client.PlayOptions{DeviceID: p.deviceID})
}

// Resume resumes playback, treating "already playing" as success.
func (p *Player) Resume(ctx context.Context) error {
	err := p.Play(ctx)
	if client.IsAlreadyPlayingError(err) {
		return nil
	}
	return err
}

// PlayURI starts playback of a URI. Tracks are played directly; albums,
// playlists and artists are played as a context.
func (p *Player) PlayURI(ctx context.Context, uri string) error {
	if IsContextURI(uri) {
		return p.client.Play(ctx, client.PlayOptions{DeviceID: p.deviceID, ContextURI: uri})
	}
	return p.client.Play(ctx, client.PlayOptions{
		DeviceID: p.deviceID,
		URIs:     []string{uri},
	})
}

// PlayContext starts playback of a context (album, playlist) at a specific position.
func (p *Player) PlayContext(ctx context.Context, contextURI string, offset int) error {
	return p.client.Play(ctx, client.PlayOptions{
		DeviceID:   p.deviceID,
		ContextURI: contextURI,
		Offset:     &client.PlayOffset{Position: &offset},
	})
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return p.client.Pause(ctx, p.deviceID)
}

// Next skips to the next track.
func (p *Player) Next(ctx context.Context) error {
	return p.client.Next(ctx, p.deviceID)
}

// Prev skips to the previous track.
func (p *Player) Prev(ctx context.Context) error {
	return p.client.Previous(ctx, p.deviceID)
}

// Seek seeks to a position in the current track.
func (p *Player) Seek(ctx context.Context, positionMs int) error {
	return p.client.Seek(ctx, positionMs, p.deviceID)
}

// Volume sets the playback volume (0-100).
func (p *Player) Volume(ctx context.Context, percent int) error {
	return p.client.SetVolume(ctx, float64(percent), p.deviceID)
}

// Shuffle toggles shuffle.
func (p *Player) Shuffle(ctx context.Context, on bool) error {
	return p.client.SetShuffle(ctx, on, p.deviceID)
}

// Repeat sets the repeat mode.
func (p *Player) Repeat(ctx context.Context, mode core.RepeatMode) error {
	return p.client.SetRepeat(ctx, mode, p.deviceID)
}

// GetState returns the current playback state. When nothing is playing it
// returns an empty state rather than nil.
func (p *Player) GetState(ctx context.Context) (*core.PlaybackState, error) {
	state, err := p.client.GetPlaybackState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &core.PlaybackState{Repeat: core.RepeatOff}, nil
	}
	return state, nil
}

// GetQueue returns the current playback queue.
func (p *Player) GetQueue(ctx context.Context) (*core.Queue, error) {
	return p.client.GetCurrentQueue(ctx)
}

// GetRecentlyPlayed returns the user's recently played tracks.
func (p *Player) GetRecentlyPlayed(ctx context.Context, limit int) ([]core.PlayHistory, error) {
	return p.client.GetRecentlyPlayed(ctx, limit)
}

// AddToQueue adds a track to the playback queue.
func (p *Player) AddToQueue(ctx context.Context, trackURI string) error {
	return p.client.AddToQueue(ctx, trackURI, p.deviceID)
}

// TransferPlayback transfers playback to a different device and makes it the
// target for later commands.
func (p *Player) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	if err := p.client.TransferPlayback(ctx, deviceID, play); err != nil {
		return err
	}
	p.deviceID = deviceID
	return nil
}

// GetDevices returns the user's available playback devices.
func (p *Player) GetDevices(ctx context.Context) ([]core.Device, error) {
	return p.client.GetDevices(ctx)
}

// IsContextURI reports whether uri names a playable context rather than a
// single track.
func IsContextURI(uri string) bool {
	for _, prefix := range []string{"spotify:album:", "spotify:playlist:", "spotify:artist:", "spotify:show:"} {
		if len(uri) > len(prefix) && uri[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// Ensure Player implements core.Player
var _ core.Player = (*Player)(nil)
