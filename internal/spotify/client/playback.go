package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/tsijukebox/jukebox/internal/core"
)

// PlayOptions configures a play request.
type PlayOptions struct {
	DeviceID   string      `json:"-"`
	ContextURI string      `json:"context_uri,omitempty"`
	URIs       []string    `json:"uris,omitempty"`
	Offset     *PlayOffset `json:"offset,omitempty"`
	PositionMS int         `json:"position_ms,omitempty"`
}

// PlayOffset specifies where to start playback in a context.
type PlayOffset struct {
	Position *int   `json:"position,omitempty"` // Track index
	URI      string `json:"uri,omitempty"`      // Track URI
}

func devicePath(path, deviceID string) string {
	return BuildURL(path, map[string]string{"device_id": deviceID})
}

// GetPlaybackState returns the current playback state, or nil when nothing
// is playing. Spotify answers that case with 204 or an error body, so a
// *RequestError is read as "no playback" too. Auth and transport errors are
// still returned.
func (c *Client) GetPlaybackState(ctx context.Context) (*core.PlaybackState, error) {
	data, err := c.Request(ctx, http.MethodGet, "/me/player", nil, nil)
	if err != nil {
		if _, ok := AsRequestError(err); ok {
			c.logger.Debug("no playback state", "error", err)
			return nil, nil
		}
		return nil, err
	}

	var state PlaybackState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse playback state: %w", err)
	}
	// 204 decodes to a zero state with no device and no item.
	if state.Device == nil && state.Item == nil {
		return nil, nil
	}
	return mapPlaybackState(&state), nil
}

// GetDevices returns the user's available playback devices.
func (c *Client) GetDevices(ctx context.Context) ([]core.Device, error) {
	var resp DevicesResponse
	if err := c.get(ctx, "/me/player/devices", &resp); err != nil {
		return nil, err
	}
	devices := make([]core.Device, 0, len(resp.Devices))
	for i := range resp.Devices {
		devices = append(devices, mapDevice(&resp.Devices[i]))
	}
	return devices, nil
}

// Play starts or resumes playback. A zero PlayOptions resumes the current
// context on the active device.
func (c *Client) Play(ctx context.Context, opts PlayOptions) error {
	// Spotify requires a JSON body even for resume.
	return c.put(ctx, devicePath("/me/player/play", opts.DeviceID), opts, nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context, deviceID string) error {
	return c.put(ctx, devicePath("/me/player/pause", deviceID), nil, nil)
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context, deviceID string) error {
	return c.post(ctx, devicePath("/me/player/next", deviceID), nil, nil)
}

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context, deviceID string) error {
	return c.post(ctx, devicePath("/me/player/previous", deviceID), nil, nil)
}

// Seek seeks to a position in the current track.
func (c *Client) Seek(ctx context.Context, positionMs int, deviceID string) error {
	if positionMs < 0 {
		positionMs = 0
	}
	params := map[string]string{
		"position_ms": strconv.Itoa(positionMs),
		"device_id":   deviceID,
	}
	return c.put(ctx, BuildURL("/me/player/seek", params), nil, nil)
}

// ClampVolume limits percent to [0, 100] and rounds it to the nearest
// integer.
func ClampVolume(percent float64) int {
	if math.IsNaN(percent) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, percent))))
}

// SetVolume sets the playback volume. Out of range values are clamped.
func (c *Client) SetVolume(ctx context.Context, percent float64, deviceID string) error {
	params := map[string]string{
		"volume_percent": strconv.Itoa(ClampVolume(percent)),
		"device_id":      deviceID,
	}
	return c.put(ctx, BuildURL("/me/player/volume", params), nil, nil)
}

// SetRepeat sets the repeat mode.
func (c *Client) SetRepeat(ctx context.Context, mode core.RepeatMode, deviceID string) error {
	params := map[string]string{
		"state":     string(mode),
		"device_id": deviceID,
	}
	return c.put(ctx, BuildURL("/me/player/repeat", params), nil, nil)
}

// SetShuffle sets the shuffle mode.
func (c *Client) SetShuffle(ctx context.Context, state bool, deviceID string) error {
	params := map[string]string{
		"state":     strconv.FormatBool(state),
		"device_id": deviceID,
	}
	return c.put(ctx, BuildURL("/me/player/shuffle", params), nil, nil)
}

// TransferPlayback transfers playback to a different device.
func (c *Client) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	body := map[string]interface{}{
		"device_ids": []string{deviceID},
		"play":       play,
	}
	return c.put(ctx, "/me/player", body, nil)
}

// AddToQueue adds a track to the playback queue.
func (c *Client) AddToQueue(ctx context.Context, uri string, deviceID string) error {
	params := map[string]string{
		"uri":       uri,
		"device_id": deviceID,
	}
	return c.post(ctx, BuildURL("/me/player/queue", params), nil, nil)
}

// GetCurrentQueue returns the playback queue. Like GetPlaybackState, "no
// playback" answers yield an empty queue rather than an error.
func (c *Client) GetCurrentQueue(ctx context.Context) (*core.Queue, error) {
	empty := &core.Queue{Tracks: []core.Track{}}

	var resp Queue
	if err := c.get(ctx, "/me/player/queue", &resp); err != nil {
		if _, ok := AsRequestError(err); ok {
			return empty, nil
		}
		return nil, err
	}

	queue := &core.Queue{Tracks: mapTracks(resp.Queue)}
	if resp.CurrentlyPlaying != nil {
		t := MapTrack(resp.CurrentlyPlaying)
		queue.CurrentlyPlaying = &t
	}
	return queue, nil
}
