package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/tsijukebox/jukebox/internal/core"
)

// GetTrack returns a track by ID.
func (c *Client) GetTrack(ctx context.Context, id string) (*core.Track, error) {
	var resp Track
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	t := MapTrack(&resp)
	return &t, nil
}

// GetTracks returns several tracks in one call. Unknown IDs are skipped.
func (c *Client) GetTracks(ctx context.Context, ids []string) ([]core.Track, error) {
	if len(ids) == 0 {
		return []core.Track{}, nil
	}
	var resp struct {
		Tracks []*Track `json:"tracks"`
	}
	path := BuildURL("/tracks", map[string]string{"ids": strings.Join(ids, ",")})
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	tracks := make([]core.Track, 0, len(resp.Tracks))
	for _, t := range resp.Tracks {
		if t != nil {
			tracks = append(tracks, MapTrack(t))
		}
	}
	return tracks, nil
}
