package client

import (
	"context"
	"strings"

	"github.com/tsijukebox/jukebox/internal/core"
)

type idsRequest struct {
	IDs []string `json:"ids"`
}

// GetSavedTracks returns the user's liked songs.
func (c *Client) GetSavedTracks(ctx context.Context, limit, offset int) (core.Page[core.Track], error) {
	var resp Paging[SavedTrack]
	if err := c.get(ctx, BuildURL("/me/tracks", pageParams(limit, offset)), &resp); err != nil {
		return core.Page[core.Track]{}, err
	}

	tracks := make([]core.Track, 0, len(resp.Items))
	for i := range resp.Items {
		tracks = append(tracks, MapTrack(&resp.Items[i].Track))
	}
	return core.NewPage(tracks, len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// SaveTracks adds tracks to the user's liked songs.
func (c *Client) SaveTracks(ctx context.Context, ids []string) error {
	return c.put(ctx, "/me/tracks", idsRequest{IDs: ids}, nil)
}

// RemoveSavedTracks removes tracks from the user's liked songs.
func (c *Client) RemoveSavedTracks(ctx context.Context, ids []string) error {
	return c.delete(ctx, "/me/tracks", idsRequest{IDs: ids})
}

// CheckSavedTracks reports, per ID, whether the track is liked.
func (c *Client) CheckSavedTracks(ctx context.Context, ids []string) ([]bool, error) {
	if len(ids) == 0 {
		return []bool{}, nil
	}
	var resp []bool
	path := BuildURL("/me/tracks/contains", map[string]string{"ids": strings.Join(ids, ",")})
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSavedAlbums returns the user's saved albums.
func (c *Client) GetSavedAlbums(ctx context.Context, limit, offset int) (core.Page[core.Album], error) {
	var resp Paging[SavedAlbum]
	if err := c.get(ctx, BuildURL("/me/albums", pageParams(limit, offset)), &resp); err != nil {
		return core.Page[core.Album]{}, err
	}

	albums := make([]core.Album, 0, len(resp.Items))
	for i := range resp.Items {
		albums = append(albums, MapAlbum(&resp.Items[i].Album))
	}
	return core.NewPage(albums, len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}
