package client

import (
	"context"
	"net/url"

	"github.com/tsijukebox/jukebox/internal/core"
	"github.com/tsijukebox/jukebox/internal/spotify/auth"
)

// PlaylistUpdate holds the playlist details to change. Nil fields are left
// as they are.
type PlaylistUpdate struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Public        *bool   `json:"public,omitempty"`
	Collaborative *bool   `json:"collaborative,omitempty"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
}

type trackRef struct {
	URI string `json:"uri"`
}

type removeTracksRequest struct {
	Tracks []trackRef `json:"tracks"`
}

type reorderRequest struct {
	RangeStart   int `json:"range_start"`
	InsertBefore int `json:"insert_before"`
	RangeLength  int `json:"range_length,omitempty"`
}

type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

// GetUserPlaylists returns the current user's playlists.
func (c *Client) GetUserPlaylists(ctx context.Context, limit, offset int) (core.Page[core.Playlist], error) {
	var resp Paging[*Playlist]
	if err := c.get(ctx, BuildURL("/me/playlists", pageParams(limit, offset)), &resp); err != nil {
		return core.Page[core.Playlist]{}, err
	}
	return core.NewPage(mapPlaylists(resp.Items), len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// GetPlaylist returns a playlist by ID.
func (c *Client) GetPlaylist(ctx context.Context, id string) (*core.Playlist, error) {
	var resp Playlist
	if err := c.get(ctx, "/playlists/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	p := MapPlaylist(&resp)
	return &p, nil
}

// GetPlaylistTracks returns a page of a playlist's tracks. Entries without a
// track (local files, removed content) are skipped; HasMore still counts
// them so paging advances over the upstream list.
func (c *Client) GetPlaylistTracks(ctx context.Context, id string, limit, offset int) (core.Page[core.Track], error) {
	var resp Paging[PlaylistTrack]
	path := BuildURL("/playlists/"+url.PathEscape(id)+"/tracks", pageParams(limit, offset))
	if err := c.get(ctx, path, &resp); err != nil {
		return core.Page[core.Track]{}, err
	}

	tracks := make([]core.Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Track != nil {
			tracks = append(tracks, MapTrack(item.Track))
		}
	}
	return core.NewPage(tracks, len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// CreatePlaylist creates a playlist owned by the session's user.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string, public bool) (*core.Playlist, error) {
	user := c.session.ValidateToken(ctx)
	if user == nil {
		return nil, auth.ErrNotAuthenticated
	}

	var resp Playlist
	path := "/users/" + url.PathEscape(user.ID) + "/playlists"
	err := c.post(ctx, path, createPlaylistRequest{
		Name:        name,
		Description: description,
		Public:      public,
	}, &resp)
	if err != nil {
		return nil, err
	}
	p := MapPlaylist(&resp)
	return &p, nil
}

// UpdatePlaylist changes a playlist's details.
func (c *Client) UpdatePlaylist(ctx context.Context, id string, update PlaylistUpdate) error {
	return c.put(ctx, "/playlists/"+url.PathEscape(id), update, nil)
}

// DeletePlaylist unfollows a playlist, which is how Spotify deletes one the
// user owns.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	return c.delete(ctx, "/playlists/"+url.PathEscape(id)+"/followers", nil)
}

// AddTracksToPlaylist appends tracks. A negative position appends at the end.
func (c *Client) AddTracksToPlaylist(ctx context.Context, id string, uris []string, position int) error {
	body := map[string]interface{}{"uris": uris}
	if position >= 0 {
		body["position"] = position
	}
	var resp snapshotResponse
	return c.post(ctx, "/playlists/"+url.PathEscape(id)+"/tracks", body, &resp)
}

// RemoveTracksFromPlaylist removes every occurrence of the given tracks.
func (c *Client) RemoveTracksFromPlaylist(ctx context.Context, id string, uris []string) error {
	refs := make([]trackRef, len(uris))
	for i, u := range uris {
		refs[i] = trackRef{URI: u}
	}
	return c.delete(ctx, "/playlists/"+url.PathEscape(id)+"/tracks", removeTracksRequest{Tracks: refs})
}

// ReorderPlaylistTracks moves rangeLength tracks starting at rangeStart to
// before insertBefore.
func (c *Client) ReorderPlaylistTracks(ctx context.Context, id string, rangeStart, insertBefore, rangeLength int) error {
	var resp snapshotResponse
	return c.put(ctx, "/playlists/"+url.PathEscape(id)+"/tracks", reorderRequest{
		RangeStart:   rangeStart,
		InsertBefore: insertBefore,
		RangeLength:  rangeLength,
	}, &resp)
}
