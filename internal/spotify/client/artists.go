package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/tsijukebox/jukebox/internal/core"
)

// GetArtist returns an artist by ID.
func (c *Client) GetArtist(ctx context.Context, id string) (*core.Artist, error) {
	var resp Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	a := MapArtist(&resp)
	return &a, nil
}

// GetArtistTopTracks returns an artist's most popular tracks in market.
func (c *Client) GetArtistTopTracks(ctx context.Context, id, market string) ([]core.Track, error) {
	if market == "" {
		market = "US"
	}
	var resp struct {
		Tracks []Track `json:"tracks"`
	}
	path := BuildURL("/artists/"+url.PathEscape(id)+"/top-tracks", map[string]string{"market": market})
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return mapTracks(resp.Tracks), nil
}

// GetArtistAlbums returns a page of an artist's albums.
func (c *Client) GetArtistAlbums(ctx context.Context, id string, limit, offset int) (core.Page[core.Album], error) {
	var resp Paging[Album]
	path := BuildURL("/artists/"+url.PathEscape(id)+"/albums", pageParams(limit, offset))
	if err := c.get(ctx, path, &resp); err != nil {
		return core.Page[core.Album]{}, err
	}
	return core.NewPage(mapAlbums(resp.Items), len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// GetRelatedArtists returns artists similar to the given one.
func (c *Client) GetRelatedArtists(ctx context.Context, id string) ([]core.Artist, error) {
	var resp struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(id)+"/related-artists", &resp); err != nil {
		return nil, err
	}
	return mapArtists(resp.Artists), nil
}

// FollowArtists follows the given artists.
func (c *Client) FollowArtists(ctx context.Context, ids []string) error {
	return c.put(ctx, followPath(ids), nil, nil)
}

// UnfollowArtists unfollows the given artists.
func (c *Client) UnfollowArtists(ctx context.Context, ids []string) error {
	return c.delete(ctx, followPath(ids), nil)
}

func followPath(ids []string) string {
	return BuildURL("/me/following", map[string]string{
		"type": "artist",
		"ids":  strings.Join(ids, ","),
	})
}

// GetFollowedArtists returns the artists the user follows. The endpoint is
// cursor-based: after is the ID of the last artist already seen and offset
// is how many were seen, so the page's HasMore keeps the usual meaning. Pass
// "" and 0 for the first page.
func (c *Client) GetFollowedArtists(ctx context.Context, limit, offset int, after string) (core.Page[core.Artist], error) {
	params := pageParams(limit, 0)
	params["type"] = "artist"
	params["after"] = after

	var resp struct {
		Artists struct {
			Items []Artist `json:"items"`
			Total int      `json:"total"`
			Limit int      `json:"limit"`
		} `json:"artists"`
	}
	if err := c.get(ctx, BuildURL("/me/following", params), &resp); err != nil {
		return core.Page[core.Artist]{}, err
	}

	a := resp.Artists
	return core.NewPage(mapArtists(a.Items), len(a.Items), a.Total, a.Limit, offset), nil
}
