package client

import (
	"context"
	"net/url"

	"github.com/tsijukebox/jukebox/internal/core"
	"golang.org/x/sync/errgroup"
)

// GetAlbum returns an album by ID.
func (c *Client) GetAlbum(ctx context.Context, id string) (*core.Album, error) {
	var resp Album
	if err := c.get(ctx, "/albums/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	a := MapAlbum(&resp)
	return &a, nil
}

// GetAlbumTracks returns a page of an album's tracks. Album tracks come
// back without album details, so the album is fetched alongside and its
// name, ID and cover are stamped on every track.
func (c *Client) GetAlbumTracks(ctx context.Context, id string, limit, offset int) (core.Page[core.Track], error) {
	var (
		album  Album
		tracks Paging[Track]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(gctx, "/albums/"+url.PathEscape(id), &album)
	})
	g.Go(func() error {
		path := BuildURL("/albums/"+url.PathEscape(id)+"/tracks", pageParams(limit, offset))
		return c.get(gctx, path, &tracks)
	})
	if err := g.Wait(); err != nil {
		return core.Page[core.Track]{}, err
	}

	imageURL := firstImage(album.Images)
	items := make([]core.Track, 0, len(tracks.Items))
	for i := range tracks.Items {
		t := MapTrack(&tracks.Items[i])
		t.Album = album.Name
		t.AlbumID = album.ID
		t.AlbumImageURL = imageURL
		items = append(items, t)
	}
	return core.NewPage(items, len(tracks.Items), tracks.Total, tracks.Limit, tracks.Offset), nil
}
