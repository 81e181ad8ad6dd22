package client

import (
	"context"
	"net/url"

	"github.com/tsijukebox/jukebox/internal/core"
)

// GetCategories returns a page of browse categories.
func (c *Client) GetCategories(ctx context.Context, limit, offset int) (core.Page[core.Category], error) {
	var resp struct {
		Categories Paging[Category] `json:"categories"`
	}
	if err := c.get(ctx, BuildURL("/browse/categories", pageParams(limit, offset)), &resp); err != nil {
		return core.Page[core.Category]{}, err
	}

	p := resp.Categories
	items := make([]core.Category, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, mapCategory(&p.Items[i]))
	}
	return core.NewPage(items, len(p.Items), p.Total, p.Limit, p.Offset), nil
}

// GetCategoryPlaylists returns a page of playlists in a category.
func (c *Client) GetCategoryPlaylists(ctx context.Context, categoryID string, limit, offset int) (core.Page[core.Playlist], error) {
	path := BuildURL("/browse/categories/"+url.PathEscape(categoryID)+"/playlists", pageParams(limit, offset))
	return c.playlistListing(ctx, path)
}

// GetFeaturedPlaylists returns a page of editorially featured playlists.
func (c *Client) GetFeaturedPlaylists(ctx context.Context, limit, offset int) (core.Page[core.Playlist], error) {
	return c.playlistListing(ctx, BuildURL("/browse/featured-playlists", pageParams(limit, offset)))
}

func (c *Client) playlistListing(ctx context.Context, path string) (core.Page[core.Playlist], error) {
	var resp struct {
		Playlists Paging[*Playlist] `json:"playlists"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return core.Page[core.Playlist]{}, err
	}
	p := resp.Playlists
	return core.NewPage(mapPlaylists(p.Items), len(p.Items), p.Total, p.Limit, p.Offset), nil
}

// GetNewReleases returns a page of newly released albums.
func (c *Client) GetNewReleases(ctx context.Context, limit, offset int) (core.Page[core.Album], error) {
	var resp struct {
		Albums Paging[Album] `json:"albums"`
	}
	if err := c.get(ctx, BuildURL("/browse/new-releases", pageParams(limit, offset)), &resp); err != nil {
		return core.Page[core.Album]{}, err
	}
	p := resp.Albums
	return core.NewPage(mapAlbums(p.Items), len(p.Items), p.Total, p.Limit, p.Offset), nil
}
