package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsijukebox/jukebox/internal/core"
)

// SearchType represents a type of Spotify content to search.
type SearchType string

const (
	SearchTypeTrack    SearchType = "track"
	SearchTypeArtist   SearchType = "artist"
	SearchTypeAlbum    SearchType = "album"
	SearchTypePlaylist SearchType = "playlist"
)

// ParseSearchTypes parses a comma-separated list such as "track,album".
func ParseSearchTypes(s string) ([]SearchType, error) {
	var types []SearchType
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		switch SearchType(part) {
		case SearchTypeTrack, SearchTypeArtist, SearchTypeAlbum, SearchTypePlaylist:
			types = append(types, SearchType(part))
		case "":
		default:
			return nil, fmt.Errorf("unknown search type %q", part)
		}
	}
	return types, nil
}

// Search searches the catalog. With no types it searches tracks. Each
// requested type gets its own page; the others are nil.
func (c *Client) Search(ctx context.Context, query string, types []SearchType, limit, offset int) (*core.SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	if len(names) == 0 {
		names = []string{string(SearchTypeTrack)}
	}

	params := pageParams(limit, offset)
	params["q"] = query
	params["type"] = strings.Join(names, ",")

	var resp SearchResponse
	if err := c.get(ctx, BuildURL("/search", params), &resp); err != nil {
		return nil, err
	}

	results := &core.SearchResults{}
	if t := resp.Tracks; t != nil {
		page := core.NewPage(mapTracks(t.Items), len(t.Items), t.Total, t.Limit, t.Offset)
		results.Tracks = &page
	}
	if a := resp.Albums; a != nil {
		page := core.NewPage(mapAlbums(a.Items), len(a.Items), a.Total, a.Limit, a.Offset)
		results.Albums = &page
	}
	if a := resp.Artists; a != nil {
		page := core.NewPage(mapArtists(a.Items), len(a.Items), a.Total, a.Limit, a.Offset)
		results.Artists = &page
	}
	if p := resp.Playlists; p != nil {
		page := core.NewPage(mapPlaylists(p.Items), len(p.Items), p.Total, p.Limit, p.Offset)
		results.Playlists = &page
	}
	return results, nil
}
