package client

import (
	"context"
	"strconv"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
)

// TimeRange selects the window for top items.
type TimeRange string

const (
	ShortTerm  TimeRange = "short_term"
	MediumTerm TimeRange = "medium_term"
	LongTerm   TimeRange = "long_term"
)

// GetTopTracks returns the user's most played tracks over timeRange.
func (c *Client) GetTopTracks(ctx context.Context, timeRange TimeRange, limit, offset int) (core.Page[core.Track], error) {
	params := pageParams(limit, offset)
	params["time_range"] = string(timeRange)

	var resp Paging[Track]
	if err := c.get(ctx, BuildURL("/me/top/tracks", params), &resp); err != nil {
		return core.Page[core.Track]{}, err
	}
	return core.NewPage(mapTracks(resp.Items), len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// GetTopArtists returns the user's most played artists over timeRange.
func (c *Client) GetTopArtists(ctx context.Context, timeRange TimeRange, limit, offset int) (core.Page[core.Artist], error) {
	params := pageParams(limit, offset)
	params["time_range"] = string(timeRange)

	var resp Paging[Artist]
	if err := c.get(ctx, BuildURL("/me/top/artists", params), &resp); err != nil {
		return core.Page[core.Artist]{}, err
	}
	return core.NewPage(mapArtists(resp.Items), len(resp.Items), resp.Total, resp.Limit, resp.Offset), nil
}

// GetRecentlyPlayed returns the user's recently played tracks, newest first.
func (c *Client) GetRecentlyPlayed(ctx context.Context, limit int) ([]core.PlayHistory, error) {
	params := make(map[string]string)
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var resp RecentlyPlayedResponse
	if err := c.get(ctx, BuildURL("/me/player/recently-played", params), &resp); err != nil {
		return nil, err
	}

	history := make([]core.PlayHistory, 0, len(resp.Items))
	for i := range resp.Items {
		item := &resp.Items[i]
		playedAt, _ := time.Parse(time.RFC3339, item.PlayedAt)
		history = append(history, core.PlayHistory{
			Track:    MapTrack(&item.Track),
			PlayedAt: playedAt,
		})
	}
	return history, nil
}

// GetCurrentUser returns the current user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*core.User, error) {
	var resp User
	if err := c.get(ctx, "/me", &resp); err != nil {
		return nil, err
	}
	return mapUser(&resp), nil
}
