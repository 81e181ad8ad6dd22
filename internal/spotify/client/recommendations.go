package client

import (
	"context"
	"strconv"
	"strings"

	"github.com/tsijukebox/jukebox/internal/core"
)

// RecommendationSeeds are the inputs to GetRecommendations. Spotify accepts
// at most five seeds across all three lists.
type RecommendationSeeds struct {
	Artists []string
	Tracks  []string
	Genres  []string
}

// Count returns the total number of seeds.
func (s RecommendationSeeds) Count() int {
	return len(s.Artists) + len(s.Tracks) + len(s.Genres)
}

// GetRecommendations returns tracks generated from the seeds.
func (c *Client) GetRecommendations(ctx context.Context, seeds RecommendationSeeds, limit int) ([]core.Track, error) {
	params := map[string]string{
		"seed_artists": strings.Join(seeds.Artists, ","),
		"seed_tracks":  strings.Join(seeds.Tracks, ","),
		"seed_genres":  strings.Join(seeds.Genres, ","),
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var resp struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, BuildURL("/recommendations", params), &resp); err != nil {
		return nil, err
	}
	return mapTracks(resp.Tracks), nil
}

// GetAvailableGenreSeeds returns the genres usable as recommendation seeds.
func (c *Client) GetAvailableGenreSeeds(ctx context.Context) ([]string, error) {
	var resp struct {
		Genres []string `json:"genres"`
	}
	if err := c.get(ctx, "/recommendations/available-genre-seeds", &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		return []string{}, nil
	}
	return resp.Genres, nil
}
