package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
)

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("Failed to decode %s: %v", raw, err)
	}
	return &v
}

func TestMapTrack(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		raw := decode[Track](t, `{
			"id": "t1", "name": "Song", "uri": "spotify:track:t1",
			"duration_ms": 215000, "explicit": true, "popularity": 71,
			"track_number": 3, "preview_url": "https://p/t1",
			"artists": [{"id": "a1", "name": "One"}, {"id": "a2", "name": "Two"}],
			"album": {"id": "al1", "name": "Record", "images": [{"url": "https://i/al1"}]}
		}`)

		got := MapTrack(raw)
		if got.Artist != "One, Two" || got.ArtistID != "a1" || len(got.Artists) != 2 {
			t.Errorf("artists = %q %q %v", got.Artist, got.ArtistID, got.Artists)
		}
		if got.Album != "Record" || got.AlbumID != "al1" || got.AlbumImageURL != "https://i/al1" {
			t.Errorf("album = %q %q %q", got.Album, got.AlbumID, got.AlbumImageURL)
		}
		if got.PreviewURL != "https://p/t1" || !got.Explicit || got.DurationMS != 215000 || got.TrackNumber != 3 {
			t.Errorf("MapTrack() = %+v", got)
		}
	})

	t.Run("partial", func(t *testing.T) {
		got := MapTrack(decode[Track](t, `{"id": "t1", "preview_url": null}`))
		if got.ID != "t1" || got.Artist != "" || got.AlbumImageURL != "" || got.PreviewURL != "" {
			t.Errorf("MapTrack() = %+v", got)
		}
		if got.Artists == nil {
			t.Error("Artists is nil, want empty slice")
		}
	})

	t.Run("nil", func(t *testing.T) {
		got := MapTrack(nil)
		if got.ID != "" || got.Artists == nil {
			t.Errorf("MapTrack(nil) = %+v", got)
		}
	})
}

func TestMapAlbum(t *testing.T) {
	got := MapAlbum(decode[Album](t, `{
		"id": "al1", "name": "Record", "album_type": "album", "total_tracks": 12,
		"release_date": "1999-04-01", "artists": [{"id": "a1", "name": "One"}],
		"images": [{"url": "https://i/large"}, {"url": "https://i/small"}]
	}`))
	if got.Artist != "One" || got.ImageURL != "https://i/large" || got.TotalTracks != 12 || got.ReleaseDate != "1999-04-01" {
		t.Errorf("MapAlbum() = %+v", got)
	}

	empty := MapAlbum(decode[Album](t, `{}`))
	if empty.Artists == nil || empty.ImageURL != "" || empty.TotalTracks != 0 {
		t.Errorf("MapAlbum({}) = %+v", empty)
	}
	if MapAlbum(nil).Artists == nil {
		t.Error("MapAlbum(nil).Artists is nil")
	}
}

func TestMapArtist(t *testing.T) {
	got := MapArtist(decode[Artist](t, `{
		"id": "a1", "name": "One", "genres": ["rock"], "popularity": 50,
		"followers": {"total": 1200}, "images": [{"url": "https://i/a1"}]
	}`))
	if got.Followers != 1200 || got.ImageURL != "https://i/a1" || len(got.Genres) != 1 {
		t.Errorf("MapArtist() = %+v", got)
	}

	// Simplified artists carry no followers, genres or images.
	simple := MapArtist(decode[Artist](t, `{"id": "a1", "name": "One"}`))
	if simple.Followers != 0 || simple.Genres == nil || simple.ImageURL != "" {
		t.Errorf("MapArtist(simplified) = %+v", simple)
	}
}

func TestMapPlaylist(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want core.Playlist
	}{
		{
			name: "full",
			raw: `{"id": "p1", "name": "Mix", "description": "Hits", "public": false,
				"collaborative": true, "images": [{"url": "https://i/p1"}],
				"owner": {"id": "u1", "display_name": "DJ"}, "tracks": {"total": 42}}`,
			want: core.Playlist{ID: "p1", Name: "Mix", Description: "Hits", ImageURL: "https://i/p1",
				Owner: "DJ", OwnerID: "u1", TrackCount: 42, Public: false, Collaborative: true},
		},
		{
			name: "nulls default",
			raw:  `{"id": "p1", "description": null, "public": null, "images": null, "owner": null, "tracks": null}`,
			want: core.Playlist{ID: "p1", Public: true},
		},
		{
			name: "owner without display name",
			raw:  `{"id": "p1", "owner": {"id": "u1"}}`,
			want: core.Playlist{ID: "p1", Owner: "u1", OwnerID: "u1", Public: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapPlaylist(decode[Playlist](t, tt.raw)); got != tt.want {
				t.Errorf("MapPlaylist() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMapDeviceType(t *testing.T) {
	tests := map[string]core.DeviceType{
		"Computer":   core.DeviceTypeComputer,
		"Smartphone": core.DeviceTypePhone,
		"Speaker":    core.DeviceTypeSpeaker,
		"CastAudio":  core.DeviceTypeSpeaker,
		"TV":         core.DeviceTypeTV,
		"Automobile": core.DeviceTypeOther,
		"":           core.DeviceTypeOther,
	}
	for in, want := range tests {
		if got := mapDeviceType(in); got != want {
			t.Errorf("mapDeviceType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapPlaybackState(t *testing.T) {
	got := mapPlaybackState(decode[PlaybackState](t, `{
		"device": {"id": "d1", "name": "Kiosk", "type": "Computer", "volume_percent": 65},
		"shuffle_state": true, "repeat_state": "context", "progress_ms": 30000,
		"is_playing": true, "item": {"id": "t1", "duration_ms": 120000},
		"context": {"uri": "spotify:playlist:p1"}
	}`))

	if got.Track == nil || got.Track.ID != "t1" {
		t.Fatalf("Track = %+v", got.Track)
	}
	if got.Device == nil || got.Device.Type != core.DeviceTypeComputer || got.Volume != 65 {
		t.Errorf("Device = %+v, Volume = %d", got.Device, got.Volume)
	}
	if got.Progress != 30*time.Second || got.ProgressPercent() != 25 {
		t.Errorf("Progress = %v (%v%%)", got.Progress, got.ProgressPercent())
	}
	if got.Repeat != core.RepeatContext || !got.Shuffle || got.ContextURI != "spotify:playlist:p1" {
		t.Errorf("mapPlaybackState() = %+v", got)
	}

	bare := mapPlaybackState(decode[PlaybackState](t, `{"device": {"id": "d1", "volume_percent": null}}`))
	if bare.Track != nil || bare.Volume != 0 || bare.Repeat != core.RepeatOff {
		t.Errorf("mapPlaybackState(bare) = %+v", bare)
	}

	if mapPlaybackState(nil) != nil {
		t.Error("mapPlaybackState(nil) != nil")
	}
}

func TestMapUser(t *testing.T) {
	if mapUser(nil) != nil || mapUser(&User{}) != nil {
		t.Error("mapUser without an ID should be nil")
	}
	got := mapUser(decode[User](t, `{"id": "u1", "product": "premium", "images": [{"url": "https://i/u1"}], "followers": {"total": 3}}`))
	if !got.IsPremium() || got.ImageURL != "https://i/u1" || got.Followers != 3 {
		t.Errorf("mapUser() = %+v", got)
	}
}
