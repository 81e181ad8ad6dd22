package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tsijukebox/jukebox/internal/spotify/auth"
)

func TestPagination_HasMore(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		offset      int
		count       int
		wantHasMore bool
	}{
		{"last page", 50, 40, 10, false},
		{"first page", 50, 0, 20, true},
		{"empty", 0, 0, 0, false},
		{"short page at end", 45, 40, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]string, tt.count)
			for i := range items {
				items[i] = `{"id":"x"}`
			}
			body := `{"items":[` + joinJSON(items) + `],"total":` + itoa(tt.total) +
				`,"limit":20,"offset":` + itoa(tt.offset) + `}`

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respondJSON(w, http.StatusOK, body)
			})

			page, err := c.GetSavedAlbums(context.Background(), 20, tt.offset)
			if err != nil {
				t.Fatalf("GetSavedAlbums() error = %v", err)
			}
			if page.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", page.HasMore, tt.wantHasMore)
			}
			if len(page.Items) != tt.count || page.Total != tt.total || page.Offset != tt.offset {
				t.Errorf("page = %d items, total %d, offset %d", len(page.Items), page.Total, page.Offset)
			}
		})
	}
}

func joinJSON(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestGetPlaylistTracks_SkipsNullTracks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlists/p1/tracks" {
			t.Errorf("path = %s", r.URL.Path)
		}
		respondJSON(w, http.StatusOK, `{"items":[{"track":{"id":"t1"}},{"track":null},{"track":{"id":"t3"}}],
			"total":5,"limit":3,"offset":0}`)
	})

	page, err := c.GetPlaylistTracks(context.Background(), "p1", 3, 0)
	if err != nil {
		t.Fatalf("GetPlaylistTracks() error = %v", err)
	}
	if len(page.Items) != 2 || page.Items[1].ID != "t3" {
		t.Errorf("Items = %+v", page.Items)
	}
	if !page.HasMore {
		t.Error("HasMore = false, want true (3 of 5 upstream items seen)")
	}
}

func TestSetVolume_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "100"},
		{-5, "0"},
		{42.7, "43"},
		{42.2, "42"},
		{0, "0"},
	}

	for _, tt := range tests {
		var got string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/me/player/volume" {
				t.Errorf("%s %s", r.Method, r.URL.Path)
			}
			got = r.URL.Query().Get("volume_percent")
			w.WriteHeader(http.StatusNoContent)
		})

		if err := c.SetVolume(context.Background(), tt.in, ""); err != nil {
			t.Fatalf("SetVolume(%v) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("SetVolume(%v) sent volume_percent=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestGetPlaybackState(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantNil  bool
		wantErr  bool
		wantName string
	}{
		{name: "no content", status: http.StatusNoContent, wantNil: true},
		{name: "error body", status: http.StatusNotFound, body: `{"error":{"status":404,"message":"Player command failed: No active device found"}}`, wantNil: true},
		{name: "playing", status: http.StatusOK, body: `{"is_playing":true,"item":{"id":"t1","name":"Song"},"device":{"id":"d1"}}`, wantName: "Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusNoContent {
					w.WriteHeader(tt.status)
					return
				}
				respondJSON(w, tt.status, tt.body)
			})

			state, err := c.GetPlaybackState(context.Background())
			if err != nil {
				t.Fatalf("GetPlaybackState() error = %v", err)
			}
			if tt.wantNil {
				if state != nil {
					t.Errorf("GetPlaybackState() = %+v, want nil", state)
				}
				return
			}
			if state == nil || state.Track == nil || state.Track.Name != tt.wantName || !state.IsPlaying {
				t.Errorf("GetPlaybackState() = %+v", state)
			}
		})
	}
}

func TestGetPlaybackState_PropagatesAuthErrors(t *testing.T) {
	c := New(&staticSession{err: auth.ErrNotAuthenticated})
	if _, err := c.GetPlaybackState(context.Background()); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("GetPlaybackState() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestGetCurrentQueue(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		q, err := c.GetCurrentQueue(context.Background())
		if err != nil || q == nil || !q.IsEmpty() || q.Tracks == nil {
			t.Errorf("GetCurrentQueue() = %+v, %v; want empty queue", q, err)
		}
	})

	t.Run("error body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusNotFound, `{"error":{"status":404,"message":"No active device"}}`)
		})
		q, err := c.GetCurrentQueue(context.Background())
		if err != nil || !q.IsEmpty() {
			t.Errorf("GetCurrentQueue() = %+v, %v; want empty queue", q, err)
		}
	})

	t.Run("with tracks", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, `{"currently_playing":{"id":"t0"},"queue":[{"id":"t1"},{"id":"t2"}]}`)
		})
		q, err := c.GetCurrentQueue(context.Background())
		if err != nil {
			t.Fatalf("GetCurrentQueue() error = %v", err)
		}
		if q.CurrentlyPlaying == nil || q.CurrentlyPlaying.ID != "t0" || q.Len() != 2 {
			t.Errorf("GetCurrentQueue() = %+v", q)
		}
	})
}

func TestCreatePlaylist(t *testing.T) {
	t.Run("uses validated user", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users/user_1/playlists" {
				t.Errorf("%s %s", r.Method, r.URL.Path)
			}
			var body createPlaylistRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("Failed to decode body: %v", err)
			}
			if body.Name != "Party" || body.Public {
				t.Errorf("body = %+v", body)
			}
			respondJSON(w, http.StatusCreated, `{"id":"p9","name":"Party","public":false,"owner":{"id":"user_1"}}`)
		})

		p, err := c.CreatePlaylist(context.Background(), "Party", "", false)
		if err != nil {
			t.Fatalf("CreatePlaylist() error = %v", err)
		}
		if p.ID != "p9" || p.Public || p.OwnerID != "user_1" {
			t.Errorf("CreatePlaylist() = %+v", p)
		}
	})

	t.Run("no user", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		c := New(&staticSession{token: "t"}, WithBaseURL(srv.URL))
		if _, err := c.CreatePlaylist(context.Background(), "Party", "", true); !errors.Is(err, auth.ErrNotAuthenticated) {
			t.Errorf("CreatePlaylist() error = %v, want ErrNotAuthenticated", err)
		}
		if called {
			t.Error("API called without a user")
		}
	})
}

func TestPlaylistMutations(t *testing.T) {
	name := "Renamed"
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   string
	}{
		{
			name:       "update",
			call:       func(c *Client) error { return c.UpdatePlaylist(context.Background(), "p1", PlaylistUpdate{Name: &name}) },
			wantMethod: http.MethodPut,
			wantPath:   "/playlists/p1",
			wantBody:   `{"name":"Renamed"}`,
		},
		{
			name:       "delete",
			call:       func(c *Client) error { return c.DeletePlaylist(context.Background(), "p1") },
			wantMethod: http.MethodDelete,
			wantPath:   "/playlists/p1/followers",
		},
		{
			name: "add at end",
			call: func(c *Client) error {
				return c.AddTracksToPlaylist(context.Background(), "p1", []string{"spotify:track:a"}, -1)
			},
			wantMethod: http.MethodPost,
			wantPath:   "/playlists/p1/tracks",
			wantBody:   `{"uris":["spotify:track:a"]}`,
		},
		{
			name: "remove",
			call: func(c *Client) error {
				return c.RemoveTracksFromPlaylist(context.Background(), "p1", []string{"spotify:track:a"})
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/playlists/p1/tracks",
			wantBody:   `{"tracks":[{"uri":"spotify:track:a"}]}`,
		},
		{
			name:       "reorder",
			call:       func(c *Client) error { return c.ReorderPlaylistTracks(context.Background(), "p1", 0, 3, 1) },
			wantMethod: http.MethodPut,
			wantPath:   "/playlists/p1/tracks",
			wantBody:   `{"range_start":0,"insert_before":3,"range_length":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != tt.wantMethod || r.URL.Path != tt.wantPath {
					t.Errorf("%s %s, want %s %s", r.Method, r.URL.Path, tt.wantMethod, tt.wantPath)
				}
				if tt.wantBody != "" {
					var got, want interface{}
					_ = json.NewDecoder(r.Body).Decode(&got)
					_ = json.Unmarshal([]byte(tt.wantBody), &want)
					gotJSON, _ := json.Marshal(got)
					wantJSON, _ := json.Marshal(want)
					if string(gotJSON) != string(wantJSON) {
						t.Errorf("body = %s, want %s", gotJSON, wantJSON)
					}
				}
				respondJSON(w, http.StatusOK, `{"snapshot_id":"s1"}`)
			})

			if err := tt.call(c); err != nil {
				t.Fatalf("error = %v", err)
			}
		})
	}
}

func TestGetAlbumTracks_StampsAlbum(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/albums/al1":
			respondJSON(w, http.StatusOK, `{"id":"al1","name":"Record","images":[{"url":"https://i/al1"}]}`)
		case "/albums/al1/tracks":
			respondJSON(w, http.StatusOK, `{"items":[{"id":"t1"},{"id":"t2"}],"total":2,"limit":50,"offset":0}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	page, err := c.GetAlbumTracks(context.Background(), "al1", 50, 0)
	if err != nil {
		t.Fatalf("GetAlbumTracks() error = %v", err)
	}
	if len(page.Items) != 2 || page.HasMore {
		t.Fatalf("page = %+v", page)
	}
	for _, tr := range page.Items {
		if tr.Album != "Record" || tr.AlbumID != "al1" || tr.AlbumImageURL != "https://i/al1" {
			t.Errorf("track %s album = %q %q %q", tr.ID, tr.Album, tr.AlbumID, tr.AlbumImageURL)
		}
	}
}

func TestGetAlbumTracks_AlbumFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/albums/al1" {
			respondJSON(w, http.StatusNotFound, `{"error":{"status":404,"message":"non existing id"}}`)
			return
		}
		respondJSON(w, http.StatusOK, `{"items":[],"total":0}`)
	})

	_, err := c.GetAlbumTracks(context.Background(), "al1", 50, 0)
	if reqErr, ok := AsRequestError(err); !ok || reqErr.Status != http.StatusNotFound {
		t.Errorf("GetAlbumTracks() error = %v, want 404", err)
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "daft punk" || q.Get("type") != "track,playlist" || q.Get("limit") != "2" {
			t.Errorf("query = %v", q)
		}
		respondJSON(w, http.StatusOK, `{
			"tracks": {"items": [{"id": "t1"}, {"id": "t2"}], "total": 10, "limit": 2, "offset": 0},
			"playlists": {"items": [null, {"id": "p1"}], "total": 2, "limit": 2, "offset": 0}
		}`)
	})

	res, err := c.Search(context.Background(), "daft punk", []SearchType{SearchTypeTrack, SearchTypePlaylist}, 2, 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Tracks == nil || !res.Tracks.HasMore || len(res.Tracks.Items) != 2 {
		t.Errorf("Tracks = %+v", res.Tracks)
	}
	if res.Playlists == nil || len(res.Playlists.Items) != 1 || res.Playlists.HasMore {
		t.Errorf("Playlists = %+v", res.Playlists)
	}
	if res.Albums != nil || res.Artists != nil {
		t.Error("unrequested types should be nil")
	}

	if _, err := c.Search(context.Background(), "  ", nil, 0, 0); err == nil {
		t.Error("Search() with empty query should fail")
	}
}

func TestParseSearchTypes(t *testing.T) {
	got, err := ParseSearchTypes("Track, album,")
	if err != nil || len(got) != 2 || got[0] != SearchTypeTrack || got[1] != SearchTypeAlbum {
		t.Errorf("ParseSearchTypes() = %v, %v", got, err)
	}
	if _, err := ParseSearchTypes("podcast"); err == nil {
		t.Error("ParseSearchTypes(podcast) should fail")
	}
}

func TestPlay_Body(t *testing.T) {
	tests := []struct {
		name     string
		opts     PlayOptions
		wantBody string
		wantDev  string
	}{
		{name: "resume", opts: PlayOptions{}, wantBody: `{}`},
		{name: "uri on device", opts: PlayOptions{DeviceID: "d1", URIs: []string{"spotify:track:a"}},
			wantBody: `{"uris":["spotify:track:a"]}`, wantDev: "d1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var raw json.RawMessage
				_ = json.NewDecoder(r.Body).Decode(&raw)
				if string(raw) != tt.wantBody {
					t.Errorf("body = %s, want %s", raw, tt.wantBody)
				}
				if got := r.URL.Query().Get("device_id"); got != tt.wantDev {
					t.Errorf("device_id = %q, want %q", got, tt.wantDev)
				}
				w.WriteHeader(http.StatusNoContent)
			})
			if err := c.Play(context.Background(), tt.opts); err != nil {
				t.Fatalf("Play() error = %v", err)
			}
		})
	}
}

func TestCheckSavedTracks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "a,b" {
			t.Errorf("ids = %q", r.URL.Query().Get("ids"))
		}
		respondJSON(w, http.StatusOK, `[true,false]`)
	})

	got, err := c.CheckSavedTracks(context.Background(), []string{"a", "b"})
	if err != nil || len(got) != 2 || !got[0] || got[1] {
		t.Errorf("CheckSavedTracks() = %v, %v", got, err)
	}
}

func TestGetFollowedArtists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "artist" || q.Get("after") != "a2" {
			t.Errorf("query = %v", q)
		}
		respondJSON(w, http.StatusOK, `{"artists":{"items":[{"id":"a3"}],"total":3,"limit":2,"cursors":{"after":null}}}`)
	})

	page, err := c.GetFollowedArtists(context.Background(), 2, 2, "a2")
	if err != nil {
		t.Fatalf("GetFollowedArtists() error = %v", err)
	}
	if page.HasMore || page.Offset != 2 || len(page.Items) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestGetRecentlyPlayed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"items":[{"track":{"id":"t1"},"played_at":"2025-06-01T12:00:00.000Z"}]}`)
	})

	got, err := c.GetRecentlyPlayed(context.Background(), 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("GetRecentlyPlayed() = %v, %v", got, err)
	}
	if got[0].Track.ID != "t1" || got[0].PlayedAt.Year() != 2025 {
		t.Errorf("GetRecentlyPlayed()[0] = %+v", got[0])
	}
}
