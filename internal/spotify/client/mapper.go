package client

import (
	"strings"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
)

// The mappers below are total: a partially populated API object yields a
// defaulted value, never a panic.

// MapTrack flattens an API track.
func MapTrack(t *Track) core.Track {
	if t == nil {
		return core.Track{Artists: []string{}}
	}
	names, firstID := artistNames(t.Artists)
	out := core.Track{
		ID:          t.ID,
		Name:        t.Name,
		URI:         t.URI,
		Artist:      strings.Join(names, ", "),
		Artists:     names,
		ArtistID:    firstID,
		DurationMS:  t.DurationMS,
		Popularity:  t.Popularity,
		Explicit:    t.Explicit,
		TrackNumber: t.TrackNumber,
	}
	if t.PreviewURL != nil {
		out.PreviewURL = *t.PreviewURL
	}
	if t.Album != nil {
		out.Album = t.Album.Name
		out.AlbumID = t.Album.ID
		out.AlbumImageURL = firstImage(t.Album.Images)
	}
	return out
}

// MapAlbum flattens an API album.
func MapAlbum(a *Album) core.Album {
	if a == nil {
		return core.Album{Artists: []string{}}
	}
	names, firstID := artistNames(a.Artists)
	return core.Album{
		ID:          a.ID,
		Name:        a.Name,
		URI:         a.URI,
		Artist:      strings.Join(names, ", "),
		Artists:     names,
		ArtistID:    firstID,
		ImageURL:    firstImage(a.Images),
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		AlbumType:   a.AlbumType,
	}
}

// MapArtist flattens an API artist.
func MapArtist(a *Artist) core.Artist {
	if a == nil {
		return core.Artist{Genres: []string{}}
	}
	out := core.Artist{
		ID:         a.ID,
		Name:       a.Name,
		URI:        a.URI,
		ImageURL:   firstImage(a.Images),
		Genres:     a.Genres,
		Popularity: a.Popularity,
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	if a.Followers != nil {
		out.Followers = a.Followers.Total
	}
	return out
}

// MapPlaylist flattens an API playlist. Playlists are public unless the API
// says otherwise.
func MapPlaylist(p *Playlist) core.Playlist {
	if p == nil {
		return core.Playlist{}
	}
	out := core.Playlist{
		ID:            p.ID,
		Name:          p.Name,
		URI:           p.URI,
		ImageURL:      firstImage(p.Images),
		Public:        p.Public == nil || *p.Public,
		Collaborative: p.Collaborative,
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Owner != nil {
		out.OwnerID = p.Owner.ID
		out.Owner = p.Owner.DisplayName
		if out.Owner == "" {
			out.Owner = p.Owner.ID
		}
	}
	if p.Tracks != nil {
		out.TrackCount = p.Tracks.Total
	}
	return out
}

func mapTracks(in []Track) []core.Track {
	out := make([]core.Track, 0, len(in))
	for i := range in {
		out = append(out, MapTrack(&in[i]))
	}
	return out
}

func mapAlbums(in []Album) []core.Album {
	out := make([]core.Album, 0, len(in))
	for i := range in {
		out = append(out, MapAlbum(&in[i]))
	}
	return out
}

func mapArtists(in []Artist) []core.Artist {
	out := make([]core.Artist, 0, len(in))
	for i := range in {
		out = append(out, MapArtist(&in[i]))
	}
	return out
}

// mapPlaylists drops null entries, which the API emits for playlists that
// were deleted after indexing.
func mapPlaylists(in []*Playlist) []core.Playlist {
	out := make([]core.Playlist, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, MapPlaylist(p))
		}
	}
	return out
}

func mapDevice(d *Device) core.Device {
	if d == nil {
		return core.Device{Type: core.DeviceTypeOther}
	}
	out := core.Device{
		ID:             d.ID,
		Name:           d.Name,
		Type:           mapDeviceType(d.Type),
		IsActive:       d.IsActive,
		IsRestricted:   d.IsRestricted,
		SupportsVolume: d.SupportsVolume,
	}
	if d.VolumePercent != nil {
		out.Volume = *d.VolumePercent
	}
	return out
}

func mapDeviceType(t string) core.DeviceType {
	switch strings.ToLower(t) {
	case "speaker", "avr", "stb", "audiodongle", "castaudio":
		return core.DeviceTypeSpeaker
	case "computer":
		return core.DeviceTypeComputer
	case "smartphone", "tablet":
		return core.DeviceTypePhone
	case "tv", "castvideo":
		return core.DeviceTypeTV
	default:
		return core.DeviceTypeOther
	}
}

func mapCategory(c *Category) core.Category {
	if c == nil {
		return core.Category{}
	}
	return core.Category{
		ID:      c.ID,
		Name:    c.Name,
		IconURL: firstImage(c.Icons),
	}
}

func mapPlaybackState(s *PlaybackState) *core.PlaybackState {
	if s == nil {
		return nil
	}
	out := &core.PlaybackState{
		IsPlaying: s.IsPlaying,
		Progress:  time.Duration(s.ProgressMS) * time.Millisecond,
		Shuffle:   s.ShuffleState,
		Repeat:    core.RepeatMode(s.RepeatState),
	}
	if out.Repeat == "" {
		out.Repeat = core.RepeatOff
	}
	if s.Item != nil {
		track := MapTrack(s.Item)
		out.Track = &track
	}
	if s.Device != nil {
		device := mapDevice(s.Device)
		out.Device = &device
		out.Volume = device.Volume
	}
	if s.Context != nil {
		out.ContextURI = s.Context.URI
	}
	return out
}

func mapUser(u *User) *core.User {
	if u == nil || u.ID == "" {
		return nil
	}
	return &core.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Country:     u.Country,
		Product:     u.Product,
		ImageURL:    firstImage(u.Images),
		Followers:   u.Followers.Total,
	}
}

func artistNames(artists []Artist) ([]string, string) {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	var firstID string
	if len(artists) > 0 {
		firstID = artists[0].ID
	}
	return names, firstID
}

func firstImage(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
