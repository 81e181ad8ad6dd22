package client

// Raw Web API shapes. Only the fields the mappers read are declared.

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers represents follower information.
type Followers struct {
	Total int `json:"total"`
}

// Paging is the Web API's offset-based list envelope.
type Paging[T any] struct {
	Items  []T    `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Next   string `json:"next"`
}

// User represents a Spotify user profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Product     string    `json:"product"`
	URI         string    `json:"uri"`
	Images      []Image   `json:"images"`
	Followers   Followers `json:"followers"`
}

// Device represents a Spotify playback device.
type Device struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	IsActive       bool   `json:"is_active"`
	IsRestricted   bool   `json:"is_restricted"`
	VolumePercent  *int   `json:"volume_percent"` // Nullable
	SupportsVolume bool   `json:"supports_volume"`
}

// DevicesResponse is the response from the devices endpoint.
type DevicesResponse struct {
	Devices []Device `json:"devices"`
}

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Device               *Device  `json:"device"`
	ShuffleState         bool     `json:"shuffle_state"`
	RepeatState          string   `json:"repeat_state"` // off, track, context
	Timestamp            int64    `json:"timestamp"`
	ProgressMS           int      `json:"progress_ms"`
	IsPlaying            bool     `json:"is_playing"`
	Item                 *Track   `json:"item"`
	CurrentlyPlayingType string   `json:"currently_playing_type"` // track, episode, ad, unknown
	Context              *Context `json:"context"`
}

// Track represents a Spotify track.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URI         string   `json:"uri"`
	DurationMS  int      `json:"duration_ms"`
	Explicit    bool     `json:"explicit"`
	PreviewURL  *string  `json:"preview_url"`
	TrackNumber int      `json:"track_number"`
	Popularity  int      `json:"popularity"`
	Artists     []Artist `json:"artists"`
	Album       *Album   `json:"album"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URI        string     `json:"uri"`
	Images     []Image    `json:"images"`
	Genres     []string   `json:"genres"`
	Followers  *Followers `json:"followers"`
	Popularity int        `json:"popularity"`
}

// Album represents a Spotify album.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URI         string   `json:"uri"`
	AlbumType   string   `json:"album_type"`
	TotalTracks int      `json:"total_tracks"`
	ReleaseDate string   `json:"release_date"`
	Images      []Image  `json:"images"`
	Artists     []Artist `json:"artists"`
}

// Context represents a playback context (album, artist, playlist).
type Context struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// Playlist represents a Spotify playlist.
type Playlist struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	URI           string  `json:"uri"`
	Description   *string `json:"description"`
	Public        *bool   `json:"public"`
	Collaborative bool    `json:"collaborative"`
	Images        []Image `json:"images"`
	Owner         *User   `json:"owner"`
	Tracks        *struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// PlaylistTrack is one entry of a playlist. Track is null for local files
// and removed content.
type PlaylistTrack struct {
	AddedAt string `json:"added_at"`
	Track   *Track `json:"track"`
}

// SavedTrack is one entry of the user's liked songs.
type SavedTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// SavedAlbum is one entry of the user's saved albums.
type SavedAlbum struct {
	AddedAt string `json:"added_at"`
	Album   Album  `json:"album"`
}

// PlayHistory is one entry of the recently played list.
type PlayHistory struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// RecentlyPlayedResponse is the response from the recently played endpoint.
type RecentlyPlayedResponse struct {
	Items []PlayHistory `json:"items"`
}

// Category is a browse category.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icons []Image `json:"icons"`
}

// SearchResponse represents the response from a search query.
type SearchResponse struct {
	Tracks    *Paging[Track]     `json:"tracks"`
	Artists   *Paging[Artist]    `json:"artists"`
	Albums    *Paging[Album]     `json:"albums"`
	Playlists *Paging[*Playlist] `json:"playlists"`
}

// Queue represents the user's playback queue.
type Queue struct {
	CurrentlyPlaying *Track  `json:"currently_playing"`
	Queue            []Track `json:"queue"`
}
