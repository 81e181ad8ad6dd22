package core

// Track is the flattened form of a Spotify track.
type Track struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	URI           string   `json:"uri"`
	Artist        string   `json:"artist"`
	Artists       []string `json:"artists"`
	ArtistID      string   `json:"artist_id"`
	Album         string   `json:"album"`
	AlbumID       string   `json:"album_id"`
	AlbumImageURL string   `json:"album_image_url"`
	DurationMS    int      `json:"duration_ms"`
	PreviewURL    string   `json:"preview_url"`
	Popularity    int      `json:"popularity"`
	Explicit      bool     `json:"explicit"`
	TrackNumber   int      `json:"track_number"`
}

// Album is the flattened form of a Spotify album.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URI         string   `json:"uri"`
	Artist      string   `json:"artist"`
	Artists     []string `json:"artists"`
	ArtistID    string   `json:"artist_id"`
	ImageURL    string   `json:"image_url"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	AlbumType   string   `json:"album_type"`
}

// Artist is the flattened form of a Spotify artist.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	ImageURL   string   `json:"image_url"`
	Genres     []string `json:"genres"`
	Followers  int      `json:"followers"`
	Popularity int      `json:"popularity"`
}

// Playlist is the flattened form of a Spotify playlist.
type Playlist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URI           string `json:"uri"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	Owner         string `json:"owner"`
	OwnerID       string `json:"owner_id"`
	TrackCount    int    `json:"track_count"`
	Public        bool   `json:"public"`
	Collaborative bool   `json:"collaborative"`
}

// Category is a browse category.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// User is the profile of the account a session acts as.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"`
	ImageURL    string `json:"image_url"`
	Followers   int    `json:"followers"`
}

// IsPremium reports whether the account can control playback.
func (u *User) IsPremium() bool {
	return u != nil && u.Product == "premium"
}
