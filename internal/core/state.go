package core

import "time"

// RepeatMode is the player's repeat setting.
type RepeatMode string

const (
	RepeatOff     RepeatMode = "off"
	RepeatTrack   RepeatMode = "track"
	RepeatContext RepeatMode = "context"
)

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Track      *Track        `json:"track"`
	Device     *Device       `json:"device"`
	IsPlaying  bool          `json:"is_playing"`
	Progress   time.Duration `json:"progress"`
	Volume     int           `json:"volume"`
	Shuffle    bool          `json:"shuffle"`
	Repeat     RepeatMode    `json:"repeat"`
	ContextURI string        `json:"context_uri"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Track == nil || s.Track.DurationMS == 0 {
		return 0
	}
	duration := time.Duration(s.Track.DurationMS) * time.Millisecond
	return float64(s.Progress) / float64(duration) * 100
}

// PlayHistory is one recently played entry.
type PlayHistory struct {
	Track    Track     `json:"track"`
	PlayedAt time.Time `json:"played_at"`
}
