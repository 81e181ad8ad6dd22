package core

// Queue is the player queue: the playing track plus what follows it.
type Queue struct {
	CurrentlyPlaying *Track  `json:"currently_playing"`
	Tracks           []Track `json:"tracks"`
}

// Len returns the number of upcoming tracks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}

// IsEmpty returns true if nothing is playing and nothing is queued.
func (q *Queue) IsEmpty() bool {
	return q == nil || (q.CurrentlyPlaying == nil && len(q.Tracks) == 0)
}
