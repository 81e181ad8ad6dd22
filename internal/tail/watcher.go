// Package tail follows a kiosk's playback and reports what changes.
package tail

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tsijukebox/jukebox/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventStop
	EventVolumeChange
	EventDeviceChange
	EventShuffleChange
	EventRepeatChange
)

// Event represents a playback state change.
type Event struct {
	Type      EventType           `json:"-"`
	Timestamp time.Time           `json:"timestamp"`
	Previous  *core.PlaybackState `json:"previous,omitempty"`
	Current   *core.PlaybackState `json:"current,omitempty"`
}

// StateSource is the part of a player the watcher polls.
type StateSource interface {
	GetState(ctx context.Context) (*core.PlaybackState, error)
}

// Watcher polls a player for state changes and emits events.
type Watcher struct {
	source   StateSource
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
	events   chan Event
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger logs failed polls.
func WithLogger(l *log.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// NewWatcher creates a watcher polling source every interval (one second
// when zero).
func NewWatcher(source StateSource, interval time.Duration, opts ...WatcherOption) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	w := &Watcher{
		source:   source,
		interval: interval,
		now:      time.Now,
		events:   make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the channel of playback events. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run polls until ctx is done. The first successful poll reports the track
// already playing. A failed poll is logged and skipped; it never resets the
// previous state, so a flaky network does not produce phantom changes.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *core.PlaybackState
	poll := func() {
		curr, err := w.source.GetState(ctx)
		if err != nil {
			if w.logger != nil && ctx.Err() == nil {
				w.logger.Warn("poll failed", "error", err)
			}
			return
		}
		for _, e := range diffStates(prev, curr, w.now()) {
			select {
			case w.events <- e:
			default:
				if w.logger != nil {
					w.logger.Debug("event dropped", "type", eventTypeName(e.Type))
				}
			}
		}
		prev = curr
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}

// diffStates compares two states and returns detected events.
func diffStates(prev, curr *core.PlaybackState, now time.Time) []Event {
	if curr == nil {
		return nil
	}
	event := func(t EventType) Event {
		return Event{Type: t, Timestamp: now, Previous: prev, Current: curr}
	}

	if prev == nil {
		if curr.HasTrack() {
			return []Event{{Type: EventTrackChange, Timestamp: now, Current: curr}}
		}
		return nil
	}

	var events []Event
	switch {
	case prev.HasTrack() && !curr.HasTrack():
		events = append(events, event(EventStop))
	case trackChanged(prev, curr):
		if prev.HasTrack() {
			if wasCompleted(prev) {
				events = append(events, event(EventTrackComplete))
			} else {
				events = append(events, event(EventTrackSkip))
			}
		}
		events = append(events, event(EventTrackChange))
	}

	if curr.HasTrack() {
		if prev.IsPlaying && !curr.IsPlaying {
			events = append(events, event(EventPause))
		} else if !prev.IsPlaying && curr.IsPlaying {
			events = append(events, event(EventResume))
		}
	}

	if prev.Volume != curr.Volume && curr.Device != nil {
		events = append(events, event(EventVolumeChange))
	}
	if deviceChanged(prev, curr) {
		events = append(events, event(EventDeviceChange))
	}
	if prev.Shuffle != curr.Shuffle {
		events = append(events, event(EventShuffleChange))
	}
	if prev.Repeat != curr.Repeat && curr.Repeat != "" {
		events = append(events, event(EventRepeatChange))
	}

	return events
}

func trackChanged(prev, curr *core.PlaybackState) bool {
	if prev.Track == nil || curr.Track == nil {
		return prev.Track != curr.Track
	}
	return prev.Track.URI != curr.Track.URI
}

// completeThreshold is the share of a track (in percent) that must have
// played for a change to count as a completion rather than a skip. The last
// poll lands up to one interval before the real end.
const completeThreshold = 95.0

func wasCompleted(state *core.PlaybackState) bool {
	if state.Track == nil || state.Track.DurationMS == 0 {
		return false
	}
	return state.ProgressPercent() >= completeThreshold
}

func deviceChanged(prev, curr *core.PlaybackState) bool {
	if prev.Device == nil || curr.Device == nil {
		return (prev.Device == nil) != (curr.Device == nil)
	}
	return prev.Device.ID != curr.Device.ID
}
