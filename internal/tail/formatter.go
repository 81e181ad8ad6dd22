package tail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter renders events as lines of text.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// ParseTemplate compiles a custom line template. Fields are those of
// TemplateData, e.g. "{{.Time}} {{.Artist}} - {{.Name}}".
func ParseTemplate(tmpl string) (*template.Template, error) {
	t, err := template.New("format").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}
	return t, nil
}

// WithTemplate renders each event through t instead of the default line.
func WithTemplate(t *template.Template) FormatterOption {
	return func(f *Formatter) {
		f.template = t
	}
}

// NewFormatter creates a formatter. Emoji are on by default.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{showEmoji: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		var buf bytes.Buffer
		if err := f.template.Execute(&buf, newTemplateData(e)); err == nil {
			return buf.String()
		}
	}

	var parts []string
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, describe(e))
	return strings.Join(parts, " ")
}

// FormatJSON renders an event as one JSON object.
func FormatJSON(e Event) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Event
	}{eventTypeName(e.Type), e})
}

// TemplateData is what custom templates render.
type TemplateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Name      string
	Artist    string
	Album     string
	URI       string
	Device    string
	Volume    int
	Shuffle   bool
	Repeat    string
}

func newTemplateData(e Event) TemplateData {
	data := TemplateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}
	if s := e.Current; s != nil {
		if s.Track != nil {
			data.Name = s.Track.Name
			data.Artist = s.Track.Artist
			data.Album = s.Track.Album
			data.URI = s.Track.URI
		}
		if s.Device != nil {
			data.Device = s.Device.Name
		}
		data.Volume = s.Volume
		data.Shuffle = s.Shuffle
		data.Repeat = string(s.Repeat)
	}
	return data
}

func describe(e Event) string {
	curr, prev := e.Current, e.Previous
	switch e.Type {
	case EventTrackChange:
		if curr.HasTrack() {
			return fmt.Sprintf("Now playing: %s - %s", curr.Track.Artist, curr.Track.Name)
		}
		return "Track changed"
	case EventTrackComplete:
		if prev.HasTrack() {
			return fmt.Sprintf("Finished: %s - %s", prev.Track.Artist, prev.Track.Name)
		}
		return "Track completed"
	case EventTrackSkip:
		if prev.HasTrack() {
			return fmt.Sprintf("Skipped: %s - %s (%s in)", prev.Track.Artist, prev.Track.Name, formatProgress(prev.Progress))
		}
		return "Track skipped"
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventStop:
		return "Stopped"
	case EventVolumeChange:
		if curr != nil {
			return fmt.Sprintf("Volume: %d%%", curr.Volume)
		}
		return "Volume changed"
	case EventDeviceChange:
		if curr != nil && curr.Device != nil {
			return fmt.Sprintf("Device: %s", curr.Device.Name)
		}
		return "Device changed"
	case EventShuffleChange:
		if curr != nil && curr.Shuffle {
			return "Shuffle on"
		}
		return "Shuffle off"
	case EventRepeatChange:
		if curr != nil {
			return fmt.Sprintf("Repeat: %s", curr.Repeat)
		}
		return "Repeat changed"
	default:
		return "Unknown event"
	}
}

func formatProgress(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventTrackComplete:
		return "✅"
	case EventTrackSkip:
		return "⏭️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventStop:
		return "⏹️"
	case EventVolumeChange:
		return "🔊"
	case EventDeviceChange:
		return "📱"
	case EventShuffleChange:
		return "🔀"
	case EventRepeatChange:
		return "🔁"
	default:
		return "❓"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventTrackComplete:
		return "track_complete"
	case EventTrackSkip:
		return "track_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventStop:
		return "stop"
	case EventVolumeChange:
		return "volume_change"
	case EventDeviceChange:
		return "device_change"
	case EventShuffleChange:
		return "shuffle_change"
	case EventRepeatChange:
		return "repeat_change"
	default:
		return "unknown"
	}
}
