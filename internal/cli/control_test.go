package cli

import (
	"testing"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"90", 90 * time.Second, false},
		{"0", 0, false},
		{"1:30", 90 * time.Second, false},
		{"12:05", 12*time.Minute + 5*time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"1:75", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePosition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePosition(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePosition(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTargetVolume(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		args     []string
		up, down bool
		want     int
		wantErr  bool
	}{
		{name: "up", current: 40, up: true, want: 50},
		{name: "up clamps", current: 95, up: true, want: 100},
		{name: "down clamps", current: 5, down: true, want: 0},
		{name: "explicit", current: 50, args: []string{"70"}, want: 70},
		{name: "out of range", current: 50, args: []string{"101"}, wantErr: true},
		{name: "not a number", current: 50, args: []string{"loud"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := targetVolume(tt.current, tt.args, tt.up, tt.down)
			if (err != nil) != tt.wantErr {
				t.Fatalf("targetVolume() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("targetVolume() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseOnOff(t *testing.T) {
	for _, in := range []string{"on", "ON", "true", "1"} {
		if got, err := parseOnOff(in); err != nil || !got {
			t.Errorf("parseOnOff(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"off", "false", "0"} {
		if got, err := parseOnOff(in); err != nil || got {
			t.Errorf("parseOnOff(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseOnOff("maybe"); err == nil {
		t.Error("parseOnOff(maybe) should fail")
	}
}

func TestParseRepeatMode(t *testing.T) {
	if got, err := parseRepeatMode("Track"); err != nil || got != core.RepeatTrack {
		t.Errorf("parseRepeatMode(Track) = %q, %v", got, err)
	}
	if _, err := parseRepeatMode("all"); err == nil {
		t.Error("parseRepeatMode(all) should fail")
	}
}

func TestMatchDevice(t *testing.T) {
	devices := []core.Device{
		{ID: "abc", Name: "Kitchen"},
		{ID: "def", Name: "Living Room"},
		{ID: "ghi", Name: "Living Room Speaker"},
	}
	tests := []struct {
		query string
		want  string
	}{
		{"def", "def"},
		{"living room", "def"},
		{"speaker", "ghi"},
		{"KITCH", "abc"},
		{"garage", ""},
	}
	for _, tt := range tests {
		got := matchDevice(devices, tt.query)
		gotID := ""
		if got != nil {
			gotID = got.ID
		}
		if gotID != tt.want {
			t.Errorf("matchDevice(%q) = %q, want %q", tt.query, gotID, tt.want)
		}
	}
}

func TestSpotifyID(t *testing.T) {
	tests := map[string]string{
		"4uLU6hMCjMI75M1A2tKUQC":                                    "4uLU6hMCjMI75M1A2tKUQC",
		"spotify:track:4uLU6hMCjMI75M1A2tKUQC":                      "4uLU6hMCjMI75M1A2tKUQC",
		"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=x": "4uLU6hMCjMI75M1A2tKUQC",
		" spotify:artist:a1 ":                                       "a1",
	}
	for in, want := range tests {
		if got := spotifyID(in); got != want {
			t.Errorf("spotifyID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecommendationSeeds(t *testing.T) {
	if _, err := recommendationSeeds(nil, nil, nil); err == nil {
		t.Error("no seeds should fail")
	}

	six := []string{"a", "b", "c", "d", "e", "f"}
	if _, err := recommendationSeeds(nil, nil, six); err == nil {
		t.Error("six seeds should fail")
	}

	seeds, err := recommendationSeeds([]string{"spotify:artist:a1"}, []string{"t1"}, []string{"rock"})
	if err != nil {
		t.Fatalf("recommendationSeeds() error = %v", err)
	}
	if seeds.Artists[0] != "a1" || seeds.Tracks[0] != "t1" || seeds.Count() != 3 {
		t.Errorf("recommendationSeeds() = %+v", seeds)
	}
}
