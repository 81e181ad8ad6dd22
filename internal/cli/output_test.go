package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/tsijukebox/jukebox/internal/core"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title", 8, "a lon..."},
		{"abcdef", 3, "abc"},
		{"Café del Mar", 6, "Caf..."},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{215 * time.Second, "3:35"},
		{3*time.Hour + 2*time.Minute + 5*time.Second, "3:02:05"},
		{1499 * time.Millisecond, "0:01"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(50, 10); got != "━━━━━─────" {
		t.Errorf("FormatProgress(50, 10) = %q", got)
	}
	if got := FormatProgress(0, 4); got != "────" {
		t.Errorf("FormatProgress(0, 4) = %q", got)
	}
	if got := FormatProgress(150, 4); got != "━━━━" {
		t.Errorf("FormatProgress(150, 4) = %q", got)
	}
}

func TestFormatPage(t *testing.T) {
	tests := []struct {
		name string
		page core.Page[int]
		want string
	}{
		{"empty", core.NewPage([]int{}, 0, 0, 20, 0), "0 of 0"},
		{"more", core.NewPage([]int{1, 2}, 2, 1500, 2, 0), "1-2 of 1,500 (next: --offset 2)"},
		{"last", core.NewPage([]int{1, 2}, 2, 12, 2, 10), "11-12 of 12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPage(tt.page); got != tt.want {
				t.Errorf("formatPage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableWriter(&buf, "NAME", "ID")
	tbl.Row("Kiosk", "d1")
	tbl.Flush()

	want := "NAME   ID\nKiosk  d1\n"
	if buf.String() != want {
		t.Errorf("table = %q, want %q", buf.String(), want)
	}
}
