package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tsijukebox/jukebox/internal/core"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Table provides a simple table formatter.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a new table on stdout with the given headers.
func NewTable(headers ...string) *Table {
	return NewTableWriter(os.Stdout, headers...)
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	if len(headers) > 0 {
		t.Row(headers...)
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStatus prints a one-line result, or {"status": status, ...} with
// --json.
func printStatus(status, message string, extra map[string]interface{}) error {
	if JSONOutput() {
		out := map[string]interface{}{"status": status}
		for k, v := range extra {
			out[k] = v
		}
		return printJSON(out)
	}
	fmt.Println(message)
	return nil
}

// StatusIcon returns an icon for the given boolean status.
func StatusIcon(active bool) string {
	if active {
		return activeStyle.Render("●")
	}
	return subtleStyle.Render("○")
}

// TruncateString truncates s to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatDuration formats a duration as m:ss or h:mm:ss.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// trackDuration returns a track's length.
func trackDuration(t *core.Track) time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// FormatProgress renders a progress bar width cells wide.
func FormatProgress(percent float64, width int) string {
	if percent <= 0 {
		return strings.Repeat("─", width)
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// formatCount renders large counts with separators, e.g. 1,234,567.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatPage prints the "showing x-y of z" footer of a page.
func formatPage[T any](p core.Page[T]) string {
	if len(p.Items) == 0 {
		return fmt.Sprintf("0 of %s", formatCount(p.Total))
	}
	s := fmt.Sprintf("%d-%d of %s", p.Offset+1, p.Offset+len(p.Items), formatCount(p.Total))
	if p.HasMore {
		s += fmt.Sprintf(" (next: --offset %d)", p.NextOffset())
	}
	return s
}

// printTracks renders a numbered track table.
func printTracks(tracks []core.Track, offset int) {
	t := NewTable("#", "TITLE", "ARTIST", "ALBUM", "TIME", "URI")
	for i := range tracks {
		tr := &tracks[i]
		t.Row(
			fmt.Sprintf("%d", offset+i+1),
			TruncateString(tr.Name, 40),
			TruncateString(tr.Artist, 30),
			TruncateString(tr.Album, 30),
			FormatDuration(trackDuration(tr)),
			tr.URI,
		)
	}
	t.Flush()
}

// printPlaylists renders a playlist table.
func printPlaylists(playlists []core.Playlist) {
	t := NewTable("NAME", "OWNER", "TRACKS", "ID")
	for _, p := range playlists {
		t.Row(TruncateString(p.Name, 40), TruncateString(p.Owner, 24), formatCount(p.TrackCount), p.ID)
	}
	t.Flush()
}

// printAlbums renders an album table.
func printAlbums(albums []core.Album) {
	t := NewTable("ALBUM", "ARTIST", "RELEASED", "TRACKS", "ID")
	for _, a := range albums {
		t.Row(TruncateString(a.Name, 40), TruncateString(a.Artist, 30), a.ReleaseDate, fmt.Sprintf("%d", a.TotalTracks), a.ID)
	}
	t.Flush()
}

// printArtists renders an artist table.
func printArtists(artists []core.Artist) {
	t := NewTable("ARTIST", "FOLLOWERS", "GENRES", "ID")
	for _, a := range artists {
		t.Row(TruncateString(a.Name, 40), formatCount(a.Followers), TruncateString(strings.Join(a.Genres, ", "), 40), a.ID)
	}
	t.Flush()
}

// printPageFooter prints the paging line under a table.
func printPageFooter[T any](p core.Page[T]) {
	fmt.Println(subtleStyle.Render(formatPage(p)))
}
