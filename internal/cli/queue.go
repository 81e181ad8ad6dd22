package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

var (
	queueLimit  int
	queueAddURI string
	recentLimit int
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the playback queue",
	Long:  `Shows the playing track and what is queued after it.`,
	RunE:  runQueueList,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Add a track to the queue",
	Long: `Search for a track and add it to the queue.

Examples:
  jukebox queue add "bohemian rhapsody"
  jukebox queue add --uri spotify:track:xxx`,
	RunE: runQueueAdd,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently played tracks",
	RunE:  runRecent,
}

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "l", 20, "maximum number of tracks to show")
	queueAddCmd.Flags().StringVar(&queueAddURI, "uri", "", "add a specific Spotify URI")
	queueAddCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "target device name or ID")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "l", 20, "number of tracks (max 50)")

	queueCmd.AddCommand(queueAddCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(recentCmd)
}

func runQueueList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	queue, err := a.client.GetCurrentQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to get queue: %w", err)
	}

	if JSONOutput() {
		return printJSON(queue)
	}
	if queue.IsEmpty() {
		fmt.Println("Queue is empty")
		return nil
	}

	if queue.CurrentlyPlaying != nil {
		np := queue.CurrentlyPlaying
		fmt.Printf("▶ %s — %s\n\n", titleStyle.Render(np.Name), np.Artist)
	}

	tracks := queue.Tracks
	if queueLimit > 0 && len(tracks) > queueLimit {
		tracks = tracks[:queueLimit]
	}
	printTracks(tracks, 0)

	if rest := queue.Len() - len(tracks); rest > 0 {
		fmt.Printf("\n... and %d more tracks\n", rest)
	}
	return nil
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	if queueAddURI == "" && len(args) == 0 {
		return fmt.Errorf("give a search query or --uri")
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.player(ctx, controlDevice)
	if err != nil {
		return err
	}

	uri, name := queueAddURI, queueAddURI
	if uri == "" {
		query := strings.Join(args, " ")
		results, err := a.client.Search(ctx, query, []client.SearchType{client.SearchTypeTrack}, 1, 0)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if results.Tracks == nil || len(results.Tracks.Items) == 0 {
			return fmt.Errorf("no tracks found for '%s'", query)
		}
		track := results.Tracks.Items[0]
		uri = track.URI
		name = fmt.Sprintf("%s by %s", track.Name, track.Artist)
	}

	if err := p.AddToQueue(ctx, uri); err != nil {
		return fmt.Errorf("failed to add to queue: %w", err)
	}
	return printStatus("added", "Added to queue: "+name, map[string]interface{}{"uri": uri, "name": name})
}

func runRecent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	history, err := a.client.GetRecentlyPlayed(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("failed to get recently played: %w", err)
	}

	if JSONOutput() {
		return printJSON(history)
	}
	if len(history) == 0 {
		fmt.Println("Nothing played recently")
		return nil
	}

	t := NewTable("PLAYED", "TITLE", "ARTIST", "URI")
	for _, h := range history {
		t.Row(humanize.Time(h.PlayedAt), TruncateString(h.Track.Name, 40), TruncateString(h.Track.Artist, 30), h.Track.URI)
	}
	t.Flush()
	return nil
}
