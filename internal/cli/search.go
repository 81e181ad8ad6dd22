package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

var (
	searchTypes  string
	searchLimit  int
	searchOffset int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Spotify catalog",
	Long: `Search for tracks, albums, artists and playlists.

Examples:
  jukebox search "daft punk"
  jukebox search --type album,artist "discovery"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTypes, "type", "track", "comma-separated types: track,album,artist,playlist")
	addPageFlags(searchCmd, &searchLimit, &searchOffset, 10)
	rootCmd.AddCommand(searchCmd)
}

// addPageFlags registers --limit and --offset.
func addPageFlags(cmd *cobra.Command, limit, offset *int, defaultLimit int) {
	cmd.Flags().IntVarP(limit, "limit", "l", defaultLimit, "items per page (max 50)")
	cmd.Flags().IntVar(offset, "offset", 0, "index of the first item")
}

func runSearch(cmd *cobra.Command, args []string) error {
	types, err := client.ParseSearchTypes(searchTypes)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.client.Search(ctx, strings.Join(args, " "), types, searchLimit, searchOffset)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if JSONOutput() {
		return printJSON(results)
	}

	printed := false
	section := func(name string) {
		if printed {
			fmt.Println()
		}
		fmt.Println(titleStyle.Render(name))
		printed = true
	}

	if results.Tracks != nil {
		section("Tracks")
		printTracks(results.Tracks.Items, results.Tracks.Offset)
		printPageFooter(*results.Tracks)
	}
	if results.Albums != nil {
		section("Albums")
		printAlbums(results.Albums.Items)
		printPageFooter(*results.Albums)
	}
	if results.Artists != nil {
		section("Artists")
		printArtists(results.Artists.Items)
		printPageFooter(*results.Artists)
	}
	if results.Playlists != nil {
		section("Playlists")
		printPlaylists(results.Playlists.Items)
		printPageFooter(*results.Playlists)
	}
	return nil
}
