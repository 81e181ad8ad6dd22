package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

var (
	recArtists []string
	recTracks  []string
	recGenres  []string
	recLimit   int
	recQueue   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get track recommendations from seed artists, tracks and genres",
	Long: `Get track recommendations. Up to five seeds may be given in total.

Examples:
  jukebox recommend --genre synthwave --genre darkwave
  jukebox recommend --artist spotify:artist:xxx --track yyy --queue`,
	RunE: runRecommend,
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List genres usable as recommendation seeds",
	RunE:  runGenres,
}

func init() {
	recommendCmd.Flags().StringSliceVar(&recArtists, "artist", nil, "seed artist ID or URI (repeatable)")
	recommendCmd.Flags().StringSliceVar(&recTracks, "track", nil, "seed track ID or URI (repeatable)")
	recommendCmd.Flags().StringSliceVar(&recGenres, "genre", nil, "seed genre (repeatable)")
	recommendCmd.Flags().IntVarP(&recLimit, "limit", "l", 20, "number of tracks (max 100)")
	recommendCmd.Flags().BoolVar(&recQueue, "queue", false, "add the recommendations to the queue")
	recommendCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "target device name or ID")

	recommendCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(recommendCmd)
}

func recommendationSeeds(artists, tracks, genres []string) (client.RecommendationSeeds, error) {
	seeds := client.RecommendationSeeds{
		Artists: spotifyIDs(artists),
		Tracks:  spotifyIDs(tracks),
		Genres:  genres,
	}
	switch n := seeds.Count(); {
	case n == 0:
		return seeds, fmt.Errorf("at least one of --artist, --track or --genre is required")
	case n > 5:
		return seeds, fmt.Errorf("at most 5 seeds allowed, got %d", n)
	}
	return seeds, nil
}

func runRecommend(cmd *cobra.Command, args []string) error {
	seeds, err := recommendationSeeds(recArtists, recTracks, recGenres)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	tracks, err := a.client.GetRecommendations(ctx, seeds, recLimit)
	if err != nil {
		return fmt.Errorf("failed to get recommendations: %w", err)
	}

	if recQueue {
		p, err := a.player(ctx, controlDevice)
		if err != nil {
			return err
		}
		for _, t := range tracks {
			if err := p.AddToQueue(ctx, t.URI); err != nil {
				return fmt.Errorf("failed to queue %s: %w", t.Name, err)
			}
		}
		logger.Info("queued recommendations", "count", len(tracks))
	}

	if JSONOutput() {
		return printJSON(tracks)
	}
	if len(tracks) == 0 {
		fmt.Println("No recommendations")
		return nil
	}
	printTracks(tracks, 0)
	if recQueue {
		fmt.Println(subtleStyle.Render(fmt.Sprintf("Queued %d track(s)", len(tracks))))
	}
	return nil
}

func runGenres(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	genres, err := a.client.GetAvailableGenreSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get genres: %w", err)
	}
	if JSONOutput() {
		return printJSON(genres)
	}
	for _, g := range genres {
		fmt.Println(g)
	}
	return nil
}
