package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

var (
	browseLimit  int
	browseOffset int
	topRange     string

	albumLimit  int
	albumOffset int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse categories, featured playlists and new releases",
}

var browseCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List browse categories",
	RunE:  runBrowseCategories,
}

var browseCategoryCmd = &cobra.Command{
	Use:   "category <category-id>",
	Short: "List a category's playlists",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowseCategory,
}

var browseFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured playlists",
	RunE:  runBrowseFeatured,
}

var browseNewReleasesCmd = &cobra.Command{
	Use:   "new-releases",
	Short: "List new album releases",
	RunE:  runBrowseNewReleases,
}

var albumCmd = &cobra.Command{
	Use:   "album <album>",
	Short: "Show an album and its tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbum,
}

var artistCmd = &cobra.Command{
	Use:   "artist <artist>",
	Short: "Show an artist with top tracks and related artists",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtist,
}

var trackCmd = &cobra.Command{
	Use:   "track <track>...",
	Short: "Show track details",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrack,
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in Spotify profile",
	Args:  cobra.NoArgs,
	RunE:  runMe,
}

var followCmd = &cobra.Command{
	Use:   "follow <artist>...",
	Short: "Follow artists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFollow,
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <artist>...",
	Short: "Unfollow artists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnfollow,
}

var followingCmd = &cobra.Command{
	Use:   "following",
	Short: "List followed artists",
	RunE:  runFollowing,
}

var topCmd = &cobra.Command{
	Use:       "top <tracks|artists>",
	Short:     "Show the user's top tracks or artists",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tracks", "artists"},
	RunE:      runTop,
}

func init() {
	for _, c := range []*cobra.Command{browseCategoriesCmd, browseCategoryCmd, browseFeaturedCmd, browseNewReleasesCmd} {
		addPageFlags(c, &browseLimit, &browseOffset, 20)
		browseCmd.AddCommand(c)
	}
	addPageFlags(albumCmd, &albumLimit, &albumOffset, 50)
	addPageFlags(followingCmd, &browseLimit, &browseOffset, 20)
	addPageFlags(topCmd, &browseLimit, &browseOffset, 20)
	topCmd.Flags().StringVar(&topRange, "range", string(client.MediumTerm), "time range: short_term, medium_term or long_term")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(artistCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(unfollowCmd)
	rootCmd.AddCommand(followingCmd)
	rootCmd.AddCommand(topCmd)
}

func runBrowseCategories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetCategories(ctx, browseLimit, browseOffset)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	t := NewTable("CATEGORY", "ID")
	for _, c := range page.Items {
		t.Row(c.Name, c.ID)
	}
	t.Flush()
	printPageFooter(page)
	return nil
}

func runBrowseCategory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetCategoryPlaylists(ctx, args[0], browseLimit, browseOffset)
	if err != nil {
		return fmt.Errorf("failed to get category playlists: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printPlaylists(page.Items)
	printPageFooter(page)
	return nil
}

func runBrowseFeatured(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetFeaturedPlaylists(ctx, browseLimit, browseOffset)
	if err != nil {
		return fmt.Errorf("failed to get featured playlists: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printPlaylists(page.Items)
	printPageFooter(page)
	return nil
}

func runBrowseNewReleases(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetNewReleases(ctx, browseLimit, browseOffset)
	if err != nil {
		return fmt.Errorf("failed to get new releases: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printAlbums(page.Items)
	printPageFooter(page)
	return nil
}

func runAlbum(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id := spotifyID(args[0])
	album, err := a.client.GetAlbum(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}
	tracks, err := a.client.GetAlbumTracks(ctx, id, albumLimit, albumOffset)
	if err != nil {
		return fmt.Errorf("failed to get album tracks: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]interface{}{"album": album, "tracks": tracks})
	}
	fmt.Println(titleStyle.Render(album.Name))
	fmt.Println(subtleStyle.Render(fmt.Sprintf("%s · %s · %d tracks", album.Artist, album.ReleaseDate, album.TotalTracks)))
	fmt.Println()
	printTracks(tracks.Items, tracks.Offset)
	return nil
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id := spotifyID(args[0])
	artist, err := a.client.GetArtist(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get artist: %w", err)
	}
	top, err := a.client.GetArtistTopTracks(ctx, id, cfg.Defaults.Market)
	if err != nil {
		return fmt.Errorf("failed to get top tracks: %w", err)
	}
	albums, err := a.client.GetArtistAlbums(ctx, id, 10, 0)
	if err != nil {
		return fmt.Errorf("failed to get albums: %w", err)
	}
	// Related artists are a nice-to-have; the endpoint is unavailable to
	// some apps.
	related, err := a.client.GetRelatedArtists(ctx, id)
	if err != nil {
		logger.Debug("related artists unavailable", "error", err)
	}

	if JSONOutput() {
		return printJSON(map[string]interface{}{
			"artist": artist, "top_tracks": top, "albums": albums, "related": related,
		})
	}

	fmt.Println(titleStyle.Render(artist.Name))
	fmt.Println(subtleStyle.Render(fmt.Sprintf("%s followers · %s", formatCount(artist.Followers), strings.Join(artist.Genres, ", "))))
	fmt.Println("\nTop tracks")
	printTracks(top, 0)
	fmt.Println("\nAlbums")
	printAlbums(albums.Items)
	if len(related) > 0 {
		names := make([]string, 0, len(related))
		for _, r := range related {
			names = append(names, r.Name)
		}
		fmt.Println("\nRelated: " + TruncateString(strings.Join(names, ", "), 120))
	}
	return nil
}

func runFollow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	if err := a.client.FollowArtists(ctx, ids); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}
	return printStatus("followed", fmt.Sprintf("Following %d artist(s)", len(ids)), map[string]interface{}{"ids": ids})
}

func runUnfollow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	if err := a.client.UnfollowArtists(ctx, ids); err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	return printStatus("unfollowed", fmt.Sprintf("Unfollowed %d artist(s)", len(ids)), map[string]interface{}{"ids": ids})
}

func runFollowing(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// Followed artists page by cursor; walk it up to the requested offset.
	after := ""
	offset := 0
	for {
		page, err := a.client.GetFollowedArtists(ctx, browseLimit, offset, after)
		if err != nil {
			return fmt.Errorf("failed to get followed artists: %w", err)
		}
		if offset+len(page.Items) > browseOffset || !page.HasMore || len(page.Items) == 0 {
			if JSONOutput() {
				return printJSON(page)
			}
			printArtists(page.Items)
			printPageFooter(page)
			return nil
		}
		offset += len(page.Items)
		after = page.Items[len(page.Items)-1].ID
	}
}

func runTop(cmd *cobra.Command, args []string) error {
	timeRange := client.TimeRange(topRange)
	switch timeRange {
	case client.ShortTerm, client.MediumTerm, client.LongTerm:
	default:
		return fmt.Errorf("invalid range %q", topRange)
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	switch args[0] {
	case "tracks":
		page, err := a.client.GetTopTracks(ctx, timeRange, browseLimit, browseOffset)
		if err != nil {
			return fmt.Errorf("failed to get top tracks: %w", err)
		}
		if JSONOutput() {
			return printJSON(page)
		}
		printTracks(page.Items, page.Offset)
		printPageFooter(page)
	case "artists":
		page, err := a.client.GetTopArtists(ctx, timeRange, browseLimit, browseOffset)
		if err != nil {
			return fmt.Errorf("failed to get top artists: %w", err)
		}
		if JSONOutput() {
			return printJSON(page)
		}
		printArtists(page.Items)
		printPageFooter(page)
	default:
		return fmt.Errorf("expected tracks or artists, got %q", args[0])
	}
	return nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	if len(ids) > 1 {
		tracks, err := a.client.GetTracks(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to get tracks: %w", err)
		}
		if JSONOutput() {
			return printJSON(tracks)
		}
		printTracks(tracks, 0)
		return nil
	}

	track, err := a.client.GetTrack(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("failed to get track: %w", err)
	}
	if JSONOutput() {
		return printJSON(track)
	}
	fmt.Println(titleStyle.Render(track.Name))
	fmt.Printf("  %s · %s\n", track.Artist, track.Album)
	fmt.Printf("  %s  popularity %d", FormatDuration(trackDuration(track)), track.Popularity)
	if track.Explicit {
		fmt.Print("  " + warningStyle.Render("explicit"))
	}
	fmt.Println()
	fmt.Println(subtleStyle.Render("  " + track.URI))
	return nil
}

func runMe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.client.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return fmt.Errorf("spotify returned an empty profile")
	}
	if JSONOutput() {
		return printJSON(user)
	}
	fmt.Println(titleStyle.Render(displayName(user.DisplayName, user.ID)))
	fmt.Printf("  id:        %s\n", user.ID)
	if user.Email != "" {
		fmt.Printf("  email:     %s\n", user.Email)
	}
	fmt.Printf("  country:   %s\n", user.Country)
	fmt.Printf("  plan:      %s\n", user.Product)
	fmt.Printf("  followers: %s\n", formatCount(user.Followers))
	if !user.IsPremium() {
		fmt.Println(warningStyle.Render("  Playback control requires Spotify Premium"))
	}
	return nil
}
