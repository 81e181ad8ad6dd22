package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var (
	libraryLimit  int
	libraryOffset int
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and edit saved tracks and albums",
}

var libraryTracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List saved tracks",
	RunE:  runLibraryTracks,
}

var libraryAlbumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List saved albums",
	RunE:  runLibraryAlbums,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <track>...",
	Short: "Save tracks (IDs, URIs or links)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibrarySave,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <track>...",
	Short: "Remove saved tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

var libraryCheckCmd = &cobra.Command{
	Use:   "check <track>...",
	Short: "Check whether tracks are saved",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryCheck,
}

func init() {
	addPageFlags(libraryTracksCmd, &libraryLimit, &libraryOffset, 20)
	addPageFlags(libraryAlbumsCmd, &libraryLimit, &libraryOffset, 20)

	libraryCmd.AddCommand(libraryTracksCmd)
	libraryCmd.AddCommand(libraryAlbumsCmd)
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryCheckCmd)
	rootCmd.AddCommand(libraryCmd)
}

// spotifyID extracts the ID from "spotify:track:ID",
// "https://open.spotify.com/track/ID?si=..." or a bare ID.
func spotifyID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "spotify:") {
		parts := strings.Split(s, ":")
		return parts[len(parts)-1]
	}
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		return strings.Trim(u.Path[strings.LastIndex(u.Path, "/")+1:], "/")
	}
	return s
}

func spotifyIDs(args []string) []string {
	ids := make([]string, len(args))
	for i, a := range args {
		ids[i] = spotifyID(a)
	}
	return ids
}

func runLibraryTracks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetSavedTracks(ctx, libraryLimit, libraryOffset)
	if err != nil {
		return fmt.Errorf("failed to get saved tracks: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printTracks(page.Items, page.Offset)
	printPageFooter(page)
	return nil
}

func runLibraryAlbums(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetSavedAlbums(ctx, libraryLimit, libraryOffset)
	if err != nil {
		return fmt.Errorf("failed to get saved albums: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printAlbums(page.Items)
	printPageFooter(page)
	return nil
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	if err := a.client.SaveTracks(ctx, ids); err != nil {
		return fmt.Errorf("failed to save tracks: %w", err)
	}
	return printStatus("saved", fmt.Sprintf("Saved %d track(s)", len(ids)), map[string]interface{}{"ids": ids})
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	if err := a.client.RemoveSavedTracks(ctx, ids); err != nil {
		return fmt.Errorf("failed to remove tracks: %w", err)
	}
	return printStatus("removed", fmt.Sprintf("Removed %d track(s)", len(ids)), map[string]interface{}{"ids": ids})
}

func runLibraryCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ids := spotifyIDs(args)
	saved, err := a.client.CheckSavedTracks(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check tracks: %w", err)
	}

	if JSONOutput() {
		out := make(map[string]bool, len(ids))
		for i, id := range ids {
			out[id] = i < len(saved) && saved[i]
		}
		return printJSON(out)
	}
	for i, id := range ids {
		fmt.Printf("%s %s\n", StatusIcon(i < len(saved) && saved[i]), id)
	}
	return nil
}
