package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
)

var (
	playlistLimit    int
	playlistOffset   int
	trackLimit       int
	trackOffset      int
	playlistDesc     string
	playlistPublic   bool
	playlistPosition int
	playlistName     string
)

var playlistsCmd = &cobra.Command{
	Use:     "playlists",
	Aliases: []string{"pl"},
	Short:   "List and manage playlists",
	Long:    `Lists the current user's playlists. Subcommands show and edit them.`,
	RunE:    runPlaylistsList,
}

var playlistsShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show a playlist and its tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsShow,
}

var playlistsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsCreate,
}

var playlistsEditCmd = &cobra.Command{
	Use:   "edit <playlist-id>",
	Short: "Change a playlist's name, description or visibility",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsEdit,
}

var playlistsAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <uri>...",
	Short: "Add tracks to a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistsAdd,
}

var playlistsRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <uri>...",
	Short: "Remove tracks from a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistsRemove,
}

var playlistsMoveCmd = &cobra.Command{
	Use:   "move <playlist-id> <from> <to>",
	Short: "Move a track to another position",
	Long:  `Moves the track at index <from> so that it is placed before the track at index <to>.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runPlaylistsMove,
}

var playlistsDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete (unfollow) a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsDelete,
}

func init() {
	addPageFlags(playlistsCmd, &playlistLimit, &playlistOffset, 20)
	addPageFlags(playlistsShowCmd, &trackLimit, &trackOffset, 50)
	playlistsCreateCmd.Flags().StringVar(&playlistDesc, "description", "", "playlist description")
	playlistsCreateCmd.Flags().BoolVar(&playlistPublic, "public", false, "make the playlist public")
	playlistsEditCmd.Flags().StringVar(&playlistName, "name", "", "new name")
	playlistsEditCmd.Flags().StringVar(&playlistDesc, "description", "", "new description")
	playlistsEditCmd.Flags().BoolVar(&playlistPublic, "public", false, "make the playlist public")
	playlistsAddCmd.Flags().IntVar(&playlistPosition, "position", -1, "insert position (default: append)")

	playlistsCmd.AddCommand(playlistsShowCmd)
	playlistsCmd.AddCommand(playlistsCreateCmd)
	playlistsCmd.AddCommand(playlistsEditCmd)
	playlistsCmd.AddCommand(playlistsAddCmd)
	playlistsCmd.AddCommand(playlistsRemoveCmd)
	playlistsCmd.AddCommand(playlistsMoveCmd)
	playlistsCmd.AddCommand(playlistsDeleteCmd)
	rootCmd.AddCommand(playlistsCmd)
}

func runPlaylistsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	page, err := a.client.GetUserPlaylists(ctx, playlistLimit, playlistOffset)
	if err != nil {
		return fmt.Errorf("failed to get playlists: %w", err)
	}
	if JSONOutput() {
		return printJSON(page)
	}
	printPlaylists(page.Items)
	printPageFooter(page)
	return nil
}

func runPlaylistsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	pl, err := a.client.GetPlaylist(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}
	tracks, err := a.client.GetPlaylistTracks(ctx, args[0], trackLimit, trackOffset)
	if err != nil {
		return fmt.Errorf("failed to get playlist tracks: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]interface{}{"playlist": pl, "tracks": tracks})
	}

	fmt.Println(titleStyle.Render(pl.Name))
	if pl.Description != "" {
		fmt.Println(pl.Description)
	}
	fmt.Println(subtleStyle.Render(fmt.Sprintf("by %s · %s tracks", pl.Owner, formatCount(pl.TrackCount))))
	fmt.Println()
	printTracks(tracks.Items, tracks.Offset)
	printPageFooter(tracks)
	return nil
}

func runPlaylistsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	pl, err := a.client.CreatePlaylist(ctx, args[0], playlistDesc, playlistPublic)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	if JSONOutput() {
		return printJSON(pl)
	}
	fmt.Printf("Created playlist %s (%s)\n", titleStyle.Render(pl.Name), pl.ID)
	return nil
}

func runPlaylistsEdit(cmd *cobra.Command, args []string) error {
	var update client.PlaylistUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &playlistName
	}
	if cmd.Flags().Changed("description") {
		update.Description = &playlistDesc
	}
	if cmd.Flags().Changed("public") {
		update.Public = &playlistPublic
	}
	if update.Name == nil && update.Description == nil && update.Public == nil {
		return fmt.Errorf("nothing to change; pass --name, --description or --public")
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.UpdatePlaylist(ctx, args[0], update); err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	return printStatus("updated", "Playlist updated", map[string]interface{}{"id": args[0]})
}

func runPlaylistsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	uris := args[1:]
	if err := a.client.AddTracksToPlaylist(ctx, args[0], uris, playlistPosition); err != nil {
		return fmt.Errorf("failed to add tracks: %w", err)
	}
	return printStatus("added", fmt.Sprintf("Added %d track(s)", len(uris)),
		map[string]interface{}{"id": args[0], "uris": uris})
}

func runPlaylistsRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	uris := args[1:]
	if err := a.client.RemoveTracksFromPlaylist(ctx, args[0], uris); err != nil {
		return fmt.Errorf("failed to remove tracks: %w", err)
	}
	return printStatus("removed", fmt.Sprintf("Removed %d track(s)", len(uris)),
		map[string]interface{}{"id": args[0], "uris": uris})
}

func runPlaylistsMove(cmd *cobra.Command, args []string) error {
	var from, to int
	if _, err := fmt.Sscanf(args[1]+" "+args[2], "%d %d", &from, &to); err != nil || from < 0 || to < 0 {
		return fmt.Errorf("positions must be non-negative integers")
	}

	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.ReorderPlaylistTracks(ctx, args[0], from, to, 1); err != nil {
		return fmt.Errorf("failed to move track: %w", err)
	}
	return printStatus("moved", fmt.Sprintf("Moved track %d before %d", from, to),
		map[string]interface{}{"id": args[0], "from": from, "to": to})
}

func runPlaylistsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.DeletePlaylist(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return printStatus("deleted", "Playlist deleted", map[string]interface{}{"id": args[0]})
}
