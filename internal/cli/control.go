package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/core"
	"github.com/tsijukebox/jukebox/internal/spotify/client"
	"github.com/tsijukebox/jukebox/internal/spotify/player"
)

var controlDevice string

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Play music",
	Long: `Resume playback, play a Spotify URI, or search and play the first match.

Examples:
  jukebox play                              # resume
  jukebox play --uri spotify:album:xxx      # play a URI
  jukebox play "bohemian rhapsody"          # play the first matching track
  jukebox play --album "a night at the opera"`,
	RunE: runPlay,
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE: withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Pause(ctx); err != nil {
			return fmt.Errorf("failed to pause: %w", err)
		}
		return printStatus("paused", "⏸ Paused", nil)
	}),
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume playback",
	RunE: withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Resume(ctx); err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
		return printStatus("playing", "▶ Resumed", nil)
	}),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	RunE: withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Next(ctx); err != nil {
			return fmt.Errorf("failed to skip: %w", err)
		}
		return printStatus("skipped", "⏭ Skipped to next track", nil)
	}),
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	RunE: withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Prev(ctx); err != nil {
			return fmt.Errorf("failed to go back: %w", err)
		}
		return printStatus("previous", "⏮ Previous track", nil)
	}),
}

var restartCmd = &cobra.Command{
	Use:     "restart",
	Aliases: []string{"replay"},
	Short:   "Restart current track",
	RunE: withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Seek(ctx, 0); err != nil {
			return fmt.Errorf("failed to restart: %w", err)
		}
		return printStatus("restarted", "⏪ Restarted track", nil)
	}),
}

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track",
	Long: `Seek to a position given as seconds, m:ss, or a Go duration such as 1m30s.

Examples:
  jukebox seek 90
  jukebox seek 1:30`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

var (
	volumeUp   bool
	volumeDown bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Show, set or adjust volume",
	Long: `Show the playback volume, set it (0-100), or adjust it up/down by 10%.

Examples:
  jukebox volume 50      # Set volume to 50%
  jukebox volume --up    # Increase volume by 10%
  jukebox volume --down  # Decrease volume by 10%`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

var shuffleCmd = &cobra.Command{
	Use:       "shuffle <on|off>",
	Short:     "Turn shuffle on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runShuffle,
}

var repeatCmd = &cobra.Command{
	Use:       "repeat <off|track|context>",
	Short:     "Set the repeat mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"off", "track", "context"},
	RunE:      runRepeat,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Apply the configured volume, shuffle and repeat defaults",
	Long: `Restores a kiosk's playback settings from the [defaults] config section
(defaults.volume, defaults.shuffle and defaults.repeat).`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var (
	playURI      string
	playAlbum    bool
	playPlaylist bool
	playArtist   bool
	playShuffle  bool
)

func init() {
	playCmd.Flags().StringVar(&playURI, "uri", "", "play a specific Spotify URI")
	playCmd.Flags().BoolVar(&playAlbum, "album", false, "search for albums")
	playCmd.Flags().BoolVar(&playPlaylist, "playlist", false, "search for playlists")
	playCmd.Flags().BoolVar(&playArtist, "artist", false, "search for artists")
	playCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "enable shuffle first")
	playCmd.MarkFlagsMutuallyExclusive("album", "playlist", "artist")

	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "increase volume by 10%")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "decrease volume by 10%")
	volumeCmd.MarkFlagsMutuallyExclusive("up", "down")

	for _, c := range []*cobra.Command{playCmd, pauseCmd, resumeCmd, nextCmd, prevCmd, restartCmd, seekCmd, volumeCmd, shuffleCmd, repeatCmd, resetCmd} {
		c.Flags().StringVarP(&controlDevice, "device", "d", "", "target device name or ID")
		rootCmd.AddCommand(c)
	}
}

// withPlayer adapts a player action into a RunE that opens the session and
// targets --device.
func withPlayer(fn func(ctx context.Context, p *player.Player) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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
		return fn(ctx, p)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	if playShuffle {
		if err := p.Shuffle(ctx, true); err != nil {
			logger.Warn("could not enable shuffle", "error", err)
		}
	}

	if playURI != "" {
		if err := p.PlayURI(ctx, playURI); err != nil {
			return fmt.Errorf("failed to play URI: %w", err)
		}
		return printStatus("playing", "▶ Playing "+playURI, map[string]interface{}{"uri": playURI})
	}

	query := strings.Join(args, " ")
	if query == "" {
		if err := p.Resume(ctx); err != nil {
			return fmt.Errorf("failed to resume playback: %w", err)
		}
		return printStatus("playing", "▶ Resumed playback", nil)
	}

	return searchAndPlay(ctx, a.client, p, query)
}

// searchAndPlay plays the first search hit of the selected kind.
func searchAndPlay(ctx context.Context, c *client.Client, p *player.Player, query string) error {
	searchType := client.SearchTypeTrack
	switch {
	case playAlbum:
		searchType = client.SearchTypeAlbum
	case playPlaylist:
		searchType = client.SearchTypePlaylist
	case playArtist:
		searchType = client.SearchTypeArtist
	}

	results, err := c.Search(ctx, query, []client.SearchType{searchType}, 1, 0)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var kind, name, by, uri string
	switch {
	case results.Albums != nil && len(results.Albums.Items) > 0:
		al := results.Albums.Items[0]
		kind, name, by, uri = "album", al.Name, al.Artist, al.URI
	case results.Playlists != nil && len(results.Playlists.Items) > 0:
		pl := results.Playlists.Items[0]
		kind, name, by, uri = "playlist", pl.Name, pl.Owner, pl.URI
	case results.Artists != nil && len(results.Artists.Items) > 0:
		ar := results.Artists.Items[0]
		kind, name, uri = "artist", ar.Name, ar.URI
	case results.Tracks != nil && len(results.Tracks.Items) > 0:
		tr := results.Tracks.Items[0]
		kind, name, by, uri = "track", tr.Name, tr.Artist, tr.URI
	default:
		return fmt.Errorf("no results found for '%s'", query)
	}

	if err := p.PlayURI(ctx, uri); err != nil {
		return fmt.Errorf("failed to play %s: %w", kind, err)
	}

	msg := fmt.Sprintf("▶ Playing %s: %s", kind, titleStyle.Render(name))
	if by != "" {
		msg += " by " + by
	}
	return printStatus("playing", msg, map[string]interface{}{
		"type": kind, "name": name, "by": by, "uri": uri,
	})
}

// parsePosition reads "90", "1:30" or "1m30s".
func parsePosition(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	if m, sec, ok := strings.Cut(s, ":"); ok {
		mins, err1 := strconv.Atoi(m)
		secs, err2 := strconv.Atoi(sec)
		if err1 == nil && err2 == nil && secs < 60 {
			return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second, nil
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("invalid position %q", s)
}

func runSeek(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Seek(ctx, int(pos.Milliseconds())); err != nil {
			return fmt.Errorf("failed to seek: %w", err)
		}
		return printStatus("seeked", "⏩ Position "+FormatDuration(pos),
			map[string]interface{}{"position_ms": pos.Milliseconds()})
	})(cmd, args)
}

// targetVolume applies --up/--down or an explicit level to current.
func targetVolume(current int, args []string, up, down bool) (int, error) {
	switch {
	case up:
		return client.ClampVolume(float64(current + 10)), nil
	case down:
		return client.ClampVolume(float64(current - 10)), nil
	}
	val, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid volume level: %s", args[0])
	}
	if val < 0 || val > 100 {
		return 0, fmt.Errorf("volume must be between 0 and 100")
	}
	return val, nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	return withPlayer(func(ctx context.Context, p *player.Player) error {
		state, err := p.GetState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get playback state: %w", err)
		}

		if len(args) == 0 && !volumeUp && !volumeDown {
			if JSONOutput() {
				return printJSON(map[string]interface{}{"volume": state.Volume})
			}
			fmt.Printf("🔊 Volume: %d%%\n", state.Volume)
			return nil
		}

		target, err := targetVolume(state.Volume, args, volumeUp, volumeDown)
		if err != nil {
			return err
		}
		if err := p.Volume(ctx, target); err != nil {
			return fmt.Errorf("failed to set volume: %w", err)
		}
		return printStatus("volume",
			fmt.Sprintf("🔊 Volume: %d%% (was %d%%)", target, state.Volume),
			map[string]interface{}{"volume": target, "previous": state.Volume})
	})(cmd, args)
}

func runShuffle(cmd *cobra.Command, args []string) error {
	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	return withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Shuffle(ctx, on); err != nil {
			return fmt.Errorf("failed to set shuffle: %w", err)
		}
		return printStatus("shuffle", "🔀 Shuffle "+args[0], map[string]interface{}{"shuffle": on})
	})(cmd, args)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func parseRepeatMode(s string) (core.RepeatMode, error) {
	switch mode := core.RepeatMode(strings.ToLower(s)); mode {
	case core.RepeatOff, core.RepeatTrack, core.RepeatContext:
		return mode, nil
	}
	return "", fmt.Errorf("repeat mode must be off, track or context, got %q", s)
}

func runRepeat(cmd *cobra.Command, args []string) error {
	mode, err := parseRepeatMode(args[0])
	if err != nil {
		return err
	}
	return withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Repeat(ctx, mode); err != nil {
			return fmt.Errorf("failed to set repeat: %w", err)
		}
		return printStatus("repeat", "🔁 Repeat "+string(mode), map[string]interface{}{"repeat": mode})
	})(cmd, args)
}

func runReset(cmd *cobra.Command, args []string) error {
	mode, err := parseRepeatMode(cfg.Defaults.Repeat)
	if err != nil {
		return err
	}
	return withPlayer(func(ctx context.Context, p *player.Player) error {
		if err := p.Volume(ctx, cfg.Defaults.Volume); err != nil {
			return fmt.Errorf("failed to set volume: %w", err)
		}
		if err := p.Shuffle(ctx, cfg.Defaults.Shuffle); err != nil {
			return fmt.Errorf("failed to set shuffle: %w", err)
		}
		if err := p.Repeat(ctx, mode); err != nil {
			return fmt.Errorf("failed to set repeat: %w", err)
		}
		return printStatus("reset",
			fmt.Sprintf("Volume %d%%, shuffle %v, repeat %s", cfg.Defaults.Volume, cfg.Defaults.Shuffle, mode),
			map[string]interface{}{"volume": cfg.Defaults.Volume, "shuffle": cfg.Defaults.Shuffle, "repeat": mode})
	})(cmd, args)
}
