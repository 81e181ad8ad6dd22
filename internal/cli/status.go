package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/core"
	jberrors "github.com/tsijukebox/jukebox/internal/errors"
	"golang.org/x/sync/errgroup"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback status",
	Long:  `Shows the playing track, its progress, the device and what is queued next.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusView struct {
	State *core.PlaybackState `json:"state"`
	Queue *core.Queue         `json:"queue,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// State and queue are independent; a failed queue lookup still shows
	// the state.
	var (
		result jberrors.PartialResult[statusView]
		qErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state, err := a.client.GetPlaybackState(gctx)
		if err != nil {
			return fmt.Errorf("failed to get playback state: %w", err)
		}
		result.Data.State = state
		return nil
	})
	g.Go(func() error {
		queue, err := a.client.GetCurrentQueue(gctx)
		if err != nil {
			qErr = fmt.Errorf("failed to get queue: %w", err)
			return nil
		}
		result.Data.Queue = queue
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	result.AddError(qErr)
	if result.HasErrors() {
		logger.Warn("status incomplete", "error", result.ErrorSummary())
	}

	if JSONOutput() {
		return printJSON(result.Data)
	}
	printStatusView(result.Data)
	return nil
}

func printStatusView(v statusView) {
	s := v.State
	if !s.HasTrack() {
		fmt.Println("No active playback")
		return
	}

	icon := activeStyle.Render("▶")
	if !s.IsPlaying {
		icon = subtleStyle.Render("⏸")
	}
	fmt.Printf("%s %s\n", icon, titleStyle.Render(s.Track.Name))
	fmt.Printf("  %s · %s\n", s.Track.Artist, s.Track.Album)
	fmt.Printf("  %s %s / %s\n",
		FormatProgress(s.ProgressPercent(), 30),
		FormatDuration(s.Progress),
		FormatDuration(trackDuration(s.Track)))

	if s.Device != nil {
		line := fmt.Sprintf("  %s %s", getDeviceIcon(s.Device.Type), s.Device.Name)
		if s.Device.SupportsVolume {
			line += fmt.Sprintf("  vol %d%%", s.Volume)
		}
		fmt.Println(line)
	}

	var modes []string
	if s.Shuffle {
		modes = append(modes, "shuffle")
	}
	if s.Repeat != "" && s.Repeat != core.RepeatOff {
		modes = append(modes, "repeat "+string(s.Repeat))
	}
	if len(modes) > 0 {
		fmt.Println(subtleStyle.Render("  "+strings.Join(modes, ", ")))
	}

	if v.Queue != nil && len(v.Queue.Tracks) > 0 {
		next := v.Queue.Tracks[0]
		fmt.Println(subtleStyle.Render(fmt.Sprintf("  Next: %s — %s", next.Name, next.Artist)))
	}
}
