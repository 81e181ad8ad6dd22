package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/core"
	"github.com/tsijukebox/jukebox/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
	tailHistory   int
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow playback changes in real-time",
	Long: `Watch for playback state changes and print them as they happen.

Events tracked:
  - Track changes, completions and skips
  - Pause, resume and stop
  - Volume, device, shuffle and repeat changes

--format takes a Go template over the fields Type, Emoji, Timestamp, Time,
Name, Artist, Album, URI, Device, Volume, Shuffle and Repeat, e.g.
  jukebox tail --format '{{.Time}} {{.Type}} {{.Artist}} - {{.Name}}'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVar(&tailTimestamp, "timestamp", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default tail.interval)")
	tailCmd.Flags().IntVar(&tailHistory, "history", 5, "recently played tracks to show first")
	tailCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "device to watch")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	var opts []tail.FormatterOption
	opts = append(opts, tail.WithEmoji(!tailNoEmoji), tail.WithTimestamp(tailTimestamp))
	if tailFormat != "" {
		tmpl, err := tail.ParseTemplate(tailFormat)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		opts = append(opts, tail.WithTemplate(tmpl))
	}
	formatter := tail.NewFormatter(opts...)

	interval := tailInterval
	if interval <= 0 {
		interval = time.Duration(cfg.Tail.Interval) * time.Millisecond
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

	if !JSONOutput() {
		showHistory(ctx, a, tailHistory)
	}

	watcher := tail.NewWatcher(p, interval, tail.WithLogger(logger))
	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Run(ctx)
	}()

	for event := range watcher.Events() {
		if JSONOutput() {
			line, err := tail.FormatJSON(event)
			if err != nil {
				logger.Warn("failed to encode event", "error", err)
				continue
			}
			fmt.Println(string(line))
			continue
		}
		fmt.Println(formatter.Format(event))
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// showHistory prints recently played tracks, oldest first.
func showHistory(ctx context.Context, a *app, limit int) {
	if limit <= 0 {
		return
	}
	history, err := a.client.GetRecentlyPlayed(ctx, limit)
	if err != nil {
		logger.Debug("recently played unavailable", "error", err)
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		fmt.Println(subtleStyle.Render(historyLine(history[i])))
	}
}

func historyLine(h core.PlayHistory) string {
	line := fmt.Sprintf("%s - %s", h.Track.Artist, h.Track.Name)
	if !tailNoEmoji {
		line = "⏪ " + line
	}
	if tailTimestamp {
		line = h.PlayedAt.Local().Format("15:04:05") + " " + line
	}
	return line
}
