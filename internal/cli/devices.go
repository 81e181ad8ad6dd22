package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/core"
	jberrors "github.com/tsijukebox/jukebox/internal/errors"
	"github.com/tsijukebox/jukebox/internal/wizard"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available playback devices",
	Long:  `Lists the Spotify Connect devices the account can play on.`,
	RunE:  runDevices,
}

var transferPlay bool

var devicesTransferCmd = &cobra.Command{
	Use:   "transfer [device]",
	Short: "Move playback to another device",
	Long: `Transfer playback to a device given by name or ID. With no argument a picker is
shown on interactive terminals.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDevicesTransfer,
}

func init() {
	devicesTransferCmd.Flags().BoolVar(&transferPlay, "play", true, "start playing on the new device")
	devicesCmd.AddCommand(devicesTransferCmd)
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	devices, err := a.client.GetDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	if JSONOutput() {
		return printJSON(devices)
	}
	if len(devices) == 0 {
		fmt.Println("No devices found")
		return nil
	}

	t := NewTable("", "DEVICE", "TYPE", "VOLUME", "ID")
	for _, d := range devices {
		volume := "-"
		if d.SupportsVolume {
			volume = fmt.Sprintf("%d%%", d.Volume)
		}
		name := getDeviceIcon(d.Type) + " " + d.Name
		if d.Name == cfg.Defaults.Device || d.ID == cfg.Defaults.Device {
			name += subtleStyle.Render(" (default)")
		}
		t.Row(StatusIcon(d.IsActive), name, string(d.Type), volume, d.ID)
	}
	t.Flush()
	return nil
}

func runDevicesTransfer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newAuthenticatedApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var target *core.Device
	if len(args) == 1 {
		target, err = resolveDevice(ctx, a.client, args[0])
		if err != nil {
			return err
		}
	} else {
		devices, err := a.client.GetDevices(ctx)
		if err != nil {
			return fmt.Errorf("failed to get devices: %w", err)
		}
		if len(devices) == 0 {
			return jberrors.ErrNoActiveDevice
		}
		target, err = wizard.PickDevice("Transfer playback to", devices)
		if err != nil {
			return err
		}
	}

	p, err := a.player(ctx, "")
	if err != nil {
		return err
	}
	if err := p.TransferPlayback(ctx, target.ID, transferPlay); err != nil {
		return fmt.Errorf("failed to transfer playback: %w", err)
	}

	return printStatus("transferred", "📱 Playback moved to "+titleStyle.Render(target.Name),
		map[string]interface{}{"device": target})
}

func getDeviceIcon(deviceType core.DeviceType) string {
	switch deviceType {
	case core.DeviceTypeComputer:
		return "💻"
	case core.DeviceTypePhone:
		return "📱"
	case core.DeviceTypeSpeaker:
		return "🔊"
	case core.DeviceTypeTV:
		return "📺"
	default:
		return "🎧"
	}
}
