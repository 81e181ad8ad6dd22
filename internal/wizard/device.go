package wizard

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/tsijukebox/jukebox/internal/core"
)

// deviceOptions builds picker options labelled with type and activity.
func deviceOptions(devices []core.Device) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(devices))
	for _, d := range devices {
		label := d.Name
		if d.Type != "" {
			label = fmt.Sprintf("%s (%s)", d.Name, d.Type)
		}
		if d.IsActive {
			label += " [active]"
		}
		if d.IsRestricted {
			label += " [restricted]"
		}
		options = append(options, huh.NewOption(label, d.ID))
	}
	return options
}

// PickDevice shows a picker over devices and returns the chosen one.
func PickDevice(title string, devices []core.Device) (*core.Device, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices to choose from")
	}

	var selectedID string
	for _, d := range devices {
		if d.IsActive {
			selectedID = d.ID
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(deviceOptions(devices)...).
				Value(&selectedID),
		),
	)
	if err := run(form); err != nil {
		return nil, err
	}

	for i := range devices {
		if devices[i].ID == selectedID {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("device %q not found", selectedID)
}
