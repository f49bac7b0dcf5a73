package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/bnema/uniwin/internal/display"
	"github.com/bnema/uniwin/internal/logger"
)

// monitorOptions builds the select options, marking the primary monitor.
func monitorOptions(monitors []display.Monitor) []huh.Option[int] {
	options := make([]huh.Option[int], len(monitors))
	for i, m := range monitors {
		label := fmt.Sprintf("Monitor %d  %.0fx%.0f at %.0f,%.0f", m.Index, m.Width, m.Height, m.X, m.Y)
		if m.Primary {
			label += " (primary)"
		}
		options[i] = huh.NewOption(label, m.Index)
	}
	return options
}

// PickMonitor presents an interactive selection of monitors
func PickMonitor(monitors []display.Monitor, current int) (int, error) {
	if len(monitors) == 0 {
		return 0, fmt.Errorf("no monitors reported")
	}

	// If only one monitor, use it automatically
	if len(monitors) == 1 {
		logger.Infof("Auto-selected monitor: %s", monitors[0])
		return monitors[0].Index, nil
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select Monitor").
				Description("The window is centred on this monitor, then maximized").
				Options(monitorOptions(monitors)...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("monitor selection cancelled: %w", err)
	}

	return selected, nil
}
