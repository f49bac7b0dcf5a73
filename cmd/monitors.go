package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/ui"
)

// DisplayInfo represents the display information output
type DisplayInfo struct {
	Monitors []MonitorInfo `json:"monitors"`
	Current  int           `json:"current"`
	Error    string        `json:"error,omitempty"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	Index   int     `json:"index"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Width   float32 `json:"width"`
	Height  float32 `json:"height"`
	Primary bool    `json:"primary"`
}

var (
	jsonOutput bool
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Show monitor configuration",
	Long:  `List the monitors reported by the native library. The count is queried live.`,
	RunE:  runMonitors,
}

func init() {
	monitorsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.AddCommand(monitorsCmd)
}

func runMonitors(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	c := newController()
	defer closeController(c)

	if err := c.Load(); err != nil {
		if jsonOutput {
			return json.NewEncoder(out).Encode(DisplayInfo{Monitors: []MonitorInfo{}, Current: -1, Error: err.Error()})
		}
		return fmt.Errorf("failed to load native library: %w", err)
	}

	monitors := c.Monitors()

	if jsonOutput {
		info := DisplayInfo{Monitors: make([]MonitorInfo, 0, len(monitors)), Current: c.Window().CurrentMonitor()}
		for _, m := range monitors {
			info.Monitors = append(info.Monitors, MonitorInfo{
				Index:   m.Index,
				X:       m.X,
				Y:       m.Y,
				Width:   m.Width,
				Height:  m.Height,
				Primary: m.Primary,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintln(out, ui.FormatHeader(fmt.Sprintf("Monitors (%d)", len(monitors))))
	fmt.Fprintln(out, ui.RenderMonitors(monitors))
	return nil
}
