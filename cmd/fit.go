package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/ui"
)

var fitPick bool

var fitCmd = &cobra.Command{
	Use:   "fit [monitor]",
	Short: "Fit the window to a monitor",
	Long: `Attach to the host window, centre it on the monitor and maximize it there.
When maximize cannot be confirmed the window is sized to the monitor instead.
Without an argument the configured policy.monitor_to_fit is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().BoolVar(&fitPick, "pick", false, "Choose the monitor interactively")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	c := newController()
	defer closeController(c)

	index := c.Window().MonitorToFit()
	if len(args) == 1 {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid monitor index %q: %w", args[0], err)
		}
		index = i
	}

	// Fitting is explicit here; skip the fit-on-attach policy.
	c.Window().SetShouldFitMonitor(false)
	if !c.Attach() {
		return fmt.Errorf("could not attach to the host window (status %s)", c.Status())
	}

	if fitPick {
		picked, err := ui.PickMonitor(c.Monitors(), index)
		if err != nil {
			return err
		}
		index = picked
	}

	res := c.FitToMonitor(index)
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFitResult(res))
	if res.Outcome == controller.FitAborted {
		return fmt.Errorf("fit aborted: %s", res.Reason)
	}
	return nil
}
