package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/config"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage uniwin configuration",
	Long:  `Show, initialize and save the uniwin configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout(), config.Get())
	},
}

func writeConfig(out io.Writer, cfg *config.Config) error {
	fmt.Fprintf(out, "Config file: %s\n\n", config.GetConfigPath())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	section := func(name string) {
		fmt.Fprintln(w, ui.FormatHeader(name))
	}
	row := func(key string, value any) {
		fmt.Fprintf(w, "  %s\t%v\n", key, value)
	}

	section("[Library]")
	row("Primary Path", cfg.Library.PrimaryPath)
	row("Fallback Path", cfg.Library.FallbackPath)

	section("[Attach]")
	row("Max Attempts", cfg.Attach.MaxAttempts)
	row("Backoff", fmt.Sprintf("%d ms", cfg.Attach.BackoffMS))

	section("[Fit]")
	row("Tolerance", fmt.Sprintf("%.1f px", cfg.Fit.Tolerance))

	section("[Window]")
	row("Transparent", cfg.Window.Transparent)
	row("Borderless", cfg.Window.Borderless)
	row("Topmost", cfg.Window.Topmost)
	row("Bottommost", cfg.Window.Bottommost)
	row("Click Through", cfg.Window.ClickThrough)
	row("Zoomed", cfg.Window.Zoomed)
	row("Alpha", fmt.Sprintf("%.2f", cfg.Window.Alpha))
	row("Allow Drop Files", cfg.Window.AllowDropFiles)

	section("[Policy]")
	row("Transparent Type", cfg.Policy.TransparentType)
	row("Hit Test", fmt.Sprintf("%s (enabled=%t)", cfg.Policy.HitTestType, cfg.Policy.HitTestEnabled))
	row("Opacity Threshold", fmt.Sprintf("%.2f", cfg.Policy.OpacityThreshold))
	row("Key Color", cfg.Policy.KeyColor)
	row("Fit On Attach", cfg.Policy.ShouldFitMonitor)
	row("Monitor To Fit", cfg.Policy.MonitorToFit)

	section("[Host]")
	row("Tick", fmt.Sprintf("%d ms", cfg.Host.TickMS))
	socket := cfg.Host.ControlSocket
	if socket == "" {
		socket = "(default)"
	}
	row("Control Socket", fmt.Sprintf("%s (enabled=%t)", socket, cfg.Host.Control))

	section("[Logging]")
	level := cfg.Logging.LogLevel
	if level == "" {
		level = "(LOG_LEVEL)"
	}
	row("Log Level", level)

	return w.Flush()
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save current configuration to file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")

	rootCmd.AddCommand(configCmd)
}
