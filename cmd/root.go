package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/config"
	"github.com/bnema/uniwin/internal/logger"
)

var (
	configPath   string
	libPath      string
	fallbackPath string
	logLevel     string

	rootCmd = &cobra.Command{
		Use:   "uniwin",
		Short: "uniwin - native window control for a host main loop",
		Long: `uniwin binds the LibUniWinC native library at runtime and controls the
attributes of the host window: transparency, borderless, topmost, click-through,
position, size and multi-monitor placement. Window events raised on native
threads are queued and drained once per host tick.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $HOME/.config/uniwin/uniwin.toml)")
	flags.StringVar(&libPath, "lib", "", "path to the native library")
	flags.StringVar(&fallbackPath, "fallback-lib", "", "library path tried when --lib is absent")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// initConfig loads configuration, then applies flag overrides. Log level
// precedence is flag, then config, then LOG_LEVEL.
func initConfig(cmd *cobra.Command, args []string) error {
	config.SetConfigPath(configPath)
	if err := config.Init(); err != nil {
		return err
	}

	cfg := config.Get()
	if libPath != "" {
		cfg.Library.PrimaryPath = libPath
	}
	if fallbackPath != "" {
		cfg.Library.FallbackPath = fallbackPath
	}

	switch {
	case logLevel != "":
		logger.SetLevel(logLevel)
	case cfg.Logging.LogLevel != "":
		logger.SetLevel(cfg.Logging.LogLevel)
	}
	return nil
}
