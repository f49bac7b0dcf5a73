// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/bnema/uniwin/internal/window"
)

// Config represents the application configuration
type Config struct {
	// Native library location
	Library LibraryConfig `mapstructure:"library"`

	// Attach retry policy
	Attach AttachConfig `mapstructure:"attach"`

	// Monitor fit verification
	Fit FitConfig `mapstructure:"fit"`

	// Initial window intent, applied after attach
	Window WindowConfig `mapstructure:"window"`

	// Host-side policy, never sent to the native library
	Policy PolicyConfig `mapstructure:"policy"`

	// Host loop settings
	Host HostConfig `mapstructure:"host"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LibraryConfig locates the native library
type LibraryConfig struct {
	PrimaryPath  string `mapstructure:"primary_path"`
	FallbackPath string `mapstructure:"fallback_path"` // Tried when the primary is absent or fails to open
}

// AttachConfig bounds attach retries
type AttachConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	BackoffMS   int `mapstructure:"backoff_ms"` // Grows linearly with the attempt number; 0 disables
}

// FitConfig configures monitor fitting
type FitConfig struct {
	Tolerance float32 `mapstructure:"tolerance"` // Accepted per-dimension error in pixels
}

// WindowConfig is the initial window state
type WindowConfig struct {
	Transparent    bool    `mapstructure:"transparent"`
	Borderless     bool    `mapstructure:"borderless"`
	Topmost        bool    `mapstructure:"topmost"`
	Bottommost     bool    `mapstructure:"bottommost"`
	ClickThrough   bool    `mapstructure:"clickthrough"`
	Zoomed         bool    `mapstructure:"zoomed"`
	Alpha          float32 `mapstructure:"alpha"`
	AllowDropFiles bool    `mapstructure:"allow_drop_files"`
}

// PolicyConfig holds the host-side window policy
type PolicyConfig struct {
	TransparentType  string    `mapstructure:"transparent_type"` // none, alpha, colorkey
	HitTestType      string    `mapstructure:"hit_test_type"`    // none, opacity, raycast
	OpacityThreshold float32   `mapstructure:"opacity_threshold"`
	HitTestEnabled   bool      `mapstructure:"hit_test_enabled"`
	KeyColor         []float32 `mapstructure:"key_color"` // r, g, b, a
	ShouldFitMonitor bool      `mapstructure:"should_fit_monitor"`
	MonitorToFit     int       `mapstructure:"monitor_to_fit"`
}

// HostConfig configures the host loop
type HostConfig struct {
	TickMS        int    `mapstructure:"tick_ms"`
	Control       bool   `mapstructure:"control"`        // Serve the control socket during run
	ControlSocket string `mapstructure:"control_socket"` // Empty means the per-user temp path
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Library: LibraryConfig{
			PrimaryPath:  DefaultLibraryPath(runtime.GOOS),
			FallbackPath: DefaultFallbackPath(runtime.GOOS),
		},
		Attach: AttachConfig{
			MaxAttempts: 3,
			BackoffMS:   0,
		},
		Fit: FitConfig{
			Tolerance: 10,
		},
		Window: WindowConfig{
			Alpha: 1.0,
		},
		Policy: PolicyConfig{
			TransparentType:  "alpha",
			HitTestType:      "opacity",
			OpacityThreshold: 0.1,
			HitTestEnabled:   true,
			KeyColor:         []float32{1, 0, 1, 0},
			ShouldFitMonitor: false,
			MonitorToFit:     0,
		},
		Host: HostConfig{
			TickMS:  16,
			Control: true,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// libraryFile returns the per-platform artifact name. macOS ships a bundle.
func libraryFile(goos string) string {
	switch goos {
	case "windows":
		return "LibUniWinC.dll"
	case "darwin":
		return "LibUniWinC.bundle/Contents/MacOS/LibUniWinC"
	default:
		return "LibUniWinC.so"
	}
}

func platformDir(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// DefaultLibraryPath is where the library is installed next to the host
func DefaultLibraryPath(goos string) string {
	return filepath.Join("addons", "uniwinc", "bin", platformDir(goos), libraryFile(goos))
}

// DefaultFallbackPath is the library in the working directory
func DefaultFallbackPath(goos string) string {
	return "." + string(filepath.Separator) + libraryFile(goos)
}

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("uniwin")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uniwin"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	return nil
}

// setDefaults registers individual fields for proper merging
func setDefaults() {
	d := DefaultConfig

	viper.SetDefault("library.primary_path", d.Library.PrimaryPath)
	viper.SetDefault("library.fallback_path", d.Library.FallbackPath)

	viper.SetDefault("attach.max_attempts", d.Attach.MaxAttempts)
	viper.SetDefault("attach.backoff_ms", d.Attach.BackoffMS)

	viper.SetDefault("fit.tolerance", d.Fit.Tolerance)

	viper.SetDefault("window.transparent", d.Window.Transparent)
	viper.SetDefault("window.borderless", d.Window.Borderless)
	viper.SetDefault("window.topmost", d.Window.Topmost)
	viper.SetDefault("window.bottommost", d.Window.Bottommost)
	viper.SetDefault("window.clickthrough", d.Window.ClickThrough)
	viper.SetDefault("window.zoomed", d.Window.Zoomed)
	viper.SetDefault("window.alpha", d.Window.Alpha)
	viper.SetDefault("window.allow_drop_files", d.Window.AllowDropFiles)

	viper.SetDefault("policy.transparent_type", d.Policy.TransparentType)
	viper.SetDefault("policy.hit_test_type", d.Policy.HitTestType)
	viper.SetDefault("policy.opacity_threshold", d.Policy.OpacityThreshold)
	viper.SetDefault("policy.hit_test_enabled", d.Policy.HitTestEnabled)
	viper.SetDefault("policy.key_color", d.Policy.KeyColor)
	viper.SetDefault("policy.should_fit_monitor", d.Policy.ShouldFitMonitor)
	viper.SetDefault("policy.monitor_to_fit", d.Policy.MonitorToFit)

	viper.SetDefault("host.tick_ms", d.Host.TickMS)
	viper.SetDefault("host.control", d.Host.Control)
	viper.SetDefault("host.control_socket", d.Host.ControlSocket)

	viper.SetDefault("logging.log_level", d.Logging.LogLevel)
}

// Validate checks ranges and enum names
func (c *Config) Validate() error {
	var errs []error
	if c.Library.PrimaryPath == "" && c.Library.FallbackPath == "" {
		errs = append(errs, errors.New("library: no path configured"))
	}
	if c.Attach.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("attach.max_attempts must be at least 1, got %d", c.Attach.MaxAttempts))
	}
	if c.Attach.BackoffMS < 0 {
		errs = append(errs, fmt.Errorf("attach.backoff_ms must not be negative, got %d", c.Attach.BackoffMS))
	}
	if c.Fit.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("fit.tolerance must not be negative, got %g", c.Fit.Tolerance))
	}
	if _, err := window.ParseTransparentType(c.Policy.TransparentType); err != nil {
		errs = append(errs, fmt.Errorf("policy.transparent_type: %w", err))
	}
	if _, err := window.ParseHitTestType(c.Policy.HitTestType); err != nil {
		errs = append(errs, fmt.Errorf("policy.hit_test_type: %w", err))
	}
	if len(c.Policy.KeyColor) != 4 {
		errs = append(errs, fmt.Errorf("policy.key_color needs 4 components, got %d", len(c.Policy.KeyColor)))
	}
	if c.Policy.MonitorToFit < 0 {
		errs = append(errs, fmt.Errorf("policy.monitor_to_fit must not be negative, got %d", c.Policy.MonitorToFit))
	}
	if c.Host.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("host.tick_ms must be positive, got %d", c.Host.TickMS))
	}
	return errors.Join(errs...)
}

// WindowState converts the window and policy sections into the initial
// window intent. Alpha and threshold are clamped rather than rejected.
func (c *Config) WindowState() window.State {
	s := window.DefaultState()
	s.Transparent = c.Window.Transparent
	s.Borderless = c.Window.Borderless
	s.Topmost = c.Window.Topmost
	s.Bottommost = c.Window.Bottommost
	s.ClickThrough = c.Window.ClickThrough
	s.Zoomed = c.Window.Zoomed
	s.Alpha = c.Window.Alpha
	s.AllowDropFiles = c.Window.AllowDropFiles

	if t, err := window.ParseTransparentType(c.Policy.TransparentType); err == nil {
		s.TransparentType = t
	}
	if h, err := window.ParseHitTestType(c.Policy.HitTestType); err == nil {
		s.HitTestType = h
	}
	s.OpacityThreshold = c.Policy.OpacityThreshold
	s.HitTestEnabled = c.Policy.HitTestEnabled
	if len(c.Policy.KeyColor) == 4 {
		k := c.Policy.KeyColor
		s.KeyColor = window.Color{R: k[0], G: k[1], B: k[2], A: k[3]}
	}
	s.ShouldFitMonitor = c.Policy.ShouldFitMonitor
	s.MonitorToFit = c.Policy.MonitorToFit
	return s.Normalize()
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "uniwin.toml"
	}

	return filepath.Join(home, ".config", "uniwin", "uniwin.toml")
}
