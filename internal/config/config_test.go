package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/uniwin/internal/window"
)

func reset(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetConfigPath("")
	Set(nil)
	t.Cleanup(func() {
		viper.Reset()
		SetConfigPath("")
		Set(nil)
	})
}

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		reset(t)
		t.Setenv("HOME", t.TempDir())
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		require.NoError(t, Init())

		c := Get()
		require.NotNil(t, c)
		assert.Equal(t, 3, c.Attach.MaxAttempts)
		assert.Equal(t, float32(10), c.Fit.Tolerance)
		assert.Equal(t, float32(1), c.Window.Alpha)
		assert.Equal(t, "alpha", c.Policy.TransparentType)
		assert.Equal(t, "opacity", c.Policy.HitTestType)
		assert.Equal(t, []float32{1, 0, 1, 0}, c.Policy.KeyColor)
		assert.Equal(t, 16, c.Host.TickMS)
		assert.True(t, c.Host.Control)
		assert.Empty(t, c.Host.ControlSocket)
		assert.NotEmpty(t, c.Library.PrimaryPath)
	})

	t.Run("reads explicit config file", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[library]
primary_path = "/opt/uniwin/LibUniWinC.so"

[attach]
max_attempts = 5

[window]
topmost = true
alpha = 0.75

[policy]
hit_test_type = "raycast"
key_color = [0.0, 1.0, 0.0, 1.0]
`), 0o644))
		SetConfigPath(path)

		require.NoError(t, Init())
		c := Get()
		assert.Equal(t, "/opt/uniwin/LibUniWinC.so", c.Library.PrimaryPath)
		assert.Equal(t, DefaultConfig.Library.FallbackPath, c.Library.FallbackPath)
		assert.Equal(t, 5, c.Attach.MaxAttempts)
		assert.True(t, c.Window.Topmost)
		assert.Equal(t, path, GetConfigPath())

		s := c.WindowState()
		assert.True(t, s.Topmost)
		assert.Equal(t, float32(0.75), s.Alpha)
		assert.Equal(t, window.HitTestRaycast, s.HitTestType)
		assert.Equal(t, window.Color{R: 0, G: 1, B: 0, A: 1}, s.KeyColor)
	})

	t.Run("handles invalid TOML", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "uniwin.toml")
		require.NoError(t, os.WriteFile(path, []byte("[window\nalpha = 1"), 0o644))
		SetConfigPath(path)

		assert.Error(t, Init())
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		reset(t)
		path := filepath.Join(t.TempDir(), "uniwin.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[attach]
max_attempts = 0

[policy]
hit_test_type = "pixel"
`), 0o644))
		SetConfigPath(path)

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_attempts")
		assert.Contains(t, err.Error(), "hit_test_type")
	})
}

func TestValidate(t *testing.T) {
	c := DefaultConfig
	c.Policy.KeyColor = []float32{1, 0, 1, 0}
	assert.NoError(t, c.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no library", func(c *Config) { c.Library = LibraryConfig{} }},
		{"negative backoff", func(c *Config) { c.Attach.BackoffMS = -1 }},
		{"negative tolerance", func(c *Config) { c.Fit.Tolerance = -1 }},
		{"bad transparent type", func(c *Config) { c.Policy.TransparentType = "glass" }},
		{"short key color", func(c *Config) { c.Policy.KeyColor = []float32{1, 0} }},
		{"negative monitor", func(c *Config) { c.Policy.MonitorToFit = -2 }},
		{"zero tick", func(c *Config) { c.Host.TickMS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			c.Policy.KeyColor = append([]float32(nil), DefaultConfig.Policy.KeyColor...)
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestWindowStateClamps(t *testing.T) {
	c := DefaultConfig
	c.Window.Alpha = 1.5
	c.Policy.OpacityThreshold = -0.5
	s := c.WindowState()
	assert.Equal(t, float32(1), s.Alpha)
	assert.Equal(t, float32(0), s.OpacityThreshold)
}

func TestDefaultLibraryPaths(t *testing.T) {
	tests := []struct {
		goos     string
		primary  string
		fallback string
	}{
		{"linux", filepath.Join("addons", "uniwinc", "bin", "linux", "LibUniWinC.so"), "." + string(filepath.Separator) + "LibUniWinC.so"},
		{"windows", filepath.Join("addons", "uniwinc", "bin", "windows", "LibUniWinC.dll"), "." + string(filepath.Separator) + "LibUniWinC.dll"},
		{"darwin", filepath.Join("addons", "uniwinc", "bin", "macos", "LibUniWinC.bundle/Contents/MacOS/LibUniWinC"), "." + string(filepath.Separator) + "LibUniWinC.bundle/Contents/MacOS/LibUniWinC"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.primary, DefaultLibraryPath(tt.goos))
			assert.Equal(t, tt.fallback, DefaultFallbackPath(tt.goos))
		})
	}
}

func TestSaveWritesConfig(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "nested", "uniwin.toml")
	SetConfigPath(path)
	setDefaults()
	viper.Set("window.topmost", true)

	require.NoError(t, Save())

	viper.Reset()
	require.NoError(t, Init())
	assert.True(t, Get().Window.Topmost)
}
