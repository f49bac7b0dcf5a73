package cmd

import (
	"time"

	"github.com/bnema/uniwin/internal/config"
	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/native"
)

// newController builds a controller from the loaded configuration.
func newController() *controller.Controller {
	cfg := config.Get()

	opts := controller.DefaultOptions()
	opts.PrimaryPath = cfg.Library.PrimaryPath
	opts.FallbackPath = cfg.Library.FallbackPath
	opts.MaxAttempts = cfg.Attach.MaxAttempts
	opts.Backoff = controller.SleepBackoff(time.Duration(cfg.Attach.BackoffMS) * time.Millisecond)
	opts.Tolerance = cfg.Fit.Tolerance
	opts.Initial = cfg.WindowState()

	return controller.New(native.NewBinder(), opts)
}

// loadLibrary binds the library without attaching, for read-only commands.
func loadLibrary() (*native.Binder, error) {
	cfg := config.Get()
	b := native.NewBinder()
	if _, _, err := b.Load(cfg.Library.PrimaryPath, cfg.Library.FallbackPath); err != nil {
		return nil, err
	}
	return b, nil
}

func closeController(c *controller.Controller) {
	if err := c.Close(); err != nil {
		logger.Warn("Closing controller", "error", err)
	}
}

func tickInterval() time.Duration {
	return time.Duration(config.Get().Host.TickMS) * time.Millisecond
}

func unloadLibrary(b *native.Binder) {
	if err := b.Unload(); err != nil {
		logger.Warn("Unloading native library", "error", err)
	}
}
