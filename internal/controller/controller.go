// Package controller drives the window attach state machine, drains native
// events on the host thread and fits the window to monitors.
package controller

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bnema/uniwin/internal/callback"
	"github.com/bnema/uniwin/internal/display"
	"github.com/bnema/uniwin/internal/events"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/native"
	"github.com/bnema/uniwin/internal/window"
)

// Status is the attach state.
type Status int

const (
	StatusDetached Status = iota
	StatusAttaching
	StatusAttached
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDetached:
		return "detached"
	case StatusAttaching:
		return "attaching"
	case StatusAttached:
		return "attached"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Loader binds the native library. *native.Binder implements it.
type Loader interface {
	Load(primaryPath, fallbackPath string) (*native.Table, native.Capabilities, error)
	Unload() error
}

// Options configures a Controller.
type Options struct {
	PrimaryPath  string
	FallbackPath string

	// MaxAttempts is the number of passes over the attach strategies.
	MaxAttempts int
	// Backoff runs between failed passes, if set.
	Backoff func(attempt int)
	// Tolerance bounds the per-dimension error accepted by the fit
	// fallback.
	Tolerance float32

	Initial window.State
}

const (
	DefaultMaxAttempts         = 3
	DefaultTolerance   float32 = 10
)

func DefaultOptions() Options {
	return Options{
		MaxAttempts: DefaultMaxAttempts,
		Tolerance:   DefaultTolerance,
		Initial:     window.DefaultState(),
	}
}

// SleepBackoff returns a backoff that waits attempt*step between passes.
func SleepBackoff(step time.Duration) func(int) {
	if step <= 0 {
		return nil
	}
	return func(attempt int) {
		time.Sleep(time.Duration(attempt) * step)
	}
}

// Controller owns the library binding, the event queue and the window facade
// for one host session. All methods except the observer registry must be
// called from the host thread.
type Controller struct {
	opts   Options
	loader Loader

	table *native.Table
	caps  native.Capabilities
	reg   *callback.Registration

	facade    *window.Facade
	queue     *events.Queue
	observers observerList

	status   Status
	attached atomic.Bool
}

// New creates a detached controller. Nothing is loaded until Load or Attach.
func New(loader Loader, opts Options) *Controller {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Controller{
		opts:   opts,
		loader: loader,
		facade: window.NewFacade(nil, opts.Initial),
		queue:  events.NewQueue(),
	}
}

// Window returns the state facade.
func (c *Controller) Window() *window.Facade {
	return c.facade
}

func (c *Controller) Status() Status {
	return c.status
}

// Capabilities returns the load-time capability report; it is empty before
// a successful Load.
func (c *Controller) Capabilities() native.Capabilities {
	return c.caps
}

// Registration returns the callback registration, or nil before Load.
func (c *Controller) Registration() *callback.Registration {
	return c.reg
}

// Loaded reports whether a library is bound.
func (c *Controller) Loaded() bool {
	return c.table != nil
}

// Load binds the native library and installs callbacks. It is a no-op when
// already loaded.
func (c *Controller) Load() error {
	if c.table != nil {
		return nil
	}
	if c.loader == nil {
		return fmt.Errorf("loading native library: %w: no loader configured", native.ErrNotLoaded)
	}
	table, caps, err := c.loader.Load(c.opts.PrimaryPath, c.opts.FallbackPath)
	if err != nil {
		return fmt.Errorf("loading native library: %w", err)
	}
	c.table = table
	c.caps = caps
	c.facade.Bind(table)

	adapter := callback.NewAdapter(c.queue, c.deliverDrop)
	c.reg = callback.Register(table, adapter)
	logger.Debug("Callbacks registered", "accepted", c.reg.Accepted())
	return nil
}

// deliverDrop runs on the native thread.
func (c *Controller) deliverDrop(paths []string) {
	if !c.attached.Load() {
		logger.Debug("Ignoring drop while detached", "count", len(paths))
		return
	}
	c.observers.notify(events.FilesDropped{Paths: paths})
}

// Subscribe registers an observer and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	return c.observers.add(o)
}

// Attach binds the library if needed and tries every attach strategy, in
// order, for up to MaxAttempts passes. It never panics; failure leaves the
// controller in StatusFailed.
func (c *Controller) Attach() bool {
	if c.status == StatusAttached {
		return true
	}

	if err := c.Load(); err != nil {
		logger.Error("Cannot attach window", "error", err)
		c.status = StatusFailed
		return false
	}

	c.status = StatusAttaching
	strategies := c.table.AttachStrategies()

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		for _, s := range strategies {
			if s.Fn == nil {
				logger.Debug("Attach strategy unavailable", "strategy", s.Name, "attempt", attempt)
				continue
			}
			if s.Fn() {
				logger.Info("Window attached", "strategy", s.Name, "attempt", attempt)
				c.onAttached()
				return true
			}
			logger.Debug("Attach strategy failed", "strategy", s.Name, "attempt", attempt)
		}
		if attempt < c.opts.MaxAttempts && c.opts.Backoff != nil {
			c.opts.Backoff(attempt)
		}
	}

	logger.Error("Window attach failed", "attempts", c.opts.MaxAttempts)
	c.status = StatusFailed
	return false
}

func (c *Controller) onAttached() {
	c.status = StatusAttached
	c.queue.Initialize()
	c.facade.SetLive(true)
	c.attached.Store(true)
	c.facade.Apply()

	if c.facade.ShouldFitMonitor() {
		c.FitToMonitor(c.facade.MonitorToFit())
	}
}

// IsActive asks native whether the attached window is still alive.
func (c *Controller) IsActive() bool {
	if c.status != StatusAttached || c.table == nil {
		return false
	}
	return c.table.IsActive()
}

// Detach releases the window and discards undrained events. It is safe to
// call in any state.
func (c *Controller) Detach() {
	if c.status == StatusAttached {
		c.table.DetachWindow()
		logger.Info("Window detached")
	}
	c.attached.Store(false)
	c.facade.SetLive(false)
	c.queue.Cleanup()
	c.status = StatusDetached
}

// Close detaches, silences callbacks and unloads the library.
func (c *Controller) Close() error {
	c.Detach()
	if c.reg != nil {
		c.reg.Unregister()
		c.reg = nil
	}
	c.queue.Cleanup()
	c.facade.Bind(nil)
	c.table = nil
	c.caps = native.Capabilities{}
	if c.loader == nil {
		return nil
	}
	if err := c.loader.Unload(); err != nil {
		return fmt.Errorf("closing controller: %w", err)
	}
	return nil
}

// Drain dispatches the events queued at entry, oldest first, on the calling
// thread. It stops early when an observer empties the queue, e.g. by
// detaching. It returns the number of events dispatched.
func (c *Controller) Drain() int {
	pending := c.queue.Len()
	n := 0
	for n < pending {
		e, ok := c.queue.TryPop()
		if !ok {
			break
		}
		c.apply(e)
		c.observers.notify(e)
		n++
	}
	return n
}

func (c *Controller) apply(e events.Event) {
	switch ev := e.(type) {
	case events.Moved:
		c.facade.NoteMoved(ev.X, ev.Y)
	case events.Resized:
		c.facade.NoteResized(ev.Width, ev.Height)
	}
}

// Monitors lists the monitors the library reports right now.
func (c *Controller) Monitors() []display.Monitor {
	return display.List(c.facade)
}

// SetShouldFitMonitor stores the flag and fits immediately when it turns on
// while attached.
func (c *Controller) SetShouldFitMonitor(v bool) {
	c.facade.SetShouldFitMonitor(v)
	if v && c.status == StatusAttached {
		c.FitToMonitor(c.facade.MonitorToFit())
	}
}

// SetMonitorToFit stores the target and refits when fitting is enabled.
func (c *Controller) SetMonitorToFit(index int) {
	c.facade.SetMonitorToFit(index)
	if c.facade.ShouldFitMonitor() && c.status == StatusAttached {
		c.FitToMonitor(c.facade.MonitorToFit())
	}
}
