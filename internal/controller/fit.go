package controller

import (
	"fmt"

	"github.com/bnema/uniwin/internal/display"
	"github.com/bnema/uniwin/internal/logger"
)

// FitOutcome describes how a fit ended.
type FitOutcome int

const (
	// FitAborted means nothing was changed.
	FitAborted FitOutcome = iota
	// FitMaximized means the window reports maximized on the target monitor.
	FitMaximized
	// FitFallback means maximize did not stick and the window was sized to
	// the monitor rectangle within tolerance.
	FitFallback
	// FitMismatch means the fallback geometry did not land within
	// tolerance.
	FitMismatch
)

func (o FitOutcome) String() string {
	switch o {
	case FitAborted:
		return "aborted"
	case FitMaximized:
		return "maximized"
	case FitFallback:
		return "fallback"
	case FitMismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("fit(%d)", int(o))
	}
}

// FitResult reports a fit. X, Y, Width and Height are the geometry read back
// after the fallback; they are zero for other outcomes.
type FitResult struct {
	Outcome   FitOutcome
	Requested int
	Monitor   display.Monitor
	Reason    string

	X, Y          float32
	Width, Height float32
}

// FitToMonitor centres the window on monitor index and maximizes it there.
// An out-of-range index is clamped. When maximize cannot be verified the
// window is placed on the monitor's rectangle instead.
func (c *Controller) FitToMonitor(index int) FitResult {
	res := FitResult{Requested: index}
	if c.status != StatusAttached {
		res.Reason = "window not attached"
		logger.Warn("Cannot fit window", "reason", res.Reason)
		return res
	}

	f := c.facade
	count := f.MonitorCount()
	if count <= 0 {
		res.Reason = "no monitors reported"
		logger.Warn("Cannot fit window", "reason", res.Reason)
		return res
	}

	target, inRange := display.ClampIndex(index, count)
	if !inRange {
		logger.Warn("Monitor index out of range, clamping", "requested", index, "count", count, "using", target)
	}

	m, ok := f.MonitorRect(target)
	if !ok {
		res.Reason = "monitor rectangle unavailable"
		logger.Warn("Cannot fit window", "reason", res.Reason, "monitor", target)
		return res
	}
	res.Monitor = m

	if f.Maximized() {
		f.SetZoomed(false)
	}

	w, h := f.Size()
	x, y := m.CenteredOrigin(w, h)
	f.SetPosition(x, y)

	f.SetZoomed(true)
	if f.Maximized() {
		res.Outcome = FitMaximized
		logger.Info("Window fitted to monitor", "monitor", m.Index, "mode", "maximized")
		return res
	}

	logger.Debug("Maximize not confirmed, falling back to monitor bounds", "monitor", m.Index)
	f.NoteZoomed(false)
	f.SetPosition(m.X, m.Y)
	f.SetSize(m.Width, m.Height)

	res.X, res.Y = f.Position()
	res.Width, res.Height = f.Size()

	tol := c.opts.Tolerance
	if within(res.X, m.X, tol) && within(res.Y, m.Y, tol) &&
		within(res.Width, m.Width, tol) && within(res.Height, m.Height, tol) {
		res.Outcome = FitFallback
		logger.Info("Window fitted to monitor", "monitor", m.Index, "mode", "bounds")
		return res
	}

	res.Outcome = FitMismatch
	res.Reason = "window geometry outside tolerance"
	logger.Warn("Window fit mismatch",
		"monitor", m.String(),
		"position", fmt.Sprintf("%.0f,%.0f", res.X, res.Y),
		"size", fmt.Sprintf("%.0fx%.0f", res.Width, res.Height),
		"tolerance", tol)
	return res
}

func within(got, want, tol float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}
