// Package display describes monitors as reported by the native library
package display

import (
	"fmt"

	"github.com/bnema/uniwin/internal/logger"
)

// Monitor is one physical display in the desktop coordinate space
type Monitor struct {
	Index   int
	X       float32 // Origin in global coordinate space
	Y       float32
	Width   float32
	Height  float32
	Primary bool
}

// Bounds returns the monitor's boundaries
func (m Monitor) Bounds() (x1, y1, x2, y2 float32) {
	return m.X, m.Y, m.X + m.Width, m.Y + m.Height
}

// Contains checks if a point is within this monitor
func (m Monitor) Contains(x, y float32) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Center returns the monitor's midpoint
func (m Monitor) Center() (x, y float32) {
	return m.X + m.Width/2, m.Y + m.Height/2
}

// CenteredOrigin returns the position that centres a window of the given
// size on this monitor.
func (m Monitor) CenteredOrigin(width, height float32) (x, y float32) {
	cx, cy := m.Center()
	return cx - width/2, cy - height/2
}

func (m Monitor) String() string {
	return fmt.Sprintf("#%d %.0fx%.0f+%.0f+%.0f", m.Index, m.Width, m.Height, m.X, m.Y)
}

// Source is anything that can report monitors live.
type Source interface {
	MonitorCount() int
	MonitorRect(index int) (Monitor, bool)
}

// List queries every monitor from src. Monitors whose rectangle cannot be
// read are skipped.
func List(src Source) []Monitor {
	count := src.MonitorCount()
	monitors := make([]Monitor, 0, count)
	for i := 0; i < count; i++ {
		m, ok := src.MonitorRect(i)
		if !ok {
			logger.Debug("Monitor rectangle unavailable", "index", i)
			continue
		}
		monitors = append(monitors, m)
	}
	determinePrimaryMonitor(monitors)
	return monitors
}

// MonitorAt returns the monitor containing the point
func MonitorAt(monitors []Monitor, x, y float32) (Monitor, bool) {
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return Monitor{}, false
}

// ClampIndex pins index into [0, count-1]. The second result is false when
// the index had to be moved. count must be positive.
func ClampIndex(index, count int) (int, bool) {
	switch {
	case index < 0:
		return 0, false
	case index >= count:
		return count - 1, false
	default:
		return index, true
	}
}

// determinePrimaryMonitor marks the monitor at (0,0) as primary, falling
// back to the first one
func determinePrimaryMonitor(monitors []Monitor) {
	for i := range monitors {
		monitors[i].Primary = false
	}
	for i := range monitors {
		if monitors[i].X == 0 && monitors[i].Y == 0 {
			monitors[i].Primary = true
			return
		}
	}
	if len(monitors) > 0 {
		monitors[0].Primary = true
	}
}
