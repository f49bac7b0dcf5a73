// Package window keeps the cached window intent and forwards it to the
// native library when a window is attached.
package window

import (
	"github.com/bnema/uniwin/internal/display"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/native"
)

// Facade is the host-thread view of window state. Setters always update the
// cache and forward to native only when the matching slot exists and the
// facade is live. Getters prefer native when possible.
type Facade struct {
	table *native.Table
	live  bool
	state State

	positionSet bool
	sizeSet     bool
}

// NewFacade creates a facade with the given initial intent. table may be nil
// until a library is loaded.
func NewFacade(table *native.Table, initial State) *Facade {
	return &Facade{table: table, state: initial.Normalize()}
}

// Bind swaps the native table. The facade goes offline.
func (f *Facade) Bind(table *native.Table) {
	f.table = table
	f.live = false
}

// SetLive marks whether a window is attached.
func (f *Facade) SetLive(live bool) {
	f.live = live
}

func (f *Facade) Live() bool {
	return f.live && f.table != nil
}

// State returns a copy of the cached intent.
func (f *Facade) State() State {
	return f.state
}

func (f *Facade) t() *native.Table {
	if !f.Live() {
		return nil
	}
	return f.table
}

// Apply re-sends the cached intent to native. It is a no-op while offline.
func (f *Facade) Apply() {
	t := f.t()
	if t == nil {
		return
	}
	s := f.state
	logger.Debug("Applying window state",
		"transparent", s.Transparent, "borderless", s.Borderless,
		"topmost", s.Topmost, "bottommost", s.Bottommost,
		"clickthrough", s.ClickThrough, "alpha", s.Alpha)

	callBool(t.SetTransparent, s.Transparent)
	callBool(t.SetBorderless, s.Borderless)
	callBool(t.SetTopmost, s.Topmost)
	callBool(t.SetBottommost, s.Bottommost)
	callBool(t.SetClickThrough, s.ClickThrough)
	callBool(t.SetAllowDrop, s.AllowDropFiles)
	if t.SetAlphaValue != nil {
		t.SetAlphaValue(s.Alpha)
	}
	if f.sizeSet && t.SetSize != nil {
		t.SetSize(s.Width, s.Height)
	}
	if f.positionSet && t.SetPosition != nil {
		t.SetPosition(s.X, s.Y)
	}
	if s.Zoomed {
		callBool(t.SetMaximized, true)
	}
}

func callBool(fn func(bool), v bool) {
	if fn != nil {
		fn(v)
	}
}

func readBool(fn func() bool, cached bool) bool {
	if fn != nil {
		return fn()
	}
	return cached
}

func (f *Facade) SetTransparent(v bool) {
	f.state.Transparent = v
	if t := f.t(); t != nil {
		callBool(t.SetTransparent, v)
	}
}

func (f *Facade) Transparent() bool {
	if t := f.t(); t != nil {
		return readBool(t.IsTransparent, f.state.Transparent)
	}
	return f.state.Transparent
}

func (f *Facade) SetBorderless(v bool) {
	f.state.Borderless = v
	if t := f.t(); t != nil {
		callBool(t.SetBorderless, v)
	}
}

func (f *Facade) Borderless() bool {
	if t := f.t(); t != nil {
		return readBool(t.IsBorderless, f.state.Borderless)
	}
	return f.state.Borderless
}

func (f *Facade) SetTopmost(v bool) {
	f.state.Topmost = v
	if t := f.t(); t != nil {
		callBool(t.SetTopmost, v)
	}
}

func (f *Facade) Topmost() bool {
	if t := f.t(); t != nil {
		return readBool(t.IsTopmost, f.state.Topmost)
	}
	return f.state.Topmost
}

func (f *Facade) SetBottommost(v bool) {
	f.state.Bottommost = v
	if t := f.t(); t != nil {
		callBool(t.SetBottommost, v)
	}
}

func (f *Facade) Bottommost() bool {
	if t := f.t(); t != nil {
		return readBool(t.IsBottommost, f.state.Bottommost)
	}
	return f.state.Bottommost
}

// SetClickThrough has no native getter; reads always come from the cache.
func (f *Facade) SetClickThrough(v bool) {
	f.state.ClickThrough = v
	if t := f.t(); t != nil {
		callBool(t.SetClickThrough, v)
	}
}

func (f *Facade) ClickThrough() bool {
	return f.state.ClickThrough
}

func (f *Facade) SetZoomed(v bool) {
	f.state.Zoomed = v
	if t := f.t(); t != nil {
		callBool(t.SetMaximized, v)
	}
}

// NoteZoomed records the zoom state without telling native.
func (f *Facade) NoteZoomed(v bool) {
	f.state.Zoomed = v
}

func (f *Facade) Zoomed() bool {
	if t := f.t(); t != nil {
		return readBool(t.IsMaximized, f.state.Zoomed)
	}
	return f.state.Zoomed
}

// Maximized asks native directly and never falls back to the cache.
func (f *Facade) Maximized() bool {
	if t := f.t(); t != nil && t.IsMaximized != nil {
		return t.IsMaximized()
	}
	return false
}

func (f *Facade) Minimized() bool {
	if t := f.t(); t != nil && t.IsMinimized != nil {
		return t.IsMinimized()
	}
	return false
}

// SetAlpha clamps into [0,1] before caching and forwarding.
func (f *Facade) SetAlpha(v float32) {
	f.state.Alpha = clamp01(v)
	if t := f.t(); t != nil && t.SetAlphaValue != nil {
		t.SetAlphaValue(f.state.Alpha)
	}
}

func (f *Facade) Alpha() float32 {
	return f.state.Alpha
}

func (f *Facade) SetAllowDropFiles(v bool) {
	f.state.AllowDropFiles = v
	if t := f.t(); t != nil {
		callBool(t.SetAllowDrop, v)
	}
}

func (f *Facade) AllowDropFiles() bool {
	return f.state.AllowDropFiles
}

func (f *Facade) SetPosition(x, y float32) {
	f.state.X, f.state.Y = x, y
	f.positionSet = true
	if t := f.t(); t != nil && t.SetPosition != nil {
		t.SetPosition(x, y)
	}
}

func (f *Facade) Position() (x, y float32) {
	if t := f.t(); t != nil && t.GetPosition != nil {
		t.GetPosition(&x, &y)
		return x, y
	}
	return f.state.X, f.state.Y
}

func (f *Facade) SetSize(width, height float32) {
	f.state.Width, f.state.Height = width, height
	f.sizeSet = true
	if t := f.t(); t != nil && t.SetSize != nil {
		t.SetSize(width, height)
	}
}

func (f *Facade) Size() (width, height float32) {
	if t := f.t(); t != nil && t.GetSize != nil {
		t.GetSize(&width, &height)
		return width, height
	}
	return f.state.Width, f.state.Height
}

// ClientSize returns the drawable area, or the window size when native
// cannot report it.
func (f *Facade) ClientSize() (width, height float32) {
	if t := f.t(); t != nil && t.GetClientSize != nil {
		t.GetClientSize(&width, &height)
		return width, height
	}
	return f.Size()
}

// NoteMoved records a position reported by a native event without echoing
// it back.
func (f *Facade) NoteMoved(x, y float32) {
	f.state.X, f.state.Y = x, y
}

// NoteResized records a size reported by a native event.
func (f *Facade) NoteResized(width, height float32) {
	f.state.Width, f.state.Height = width, height
}

func (f *Facade) Minimize() {
	if t := f.t(); t != nil && t.MinimizeWindow != nil {
		t.MinimizeWindow()
	}
}

func (f *Facade) Maximize() {
	if t := f.t(); t != nil && t.MaximizeWindow != nil {
		t.MaximizeWindow()
		f.state.Zoomed = true
	}
}

func (f *Facade) Restore() {
	if t := f.t(); t != nil && t.RestoreWindow != nil {
		t.RestoreWindow()
		f.state.Zoomed = false
	}
}

// Monitor and input queries describe the desktop, not the attached window,
// so they work as soon as a library is bound.

// MonitorCount is read live on every call. It is 0 when the library cannot
// report monitors.
func (f *Facade) MonitorCount() int {
	if f.table == nil || f.table.GetMonitorCount == nil {
		return 0
	}
	return int(f.table.GetMonitorCount())
}

// MonitorRect reads the rectangle of monitor index.
func (f *Facade) MonitorRect(index int) (display.Monitor, bool) {
	if f.table == nil || f.table.GetMonitorRectangle == nil {
		return display.Monitor{}, false
	}
	m := display.Monitor{Index: index}
	f.table.GetMonitorRectangle(int32(index), &m.X, &m.Y, &m.Width, &m.Height)
	return m, true
}

// CurrentMonitor returns the monitor holding the window, or -1.
func (f *Facade) CurrentMonitor() int {
	if t := f.t(); t != nil && t.GetCurrentMonitor != nil {
		return int(t.GetCurrentMonitor())
	}
	return -1
}

func (f *Facade) CursorPosition() (x, y float32, ok bool) {
	if f.table == nil || f.table.GetCursorPosition == nil {
		return 0, 0, false
	}
	f.table.GetCursorPosition(&x, &y)
	return x, y, true
}

func (f *Facade) SetCursorPosition(x, y float32) {
	if f.table != nil && f.table.SetCursorPosition != nil {
		f.table.SetCursorPosition(x, y)
	}
}

// MouseButtons returns the native button bit mask.
func (f *Facade) MouseButtons() int {
	if f.table == nil || f.table.GetMouseButtons == nil {
		return 0
	}
	return int(f.table.GetMouseButtons())
}

// ModifierKeys returns the native modifier bit mask.
func (f *Facade) ModifierKeys() int {
	if f.table == nil || f.table.GetModifierKeys == nil {
		return 0
	}
	return int(f.table.GetModifierKeys())
}

func (f *Facade) SetTransparentType(v TransparentType) { f.state.TransparentType = v }
func (f *Facade) TransparentType() TransparentType    { return f.state.TransparentType }
func (f *Facade) SetHitTestType(v HitTestType)         { f.state.HitTestType = v }
func (f *Facade) HitTestType() HitTestType             { return f.state.HitTestType }
func (f *Facade) SetHitTestEnabled(v bool)             { f.state.HitTestEnabled = v }
func (f *Facade) HitTestEnabled() bool                 { return f.state.HitTestEnabled }
func (f *Facade) SetKeyColor(c Color)                  { f.state.KeyColor = c }
func (f *Facade) KeyColor() Color                      { return f.state.KeyColor }
func (f *Facade) SetShouldFitMonitor(v bool)           { f.state.ShouldFitMonitor = v }
func (f *Facade) ShouldFitMonitor() bool               { return f.state.ShouldFitMonitor }

func (f *Facade) SetOpacityThreshold(v float32) {
	f.state.OpacityThreshold = clamp01(v)
}

func (f *Facade) OpacityThreshold() float32 {
	return f.state.OpacityThreshold
}

// SetMonitorToFit stores the index as given; it is clamped against the live
// monitor count when a fit runs.
func (f *Facade) SetMonitorToFit(index int) {
	if index < 0 {
		index = 0
	}
	f.state.MonitorToFit = index
}

func (f *Facade) MonitorToFit() int {
	return f.state.MonitorToFit
}
