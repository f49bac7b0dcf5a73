package controller

import (
	"fmt"

	"github.com/bnema/uniwin/internal/native"
)

// fakeWindow is a scripted native library backed by plain Go functions.
type fakeWindow struct {
	calls []string

	attachResults map[string]bool
	attachCalls   map[string]int
	missing       map[string]bool

	x, y, w, h float32
	maximized  bool
	// honourMaximize controls whether SetMaximized(true) sticks.
	honourMaximize bool
	// drift is added to geometry reads after the fallback.
	drift float32

	monitors     [][4]float32
	cursorX      float32
	cursorY      float32
	clickThrough []bool

	moved   native.WindowMovedFunc
	resized native.WindowResizedFunc
	focus   native.FocusChangedFunc
	drop    native.DropFilesFunc
	detaches int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		attachResults:  map[string]bool{},
		attachCalls:    map[string]int{},
		missing:        map[string]bool{},
		honourMaximize: true,
	}
}

func (f *fakeWindow) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeWindow) strategy(name string) func() bool {
	if f.missing[name] {
		return nil
	}
	return func() bool {
		f.attachCalls[name]++
		return f.attachResults[name]
	}
}

func (f *fakeWindow) table() *native.Table {
	return &native.Table{
		IsActive:             func() bool { return true },
		AttachMyWindow:       f.strategy("AttachMyWindow"),
		AttachMyActiveWindow: f.strategy("AttachMyActiveWindow"),
		AttachMyOwnerWindow:  f.strategy("AttachMyOwnerWindow"),
		DetachWindow:         func() { f.detaches++ },

		SetTopmost:      func(v bool) { f.record("SetTopmost(%t)", v) },
		SetClickThrough: func(v bool) { f.clickThrough = append(f.clickThrough, v) },
		SetAlphaValue:   func(v float32) { f.record("SetAlphaValue(%.2f)", v) },
		SetMaximized: func(v bool) {
			f.record("SetMaximized(%t)", v)
			if !v || f.honourMaximize {
				f.maximized = v
			}
		},
		IsMaximized: func() bool { return f.maximized },
		SetPosition: func(x, y float32) {
			f.record("SetPosition(%.0f,%.0f)", x, y)
			f.x, f.y = x, y
		},
		GetPosition: func(x, y *float32) { *x, *y = f.x+f.drift, f.y+f.drift },
		SetSize: func(w, h float32) {
			f.record("SetSize(%.0f,%.0f)", w, h)
			f.w, f.h = w, h
		},
		GetSize:         func(w, h *float32) { *w, *h = f.w-f.drift, f.h-f.drift },
		GetMonitorCount: func() int32 { return int32(len(f.monitors)) },
		GetMonitorRectangle: func(i int32, x, y, w, h *float32) {
			m := f.monitors[i]
			*x, *y, *w, *h = m[0], m[1], m[2], m[3]
		},
		GetCursorPosition: func(x, y *float32) { *x, *y = f.cursorX, f.cursorY },

		RegisterWindowMoved:   func(cb native.WindowMovedFunc) bool { f.moved = cb; return true },
		RegisterWindowResized: func(cb native.WindowResizedFunc) bool { f.resized = cb; return true },
		RegisterFocusChanged:  func(cb native.FocusChangedFunc) bool { f.focus = cb; return true },
		RegisterDropFiles:     func(cb native.DropFilesFunc) bool { f.drop = cb; return true },
	}
}

type fakeLoader struct {
	table   *native.Table
	err     error
	loads   int
	unloads int
}

func (l *fakeLoader) Load(string, string) (*native.Table, native.Capabilities, error) {
	l.loads++
	if l.err != nil {
		return nil, native.Capabilities{}, l.err
	}
	return l.table, native.Capabilities{}, nil
}

func (l *fakeLoader) Unload() error {
	l.unloads++
	return nil
}
