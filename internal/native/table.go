package native

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Callback signatures handed to the native registration functions. They run
// on whatever thread the native library fires them from.
type (
	DropFilesFunc      func(paths *Wchar)
	FocusChangedFunc   func(focused bool)
	WindowMovedFunc    func(x, y float32)
	WindowResizedFunc  func(width, height float32)
	MonitorChangedFunc func(index int)
)

// Table is the resolved native function table. Every slot is nil when the
// loaded library does not export the matching symbol; callers check the slot
// before calling it.
type Table struct {
	// core
	IsActive       func() bool
	AttachMyWindow func() bool
	DetachWindow   func()

	// secondary attach strategies
	AttachMyActiveWindow func() bool
	AttachMyOwnerWindow  func() bool

	// state
	IsTransparent   func() bool
	IsBorderless    func() bool
	IsTopmost       func() bool
	IsBottommost    func() bool
	IsMaximized     func() bool
	IsMinimized     func() bool
	SetTransparent  func(bool)
	SetBorderless   func(bool)
	SetTopmost      func(bool)
	SetBottommost   func(bool)
	SetAlphaValue   func(float32)
	SetClickThrough func(bool)
	SetMaximized    func(bool)
	MinimizeWindow  func()
	MaximizeWindow  func()
	RestoreWindow   func()

	// geometry
	SetPosition   func(x, y float32)
	GetPosition   func(x, y *float32)
	SetSize       func(width, height float32)
	GetSize       func(width, height *float32)
	GetClientSize func(width, height *float32)

	// monitors
	GetMonitorCount     func() int32
	GetMonitorRectangle func(index int32, x, y, width, height *float32)
	GetCurrentMonitor   func() int32

	// input
	GetCursorPosition func(x, y *float32)
	SetCursorPosition func(x, y float32)
	GetMouseButtons   func() int32
	GetModifierKeys   func() int32

	// drop
	SetAllowDrop func(bool)

	// callback registration
	RegisterDropFiles      func(cb DropFilesFunc) bool
	RegisterFocusChanged   func(cb FocusChangedFunc) bool
	RegisterWindowMoved    func(cb WindowMovedFunc) bool
	RegisterWindowResized  func(cb WindowResizedFunc) bool
	RegisterMonitorChanged func(cb MonitorChangedFunc) bool

	// file panels
	OpenFilePanel func(settings unsafe.Pointer, buf *byte, size int32) bool
	SaveFilePanel func(settings unsafe.Pointer, buf *byte, size int32) bool
}

// Capability groups, in report order.
const (
	GroupCore      = "core"
	GroupAttach    = "attach"
	GroupState     = "state"
	GroupGeometry  = "geometry"
	GroupMonitor   = "monitor"
	GroupInput     = "input"
	GroupDrop      = "drop"
	GroupCallbacks = "callbacks"
	GroupPanels    = "panels"
)

var groupOrder = []string{
	GroupCore, GroupAttach, GroupState, GroupGeometry, GroupMonitor,
	GroupInput, GroupDrop, GroupCallbacks, GroupPanels,
}

type symbol struct {
	name     string
	group    string
	required bool
	bind     func(t *Table, addr uintptr)
}

// symbols lists every export the wrapper knows about, with the slot it fills.
var symbols = []symbol{
	{"IsActive", GroupCore, true, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsActive, a) }},
	{"AttachMyWindow", GroupCore, true, func(t *Table, a uintptr) { purego.RegisterFunc(&t.AttachMyWindow, a) }},
	{"DetachWindow", GroupCore, true, func(t *Table, a uintptr) { purego.RegisterFunc(&t.DetachWindow, a) }},

	{"AttachMyActiveWindow", GroupAttach, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.AttachMyActiveWindow, a) }},
	{"AttachMyOwnerWindow", GroupAttach, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.AttachMyOwnerWindow, a) }},

	{"IsTransparent", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsTransparent, a) }},
	{"IsBorderless", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsBorderless, a) }},
	{"IsTopmost", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsTopmost, a) }},
	{"IsBottommost", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsBottommost, a) }},
	{"IsMaximized", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsMaximized, a) }},
	{"IsMinimized", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.IsMinimized, a) }},
	{"SetTransparent", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetTransparent, a) }},
	{"SetBorderless", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetBorderless, a) }},
	{"SetTopmost", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetTopmost, a) }},
	{"SetBottommost", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetBottommost, a) }},
	{"SetAlphaValue", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetAlphaValue, a) }},
	{"SetClickThrough", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetClickThrough, a) }},
	{"SetMaximized", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetMaximized, a) }},
	{"MinimizeWindow", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.MinimizeWindow, a) }},
	{"MaximizeWindow", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.MaximizeWindow, a) }},
	{"RestoreWindow", GroupState, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.RestoreWindow, a) }},

	{"SetPosition", GroupGeometry, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetPosition, a) }},
	{"GetPosition", GroupGeometry, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetPosition, a) }},
	{"SetSize", GroupGeometry, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetSize, a) }},
	{"GetSize", GroupGeometry, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetSize, a) }},
	{"GetClientSize", GroupGeometry, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetClientSize, a) }},

	{"GetMonitorCount", GroupMonitor, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetMonitorCount, a) }},
	{"GetMonitorRectangle", GroupMonitor, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetMonitorRectangle, a) }},
	{"GetCurrentMonitor", GroupMonitor, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetCurrentMonitor, a) }},

	{"GetCursorPosition", GroupInput, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetCursorPosition, a) }},
	{"SetCursorPosition", GroupInput, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetCursorPosition, a) }},
	{"GetMouseButtons", GroupInput, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetMouseButtons, a) }},
	{"GetModifierKeys", GroupInput, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.GetModifierKeys, a) }},

	{"SetAllowDrop", GroupDrop, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SetAllowDrop, a) }},
	{"RegisterDropFilesCallback", GroupDrop, false, bindDropFiles},

	{"RegisterWindowStyleChangedCallback", GroupCallbacks, false, bindFocusChanged},
	{"RegisterWindowMovedCallback", GroupCallbacks, false, bindWindowMoved},
	{"RegisterWindowResizedCallback", GroupCallbacks, false, bindWindowResized},
	{"RegisterMonitorChangedCallback", GroupCallbacks, false, bindMonitorChanged},

	{"OpenFilePanel", GroupPanels, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.OpenFilePanel, a) }},
	{"SaveFilePanel", GroupPanels, false, func(t *Table, a uintptr) { purego.RegisterFunc(&t.SaveFilePanel, a) }},
}

// Each registration builds a C trampoline with purego.NewCallback. purego
// never frees trampolines, so a Table should register each kind once per
// session. Trampolines return one uintptr, which Windows requires of every
// callback; the native side declares them void and ignores it.

func dropFilesTrampoline(cb DropFilesFunc) func(paths *Wchar) uintptr {
	return func(paths *Wchar) uintptr {
		cb(paths)
		return 0
	}
}

// C bool arrives in the low byte of an integer register.
func focusChangedTrampoline(cb FocusChangedFunc) func(focused uintptr) uintptr {
	return func(focused uintptr) uintptr {
		cb(focused&0xff != 0)
		return 0
	}
}

func windowMovedTrampoline(cb WindowMovedFunc) func(x, y float32) uintptr {
	return func(x, y float32) uintptr {
		cb(x, y)
		return 0
	}
}

func windowResizedTrampoline(cb WindowResizedFunc) func(width, height float32) uintptr {
	return func(width, height float32) uintptr {
		cb(width, height)
		return 0
	}
}

func monitorChangedTrampoline(cb MonitorChangedFunc) func(index uintptr) uintptr {
	return func(index uintptr) uintptr {
		cb(int(int32(uint32(index))))
		return 0
	}
}

func bindDropFiles(t *Table, addr uintptr) {
	var register func(cb uintptr) bool
	purego.RegisterFunc(&register, addr)
	t.RegisterDropFiles = func(cb DropFilesFunc) bool {
		return register(purego.NewCallback(dropFilesTrampoline(cb)))
	}
}

func bindFocusChanged(t *Table, addr uintptr) {
	var register func(cb uintptr) bool
	purego.RegisterFunc(&register, addr)
	t.RegisterFocusChanged = func(cb FocusChangedFunc) bool {
		return register(purego.NewCallback(focusChangedTrampoline(cb)))
	}
}

func bindWindowMoved(t *Table, addr uintptr) {
	var register func(cb uintptr) bool
	purego.RegisterFunc(&register, addr)
	t.RegisterWindowMoved = func(cb WindowMovedFunc) bool {
		return register(purego.NewCallback(windowMovedTrampoline(cb)))
	}
}

func bindWindowResized(t *Table, addr uintptr) {
	var register func(cb uintptr) bool
	purego.RegisterFunc(&register, addr)
	t.RegisterWindowResized = func(cb WindowResizedFunc) bool {
		return register(purego.NewCallback(windowResizedTrampoline(cb)))
	}
}

func bindMonitorChanged(t *Table, addr uintptr) {
	var register func(cb uintptr) bool
	purego.RegisterFunc(&register, addr)
	t.RegisterMonitorChanged = func(cb MonitorChangedFunc) bool {
		return register(purego.NewCallback(monitorChangedTrampoline(cb)))
	}
}

// AttachStrategy is one named way of attaching to the host window.
type AttachStrategy struct {
	Name string
	Fn   func() bool
}

// AttachStrategies returns the attach strategies in the order they should be
// tried. Absent strategies are returned with a nil Fn so callers see the
// full list.
func (t *Table) AttachStrategies() []AttachStrategy {
	return []AttachStrategy{
		{Name: "AttachMyWindow", Fn: t.AttachMyWindow},
		{Name: "AttachMyActiveWindow", Fn: t.AttachMyActiveWindow},
		{Name: "AttachMyOwnerWindow", Fn: t.AttachMyOwnerWindow},
	}
}
