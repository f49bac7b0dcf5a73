// Package callback turns native window callbacks into events. It is the only
// code that runs on native callback threads.
package callback

import (
	"sync/atomic"

	"github.com/bnema/uniwin/internal/events"
	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/native"
)

// Adapter converts raw callback arguments into events. Queued kinds go to
// the queue; dropped files go straight to onDrop on the calling thread.
type Adapter struct {
	queue  *events.Queue
	onDrop func(paths []string)
}

func NewAdapter(queue *events.Queue, onDrop func(paths []string)) *Adapter {
	return &Adapter{queue: queue, onDrop: onDrop}
}

// HandleDrop parses a drop payload and delivers the paths. An empty result is
// logged and nothing is emitted.
func (a *Adapter) HandleDrop(payload string) {
	paths := ParseDropPayload(payload)
	if len(paths) == 0 {
		logger.Warn("Drop payload contained no paths", "bytes", len(payload))
		return
	}
	if a.onDrop != nil {
		a.onDrop(paths)
	}
}

func (a *Adapter) HandleFocus(focused bool) {
	a.queue.Push(events.FocusChanged{Focused: focused})
}

func (a *Adapter) HandleMoved(x, y float32) {
	a.queue.Push(events.Moved{X: x, Y: y})
}

func (a *Adapter) HandleResized(width, height float32) {
	a.queue.Push(events.Resized{Width: width, Height: height})
}

func (a *Adapter) HandleMonitorChanged(index int) {
	a.queue.Push(events.MonitorChanged{Index: index})
}

// Registration ties native trampolines to an adapter. After Unregister the
// trampolines stay installed but forward nothing.
type Registration struct {
	target   atomic.Pointer[Adapter]
	accepted map[events.Kind]bool
}

// Register installs a trampoline for every callback kind the table can
// register and records which ones the native side accepted.
func Register(table *native.Table, a *Adapter) *Registration {
	r := &Registration{accepted: make(map[events.Kind]bool)}
	r.target.Store(a)
	if table == nil {
		return r
	}

	if table.RegisterDropFiles != nil {
		r.accepted[events.KindFilesDropped] = table.RegisterDropFiles(r.dropFiles)
	}
	if table.RegisterFocusChanged != nil {
		r.accepted[events.KindFocusChanged] = table.RegisterFocusChanged(func(focused bool) {
			if t := r.target.Load(); t != nil {
				t.HandleFocus(focused)
			}
		})
	}
	if table.RegisterWindowMoved != nil {
		r.accepted[events.KindMoved] = table.RegisterWindowMoved(func(x, y float32) {
			if t := r.target.Load(); t != nil {
				t.HandleMoved(x, y)
			}
		})
	}
	if table.RegisterWindowResized != nil {
		r.accepted[events.KindResized] = table.RegisterWindowResized(func(w, h float32) {
			if t := r.target.Load(); t != nil {
				t.HandleResized(w, h)
			}
		})
	}
	if table.RegisterMonitorChanged != nil {
		r.accepted[events.KindMonitorChanged] = table.RegisterMonitorChanged(func(index int) {
			if t := r.target.Load(); t != nil {
				t.HandleMonitorChanged(index)
			}
		})
	}

	for kind, ok := range r.accepted {
		if !ok {
			logger.Debug("Native library rejected callback", "kind", kind)
		}
	}
	return r
}

func (r *Registration) dropFiles(paths *native.Wchar) {
	t := r.target.Load()
	if t == nil {
		return
	}
	payload, err := native.WideString(paths)
	if err != nil {
		logger.Warn("Could not decode drop payload", "error", err)
		return
	}
	t.HandleDrop(payload)
}

// Accepts reports whether the native library accepted the callback kind.
func (r *Registration) Accepts(kind events.Kind) bool {
	return r.accepted[kind]
}

// Accepted lists accepted kinds in declaration order.
func (r *Registration) Accepted() []events.Kind {
	var kinds []events.Kind
	for _, k := range []events.Kind{
		events.KindFilesDropped, events.KindFocusChanged, events.KindMoved,
		events.KindResized, events.KindMonitorChanged,
	} {
		if r.accepted[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Unregister detaches the adapter. It is safe to call more than once and
// races only with callbacks that have already loaded the target.
func (r *Registration) Unregister() {
	r.target.Store(nil)
}

// Active reports whether callbacks are still forwarded.
func (r *Registration) Active() bool {
	return r.target.Load() != nil
}
