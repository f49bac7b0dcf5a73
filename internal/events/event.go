// Package events carries window notifications from native callback threads
// to the host thread.
package events

import "fmt"

// Kind identifies an event variant.
type Kind int

const (
	KindFilesDropped Kind = iota
	KindFocusChanged
	KindMoved
	KindResized
	KindMonitorChanged
)

func (k Kind) String() string {
	switch k {
	case KindFilesDropped:
		return "files-dropped"
	case KindFocusChanged:
		return "focus-changed"
	case KindMoved:
		return "moved"
	case KindResized:
		return "resized"
	case KindMonitorChanged:
		return "monitor-changed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a window notification. The set of variants is closed.
type Event interface {
	Kind() Kind
	event()
}

// FilesDropped is delivered synchronously from the native thread and never
// queued.
type FilesDropped struct {
	Paths []string
}

type FocusChanged struct {
	Focused bool
}

type Moved struct {
	X, Y float32
}

type Resized struct {
	Width, Height float32
}

type MonitorChanged struct {
	Index int
}

func (FilesDropped) Kind() Kind   { return KindFilesDropped }
func (FocusChanged) Kind() Kind   { return KindFocusChanged }
func (Moved) Kind() Kind          { return KindMoved }
func (Resized) Kind() Kind        { return KindResized }
func (MonitorChanged) Kind() Kind { return KindMonitorChanged }

func (FilesDropped) event()   {}
func (FocusChanged) event()   {}
func (Moved) event()          {}
func (Resized) event()        {}
func (MonitorChanged) event() {}

func (e FilesDropped) String() string {
	return fmt.Sprintf("files-dropped %d path(s)", len(e.Paths))
}

func (e FocusChanged) String() string {
	return fmt.Sprintf("focus-changed focused=%t", e.Focused)
}

func (e Moved) String() string {
	return fmt.Sprintf("moved (%.0f, %.0f)", e.X, e.Y)
}

func (e Resized) String() string {
	return fmt.Sprintf("resized %.0fx%.0f", e.Width, e.Height)
}

func (e MonitorChanged) String() string {
	return fmt.Sprintf("monitor-changed index=%d", e.Index)
}
