package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/uniwin/internal/events"
)

// LogEntry represents a single log entry with timestamp and content
type LogEntry struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// EventLog keeps the most recent window events. It is safe for concurrent
// use because drop notifications arrive on the native thread.
type EventLog struct {
	mu      sync.Mutex
	entries []LogEntry
	max     int
	now     func() time.Time
}

func NewEventLog(max int) *EventLog {
	if max <= 0 {
		max = 50
	}
	return &EventLog{max: max, now: time.Now}
}

// Notify records an event. It satisfies controller.Observer.
func (l *EventLog) Notify(e events.Event) {
	level := "INFO"
	msg := fmt.Sprint(e)
	if d, ok := e.(events.FilesDropped); ok {
		msg = "files dropped: " + strings.Join(d.Paths, ", ")
	}
	if e.Kind() == events.KindMoved || e.Kind() == events.KindResized {
		level = "DEBUG"
	}
	l.Add(level, msg)
}

// Add appends a free-form entry.
func (l *EventLog) Add(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Timestamp: l.now(), Level: level, Message: message})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
