package controller

import (
	"sync"

	"github.com/bnema/uniwin/internal/events"
)

// Observer receives window notifications. FilesDropped arrives on the native
// callback thread; every other event arrives on the thread calling Drain.
type Observer interface {
	Notify(e events.Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(e events.Event)

func (f ObserverFunc) Notify(e events.Event) { f(e) }

type observerEntry struct {
	id int
	o  Observer
}

type observerList struct {
	mu      sync.RWMutex
	nextID  int
	entries []observerEntry
}

func (l *observerList) add(o Observer) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, observerEntry{id: id, o: o})

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *observerList) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// notify calls every observer outside the lock.
func (l *observerList) notify(e events.Event) {
	l.mu.RLock()
	snapshot := make([]Observer, len(l.entries))
	for i, entry := range l.entries {
		snapshot[i] = entry.o
	}
	l.mu.RUnlock()

	for _, o := range snapshot {
		o.Notify(e)
	}
}
