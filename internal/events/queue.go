package events

import "sync"

// Queue is an unbounded FIFO shared between any number of producer threads
// and one consumer. The mutex guards the slice only; nothing else runs under
// it.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	active bool
}

// NewQueue returns an inactive queue. Call Initialize before pushing.
func NewQueue() *Queue {
	return &Queue{}
}

// Initialize starts a session. It is a no-op on an active queue; on an
// inactive one it discards anything left from a previous session.
func (q *Queue) Initialize() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.active {
		return
	}
	q.items = nil
	q.active = true
}

// Cleanup ends the session and drops pending events. Later pushes are
// ignored until the next Initialize.
func (q *Queue) Cleanup() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.active = false
}

// Active reports whether the queue accepts pushes.
func (q *Queue) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Push appends e. It silently drops the event when the queue is inactive.
func (q *Queue) Push(e Event) {
	if e == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.active {
		return
	}
	q.items = append(q.items, e)
}

// TryPop removes and returns the oldest event.
func (q *Queue) TryPop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	e := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return e, true
}

func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear discards pending events without ending the session.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}
