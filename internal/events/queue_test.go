package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainAll(q *Queue) []Event {
	var out []Event
	for {
		e, ok := q.TryPop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Initialize()

	e1 := Moved{X: 1, Y: 2}
	e2 := FocusChanged{Focused: true}
	e3 := Resized{Width: 640, Height: 480}
	q.Push(e1)
	q.Push(e2)
	q.Push(e3)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []Event{e1, e2, e3}, drainAll(q))
	assert.True(t, q.IsEmpty())

	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestQueue_ClearEmpties(t *testing.T) {
	q := NewQueue()
	q.Initialize()
	q.Push(Moved{})
	q.Push(MonitorChanged{Index: 1})

	q.Clear()
	assert.True(t, q.IsEmpty())
	_, ok := q.TryPop()
	assert.False(t, ok)

	q.Push(Moved{X: 5})
	assert.Equal(t, 1, q.Len(), "clear keeps the session active")
}

func TestQueue_PushWhileInactiveIsDropped(t *testing.T) {
	q := NewQueue()
	q.Push(Moved{X: 1})
	assert.True(t, q.IsEmpty(), "push before initialize")

	q.Initialize()
	q.Push(Moved{X: 2})
	q.Cleanup()
	assert.True(t, q.IsEmpty())
	assert.False(t, q.Active())

	q.Push(Moved{X: 3})
	assert.True(t, q.IsEmpty(), "push after cleanup")
}

func TestQueue_InitializeTwiceKeepsContents(t *testing.T) {
	q := NewQueue()
	q.Initialize()
	q.Push(FocusChanged{Focused: false})
	q.Initialize()
	assert.Equal(t, 1, q.Len())
}

func TestQueue_ReinitializeStartsClean(t *testing.T) {
	q := NewQueue()
	q.Initialize()
	q.Push(FocusChanged{Focused: true})
	q.Cleanup()
	q.Initialize()
	assert.True(t, q.IsEmpty())
	assert.True(t, q.Active())
}

func TestQueue_NilEventIgnored(t *testing.T) {
	q := NewQueue()
	q.Initialize()
	q.Push(nil)
	assert.True(t, q.IsEmpty())
}

func TestQueue_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	q := NewQueue()
	q.Initialize()

	const producers = 8
	const perProducer = 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Moved{X: float32(p), Y: float32(i)})
			}
		}(p)
	}
	wg.Wait()

	events := drainAll(q)
	require.Len(t, events, producers*perProducer)

	last := make(map[float32]float32)
	for p := 0; p < producers; p++ {
		last[float32(p)] = -1
	}
	for _, e := range events {
		m, ok := e.(Moved)
		require.True(t, ok)
		assert.Greater(t, m.Y, last[m.X], "producer %v out of order", m.X)
		last[m.X] = m.Y
	}
}

func TestEvent_Kinds(t *testing.T) {
	tests := []struct {
		event Event
		kind  Kind
		name  string
	}{
		{FilesDropped{Paths: []string{"a"}}, KindFilesDropped, "files-dropped"},
		{FocusChanged{}, KindFocusChanged, "focus-changed"},
		{Moved{}, KindMoved, "moved"},
		{Resized{}, KindResized, "resized"},
		{MonitorChanged{}, KindMonitorChanged, "monitor-changed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.event.Kind())
			assert.Equal(t, tt.name, tt.event.Kind().String())
		})
	}
}
