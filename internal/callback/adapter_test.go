package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/uniwin/internal/events"
	"github.com/bnema/uniwin/internal/native"
)

type capturedCallbacks struct {
	drop    native.DropFilesFunc
	focus   native.FocusChangedFunc
	moved   native.WindowMovedFunc
	resized native.WindowResizedFunc
	monitor native.MonitorChangedFunc
}

func fakeTable(c *capturedCallbacks, acceptMonitor bool) *native.Table {
	return &native.Table{
		RegisterDropFiles:     func(cb native.DropFilesFunc) bool { c.drop = cb; return true },
		RegisterFocusChanged:  func(cb native.FocusChangedFunc) bool { c.focus = cb; return true },
		RegisterWindowMoved:   func(cb native.WindowMovedFunc) bool { c.moved = cb; return true },
		RegisterWindowResized: func(cb native.WindowResizedFunc) bool { c.resized = cb; return true },
		RegisterMonitorChanged: func(cb native.MonitorChangedFunc) bool {
			c.monitor = cb
			return acceptMonitor
		},
	}
}

func TestParseDropPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"windows paths with blanks", "C:\\a.txt\n\nC:\\b.txt\n  \n", []string{"C:\\a.txt", "C:\\b.txt"}},
		{"single path", "/tmp/x", []string{"/tmp/x"}},
		{"trims whitespace and CR", "  /a \r\n\t/b\t", []string{"/a", "/b"}},
		{"only separators", "\n \n\t\n", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDropPayload(tt.payload))
		})
	}
}

func encodeWide(t *testing.T, s string) []native.Wchar {
	t.Helper()
	units, err := native.EncodeWide(s)
	require.NoError(t, err)
	return units
}

func TestRegister_QueuesEventsInOrder(t *testing.T) {
	q := events.NewQueue()
	q.Initialize()
	var c capturedCallbacks
	reg := Register(fakeTable(&c, true), NewAdapter(q, nil))

	c.moved(10, 20)
	c.focus(true)
	c.resized(800, 600)
	c.monitor(2)

	var got []events.Event
	for {
		e, ok := q.TryPop()
		if !ok {
			break
		}
		got = append(got, e)
	}
	assert.Equal(t, []events.Event{
		events.Moved{X: 10, Y: 20},
		events.FocusChanged{Focused: true},
		events.Resized{Width: 800, Height: 600},
		events.MonitorChanged{Index: 2},
	}, got)
	assert.True(t, reg.Active())
}

func TestRegister_DropBypassesQueue(t *testing.T) {
	q := events.NewQueue()
	q.Initialize()
	var c capturedCallbacks
	var delivered [][]string
	Register(fakeTable(&c, true), NewAdapter(q, func(paths []string) {
		delivered = append(delivered, paths)
	}))

	payload := encodeWide(t, "C:\\a.txt\n\nC:\\b.txt\n  \n")
	c.drop(&payload[0])

	require.Len(t, delivered, 1)
	assert.Equal(t, []string{"C:\\a.txt", "C:\\b.txt"}, delivered[0])
	assert.True(t, q.IsEmpty())

	empty := encodeWide(t, "\n \n")
	c.drop(&empty[0])
	assert.Len(t, delivered, 1, "empty payload emits nothing")
}

func TestRegistration_ReportsAcceptedKinds(t *testing.T) {
	var c capturedCallbacks
	reg := Register(fakeTable(&c, false), NewAdapter(events.NewQueue(), nil))

	assert.True(t, reg.Accepts(events.KindMoved))
	assert.False(t, reg.Accepts(events.KindMonitorChanged))
	assert.Equal(t, []events.Kind{
		events.KindFilesDropped, events.KindFocusChanged, events.KindMoved, events.KindResized,
	}, reg.Accepted())
}

func TestRegistration_PartialTable(t *testing.T) {
	var moved native.WindowMovedFunc
	table := &native.Table{
		RegisterWindowMoved: func(cb native.WindowMovedFunc) bool { moved = cb; return true },
	}
	reg := Register(table, NewAdapter(events.NewQueue(), nil))
	assert.Equal(t, []events.Kind{events.KindMoved}, reg.Accepted())
	assert.NotNil(t, moved)

	reg = Register(nil, NewAdapter(events.NewQueue(), nil))
	assert.Empty(t, reg.Accepted())
}

func TestRegistration_UnregisterSilencesLateCallbacks(t *testing.T) {
	q := events.NewQueue()
	q.Initialize()
	var c capturedCallbacks
	drops := 0
	reg := Register(fakeTable(&c, true), NewAdapter(q, func([]string) { drops++ }))

	reg.Unregister()
	reg.Unregister()
	assert.False(t, reg.Active())

	c.moved(1, 1)
	c.focus(false)
	c.resized(1, 1)
	c.monitor(0)
	payload := encodeWide(t, "/tmp/late")
	c.drop(&payload[0])

	assert.True(t, q.IsEmpty())
	assert.Zero(t, drops)
}

func TestAdapter_QueueInactiveDropsEvents(t *testing.T) {
	q := events.NewQueue()
	a := NewAdapter(q, nil)
	a.HandleMoved(1, 2)
	assert.True(t, q.IsEmpty())
}
