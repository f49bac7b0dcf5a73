package ipc

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFrameRoundTrip(t *testing.T) {
	req := Request{Command: CommandFit, Args: []string{"1"}}
	msg, err := req.toProto()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, msg))

	got, err := readFrame(&buf)
	require.NoError(t, err)
	decoded, err := requestFromProto(got)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}

func TestReadFrameRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(MaxFrameSize+1)))

	_, err := readFrame(&buf)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestRequestFromProtoValidation(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{"missing command", map[string]any{"args": []any{}}},
		{"non-string arg", map[string]any{"command": "alpha", "args": []any{0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.in)
			require.NoError(t, err)
			_, err = requestFromProto(s)
			assert.Error(t, err)
		})
	}
}

func TestResponseFields(t *testing.T) {
	resp := Response{OK: true, Fields: map[string]any{"status": "attached", "monitors": 2}}
	msg, err := resp.toProto()
	require.NoError(t, err)

	got := responseFromProto(msg)
	assert.True(t, got.OK)
	assert.Equal(t, "attached", got.Fields["status"])
	// Struct numbers decode as float64.
	assert.Equal(t, float64(2), got.Fields["monitors"])
}

func startServer(t *testing.T) *SocketServer {
	t.Helper()
	srv, err := NewSocketServer(filepath.Join(t.TempDir(), "c.sock"))
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv
}

func TestServerServesOnHostTick(t *testing.T) {
	srv := startServer(t)
	client, err := NewClient(srv.Path())
	require.NoError(t, err)

	type result struct {
		resp Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := client.Send(context.Background(), Request{Command: CommandStatus})
		done <- result{resp, err}
	}()

	var handled []Request
	handler := HandlerFunc(func(req Request) Response {
		handled = append(handled, req)
		return Response{OK: true, Fields: map[string]any{"status": "attached"}}
	})

	deadline := time.After(2 * time.Second)
	for {
		srv.Serve(handler)
		select {
		case r := <-done:
			require.NoError(t, r.err)
			assert.Equal(t, "attached", r.resp.Fields["status"])
			require.Len(t, handled, 1)
			assert.Equal(t, CommandStatus, handled[0].Command)
			return
		case <-deadline:
			t.Fatal("request was not answered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestServerErrorResponse(t *testing.T) {
	srv := startServer(t)
	client, err := NewClient(srv.Path())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := client.Send(context.Background(), Request{Command: "bogus"})
		done <- err
	}()

	handler := HandlerFunc(func(req Request) Response {
		return ErrorResponse("unknown command %q", req.Command)
	})

	deadline := time.After(2 * time.Second)
	for {
		srv.Serve(handler)
		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), `unknown command "bogus"`)
			return
		case <-deadline:
			t.Fatal("request was not answered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestServerReplyTimeout(t *testing.T) {
	srv := startServer(t)
	srv.ReplyTimeout = 20 * time.Millisecond

	client, err := NewClient(srv.Path())
	require.NoError(t, err)

	_, err = client.Send(context.Background(), Request{Command: CommandStatus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not pick up")
}

func TestServeWithoutPendingReturnsImmediately(t *testing.T) {
	srv := startServer(t)
	n := srv.Serve(HandlerFunc(func(Request) Response {
		t.Fatal("handler must not run")
		return Response{}
	}))
	assert.Zero(t, n)
}

func TestClientNotRunning(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "none.sock"))
	require.NoError(t, err)

	_, err = client.WithTimeout(time.Second).Send(context.Background(), Request{Command: CommandStatus})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestStopRemovesSocket(t *testing.T) {
	srv, err := NewSocketServer(filepath.Join(t.TempDir(), "c.sock"))
	require.NoError(t, err)
	require.NoError(t, srv.Start())

	_, err = os.Stat(srv.Path())
	require.NoError(t, err)

	srv.Stop()
	srv.Stop()

	_, err = os.Stat(srv.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultSocketPath(t *testing.T) {
	path, err := GetSocketPath()
	require.NoError(t, err)
	assert.Equal(t, os.TempDir(), filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "uniwin-")
}

func TestClosedConnectionsReleaseGoroutines(t *testing.T) {
	srv := startServer(t)
	client, err := NewClient(srv.Path())
	require.NoError(t, err)

	handler := HandlerFunc(func(Request) Response { return Response{OK: true} })
	stopServing := make(chan struct{})
	served := make(chan struct{})
	go func() {
		defer close(served)
		for {
			select {
			case <-stopServing:
				return
			case <-time.After(time.Millisecond):
				srv.Serve(handler)
			}
		}
	}()
	t.Cleanup(func() {
		close(stopServing)
		<-served
	})

	// Warm up so lazily started runtime goroutines are counted in the baseline.
	_, err = client.Send(context.Background(), Request{Command: CommandStatus})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	before := runtime.NumGoroutine()

	const requests = 50
	for i := 0; i < requests; i++ {
		_, err := client.Send(context.Background(), Request{Command: CommandStatus})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 20*time.Millisecond,
		"goroutines grew from %d after %d closed connections", before, requests)
}
