package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/bnema/uniwin/internal/logger"
)

// ErrNotRunning means no session is listening on the control socket.
var ErrNotRunning = errors.New("no uniwin session is running")

// Client sends control requests to a running session. Each request uses its
// own connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for path, or for the per-user default path when
// path is empty.
func NewClient(path string) (*Client, error) {
	if path == "" {
		p, err := GetSocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get socket path: %w", err)
		}
		path = p
	}
	return &Client{socketPath: path, timeout: 5 * time.Second}, nil
}

// WithTimeout sets the per-request deadline.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Send delivers req and waits for the response. A response with OK false is
// returned as an error.
func (c *Client) Send(ctx context.Context, req Request) (Response, error) {
	msg, err := req.toProto()
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		if isConnectionRefused(err) {
			return Response{}, fmt.Errorf("%w: %s", ErrNotRunning, c.socketPath)
		}
		return Response{}, fmt.Errorf("failed to connect to session: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("Closing control connection", "error", err)
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			logger.Warn("Failed to set control deadline", "error", err)
		}
	}

	if err := writeFrame(conn, msg); err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}
	out, err := readFrame(conn)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	resp := responseFromProto(out)
	if !resp.OK {
		return resp, fmt.Errorf("session error: %s", resp.Error)
	}
	return resp, nil
}

// isConnectionRefused reports dial failures: a missing socket file or a
// stale one nobody listens on.
func isConnectionRefused(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
