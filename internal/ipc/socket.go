package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/uniwin/internal/logger"
)

// Handler executes control requests. It is only called from Serve, so it
// runs on whichever goroutine drives the host tick.
type Handler interface {
	Handle(req Request) Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req Request) Response

func (f HandlerFunc) Handle(req Request) Response { return f(req) }

type call struct {
	req   Request
	reply chan Response
}

// SocketServer accepts control connections. Requests are parked until the
// host calls Serve, which keeps window calls on the host thread.
type SocketServer struct {
	mu         sync.Mutex
	listener   net.Listener
	socketPath string
	calls      chan call
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	running    bool

	// ReplyTimeout bounds how long a connection waits for the host to serve
	// its request.
	ReplyTimeout time.Duration
}

// NewSocketServer creates a server bound to path, or to the per-user default
// path when path is empty.
func NewSocketServer(path string) (*SocketServer, error) {
	if path == "" {
		p, err := GetSocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get socket path: %w", err)
		}
		path = p
	}

	return &SocketServer{
		socketPath:   path,
		calls:        make(chan call),
		ReplyTimeout: 5 * time.Second,
	}, nil
}

// Path returns the socket path.
func (s *SocketServer) Path() string {
	return s.socketPath
}

// Start starts listening
func (s *SocketServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	// User only
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.listener = listener
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.acceptConnections(ctx)

	logger.Info("Control socket listening", "path", s.socketPath)
	return nil
}

// Stop closes the listener, waits for open connections and removes the
// socket file. Safe to call more than once.
func (s *SocketServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.wg.Wait()

	if err := os.RemoveAll(s.socketPath); err != nil {
		logger.Warn("Removing control socket", "path", s.socketPath, "error", err)
	}
	logger.Debug("Control socket stopped")
}

// Serve runs every request that is already waiting and returns how many were
// handled. It never blocks.
func (s *SocketServer) Serve(h Handler) int {
	n := 0
	for {
		select {
		case c := <-s.calls:
			logger.Debug("Control request", "command", c.req.Command, "args", c.req.Args)
			c.reply <- h.Handle(c.req)
			n++
		default:
			return n
		}
	}
}

func (s *SocketServer) acceptConnections(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Error("Failed to accept control connection", "error", err)
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(ctx, conn)
	}
}

// handleConnection reads requests until the peer hangs up. Each request waits
// for the host to Serve it.
func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	// Unblock a pending read on shutdown; released when the connection ends.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	for {
		msg, err := readFrame(conn)
		if err != nil {
			logger.Debug("Control connection closed", "error", err)
			return
		}

		var resp Response
		req, err := requestFromProto(msg)
		if err != nil {
			resp = ErrorResponse("invalid request: %v", err)
		} else {
			resp = s.dispatch(ctx, req)
		}

		out, err := resp.toProto()
		if err != nil {
			out, _ = ErrorResponse("encoding response: %v", err).toProto()
		}
		if err := writeFrame(conn, out); err != nil {
			logger.Debug("Failed to send control response", "error", err)
			return
		}
	}
}

func (s *SocketServer) dispatch(ctx context.Context, req Request) Response {
	c := call{req: req, reply: make(chan Response, 1)}
	timer := time.NewTimer(s.ReplyTimeout)
	defer timer.Stop()

	select {
	case s.calls <- c:
	case <-ctx.Done():
		return ErrorResponse("session shutting down")
	case <-timer.C:
		return ErrorResponse("session did not pick up %q", req.Command)
	}

	select {
	case resp := <-c.reply:
		return resp
	case <-ctx.Done():
		return ErrorResponse("session shutting down")
	}
}

// GetSocketPath returns the per-user control socket path.
func GetSocketPath() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	// Windows user names carry a DOMAIN\ prefix.
	name := strings.ReplaceAll(currentUser.Username, `\`, "-")
	return filepath.Join(os.TempDir(), fmt.Sprintf("uniwin-%s.sock", name)), nil
}
