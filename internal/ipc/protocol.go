// Package ipc is the local control channel of a running uniwin session.
// Messages are protobuf Structs framed with a big-endian length prefix.
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MaxFrameSize bounds a single message on the wire.
const MaxFrameSize = 1 << 20

// Control commands understood by a running session.
const (
	CommandStatus       = "status"
	CommandFit          = "fit"
	CommandTopmost      = "topmost"
	CommandBottommost   = "bottommost"
	CommandBorderless   = "borderless"
	CommandTransparent  = "transparent"
	CommandClickThrough = "clickthrough"
	CommandAlpha        = "alpha"
	CommandDetach       = "detach"
)

var ErrFrameTooLarge = errors.New("ipc frame too large")

// Request is a single control command.
type Request struct {
	Command string
	Args    []string
}

// Response answers a Request. Fields carries command-specific values.
type Response struct {
	OK     bool
	Error  string
	Fields map[string]any
}

// ErrorResponse builds a failed response.
func ErrorResponse(format string, args ...any) Response {
	return Response{Error: fmt.Sprintf(format, args...)}
}

func (r Request) toProto() (*structpb.Struct, error) {
	args := make([]any, len(r.Args))
	for i, a := range r.Args {
		args[i] = a
	}
	return structpb.NewStruct(map[string]any{
		"command": r.Command,
		"args":    args,
	})
}

func requestFromProto(s *structpb.Struct) (Request, error) {
	m := s.AsMap()
	cmd, _ := m["command"].(string)
	if cmd == "" {
		return Request{}, errors.New("request has no command")
	}
	req := Request{Command: cmd}
	raw, _ := m["args"].([]any)
	for _, a := range raw {
		str, ok := a.(string)
		if !ok {
			return Request{}, fmt.Errorf("request argument %v is not a string", a)
		}
		req.Args = append(req.Args, str)
	}
	return req, nil
}

func (r Response) toProto() (*structpb.Struct, error) {
	fields := r.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return structpb.NewStruct(map[string]any{
		"ok":     r.OK,
		"error":  r.Error,
		"fields": fields,
	})
}

func responseFromProto(s *structpb.Struct) Response {
	m := s.AsMap()
	resp := Response{}
	resp.OK, _ = m["ok"].(bool)
	resp.Error, _ = m["error"].(string)
	resp.Fields, _ = m["fields"].(map[string]any)
	return resp
}

// writeFrame writes a length-prefixed protobuf message.
func writeFrame(w io.Writer, msg *structpb.Struct) error {
	data, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if len(data) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	length := uint32(len(data)) //nolint:gosec // bounded by MaxFrameSize
	if err := binary.Write(w, binary.BigEndian, length); err != nil {
		return fmt.Errorf("failed to write message length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write message data: %w", err)
	}
	return nil
}

// readFrame reads one length-prefixed protobuf message.
func readFrame(r io.Reader) (*structpb.Struct, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("failed to read message length: %w", err)
	}
	if length > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read message data: %w", err)
	}

	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return msg, nil
}
