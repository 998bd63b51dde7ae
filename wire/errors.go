package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a send or receive exceeds the
	// connection's per-call time budget. The request may have been
	// partially observed by the peer; no retry is attempted.
	ErrTimeout = errors.New("redis: operation timed out")

	// ErrConnectionClosed is returned when the peer closes the connection
	// before a full reply has been assembled.
	ErrConnectionClosed = errors.New("redis: connection closed by peer")
)

// ProtocolError reports well-formed I/O carrying bytes that violate the
// protocol: an unexpected reply tag, a malformed length, a short bulk body,
// or a truncated multi-bulk array. The connection state is unreliable after
// a ProtocolError and the handle should be closed.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "redis: protocol violation: " + e.Message
}

// ServerError is a `-` reply: the server understood the command and
// rejected it. The connection remains usable.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "redis: server error: " + e.Message
}

// ConnectionError wraps a socket read or write failure other than a timeout
// or a clean close. The connection is broken once this is returned.
type ConnectionError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("redis: %s failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
