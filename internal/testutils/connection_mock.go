package testutils

import (
	"bytes"
	"io"
	"net"
	"time"
)

// ConnectionMock is a mock implementation of net.Conn for testing. Each
// scripted reply fragment is served by a separate Read call, so a fragment
// per request/reply exchange keeps scripted replies from bleeding into the
// previous exchange's buffer, and splitting one reply across fragments
// exercises record assembly over several reads. Once the script is
// exhausted, reads return io.EOF, which the protocol layer reports as a
// peer close. Writes are captured for inspection.
type ConnectionMock struct {
	segments [][]byte
	writeBuf *bytes.Buffer
	closed   bool
}

// NewConnectionMock creates a new mock connection serving the given reply
// fragments.
func NewConnectionMock(replyData ...string) *ConnectionMock {
	segments := make([][]byte, len(replyData))
	for i, data := range replyData {
		segments[i] = []byte(data)
	}
	return &ConnectionMock{
		segments: segments,
		writeBuf: &bytes.Buffer{},
	}
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	for len(m.segments) > 0 && len(m.segments[0]) == 0 {
		m.segments = m.segments[1:]
	}
	if len(m.segments) == 0 {
		return 0, io.EOF
	}
	n = copy(b, m.segments[0])
	m.segments[0] = m.segments[0][n:]
	return n, nil
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.closed = true
	return nil
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6379}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// WrittenRequest returns the raw request bytes written to the mock connection.
func (m *ConnectionMock) WrittenRequest() string {
	return m.writeBuf.String()
}

// IsClosed reports whether Close has been called.
func (m *ConnectionMock) IsClosed() bool {
	return m.closed
}
