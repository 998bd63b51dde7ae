package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
)

var crlfBytes = []byte(CRLF)

// Conn drives one request/reply exchange at a time over a connected socket.
// It owns the shared send/receive buffer and applies the per-call timeout
// to every socket operation. Not safe for concurrent use.
type Conn struct {
	sock    net.Conn
	timeout time.Duration
	buf     *Buffer
	log     zerolog.Logger
}

// NewConn wraps an already connected socket. A timeout of zero disables
// deadlines and lets every socket operation block indefinitely.
func NewConn(sock net.Conn, timeout time.Duration) *Conn {
	return &Conn{
		sock:    sock,
		timeout: timeout,
		buf:     NewBuffer(),
		log:     zerolog.Nop(),
	}
}

// SetLogger installs a logger used at debug level around send and receive.
func (c *Conn) SetLogger(log zerolog.Logger) {
	c.log = log
}

// RemoteAddr returns the peer address of the underlying socket.
func (c *Conn) RemoteAddr() net.Addr {
	return c.sock.RemoteAddr()
}

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return c.sock.Close()
}

// Do serializes req into the connection's buffer, sends it whole, then
// decodes exactly one reply, which must be of the expected shape or a
// server error. A short send is reported as ErrTimeout without attempting
// to decode: the peer may have observed part of the request and the caller
// decides whether to abandon the handle.
func (c *Conn) Do(req *Request, expect ReplyType) (Reply, error) {
	c.buf.Reset()
	AppendRequest(c.buf, req)

	if e := c.log.Debug(); e.Enabled() {
		verb := ""
		if len(req.Args) > 0 {
			verb = req.Args[0]
		}
		e.Str("verb", verb).Int("bytes", c.buf.Len()).Msg("sending request")
	}

	if err := c.send(); err != nil {
		return Reply{}, err
	}

	reply, err := c.readReply(expect)
	if err != nil {
		c.log.Debug().Err(err).Msg("reply failed")
		return Reply{}, err
	}
	c.log.Debug().Stringer("type", reply.Type).Msg("reply received")
	return reply, nil
}

// send writes the buffered request under the write deadline. The deadline
// bounds the whole request: if it elapses with only part of the bytes
// written, the short count is reported as a timeout, not success.
func (c *Conn) send() error {
	data := c.buf.Bytes()
	if c.timeout > 0 {
		c.sock.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	n, err := c.sock.Write(data)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrTimeout
		}
		return &ConnectionError{Op: "send", Err: err}
	}
	if n < len(data) {
		return ErrTimeout
	}
	return nil
}

// receive performs one deadline-bounded read into the buffer's free space.
// Returns the byte count on success, ErrConnectionClosed on a clean close,
// ErrTimeout when the deadline elapses with no data, and a ConnectionError
// for any other socket failure.
func (c *Conn) receive() (int, error) {
	if c.timeout > 0 {
		c.sock.SetReadDeadline(time.Now().Add(c.timeout))
	}
	n, err := c.sock.Read(c.buf.free())
	if n > 0 {
		c.buf.advance(n)
		return n, nil
	}
	if err == nil {
		return 0, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, ErrConnectionClosed
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 0, ErrTimeout
	}
	return 0, &ConnectionError{Op: "receive", Err: err}
}

// readRecord returns the next CRLF-terminated record as a length-delimited
// slice into the buffer, valid until the buffer is next reset or grown.
// The search for the terminator starts skip bytes past the record start,
// which lets a known-length bulk body containing literal CRLF pairs be
// carried opaquely: the caller skips exactly the payload length and the
// first CRLF found is the terminator that follows it.
//
// This is the only place where the buffer is refilled from the socket; a
// record spread across several segments is assembled by repeated reads.
func (c *Conn) readRecord(skip int) ([]byte, error) {
	b := c.buf
	if b.idx >= b.Len() {
		b.Reset()
	}
	for {
		if start := b.idx + skip; start < b.Len() {
			if i := bytes.Index(b.data[start:b.Len()], crlfBytes); i >= 0 {
				end := start + i
				rec := b.data[b.idx:end]
				b.idx = end + 2
				return rec, nil
			}
		}
		if b.Cap()-b.Len() < lowWater {
			b.Grow(lowWater)
		}
		if _, err := c.receive(); err != nil {
			return nil, err
		}
	}
}

// readReply decodes exactly one reply. The buffer is reset first: the
// request bytes and any stale response data are discarded, so decoding
// always starts at a record boundary.
func (c *Conn) readReply(expect ReplyType) (Reply, error) {
	c.buf.Reset()

	rec, err := c.readRecord(0)
	if err != nil {
		return Reply{}, err
	}
	if len(rec) == 0 {
		return Reply{}, &ProtocolError{Message: "empty reply line"}
	}

	tag := ReplyType(rec[0])
	body := rec[1:]

	if tag != expect && tag != TypeError {
		return Reply{}, &ProtocolError{
			Message: fmt.Sprintf("unexpected %s reply, want %s", tag, expect),
		}
	}

	switch tag {
	case TypeError:
		return Reply{}, &ServerError{Message: string(body)}
	case TypeStatus:
		return Reply{Type: TypeStatus, Status: string(body)}, nil
	case TypeInteger:
		return Reply{Type: TypeInteger, Int: parseInt(body)}, nil
	case TypeBulk:
		return c.readBulk(body)
	case TypeMultiBulk:
		return c.readMultiBulk(body)
	}
	return Reply{}, &ProtocolError{Message: fmt.Sprintf("unknown reply tag %q", rec[0])}
}

// readBulk decodes a bulk body given the length field of its header
// record. A negative length is the absence marker and carries no payload.
func (c *Conn) readBulk(lenField []byte) (Reply, error) {
	n, err := bulkLen(lenField)
	if err != nil {
		return Reply{}, err
	}
	if n < 0 {
		return Reply{Type: TypeBulk, Null: true}, nil
	}
	payload, err := c.readBulkPayload(n)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: TypeBulk, Bulk: payload}, nil
}

// bulkLen validates a wire-supplied bulk length field. The value comes
// from the peer and is never trusted as an allocation or index: anything
// beyond maxBulkLen is malformed.
func bulkLen(field []byte) (int, error) {
	n := parseInt(field)
	if n > maxBulkLen {
		return 0, &ProtocolError{
			Message: fmt.Sprintf("bulk length %d out of range", n),
		}
	}
	return int(n), nil
}

// readBulkPayload reads the n-byte payload record that follows a bulk
// header and returns an owned copy. A record of any other length means the
// declared length and the terminator position disagree.
func (c *Conn) readBulkPayload(n int) ([]byte, error) {
	rec, err := c.readRecord(n)
	if err != nil {
		return nil, err
	}
	if len(rec) != n {
		return nil, &ProtocolError{
			Message: fmt.Sprintf("bulk length mismatch: declared %d, got %d", n, len(rec)),
		}
	}
	return bytes.Clone(rec), nil
}

// readMultiBulk decodes the declared number of bulk elements. Every
// element must itself be a bulk reply; each may individually be null.
func (c *Conn) readMultiBulk(countField []byte) (Reply, error) {
	m := parseInt(countField)
	if m < 0 {
		return Reply{Type: TypeMultiBulk, Null: true}, nil
	}
	if m > maxMultiBulkLen {
		return Reply{}, &ProtocolError{
			Message: fmt.Sprintf("multi-bulk count %d out of range", m),
		}
	}

	// The count is wire-supplied: preallocation is capped and anything
	// beyond the cap grows by append as elements actually arrive.
	elems := make([][]byte, 0, min(m, 16))
	for i := int64(0); i < m; i++ {
		rec, err := c.readRecord(0)
		if err != nil {
			return Reply{}, err
		}
		if len(rec) == 0 || ReplyType(rec[0]) != TypeBulk {
			return Reply{}, &ProtocolError{
				Message: fmt.Sprintf("multi-bulk element %d is not a bulk reply", i),
			}
		}
		n, err := bulkLen(rec[1:])
		if err != nil {
			return Reply{}, err
		}
		if n < 0 {
			elems = append(elems, nil)
			continue
		}
		payload, err := c.readBulkPayload(n)
		if err != nil {
			return Reply{}, err
		}
		elems = append(elems, payload)
	}
	return Reply{Type: TypeMultiBulk, Array: elems}, nil
}
