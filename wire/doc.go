// Package wire implements the low-level Redis text protocol: request
// serialization, timeout-bounded socket I/O over a single blocking TCP
// connection, and decoding of server replies into one of the five reply
// shapes (error, status, integer, bulk, multi-bulk).
//
// This package serves as the foundation for the higher-level client in the
// root package. It focuses on correctness of framing and parsing and does
// not manage connections, retry, or command semantics.
//
// # Core Types
//
//   - Request: one protocol command, either inline (`VERB arg...\r\n`) or
//     value-bearing (`VERB key <len>\r\n<value>\r\n`)
//   - Reply: one decoded server reply with owned data
//   - Conn: a single connection carrying a reusable send/receive buffer
//
// # Usage
//
//	conn := wire.NewConn(sock, time.Second)
//	reply, err := conn.Do(wire.NewRequest("GET", "mykey"), wire.TypeBulk)
//	if err != nil {
//	    return err
//	}
//	value := reply.Bulk // nil when the key is missing
//
// Exactly one request/reply exchange is in flight at a time. A Conn is not
// safe for concurrent use; callers must serialize access externally.
//
// # Error Handling
//
// Errors are mutually exclusive per call:
//
//   - ErrTimeout: the send or receive exceeded the per-call time budget
//   - ErrConnectionClosed: the peer closed before a full reply arrived
//   - ProtocolError: malformed bytes or a reply of an unexpected shape
//   - ServerError: the server understood the command and rejected it
//   - ConnectionError: a socket read or write failed
//
// A Reply owns its data: values remain valid after further calls on the
// connection. Null bulk values ($-1) are represented as nil byte slices,
// distinct from empty values ($0) which are empty non-nil slices.
package wire
