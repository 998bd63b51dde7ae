package wire

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redisclient/internal/testutils"
)

func TestReadRecordSequence(t *testing.T) {
	mock := testutils.NewConnectionMock("+one\r\n:2\r\n$5\r\n")
	c := NewConn(mock, time.Second)

	for _, want := range []string{"+one", ":2", "$5"} {
		rec, err := c.readRecord(0)
		require.NoError(t, err)
		assert.Equal(t, want, string(rec))
	}

	// Stream exhausted: the next record read must report the close, not
	// a partial record.
	_, err := c.readRecord(0)
	require.ErrorIs(t, err, ErrConnectionClosed)
}

func TestReadRecordSkipSpansEmbeddedCRLF(t *testing.T) {
	// A 6-byte payload with an embedded CRLF, followed by its real
	// terminator. Skipping the payload length must land the search on
	// the terminator, not the embedded pair.
	mock := testutils.NewConnectionMock("ab\r\ncd\r\n")
	c := NewConn(mock, time.Second)

	rec, err := c.readRecord(6)
	require.NoError(t, err)
	assert.Equal(t, "ab\r\ncd", string(rec))
}

func TestReadRecordGrowsBelowWatermark(t *testing.T) {
	// A long partial record leaves less than the refill threshold free.
	// The next read must grow the buffer to the watermark first, so the
	// socket read is never squeezed into a sliver of free space.
	mock := testutils.NewConnectionMock("tail\r\n")
	c := NewConn(mock, time.Second)

	head := make([]byte, bufferChunk-lowWater/2)
	for i := range head {
		head[i] = 'x'
	}
	c.buf.Append(head)

	rec, err := c.readRecord(0)
	require.NoError(t, err)
	assert.Equal(t, string(head)+"tail", string(rec))
	assert.Greater(t, c.buf.Cap(), bufferChunk)
}

func TestReadRecordAssemblesAcrossReads(t *testing.T) {
	// Each mock fragment arrives in a separate read; the record must be
	// assembled across all of them.
	mock := testutils.NewConnectionMock("+par", "tial ", "sta", "tus\r", "\n")
	c := NewConn(mock, time.Second)

	rec, err := c.readRecord(0)
	require.NoError(t, err)
	assert.Equal(t, "+partial status", string(rec))
}

func TestDoDecodesReplies(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect ReplyType
		check  func(t *testing.T, r Reply)
	}{
		{
			name:   "status",
			data:   "+OK\r\n",
			expect: TypeStatus,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, "OK", r.Status)
			},
		},
		{
			name:   "integer",
			data:   ":42\r\n",
			expect: TypeInteger,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, int64(42), r.Int)
			},
		},
		{
			name:   "negative integer",
			data:   ":-7\r\n",
			expect: TypeInteger,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, int64(-7), r.Int)
			},
		},
		{
			name:   "integer with trailing junk",
			data:   ":42abc\r\n",
			expect: TypeInteger,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, int64(42), r.Int)
			},
		},
		{
			name:   "bulk",
			data:   "$3\r\nfoo\r\n",
			expect: TypeBulk,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, []byte("foo"), r.Bulk)
				assert.False(t, r.Null)
			},
		},
		{
			name:   "bulk with embedded CRLF",
			data:   "$8\r\nab\r\ncd12\r\n",
			expect: TypeBulk,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, []byte("ab\r\ncd12"), r.Bulk)
			},
		},
		{
			// Length fields have always been parsed with atoi leniency:
			// a non-numeric field is zero, not an error.
			name:   "non-numeric bulk length parses as zero",
			data:   "$abc\r\n\r\n",
			expect: TypeBulk,
			check: func(t *testing.T, r Reply) {
				assert.False(t, r.Null)
				assert.Len(t, r.Bulk, 0)
			},
		},
		{
			name:   "null bulk",
			data:   "$-1\r\n",
			expect: TypeBulk,
			check: func(t *testing.T, r Reply) {
				assert.True(t, r.Null)
				assert.Nil(t, r.Bulk)
			},
		},
		{
			name:   "empty bulk is not null",
			data:   "$0\r\n\r\n",
			expect: TypeBulk,
			check: func(t *testing.T, r Reply) {
				assert.False(t, r.Null)
				assert.NotNil(t, r.Bulk)
				assert.Len(t, r.Bulk, 0)
			},
		},
		{
			name:   "multi-bulk",
			data:   "*2\r\n$1\r\na\r\n$1\r\nb\r\n",
			expect: TypeMultiBulk,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, r.Array)
			},
		},
		{
			name:   "multi-bulk with null element",
			data:   "*3\r\n$1\r\na\r\n$-1\r\n$1\r\nb\r\n",
			expect: TypeMultiBulk,
			check: func(t *testing.T, r Reply) {
				require.Len(t, r.Array, 3)
				assert.Equal(t, []byte("a"), r.Array[0])
				assert.Nil(t, r.Array[1])
				assert.Equal(t, []byte("b"), r.Array[2])
			},
		},
		{
			name:   "null multi-bulk",
			data:   "*-1\r\n",
			expect: TypeMultiBulk,
			check: func(t *testing.T, r Reply) {
				assert.True(t, r.Null)
				assert.Nil(t, r.Array)
			},
		},
		{
			name:   "empty multi-bulk",
			data:   "*0\r\n",
			expect: TypeMultiBulk,
			check: func(t *testing.T, r Reply) {
				assert.False(t, r.Null)
				assert.Len(t, r.Array, 0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutils.NewConnectionMock(tt.data)
			c := NewConn(mock, time.Second)

			reply, err := c.Do(NewRequest("TESTCMD"), tt.expect)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, reply.Type)
			tt.check(t, reply)
			assert.Equal(t, "TESTCMD\r\n", mock.WrittenRequest())
		})
	}
}

func TestDoProtocolViolations(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect ReplyType
	}{
		{
			name:   "wrong tag for expected shape",
			data:   ":5\r\n",
			expect: TypeStatus,
		},
		{
			name:   "bulk length mismatch",
			data:   "$5\r\nabcdef\r\n",
			expect: TypeBulk,
		},
		{
			name:   "multi-bulk element with wrong tag",
			data:   "*2\r\n$1\r\na\r\n:9\r\n",
			expect: TypeMultiBulk,
		},
		{
			name:   "multi-bulk short of declared count",
			data:   "*3\r\n$1\r\na\r\n$1\r\nb\r\n+done\r\n",
			expect: TypeMultiBulk,
		},
		{
			// A hostile length must become an error before it is used
			// for any indexing or allocation.
			name:   "bulk length out of range",
			data:   "$9223372036854775807\r\nXX",
			expect: TypeBulk,
		},
		{
			name:   "multi-bulk count out of range",
			data:   "*4611686018427387904\r\n",
			expect: TypeMultiBulk,
		},
		{
			name:   "multi-bulk element length out of range",
			data:   "*1\r\n$9223372036854775807\r\nXX",
			expect: TypeMultiBulk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutils.NewConnectionMock(tt.data)
			c := NewConn(mock, time.Second)

			_, err := c.Do(NewRequest("TESTCMD"), tt.expect)
			var perr *ProtocolError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestDoServerError(t *testing.T) {
	mock := testutils.NewConnectionMock("-ERR unknown command\r\n")
	c := NewConn(mock, time.Second)

	_, err := c.Do(NewRequest("BOGUS"), TypeStatus)
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "ERR unknown command", serr.Message)
}

func TestRepliesOwnTheirData(t *testing.T) {
	// The buffer is reset and reused by the next exchange; earlier reply
	// values must not be affected.
	mock := testutils.NewConnectionMock("$3\r\nfoo\r\n", "$3\r\nbar\r\n")
	c := NewConn(mock, time.Second)

	first, err := c.Do(NewRequest("GET", "k1"), TypeBulk)
	require.NoError(t, err)

	second, err := c.Do(NewRequest("GET", "k2"), TypeBulk)
	require.NoError(t, err)

	assert.Equal(t, []byte("foo"), first.Bulk)
	assert.Equal(t, []byte("bar"), second.Bulk)
}

func TestReceiveTimeoutVsClosed(t *testing.T) {
	t.Run("no data within timeout", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		// Accept and hold the connection open without replying.
		done := make(chan struct{})
		go func() {
			conn, err := listener.Accept()
			if err == nil {
				<-done
				conn.Close()
			}
		}()
		defer close(done)

		sock, err := net.Dial("tcp", listener.Addr().String())
		require.NoError(t, err)
		defer sock.Close()

		c := NewConn(sock, 100*time.Millisecond)
		_, err = c.Do(NewRequest("PING"), TypeStatus)
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("peer closed", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		go func() {
			conn, err := listener.Accept()
			if err == nil {
				// Drain the request so the close is a clean FIN, not a
				// reset triggered by unread data.
				conn.Read(make([]byte, 64))
				conn.Close()
			}
		}()

		sock, err := net.Dial("tcp", listener.Addr().String())
		require.NoError(t, err)
		defer sock.Close()

		c := NewConn(sock, time.Second)
		_, err = c.Do(NewRequest("PING"), TypeStatus)
		require.ErrorIs(t, err, ErrConnectionClosed)

		// The two conditions must never be conflated.
		require.NotErrorIs(t, err, ErrTimeout)
	})
}

func TestReceiveFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err == nil {
			// Reset instead of a clean close.
			if tcp, ok := conn.(*net.TCPConn); ok {
				tcp.SetLinger(0)
			}
			conn.Close()
		}
	}()

	sock, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	defer sock.Close()

	// Give the reset time to arrive.
	time.Sleep(50 * time.Millisecond)

	c := NewConn(sock, time.Second)
	_, err = c.Do(NewRequest("PING"), TypeStatus)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
}
