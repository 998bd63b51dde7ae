package wire

// ReplyType is the single-byte tag that opens every server reply and
// identifies its shape.
type ReplyType byte

const (
	TypeError     ReplyType = '-'
	TypeStatus    ReplyType = '+'
	TypeInteger   ReplyType = ':'
	TypeBulk      ReplyType = '$'
	TypeMultiBulk ReplyType = '*'
)

// String returns a readable name for the reply type, for error messages
// and logs.
func (t ReplyType) String() string {
	switch t {
	case TypeError:
		return "error"
	case TypeStatus:
		return "status"
	case TypeInteger:
		return "integer"
	case TypeBulk:
		return "bulk"
	case TypeMultiBulk:
		return "multi-bulk"
	}
	return "unknown"
}

const (
	// CRLF terminates every protocol record.
	CRLF = "\r\n"

	// bufferChunk is the granularity of buffer growth. The buffer never
	// grows by less than one chunk and never shrinks.
	bufferChunk = 4096

	// lowWater is the free-space threshold below which the buffer is grown
	// before reading more data from the socket.
	lowWater = bufferChunk / 10

	// maxBulkLen bounds the declared length of a single bulk payload.
	// Longer declarations are a protocol violation, not a reason to
	// allocate: the server-side limit for a bulk value is 512MB.
	maxBulkLen = 512 << 20

	// maxMultiBulkLen bounds the declared element count of a multi-bulk
	// reply.
	maxMultiBulkLen = 1 << 20
)
