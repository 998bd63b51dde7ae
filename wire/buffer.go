package wire

import "strconv"

// Buffer is the growable byte region shared by outgoing requests and
// incoming replies on one connection. It grows in fixed-size chunks, keeps
// all bytes in [0, len) across growth, and never shrinks: capacity is
// monotonically non-decreasing for the lifetime of the connection so that
// allocation cost is amortized across calls.
//
// The read cursor idx is used only while decoding a reply and always
// satisfies idx <= len <= cap.
type Buffer struct {
	data []byte // len(data) is the count of valid bytes
	idx  int    // decode cursor

	// chunk overrides the growth granularity; zero means bufferChunk.
	chunk int
}

// NewBuffer returns a buffer with one chunk of capacity.
func NewBuffer() *Buffer {
	return &Buffer{data: make([]byte, 0, bufferChunk)}
}

func (b *Buffer) chunkSize() int {
	if b.chunk > 0 {
		return b.chunk
	}
	return bufferChunk
}

// Len returns the number of valid bytes held.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the total capacity.
func (b *Buffer) Cap() int { return cap(b.data) }

// Bytes returns the valid bytes [0, len).
func (b *Buffer) Bytes() []byte { return b.data }

// Reset discards all held bytes and rewinds the cursor without releasing
// capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.idx = 0
}

// Grow guarantees at least n bytes of free space after the valid bytes,
// allocating in whole chunks and preserving existing contents.
func (b *Buffer) Grow(n int) {
	free := cap(b.data) - len(b.data)
	if free >= n {
		return
	}
	chunk := b.chunkSize()
	grown := ((n-free)/chunk + 1) * chunk
	next := make([]byte, len(b.data), cap(b.data)+grown)
	copy(next, b.data)
	b.data = next
}

// Append writes p at the end of the buffer, growing first if needed.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.data = append(b.data, p...)
}

// AppendString writes s at the end of the buffer.
func (b *Buffer) AppendString(s string) {
	b.Grow(len(s))
	b.data = append(b.data, s...)
}

// AppendByte writes a single byte at the end of the buffer.
func (b *Buffer) AppendByte(c byte) {
	b.Grow(1)
	b.data = append(b.data, c)
}

// AppendInt writes the decimal representation of n at the end of the buffer.
func (b *Buffer) AppendInt(n int64) {
	b.Grow(20)
	b.data = strconv.AppendInt(b.data, n, 10)
}

// free returns the unused region between len and cap for direct socket
// reads. After writing into it, call advance.
func (b *Buffer) free() []byte {
	return b.data[len(b.data):cap(b.data)]
}

// advance extends the valid region by n bytes written into free().
func (b *Buffer) advance(n int) {
	b.data = b.data[:len(b.data)+n]
}
