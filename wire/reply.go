package wire

import (
	"strconv"
	"strings"
)

// Reply is one decoded server reply. All byte slices are owned copies:
// they stay valid after further calls on the connection that produced them.
//
// For bulk replies, Bulk is nil when the server sent the absence marker
// ($-1) and an empty non-nil slice for a zero-length value ($0). Array
// elements follow the same convention, and Array itself is nil for a null
// multi-bulk (*-1). Null mirrors the nil-ness of the top-level value.
type Reply struct {
	Type   ReplyType
	Status string
	Int    int64
	Bulk   []byte
	Array  [][]byte
	Null   bool
}

// String renders the reply for display.
func (r Reply) String() string {
	switch r.Type {
	case TypeStatus:
		return r.Status
	case TypeInteger:
		return strconv.FormatInt(r.Int, 10)
	case TypeBulk:
		if r.Null {
			return "(nil)"
		}
		return string(r.Bulk)
	case TypeMultiBulk:
		if r.Null {
			return "(nil)"
		}
		parts := make([]string, len(r.Array))
		for i, elem := range r.Array {
			if elem == nil {
				parts[i] = "(nil)"
			} else {
				parts[i] = string(elem)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "(unknown)"
}

// parseInt parses an optionally signed decimal prefix of b, ignoring any
// trailing non-numeric content, matching the leniency of C's atoi which the
// protocol's length and integer fields have always been parsed with.
func parseInt(b []byte) int64 {
	var n int64
	i := 0
	neg := false
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		n = n*10 + int64(b[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
