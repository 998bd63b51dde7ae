package wire

import "strconv"

// Request is one protocol command as a pure data container. Args are the
// space-separated words of the command line. Value, when present, is sent
// on a second line preceded by its decimal byte length:
//
//	VERB arg1 ... argN\r\n            (inline form)
//	VERB key <len(Value)>\r\nVALUE\r\n (value form)
//
// HasValue distinguishes an empty value from no value at all.
type Request struct {
	Args     []string
	Value    []byte
	HasValue bool
}

// NewRequest builds an inline request.
func NewRequest(args ...string) *Request {
	return &Request{Args: args}
}

// NewValueRequest builds a value-bearing request. The value's byte length
// is appended as the final word of the command line at serialization time.
func NewValueRequest(value []byte, args ...string) *Request {
	return &Request{Args: args, Value: value, HasValue: true}
}

// AppendRequest serializes req into b in wire format.
func AppendRequest(b *Buffer, req *Request) {
	for i, arg := range req.Args {
		if i > 0 {
			b.AppendByte(' ')
		}
		b.AppendString(arg)
	}
	if req.HasValue {
		b.AppendByte(' ')
		b.AppendString(strconv.Itoa(len(req.Value)))
		b.AppendString(CRLF)
		b.Append(req.Value)
	}
	b.AppendString(CRLF)
}
