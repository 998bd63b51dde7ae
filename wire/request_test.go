package wire

import "testing"

func TestAppendRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		expected string
	}{
		{
			name:     "no arguments",
			req:      NewRequest("PING"),
			expected: "PING\r\n",
		},
		{
			name:     "single key",
			req:      NewRequest("GET", "mykey"),
			expected: "GET mykey\r\n",
		},
		{
			name:     "multiple arguments",
			req:      NewRequest("LRANGE", "mylist", "0", "-1"),
			expected: "LRANGE mylist 0 -1\r\n",
		},
		{
			name:     "variable arity",
			req:      NewRequest("MGET", "k1", "k2", "k3"),
			expected: "MGET k1 k2 k3\r\n",
		},
		{
			name:     "value form",
			req:      NewValueRequest([]byte("foo"), "SET", "k"),
			expected: "SET k 3\r\nfoo\r\n",
		},
		{
			name:     "empty value",
			req:      NewValueRequest([]byte(""), "SET", "k"),
			expected: "SET k 0\r\n\r\n",
		},
		{
			name:     "value containing CRLF",
			req:      NewValueRequest([]byte("a\r\nb"), "SET", "k"),
			expected: "SET k 4\r\na\r\nb\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			AppendRequest(b, tt.req)
			if got := string(b.Bytes()); got != tt.expected {
				t.Errorf("AppendRequest() = %q, want %q", got, tt.expected)
			}
		})
	}
}
