// Package redisclient is a client for the Redis text protocol over a single
// blocking TCP connection. Every command is one synchronous request/reply
// exchange bounded by a per-call timeout.
//
// A Client owns exactly one connection and is not safe for concurrent use:
// use one client per goroutine or serialize access externally. The client
// never reconnects or retries on its own; after a timeout or connection
// error the caller decides whether to abandon the handle.
package redisclient

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"redisclient/wire"
)

const (
	// DefaultAddr is used when Dial is given an empty address.
	DefaultAddr = "127.0.0.1:6379"

	// DefaultTimeout bounds every send and receive unless overridden.
	DefaultTimeout = 2 * time.Second

	keepAlivePeriod = 30 * time.Second
)

type options struct {
	timeout  time.Duration
	logger   zerolog.Logger
	password string
	db       int
}

// Option configures a Client at dial time.
type Option func(*options)

// WithTimeout sets the per-call time budget for connecting, sending and
// receiving. Zero disables timeouts entirely.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger installs a logger used at debug level around protocol
// exchanges. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithPassword authenticates with AUTH immediately after connecting.
func WithPassword(password string) Option {
	return func(o *options) { o.password = password }
}

// WithDatabase selects the given database index immediately after
// connecting (and after authentication, when both are configured).
func WithDatabase(db int) Option {
	return func(o *options) { o.db = db }
}

// Client is a Redis client over one TCP connection.
type Client struct {
	addr string
	conn *wire.Conn
}

// Dial connects to the server at addr ("host:port", empty for
// DefaultAddr), enables TCP keepalive and disables Nagle's algorithm on
// the socket, and performs the configured AUTH and SELECT.
func Dial(addr string, opts ...Option) (*Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	o := options{
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialer := net.Dialer{Timeout: o.timeout, KeepAlive: keepAlivePeriod}
	sock, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("redis: connect %s: %w", addr, err)
	}
	if tcp, ok := sock.(*net.TCPConn); ok {
		tcp.SetNoDelay(true)
	}

	c := newClient(sock, addr, o)

	if o.password != "" {
		if err := c.Auth(o.password); err != nil {
			c.Close()
			return nil, err
		}
	}
	if o.db > 0 {
		if err := c.Select(o.db); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func newClient(sock net.Conn, addr string, o options) *Client {
	conn := wire.NewConn(sock, o.timeout)
	conn.SetLogger(o.logger)
	return &Client{addr: addr, conn: conn}
}

// Addr returns the address the client was dialed with.
func (c *Client) Addr() string {
	return c.addr
}

// Close closes the connection. The client is unusable afterwards.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Quit asks the server to close the connection, then closes this end.
// A peer that closes before replying is not an error.
func (c *Client) Quit() error {
	_, err := c.do(wire.TypeStatus, "QUIT")
	cerr := c.Close()
	if err != nil && !errors.Is(err, wire.ErrConnectionClosed) {
		return err
	}
	return cerr
}

func (c *Client) do(expect wire.ReplyType, args ...string) (wire.Reply, error) {
	return c.conn.Do(wire.NewRequest(args...), expect)
}

func (c *Client) doValue(expect wire.ReplyType, value []byte, args ...string) (wire.Reply, error) {
	return c.conn.Do(wire.NewValueRequest(value, args...), expect)
}

func (c *Client) statusCommand(args ...string) error {
	_, err := c.do(wire.TypeStatus, args...)
	return err
}

func (c *Client) intCommand(args ...string) (int64, error) {
	reply, err := c.do(wire.TypeInteger, args...)
	if err != nil {
		return 0, err
	}
	return reply.Int, nil
}

func (c *Client) boolCommand(args ...string) (bool, error) {
	n, err := c.intCommand(args...)
	return n != 0, err
}

func (c *Client) boolValueCommand(value []byte, args ...string) (bool, error) {
	reply, err := c.doValue(wire.TypeInteger, value, args...)
	if err != nil {
		return false, err
	}
	return reply.Int != 0, nil
}

func (c *Client) bulkCommand(args ...string) ([]byte, bool, error) {
	reply, err := c.do(wire.TypeBulk, args...)
	if err != nil {
		return nil, false, err
	}
	if reply.Null {
		return nil, false, nil
	}
	return reply.Bulk, true, nil
}

func (c *Client) multiBulkCommand(args ...string) ([][]byte, error) {
	reply, err := c.do(wire.TypeMultiBulk, args...)
	if err != nil {
		return nil, err
	}
	return reply.Array, nil
}
