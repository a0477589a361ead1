// Package transport implements the duplex, deadline-aware byte stream a
// session reads and writes through: TCP dialing with round-robin host
// failover, per-operation read/write deadlines, and the optional LZ4
// compression framing layered transparently over both directions.
package transport

import (
	"bufio"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

var dialTick int32

// Dial connects to one of hosts, trying each in round-robin order starting
// from an incrementing counter so repeated calls spread load across a
// cluster rather than hammering the first address. network is passed
// straight to net.DialTimeout ("tcp" in practice).
func Dial(network string, hosts []string, noDelay bool, connectTimeout, readTimeout, writeTimeout time.Duration, logf func(string, ...interface{})) (*Conn, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("transport: no hosts to dial")
	}
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	var (
		err   error
		conn  net.Conn
		ident = int(atomic.AddInt32(&dialTick, 1))
	)
	if ident < 0 {
		ident = -ident
	}
	for i := 0; i <= len(hosts); i++ {
		addr := hosts[(ident+i)%len(hosts)]
		if conn, err = net.DialTimeout(network, addr, connectTimeout); err == nil {
			logf("[transport=%d] connected -> %s", ident, conn.RemoteAddr())
			if tcp, ok := conn.(*net.TCPConn); ok {
				tcp.SetNoDelay(noDelay)
			}
			return &Conn{
				Conn:         conn,
				logf:         logf,
				ident:        ident,
				buffer:       bufio.NewReaderSize(conn, 256*1024),
				readTimeout:  readTimeout,
				writeTimeout: writeTimeout,
			}, nil
		}
	}
	return nil, fmt.Errorf("transport: could not connect to any of %d hosts: %w", len(hosts), err)
}

// Conn wraps a net.Conn with per-call deadlines and a buffered reader, the
// raw duplex stream the binary encoder/decoder (and, when compression is
// enabled, the LZ4 framing in this package) read and write through.
type Conn struct {
	net.Conn
	logf         func(string, ...interface{})
	ident        int
	buffer       *bufio.Reader
	closed       bool
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Ident identifies this connection in log output; it has no protocol
// meaning.
func (c *Conn) Ident() int { return c.ident }

func (c *Conn) Read(b []byte) (int, error) {
	if c.readTimeout != 0 {
		c.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	var total int
	for total < len(b) {
		n, err := c.buffer.Read(b[total:])
		total += n
		if err != nil {
			c.logf("[transport=%d] read error: %v", c.ident, err)
			c.closed = true
			return total, &IOError{Op: "read", Deadline: c.readTimeout, Err: err}
		}
	}
	return total, nil
}

func (c *Conn) Write(b []byte) (int, error) {
	if c.writeTimeout != 0 {
		c.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	var total int
	for total < len(b) {
		n, err := c.Conn.Write(b[total:])
		total += n
		if err != nil {
			c.logf("[transport=%d] write error: %v", c.ident, err)
			c.closed = true
			return total, &IOError{Op: "write", Deadline: c.writeTimeout, Err: err}
		}
	}
	return total, nil
}

func (c *Conn) Close() error {
	if !c.closed {
		c.closed = true
		return c.Conn.Close()
	}
	return nil
}

// Closed reports whether a prior read or write already observed a fatal
// I/O error and tore the connection down.
func (c *Conn) Closed() bool { return c.closed }

// IOError wraps a transport failure, including timeouts, with the deadline
// that was in effect so the message is self-explanatory to a caller who
// never configured one explicitly.
type IOError struct {
	Op       string
	Deadline time.Duration
	Err      error
}

func (e *IOError) Error() string {
	if e.Deadline == 0 {
		return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport: %s (deadline %s): %v", e.Op, e.Deadline, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying error was a deadline expiry,
// satisfying the net.Error-shaped duck type callers probe for.
func (e *IOError) Timeout() bool {
	type timeout interface{ Timeout() bool }
	t, ok := e.Err.(timeout)
	return ok && t.Timeout()
}
