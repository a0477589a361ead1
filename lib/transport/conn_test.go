package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 5)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		conn.Write(buf)
	}()

	c, err := Dial("tcp", []string{ln.Addr().String()}, true, time.Second, time.Second, time.Second, nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Write([]byte("hello"))
	require.NoError(t, err)

	out := make([]byte, 5)
	_, err = c.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestDialFallsBackAcrossHosts(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	c, err := Dial("tcp", []string{"127.0.0.1:1", ln.Addr().String()}, false, time.Second, 0, 0, nil)
	require.NoError(t, err)
	c.Close()
}

func TestConnReadErrorClosesAndMarksIOError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	c, err := Dial("tcp", []string{ln.Addr().String()}, true, time.Second, time.Second, time.Second, nil)
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = c.Read(buf)
	require.Error(t, err)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, c.Closed())
}
