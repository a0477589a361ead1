package transport

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	var wire bytes.Buffer
	w := NewCompressWriter(&wire, 64*1024)

	payload := bytes.Repeat([]byte("clickhouse-native-transport"), 10000)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	r := NewCompressReader(&wire)
	got, err := io.ReadAll(io.LimitReader(r, int64(len(payload))))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCompressRoundTripMultipleBlocks(t *testing.T) {
	var wire bytes.Buffer
	w := NewCompressWriter(&wire, 1024)

	payload := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF, 0x01}, 10000)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	r := NewCompressReader(&wire)
	got := make([]byte, 0, len(payload))
	buf := make([]byte, 4096)
	for len(got) < len(payload) {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, payload, got)
}
