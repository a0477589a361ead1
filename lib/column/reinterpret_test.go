package column

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReinterpretIPv4AsUint32(t *testing.T) {
	col := NewIPv4()
	require.NoError(t, col.AppendRow(net.ParseIP("192.168.1.1")))
	require.NoError(t, col.AppendRow(net.ParseIP("0.0.0.1")))

	got, ok := TryReinterpret[[]uint32](col)
	require.True(t, ok)
	assert.Equal(t, []uint32{0xC0A80101, 1}, got)
}

func TestReinterpretIPv4AsStrings(t *testing.T) {
	col := NewIPv4()
	require.NoError(t, col.AppendRow(net.ParseIP("10.0.0.5")))

	got, ok := TryReinterpret[[]string](col)
	require.True(t, ok)
	assert.Equal(t, []string{"10.0.0.5"}, got)
}

func TestReinterpretDate32AsDateTime(t *testing.T) {
	col := NewDate32()
	in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, col.AppendRow(in))

	got, ok := TryReinterpret[*DateTime](col)
	require.True(t, ok)
	require.Equal(t, 1, got.Rows())
	assert.Equal(t, in, got.row(0))
}

func TestReinterpretDate32BeforeUnixEpochFails(t *testing.T) {
	col := NewDate32()
	require.NoError(t, col.AppendRow(time.Date(1925, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, ok := TryReinterpret[*DateTime](col)
	assert.False(t, ok)
}

func TestReinterpretUnsupportedCombinationFails(t *testing.T) {
	col := NewUUID()
	_, ok := TryReinterpret[[]uint32](col)
	assert.False(t, ok)
}
