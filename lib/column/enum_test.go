package column

import (
	"testing"

	"github.com/clickhouse-native/chwire/lib/typeparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnum(t *testing.T, chType Type, width int) (*Enum, error) {
	node, err := typeparser.Parse(string(chType))
	require.NoError(t, err)
	return NewEnum(chType, node, width)
}

func TestEnum_AppendAndScan(t *testing.T) {
	e, err := newTestEnum(t, "Enum8('a' = 1, 'b' = 2)", 1)
	require.NoError(t, err)

	require.NoError(t, e.AppendRow("a"))
	require.NoError(t, e.AppendRow("b"))
	require.Error(t, e.AppendRow("c"))

	assert.Equal(t, 2, e.Rows())
	assert.Equal(t, "a", e.RowValue(0))
	assert.Equal(t, "b", e.RowValue(1))
}

func TestEnum16_AppendAndScan(t *testing.T) {
	e, err := newTestEnum(t, "Enum16('a' = 1, 'b' = 2)", 2)
	require.NoError(t, err)

	require.NoError(t, e.AppendRow("a"))
	require.NoError(t, e.AppendRow("b"))

	assert.Equal(t, 2, e.Rows())
	assert.Equal(t, "a", e.RowValue(0))
	assert.Equal(t, "b", e.RowValue(1))
}

func TestEnum_InvalidIndex(t *testing.T) {
	_, err := newTestEnum(t, "Enum8('a' = 1, 'b' = 256)", 1)
	require.Error(t, err)
}

func TestEnum_UnknownElement(t *testing.T) {
	e, err := newTestEnum(t, "Enum8('a' = 1, 'b' = 2)", 1)
	require.NoError(t, err)

	_, err = e.Append([]string{"a", "z"})
	require.Error(t, err)
}
