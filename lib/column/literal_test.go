package column

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLiteralParameterisedInsert exercises a parameterised insert's
// {id:UUID}, {dt:DateTime} literal pair.
func TestLiteralParameterisedInsert(t *testing.T) {
	id := uuid.MustParse("f4b3f3d0-2b6a-4b6a-8b3a-9b3a9b3a9b3a")
	lit, err := Literal("UUID", id, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "'f4b3f3d0-2b6a-4b6a-8b3a-9b3a9b3a9b3a'", lit)

	dt := time.Date(2021, 7, 14, 12, 34, 56, 0, time.UTC)
	lit, err = Literal("DateTime", dt, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "toDateTime('2021-07-14 12:34:56')", lit)
}

func TestLiteralDateTimeWithZone(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Addis_Ababa")
	require.NoError(t, err)
	dt := time.Date(2021, 7, 14, 12, 34, 56, 0, loc)
	lit, err := Literal("DateTime", dt, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "toDateTime('2021-07-14 12:34:56', 'Africa/Addis_Ababa')", lit)
}

func TestLiteralInteger(t *testing.T) {
	lit, err := Literal("Int32", int32(-42), nil)
	require.NoError(t, err)
	assert.Equal(t, "-42", lit)
}

func TestLiteralString(t *testing.T) {
	lit, err := Literal("String", "it's a test", nil)
	require.NoError(t, err)
	assert.Equal(t, `'it\'s a test'`, lit)
}

func TestLiteralDecimal(t *testing.T) {
	lit, err := Literal("Decimal(18, 4)", decimal.RequireFromString("123.45"), nil)
	require.NoError(t, err)
	assert.Equal(t, "123.45", lit)
}

func TestLiteralNullable(t *testing.T) {
	lit, err := Literal("Nullable(Int32)", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "NULL", lit)

	lit, err = Literal("Nullable(Int32)", int32(7), nil)
	require.NoError(t, err)
	assert.Equal(t, "7", lit)
}

func TestLiteralArray(t *testing.T) {
	lit, err := Literal("Array(Int32)", []int32{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", lit)
}

func TestLiteralTuple(t *testing.T) {
	lit, err := Literal("Tuple(UInt32, String)", []interface{}{uint32(1), "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "(1, 'a')", lit)
}

func TestLiteralUnsupportedType(t *testing.T) {
	_, err := Literal("Nothing", 1, nil)
	require.Error(t, err)
}
