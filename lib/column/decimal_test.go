package column

import (
	"bytes"
	"testing"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecimal_RoundTrip32(t *testing.T) {
	t.Parallel()

	data := []string{"0", "1", "-1", "10", "123", "1234.567", "-1234.567"}

	for _, attempt := range data {
		var buf bytes.Buffer
		encoder := binary.NewEncoder(&buf)
		decoder := binary.NewDecoder(&buf)

		want, err := decimal.NewFromString(attempt)
		if !assert.NoError(t, err) {
			continue
		}

		col, err := NewDecimal("Decimal(5,3)", 5, 3)
		if !assert.NoError(t, err) {
			continue
		}
		if !assert.NoError(t, col.AppendRow(want)) {
			continue
		}
		if !assert.NoError(t, col.Encode(encoder)) {
			continue
		}

		col2, err := NewDecimal("Decimal(5,3)", 5, 3)
		if !assert.NoError(t, err) {
			continue
		}
		if !assert.NoError(t, col2.Decode(decoder, 1)) {
			continue
		}

		got := col2.RowValue(0).(decimal.Decimal)
		assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
	}
}

func TestDecimal_RoundTrip64(t *testing.T) {
	t.Parallel()

	data := []string{"0", "1", "-1", "12345678901.234", "-12345678901.234"}

	for _, attempt := range data {
		var buf bytes.Buffer
		encoder := binary.NewEncoder(&buf)
		decoder := binary.NewDecoder(&buf)

		want, err := decimal.NewFromString(attempt)
		if !assert.NoError(t, err) {
			continue
		}

		col, err := NewDecimal("Decimal(10,3)", 10, 3)
		if !assert.NoError(t, err) {
			continue
		}
		if !assert.NoError(t, col.AppendRow(want)) {
			continue
		}
		if !assert.NoError(t, col.Encode(encoder)) {
			continue
		}

		col2, err := NewDecimal("Decimal(10,3)", 10, 3)
		if !assert.NoError(t, err) {
			continue
		}
		if !assert.NoError(t, col2.Decode(decoder, 1)) {
			continue
		}

		got := col2.RowValue(0).(decimal.Decimal)
		assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
	}
}

func TestDecimal_RoundTrip128(t *testing.T) {
	t.Parallel()

	want, err := decimal.NewFromString("123456789012345678901234.123456")
	if !assert.NoError(t, err) {
		return
	}

	var buf bytes.Buffer
	encoder := binary.NewEncoder(&buf)
	decoder := binary.NewDecoder(&buf)

	col, err := NewDecimal("Decimal(30,6)", 30, 6)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.NoError(t, col.AppendRow(want)) {
		return
	}
	if !assert.NoError(t, col.Encode(encoder)) {
		return
	}

	col2, err := NewDecimal("Decimal(30,6)", 30, 6)
	if !assert.NoError(t, err) {
		return
	}
	if !assert.NoError(t, col2.Decode(decoder, 1)) {
		return
	}

	got := col2.RowValue(0).(decimal.Decimal)
	assert.True(t, want.Equal(got), "expected %s, got %s", want, got)
}

func TestDecimal_InvalidPrecision(t *testing.T) {
	t.Parallel()

	_, err := NewDecimal("Decimal(80,3)", 80, 3)
	assert.Error(t, err)
}
