package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullableAppend(t *testing.T) {
	col := NewNullable("Nullable(String)", NewString())
	var (
		a = "a"
		b = "b"
	)
	values := []*string{
		&a,
		nil,
		&b,
		nil,
		nil,
	}
	nulls, err := col.Append(values)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []uint8{0, 1, 0, 1, 1}, nulls)
	assert.Equal(t, 5, col.Rows())
	assert.Equal(t, "a", col.RowValue(0))
	assert.Nil(t, col.RowValue(1))
	assert.Equal(t, "b", col.RowValue(2))
	assert.Nil(t, col.RowValue(3))
	assert.Nil(t, col.RowValue(4))
}

func TestNullableAppendRow(t *testing.T) {
	col := NewNullable("Nullable(String)", NewString())
	if err := col.AppendRow("a"); err != nil {
		t.Fatal(err)
	}
	if err := col.AppendRow(nil); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, col.Rows())
	assert.Equal(t, "a", col.RowValue(0))
	assert.Nil(t, col.RowValue(1))
}
