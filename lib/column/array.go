package column

import (
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
)

// Array is a single level of ClickHouse's Array(T) nesting; Array(Array(T))
// is two Array codecs, the outer one's element codec being the inner Array.
type Array struct {
	chType  Type
	values  Interface
	offsets []uint64
}

func NewArray(t Type, values Interface) *Array {
	return &Array{chType: t, values: values}
}

func (col *Array) Type() Type { return col.chType }

func (col *Array) Rows() int { return len(col.offsets) }

func (col *Array) bounds(row int) (start, end uint64) {
	end = col.offsets[row]
	if row > 0 {
		start = col.offsets[row-1]
	}
	return
}

func (col *Array) RowValue(row int) interface{} {
	start, end := col.bounds(row)
	out := make([]interface{}, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, col.values.RowValue(int(i)))
	}
	return out
}

func (col *Array) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *[]interface{}:
		*d = col.RowValue(row).([]interface{})
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(col.chType)}
	}
	return nil
}

func (col *Array) Append(v interface{}) (nulls []uint8, err error) {
	rows, ok := v.([][]interface{})
	if !ok {
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	nulls = make([]uint8, len(rows))
	for _, row := range rows {
		if err := col.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return
}

func (col *Array) AppendRow(v interface{}) error {
	row, ok := v.([]interface{})
	if !ok {
		return &ColumnConverterError{Op: "AppendRow", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	for _, elem := range row {
		if err := col.values.AppendRow(elem); err != nil {
			return err
		}
	}
	offset := uint64(len(row))
	if n := len(col.offsets); n != 0 {
		offset += col.offsets[n-1]
	}
	col.offsets = append(col.offsets, offset)
	return nil
}

func (col *Array) Decode(decoder *binary.Decoder, rows int) error {
	offsets, err := decodeUint64s(decoder, rows)
	if err != nil {
		return err
	}
	col.offsets = offsets
	total := 0
	if rows != 0 {
		total = int(offsets[rows-1])
	}
	return col.values.Decode(decoder, total)
}

// Skip reads the cumulative offsets (needed to know how many inner
// elements follow) but routes the elements themselves through values.Skip
// instead of materialising them.
func (col *Array) Skip(decoder *binary.Decoder, rows int) error {
	var total uint64
	for i := 0; i < rows; i++ {
		v, err := decoder.UInt64()
		if err != nil {
			return err
		}
		total = v
	}
	return col.values.Skip(decoder, int(total))
}

func (col *Array) Encode(encoder *binary.Encoder) error {
	if err := encodeUint64s(encoder, col.offsets); err != nil {
		return err
	}
	return col.values.Encode(encoder)
}

var _ Interface = (*Array)(nil)
