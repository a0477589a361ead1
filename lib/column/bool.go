package column

import (
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type Bool struct {
	values UInt8
}

func NewBool() *Bool { return &Bool{} }

func (col *Bool) Type() Type { return "Bool" }
func (col *Bool) Rows() int  { return len(col.values.data) }

func (col *Bool) RowValue(row int) interface{} { return col.row(row) }

func (col *Bool) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *bool:
		*d = col.row(row)
	case **bool:
		*d = new(bool)
		**d = col.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "Bool"}
	}
	return nil
}

func (col *Bool) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case bool:
		col.values.data = append(col.values.data, boolByte(v))
	case *bool:
		if v != nil {
			col.values.data = append(col.values.data, boolByte(*v))
		} else {
			col.values.data = append(col.values.data, 0)
		}
	case null:
		col.values.data = append(col.values.data, 0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "Bool", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (col *Bool) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []bool:
		in := make([]uint8, 0, len(v))
		for _, b := range v {
			in = append(in, boolByte(b))
		}
		col.values.data = append(col.values.data, in...)
		return make([]uint8, len(v)), nil
	case []*bool:
		nulls = make([]uint8, len(v))
		in := make([]uint8, 0, len(v))
		for i, b := range v {
			if b != nil {
				in = append(in, boolByte(*b))
			} else {
				in, nulls[i] = append(in, 0), 1
			}
		}
		col.values.data = append(col.values.data, in...)
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "Bool", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *Bool) Decode(decoder *binary.Decoder, rows int) error { return col.values.Decode(decoder, rows) }
func (col *Bool) Skip(decoder *binary.Decoder, rows int) error   { return decoder.Skip(rows) }
func (col *Bool) Encode(encoder *binary.Encoder) error            { return col.values.Encode(encoder) }

func (col *Bool) row(i int) bool { return col.values.data[i] == 1 }

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

var _ Interface = (*Bool)(nil)
