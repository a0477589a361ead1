package column

import (
	"encoding"
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type FixedString struct {
	data []byte
	size int
}

func NewFixedString(size int) *FixedString {
	return &FixedString{size: size}
}

func (col *FixedString) Type() Type {
	return Type(fmt.Sprintf("FixedString(%d)", col.size))
}

func (col *FixedString) Rows() int {
	if col.size == 0 {
		return 0
	}
	return len(col.data) / col.size
}

func (col *FixedString) RowValue(row int) interface{} {
	return col.row(row)
}

func (col *FixedString) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *[]byte:
		*d = col.row(row)
	case **[]byte:
		*d = new([]byte)
		**d = col.row(row)
	case *string:
		*d = string(col.row(row))
	case encoding.BinaryUnmarshaler:
		return d.UnmarshalBinary(col.row(row))
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "FixedString"}
	}
	return nil
}

func (col *FixedString) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []byte:
		if len(v)%col.size != 0 {
			return nil, &InvalidFixedSizeData{Op: "Append", Got: len(v), Expected: col.size}
		}
		col.data, nulls = append(col.data, v...), make([]uint8, len(v)/col.size)
	case [][]byte:
		nulls = make([]uint8, len(v))
		for _, v := range v {
			if len(v) > col.size {
				return nil, &InvalidFixedSizeData{Op: "Append", Got: len(v), Expected: col.size}
			}
			col.data = appendPadded(col.data, v, col.size)
		}
	case []*[]byte:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				if len(*v) > col.size {
					return nil, &InvalidFixedSizeData{Op: "Append", Got: len(*v), Expected: col.size}
				}
				col.data = appendPadded(col.data, *v, col.size)
			default:
				col.data, nulls[i] = append(col.data, make([]byte, col.size)...), 1
			}
		}
	case encoding.BinaryMarshaler:
		data, err := v.MarshalBinary()
		if err != nil {
			return nil, err
		}
		if len(data)%col.size != 0 {
			return nil, &InvalidFixedSizeData{Op: "Append", Got: len(data), Expected: col.size}
		}
		col.data, nulls = append(col.data, data...), make([]uint8, len(data)/col.size)
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "FixedString", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *FixedString) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case []byte:
		if len(v) > col.size {
			return &InvalidFixedSizeData{Op: "AppendRow", Got: len(v), Expected: col.size}
		}
		col.data = appendPadded(col.data, v, col.size)
	case encoding.BinaryMarshaler:
		data, err := v.MarshalBinary()
		if err != nil {
			return err
		}
		if len(data) > col.size {
			return &InvalidFixedSizeData{Op: "AppendRow", Got: len(data), Expected: col.size}
		}
		col.data = appendPadded(col.data, data, col.size)
	case null:
		col.data = append(col.data, make([]byte, col.size)...)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "FixedString", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

// appendPadded appends v to data as a size-byte field, right-padding with
// zero bytes when v is shorter than size. Callers must already have
// rejected v longer than size.
func appendPadded(data, v []byte, size int) []byte {
	data = append(data, v...)
	if pad := size - len(v); pad > 0 {
		data = append(data, make([]byte, pad)...)
	}
	return data
}

func (col *FixedString) Decode(decoder *binary.Decoder, rows int) error {
	data, err := decoder.Fixed(col.size * rows)
	if err != nil {
		return err
	}
	col.data = data
	return nil
}

func (col *FixedString) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(col.size * rows)
}

func (col *FixedString) Encode(encoder *binary.Encoder) error {
	return encoder.Raw(col.data)
}

func (col *FixedString) row(row int) []byte {
	return col.data[row*col.size : (row+1)*col.size]
}

var _ Interface = (*FixedString)(nil)
