package column

import (
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/google/uuid"
)

const uuidSize = 16

type UUID struct {
	data []byte
}

func NewUUID() *UUID { return &UUID{} }

func (col *UUID) Type() Type {
	return "UUID"
}

func (col *UUID) Rows() int {
	return len(col.data) / uuidSize
}

func (col *UUID) RowValue(i int) interface{} {
	return col.row(i)
}

func (col *UUID) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *uuid.UUID:
		var v uuid.UUID
		copy(v[:], col.row(row))
		*d = v
	case **uuid.UUID:
		var v uuid.UUID
		copy(v[:], col.row(row))
		*d = new(uuid.UUID)
		**d = v
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "UUID"}
	}
	return nil
}

func (col *UUID) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []uuid.UUID:
		nulls = make([]uint8, len(v))
		for _, v := range v {
			col.data = append(col.data, v[:]...)
		}
	case []*uuid.UUID:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				tmp := *v
				col.data = append(col.data, tmp[:]...)
			default:
				col.data, nulls[i] = append(col.data, make([]byte, uuidSize)...), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "UUID", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *UUID) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case uuid.UUID:
		col.data = append(col.data, v[:]...)
	case null:
		col.data = append(col.data, make([]byte, uuidSize)...)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "UUID", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (col *UUID) Decode(decoder *binary.Decoder, rows int) error {
	data, err := decoder.Fixed(uuidSize * rows)
	if err != nil {
		return err
	}
	col.data = data
	return nil
}

func (col *UUID) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(uuidSize * rows)
}

func (col *UUID) Encode(encoder *binary.Encoder) error {
	return encoder.Raw(col.data)
}

func (col *UUID) row(i int) []byte {
	return col.data[i*uuidSize : (i+1)*uuidSize]
}

var _ Interface = (*UUID)(nil)
