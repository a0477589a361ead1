package column

import (
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type Tuple struct {
	chType  Type
	names   []string
	columns []Interface
}

func NewTuple(t Type, names []string, columns []Interface) *Tuple {
	return &Tuple{chType: t, names: names, columns: columns}
}

func (col *Tuple) Type() Type { return col.chType }

func (col *Tuple) Rows() int {
	if len(col.columns) == 0 {
		return 0
	}
	return col.columns[0].Rows()
}

func (col *Tuple) RowValue(row int) interface{} {
	tuple := make([]interface{}, 0, len(col.columns))
	for _, c := range col.columns {
		tuple = append(tuple, c.RowValue(row))
	}
	return tuple
}

func (col *Tuple) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *[]interface{}:
		*d = col.RowValue(row).([]interface{})
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(col.chType)}
	}
	return nil
}

func (col *Tuple) Append(v interface{}) (nulls []uint8, err error) {
	rows, ok := v.([][]interface{})
	if !ok {
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	for _, row := range rows {
		if err := col.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return make([]uint8, len(rows)), nil
}

func (col *Tuple) AppendRow(v interface{}) error {
	row, ok := v.([]interface{})
	if !ok {
		return &ColumnConverterError{Op: "AppendRow", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	if len(row) != len(col.columns) {
		return &BadSizeOfTuple{Op: "AppendRow", Got: len(row), Expected: len(col.columns)}
	}
	for i, elem := range row {
		if err := col.columns[i].AppendRow(elem); err != nil {
			return err
		}
	}
	return nil
}

func (col *Tuple) Decode(decoder *binary.Decoder, rows int) error {
	for _, c := range col.columns {
		if err := c.Decode(decoder, rows); err != nil {
			return err
		}
	}
	return nil
}

func (col *Tuple) Skip(decoder *binary.Decoder, rows int) error {
	for _, c := range col.columns {
		if err := c.Skip(decoder, rows); err != nil {
			return err
		}
	}
	return nil
}

func (col *Tuple) Encode(encoder *binary.Encoder) error {
	for _, c := range col.columns {
		if err := c.Encode(encoder); err != nil {
			return err
		}
	}
	return nil
}

var _ Interface = (*Tuple)(nil)
