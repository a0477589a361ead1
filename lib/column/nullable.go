package column

import (
	"reflect"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type Nullable struct {
	chType Type
	base   Interface
	nulls  []uint8
}

func NewNullable(t Type, base Interface) *Nullable {
	return &Nullable{chType: t, base: base}
}

func (col *Nullable) Type() Type { return col.chType }
func (col *Nullable) Rows() int  { return len(col.nulls) }

func (col *Nullable) RowValue(row int) interface{} {
	if col.nulls[row] == 1 {
		return nil
	}
	return col.base.RowValue(row)
}

func (col *Nullable) ScanRow(dest interface{}, row int) error {
	if col.nulls[row] == 1 {
		return nil
	}
	return col.base.ScanRow(dest, row)
}

func (col *Nullable) Append(v interface{}) ([]uint8, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: "not a slice"}
	}
	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	nonNull := reflect.MakeSlice(reflect.SliceOf(elemType), 0, rv.Len())
	nulls := make([]uint8, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr && elem.IsNil() {
			nulls[i] = 1
			nonNull = reflect.Append(nonNull, reflect.Zero(elem.Type().Elem()))
			continue
		}
		switch {
		case elem.Kind() == reflect.Ptr:
			nonNull = reflect.Append(nonNull, elem.Elem())
		default:
			nonNull = reflect.Append(nonNull, elem)
		}
	}
	if _, err := col.base.Append(nonNull.Interface()); err != nil {
		return nil, err
	}
	col.nulls = append(col.nulls, nulls...)
	return nulls, nil
}

func (col *Nullable) AppendRow(v interface{}) error {
	if v == nil {
		col.nulls = append(col.nulls, 1)
		return col.base.AppendRow(null{})
	}
	col.nulls = append(col.nulls, 0)
	return col.base.AppendRow(v)
}

func (col *Nullable) Decode(decoder *binary.Decoder, rows int) error {
	nulls, err := decodeUint8s(decoder, rows)
	if err != nil {
		return err
	}
	col.nulls = nulls
	return col.base.Decode(decoder, rows)
}

func (col *Nullable) Skip(decoder *binary.Decoder, rows int) error {
	if err := decoder.Skip(rows); err != nil {
		return err
	}
	return col.base.Skip(decoder, rows)
}

func (col *Nullable) Encode(encoder *binary.Encoder) error {
	if err := encodeUint8s(encoder, col.nulls); err != nil {
		return err
	}
	return col.base.Encode(encoder)
}

var _ Interface = (*Nullable)(nil)
