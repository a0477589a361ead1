package column

import (
	"fmt"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type DateTime struct {
	chType   Type
	location *time.Location
	values   UInt32
}

func NewDateTime(t Type, loc *time.Location) *DateTime {
	if loc == nil {
		loc = time.UTC
	}
	return &DateTime{chType: t, location: loc}
}

func (dt *DateTime) Type() Type { return dt.chType }

func (dt *DateTime) Rows() int { return len(dt.values.data) }

func (dt *DateTime) RowValue(row int) interface{} { return dt.row(row) }

func (dt *DateTime) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *time.Time:
		*d = dt.row(row)
	case **time.Time:
		*d = new(time.Time)
		**d = dt.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "DateTime"}
	}
	return nil
}

func (dt *DateTime) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case time.Time:
		dt.values.data = append(dt.values.data, uint32(v.Unix()))
	case *time.Time:
		switch {
		case v != nil:
			dt.values.data = append(dt.values.data, uint32(v.Unix()))
		default:
			dt.values.data = append(dt.values.data, 0)
		}
	case null:
		dt.values.data = append(dt.values.data, 0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "DateTime", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (dt *DateTime) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []time.Time:
		in := make([]uint32, 0, len(v))
		for _, t := range v {
			in = append(in, uint32(t.Unix()))
		}
		dt.values.data, nulls = append(dt.values.data, in...), make([]uint8, len(v))
	case []*time.Time:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				dt.values.data = append(dt.values.data, uint32(v.Unix()))
			default:
				dt.values.data, nulls[i] = append(dt.values.data, 0), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "DateTime", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (dt *DateTime) Decode(decoder *binary.Decoder, rows int) error { return dt.values.Decode(decoder, rows) }
func (dt *DateTime) Skip(decoder *binary.Decoder, rows int) error   { return dt.values.Skip(decoder, rows) }
func (dt *DateTime) Encode(encoder *binary.Encoder) error           { return dt.values.Encode(encoder) }

func (dt *DateTime) row(row int) time.Time {
	return time.Unix(int64(dt.values.data[row]), 0).In(dt.location)
}

var _ Interface = (*DateTime)(nil)
