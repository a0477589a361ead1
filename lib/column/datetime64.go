package column

import (
	"fmt"
	"math"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
)

type DateTime64 struct {
	chType    Type
	values    Int64
	location  *time.Location
	precision int
}

func NewDateTime64(t Type, precision int, loc *time.Location) *DateTime64 {
	if loc == nil {
		loc = time.UTC
	}
	return &DateTime64{chType: t, precision: precision, location: loc}
}

func (dt *DateTime64) Type() Type { return dt.chType }

func (dt *DateTime64) Rows() int { return len(dt.values.data) }

func (dt *DateTime64) RowValue(i int) interface{} { return dt.row(i) }

func (dt *DateTime64) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *time.Time:
		*d = dt.row(row)
	case **time.Time:
		*d = new(time.Time)
		**d = dt.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "DateTime64"}
	}
	return nil
}

func (dt *DateTime64) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case time.Time:
		dt.values.data = append(dt.values.data, dt.timeToInt64(v))
	case *time.Time:
		switch {
		case v != nil:
			dt.values.data = append(dt.values.data, dt.timeToInt64(*v))
		default:
			dt.values.data = append(dt.values.data, 0)
		}
	case null:
		dt.values.data = append(dt.values.data, 0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "DateTime64", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (dt *DateTime64) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []time.Time:
		in := make([]int64, 0, len(v))
		for _, t := range v {
			in = append(in, dt.timeToInt64(t))
		}
		dt.values.data, nulls = append(dt.values.data, in...), make([]uint8, len(v))
	case []*time.Time:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				dt.values.data = append(dt.values.data, dt.timeToInt64(*v))
			default:
				dt.values.data, nulls[i] = append(dt.values.data, 0), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "DateTime64", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (dt *DateTime64) Decode(decoder *binary.Decoder, rows int) error {
	return dt.values.Decode(decoder, rows)
}

func (dt *DateTime64) Skip(decoder *binary.Decoder, rows int) error {
	return dt.values.Skip(decoder, rows)
}

func (dt *DateTime64) Encode(encoder *binary.Encoder) error {
	return dt.values.Encode(encoder)
}

func (dt *DateTime64) row(i int) time.Time {
	var nano int64
	if dt.precision < 19 {
		nano = dt.values.data[i] * int64(math.Pow10(9-dt.precision))
	}
	sec := nano / int64(1e9)
	nsec := nano - sec*int64(1e9)
	return time.Unix(sec, nsec).In(dt.location)
}

func (dt *DateTime64) timeToInt64(t time.Time) int64 {
	var timestamp int64
	if !t.IsZero() {
		timestamp = t.UnixNano()
	}
	return timestamp / int64(math.Pow10(9-dt.precision))
}

var _ Interface = (*DateTime64)(nil)
