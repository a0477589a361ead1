package column

import (
	"fmt"
	"math"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
)

// unix time of 1925-01-01
const date32Epoch = -1420070400

type Date32 struct {
	values Int32
}

func NewDate32() *Date32 { return &Date32{} }

func (dt *Date32) Type() Type { return "Date32" }

func (dt *Date32) Rows() int { return len(dt.values.data) }

func (dt *Date32) RowValue(row int) interface{} { return dt.row(row) }

func (dt *Date32) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *time.Time:
		*d = dt.row(row)
	case **time.Time:
		*d = new(time.Time)
		**d = dt.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "Date32"}
	}
	return nil
}

func (dt *Date32) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case time.Time:
		dt.values.data = append(dt.values.data, timeToInt32(v))
	case *time.Time:
		switch {
		case v != nil:
			dt.values.data = append(dt.values.data, timeToInt32(*v))
		default:
			dt.values.data = append(dt.values.data, 0)
		}
	case null:
		dt.values.data = append(dt.values.data, 0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "Date32", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (dt *Date32) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []time.Time:
		in := make([]int32, 0, len(v))
		for _, t := range v {
			in = append(in, timeToInt32(t))
		}
		dt.values.data, nulls = append(dt.values.data, in...), make([]uint8, len(v))
	case []*time.Time:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				dt.values.data = append(dt.values.data, timeToInt32(*v))
			default:
				dt.values.data, nulls[i] = append(dt.values.data, 0), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "Date32", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (dt *Date32) Decode(decoder *binary.Decoder, rows int) error { return dt.values.Decode(decoder, rows) }
func (dt *Date32) Skip(decoder *binary.Decoder, rows int) error   { return dt.values.Skip(decoder, rows) }
func (dt *Date32) Encode(encoder *binary.Encoder) error           { return dt.values.Encode(encoder) }

func (dt *Date32) row(row int) time.Time {
	return time.Unix((int64(dt.values.data[row])*secInDay)+date32Epoch, 0).UTC()
}

func timeToInt32(t time.Time) int32 {
	return int32((t.Unix() - date32Epoch) / secInDay)
}

// reinterpretDateTime views each date as midnight UTC on that date,
// DateTime's own native instant, failing (ok=false) if any row falls
// outside DateTime's uint32-seconds-since-1970 range.
func (dt *Date32) reinterpretDateTime() (*DateTime, bool) {
	out := &DateTime{chType: "DateTime", location: time.UTC}
	out.values.data = make([]uint32, len(dt.values.data))
	for i, days := range dt.values.data {
		sec := int64(days)*secInDay + date32Epoch
		if sec < 0 || sec > math.MaxUint32 {
			return nil, false
		}
		out.values.data[i] = uint32(sec)
	}
	return out, true
}

var _ Interface = (*Date32)(nil)
