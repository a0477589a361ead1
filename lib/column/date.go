package column

import (
	"fmt"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
)

const secInDay = 24 * 60 * 60

// dateMaxDay is the day count of 2149-06-06, the last date Date's u16 wire
// representation can hold.
const dateMaxDay = 65535

type Date struct {
	values UInt16
}

func NewDate() *Date { return &Date{} }

func (dt *Date) Type() Type { return "Date" }

func (dt *Date) Rows() int { return len(dt.values.data) }

func (dt *Date) RowValue(row int) interface{} { return dt.row(row) }

func (dt *Date) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *time.Time:
		*d = dt.row(row)
	case **time.Time:
		*d = new(time.Time)
		**d = dt.row(row)
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: "Date"}
	}
	return nil
}

// dateDay converts t to Date's u16 day count, erring on anything before
// 1970-01-01 or after 2149-06-06.
func dateDay(t time.Time) (uint16, error) {
	days := t.Unix() / secInDay
	if days < 0 || days > dateMaxDay {
		return 0, &ColumnConverterError{Op: "AppendRow", To: "Date", Hint: fmt.Sprintf("day %d out of range [0, %d]", days, dateMaxDay)}
	}
	return uint16(days), nil
}

func (dt *Date) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case time.Time:
		day, err := dateDay(v)
		if err != nil {
			return err
		}
		dt.values.data = append(dt.values.data, day)
	case *time.Time:
		switch {
		case v != nil:
			day, err := dateDay(*v)
			if err != nil {
				return err
			}
			dt.values.data = append(dt.values.data, day)
		default:
			dt.values.data = append(dt.values.data, 0)
		}
	case null:
		dt.values.data = append(dt.values.data, 0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: "Date", From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (dt *Date) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []time.Time:
		in := make([]uint16, 0, len(v))
		for _, t := range v {
			day, derr := dateDay(t)
			if derr != nil {
				return nil, derr
			}
			in = append(in, day)
		}
		dt.values.data, nulls = append(dt.values.data, in...), make([]uint8, len(v))
	case []*time.Time:
		nulls = make([]uint8, len(v))
		for i, v := range v {
			switch {
			case v != nil:
				day, derr := dateDay(*v)
				if derr != nil {
					return nil, derr
				}
				dt.values.data = append(dt.values.data, day)
			default:
				dt.values.data, nulls[i] = append(dt.values.data, 0), 1
			}
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: "Date", From: fmt.Sprintf("%T", v)}
	}
	return
}

func (dt *Date) Decode(decoder *binary.Decoder, rows int) error { return dt.values.Decode(decoder, rows) }
func (dt *Date) Skip(decoder *binary.Decoder, rows int) error   { return dt.values.Skip(decoder, rows) }
func (dt *Date) Encode(encoder *binary.Encoder) error           { return dt.values.Encode(encoder) }

func (dt *Date) row(row int) time.Time {
	return time.Unix(int64(dt.values.data[row])*secInDay, 0).In(time.UTC)
}

var _ Interface = (*Date)(nil)
