package column

import (
	"fmt"

	"github.com/clickhouse-native/chwire/lib/binary"
)

// Number is the set of Go types a Numeric column can hold, one per
// ClickHouse fixed-width numeric wire type.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Numeric is the single generic codec backing every fixed-width numeric
// ClickHouse type (Int8..Int64, UInt8..UInt64, Float32, Float64), replacing
// what used to be a hand-written column file per width.
type Numeric[T Number] struct {
	chType Type
	data   []T
}

func newNumeric[T Number](t Type) *Numeric[T] {
	return &Numeric[T]{chType: t}
}

// Type aliases below exist for composing columns (Date's day count, Bool's
// byte mask, DateTime's seconds) that want the numeric codec's wire IO
// but are addressed as a distinct Go type by the rest of the package.
type (
	Int8    = Numeric[int8]
	Int16   = Numeric[int16]
	Int32   = Numeric[int32]
	Int64   = Numeric[int64]
	UInt8   = Numeric[uint8]
	UInt16  = Numeric[uint16]
	UInt32  = Numeric[uint32]
	UInt64  = Numeric[uint64]
	Float32 = Numeric[float32]
	Float64 = Numeric[float64]
)

func (col *Numeric[T]) Type() Type { return col.chType }
func (col *Numeric[T]) Rows() int  { return len(col.data) }

func (col *Numeric[T]) RowValue(row int) interface{} { return col.data[row] }

func (col *Numeric[T]) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *T:
		*d = col.data[row]
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(col.chType)}
	}
	return nil
}

func (col *Numeric[T]) Append(v interface{}) ([]uint8, error) {
	switch v := v.(type) {
	case []T:
		col.data = append(col.data, v...)
		return make([]uint8, len(v)), nil
	default:
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
}

func (col *Numeric[T]) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case T:
		col.data = append(col.data, v)
	case null:
		var zero T
		col.data = append(col.data, zero)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (col *Numeric[T]) Decode(decoder *binary.Decoder, rows int) error {
	col.data = make([]T, rows)
	for i := range col.data {
		v, err := decodeOne[T](decoder)
		if err != nil {
			return err
		}
		col.data[i] = v
	}
	return nil
}

func (col *Numeric[T]) Skip(decoder *binary.Decoder, rows int) error {
	for i := 0; i < rows; i++ {
		if _, err := decodeOne[T](decoder); err != nil {
			return err
		}
	}
	return nil
}

func (col *Numeric[T]) Encode(encoder *binary.Encoder) error {
	for _, v := range col.data {
		if err := encodeOne(encoder, v); err != nil {
			return err
		}
	}
	return nil
}

// decodeOne and encodeOne bridge the generic Numeric[T] to binary.Decoder/
// Encoder's per-width methods: T's constraint guarantees exactly one case
// matches at runtime for any instantiation.
func decodeOne[T Number](decoder *binary.Decoder) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int8:
		v, err := decoder.Int8()
		return any(v).(T), err
	case int16:
		v, err := decoder.Int16()
		return any(v).(T), err
	case int32:
		v, err := decoder.Int32()
		return any(v).(T), err
	case int64:
		v, err := decoder.Int64()
		return any(v).(T), err
	case uint8:
		v, err := decoder.UInt8()
		return any(v).(T), err
	case uint16:
		v, err := decoder.UInt16()
		return any(v).(T), err
	case uint32:
		v, err := decoder.UInt32()
		return any(v).(T), err
	case uint64:
		v, err := decoder.UInt64()
		return any(v).(T), err
	case float32:
		v, err := decoder.Float32()
		return any(v).(T), err
	case float64:
		v, err := decoder.Float64()
		return any(v).(T), err
	default:
		return zero, fmt.Errorf("column: unsupported numeric width %T", zero)
	}
}

func encodeOne[T Number](encoder *binary.Encoder, v T) error {
	switch v := any(v).(type) {
	case int8:
		return encoder.Int8(v)
	case int16:
		return encoder.Int16(v)
	case int32:
		return encoder.Int32(v)
	case int64:
		return encoder.Int64(v)
	case uint8:
		return encoder.UInt8(v)
	case uint16:
		return encoder.UInt16(v)
	case uint32:
		return encoder.UInt32(v)
	case uint64:
		return encoder.UInt64(v)
	case float32:
		return encoder.Float32(v)
	case float64:
		return encoder.Float64(v)
	default:
		return fmt.Errorf("column: unsupported numeric width %T", v)
	}
}

var _ Interface = (*Numeric[int8])(nil)
