package column

import (
	"github.com/clickhouse-native/chwire/lib/binary"
)

// Nothing backs ClickHouse's Nothing type, the element type of an empty
// Array literal. It holds no values; Decode skips the rows on the wire
// without allocating storage, since there is nothing to materialise.
type Nothing struct{}

func NewNothing() *Nothing { return &Nothing{} }

func (Nothing) Type() Type                     { return "Nothing" }
func (Nothing) Rows() int                       { return 0 }
func (Nothing) RowValue(int) interface{}        { return nil }
func (Nothing) ScanRow(interface{}, int) error  { return nil }

func (Nothing) Append(interface{}) ([]uint8, error) {
	return nil, &ColumnConverterError{Op: "Append", To: "Nothing", Hint: "Nothing values cannot be stored"}
}

func (Nothing) AppendRow(interface{}) error {
	return &ColumnConverterError{Op: "AppendRow", To: "Nothing", Hint: "Nothing values cannot be stored"}
}

func (Nothing) Decode(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(rows)
}

func (Nothing) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(rows)
}

func (Nothing) Encode(*binary.Encoder) error {
	return &ColumnConverterError{Op: "Encode", To: "Nothing", Hint: "Nothing values cannot be stored"}
}

var _ Interface = (*Nothing)(nil)
