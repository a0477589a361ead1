package column

import (
	"fmt"
	"math/big"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/shopspring/decimal"
)

// Decimal stores one little-endian two's-complement signed integer per row,
// sized 32/64/128/256 bits by precision, representing value*10^scale.
type Decimal struct {
	chType    Type
	scale     int
	precision int
	nobits    int
	data      []byte
}

func NewDecimal(t Type, precision, scale int) (*Decimal, error) {
	if scale < 0 || scale > precision {
		return nil, fmt.Errorf("clickhouse: invalid Decimal(%d, %d): scale out of range", precision, scale)
	}
	var nobits int
	switch {
	case precision <= 9:
		nobits = 32
	case precision <= 18:
		nobits = 64
	case precision <= 38:
		nobits = 128
	case precision <= 76:
		nobits = 256
	default:
		return nil, fmt.Errorf("clickhouse: precision %d exceeds Decimal256's maximum", precision)
	}
	return &Decimal{chType: t, scale: scale, precision: precision, nobits: nobits}, nil
}

func (col *Decimal) Type() Type { return col.chType }

func (col *Decimal) size() int { return col.nobits / 8 }

func (col *Decimal) Rows() int {
	if col.size() == 0 {
		return 0
	}
	return len(col.data) / col.size()
}

func (col *Decimal) RowValue(i int) interface{} { return col.row(i) }

func (col *Decimal) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *decimal.Decimal:
		*d = col.row(row)
	case **decimal.Decimal:
		v := col.row(row)
		*d = &v
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(col.chType)}
	}
	return nil
}

func (col *Decimal) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []decimal.Decimal:
		nulls = make([]uint8, len(v))
		for _, d := range v {
			col.append(d)
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	return
}

func (col *Decimal) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case decimal.Decimal:
		col.append(v)
	case null:
		col.data = append(col.data, make([]byte, col.size())...)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: string(col.chType), From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (col *Decimal) append(v decimal.Decimal) {
	scaled := v.Shift(int32(col.scale)).Truncate(0).BigInt()
	col.data = append(col.data, bigIntToLE(scaled, col.size())...)
}

func (col *Decimal) row(i int) decimal.Decimal {
	raw := col.data[i*col.size() : (i+1)*col.size()]
	return decimal.NewFromBigInt(leToBigInt(raw), -int32(col.scale))
}

func (col *Decimal) Decode(decoder *binary.Decoder, rows int) error {
	data, err := decoder.Fixed(rows * col.size())
	if err != nil {
		return err
	}
	col.data = data
	return nil
}

func (col *Decimal) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(rows * col.size())
}

func (col *Decimal) Encode(encoder *binary.Encoder) error {
	return encoder.Raw(col.data)
}

// leToBigInt interprets b as a little-endian two's-complement integer.
func leToBigInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	v := new(big.Int).SetBytes(be)
	if len(be) > 0 && be[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(be)*8))
		v.Sub(v, mod)
	}
	return v
}

// bigIntToLE renders v as a size-byte little-endian two's-complement integer.
func bigIntToLE(v *big.Int, size int) []byte {
	bi := new(big.Int).Set(v)
	if bi.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(size*8))
		bi.Add(bi, mod)
	}
	be := bi.Bytes()
	out := make([]byte, size)
	for i := 0; i < len(be) && i < size; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}

var _ Interface = (*Decimal)(nil)
