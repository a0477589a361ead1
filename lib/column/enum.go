package column

import (
	"fmt"
	"math"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/typeparser"
)

// Enum backs both Enum8 and Enum16; width is 1 for Enum8, 2 for Enum16.
type Enum struct {
	chType Type
	width  int
	iv     map[string]int64
	vi     map[int64]string
	values8  []uint8
	values16 []uint16
}

func NewEnum(t Type, node *typeparser.Node, width int) (*Enum, error) {
	members, ok := node.EnumMembers()
	if !ok {
		return nil, &InvalidEnum{Type: t}
	}
	e := &Enum{
		chType: t,
		width:  width,
		iv:     make(map[string]int64, len(members)),
		vi:     make(map[int64]string, len(members)),
	}
	for _, m := range members {
		if width == 1 && (m.Value < math.MinInt8 || m.Value > math.MaxInt8) {
			return nil, &InvalidEnum{Type: t}
		}
		if width == 2 && (m.Value < math.MinInt16 || m.Value > math.MaxInt16) {
			return nil, &InvalidEnum{Type: t}
		}
		e.iv[m.Name] = m.Value
		e.vi[m.Value] = m.Name
	}
	return e, nil
}

func (e *Enum) Type() Type { return e.chType }

func (e *Enum) Rows() int {
	if e.width == 1 {
		return len(e.values8)
	}
	return len(e.values16)
}

func (e *Enum) index(i int) int64 {
	if e.width == 1 {
		return int64(int8(e.values8[i]))
	}
	return int64(int16(e.values16[i]))
}

func (e *Enum) RowValue(i int) interface{} { return e.vi[e.index(i)] }

func (e *Enum) ScanRow(dest interface{}, row int) error {
	switch d := dest.(type) {
	case *string:
		*d = e.vi[e.index(row)]
	case **string:
		*d = new(string)
		**d = e.vi[e.index(row)]
	default:
		return &ColumnConverterError{Op: "ScanRow", To: fmt.Sprintf("%T", dest), From: string(e.chType)}
	}
	return nil
}

func (e *Enum) append(elem string) (int64, bool) {
	v, ok := e.iv[elem]
	return v, ok
}

func (e *Enum) push(v int64) {
	if e.width == 1 {
		e.values8 = append(e.values8, uint8(v))
	} else {
		e.values16 = append(e.values16, uint16(int16(v)))
	}
}

func (e *Enum) Append(v interface{}) (nulls []uint8, err error) {
	switch v := v.(type) {
	case []string:
		nulls = make([]uint8, len(v))
		for _, elem := range v {
			n, ok := e.append(elem)
			if !ok {
				return nil, &UnknownElementForEnum{Element: elem}
			}
			e.push(n)
		}
	case []*string:
		nulls = make([]uint8, len(v))
		for i, elem := range v {
			if elem == nil {
				e.push(0)
				nulls[i] = 1
				continue
			}
			n, ok := e.append(*elem)
			if !ok {
				return nil, &UnknownElementForEnum{Element: *elem}
			}
			e.push(n)
		}
	default:
		return nil, &ColumnConverterError{Op: "Append", To: string(e.chType), From: fmt.Sprintf("%T", v)}
	}
	return
}

func (e *Enum) AppendRow(v interface{}) error {
	switch v := v.(type) {
	case string:
		n, ok := e.append(v)
		if !ok {
			return &UnknownElementForEnum{Element: v}
		}
		e.push(n)
	case null:
		e.push(0)
	default:
		return &ColumnConverterError{Op: "AppendRow", To: string(e.chType), From: fmt.Sprintf("%T", v)}
	}
	return nil
}

func (e *Enum) Decode(decoder *binary.Decoder, rows int) (err error) {
	if e.width == 1 {
		e.values8, err = decodeUint8s(decoder, rows)
	} else {
		e.values16, err = decodeUint16s(decoder, rows)
	}
	return err
}

func (e *Enum) Skip(decoder *binary.Decoder, rows int) error {
	return decoder.Skip(rows * e.width)
}

func (e *Enum) Encode(encoder *binary.Encoder) error {
	if e.width == 1 {
		return encodeUint8s(encoder, e.values8)
	}
	return encodeUint16s(encoder, e.values16)
}

var _ Interface = (*Enum)(nil)
