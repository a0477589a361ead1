// Package column implements the typed column codec registry: one
// Interface implementation per ClickHouse wire type, dispatched by a
// canonical type name parsed from lib/typeparser.
package column

import (
	"fmt"
	"time"

	"github.com/clickhouse-native/chwire/lib/binary"
	"github.com/clickhouse-native/chwire/lib/timezone"
	"github.com/clickhouse-native/chwire/lib/typeparser"
)

// Type is a raw, unparsed ClickHouse type string as it appears on the
// wire, e.g. "Nullable(Array(Int32))".
type Type string

func (t Type) String() string { return string(t) }

// Interface is the uniform read/write/skip surface every column codec
// implements. Append/AppendRow accept loosely-typed Go values (the
// materialisation layer's row-oriented ergonomics over columnar storage);
// Append returns one null-mask byte per input row; a codec that can never
// hold a null returns an all-zero mask.
type Interface interface {
	// Type reports this column's canonical wire type string.
	Type() Type
	// Rows reports how many values are currently held.
	Rows() int
	// RowValue returns the row'th value as its native Go representation.
	RowValue(row int) interface{}
	// ScanRow copies the row'th value into dest, which must be a pointer
	// to (or addressable value of) a compatible Go type.
	ScanRow(dest interface{}, row int) error
	// Append appends every element of v (a slice of a compatible type) as
	// new rows, returning a null-mask byte per appended row.
	Append(v interface{}) (nulls []uint8, err error)
	// AppendRow appends a single value as one new row.
	AppendRow(v interface{}) error
	// Decode reads rows values from decoder into this column, replacing
	// any rows already held.
	Decode(decoder *binary.Decoder, rows int) error
	// Skip advances decoder past rows values without materialising them,
	// for columns a caller has excluded from the result it wants back.
	Skip(decoder *binary.Decoder, rows int) error
	// Encode writes every row currently held to encoder.
	Encode(encoder *binary.Encoder) error
}

// Three more registry operations are keyed by type rather than by column
// instance, so they live as package-level functions instead of Interface
// methods: Literal (literal.go) encodes a single Go value as a SQL
// literal for a given wire type; TryReinterpret (reinterpret.go) is a
// generic fallible down-cast dispatched on both a column's concrete Go
// type and the caller's requested T; DBType (below) maps a column to its
// closed-set type-family tag.

// null is the sentinel passed to AppendRow to represent a nil/NULL value
// under a Nullable column.
type null struct{}

// DBType reports col's closed-set wire-type-family tag, collapsing scale/
// precision/timezone parametrisation onto one canonical name: every
// Decimal32/64/128/256 and Decimal(P, S) reports "Decimal", Enum8 and
// Enum16 both report "Enum". Every other catalogued type's tag is just
// its own type_name (Int32, String, IPv4, ...), since none of the
// remaining catalogue entries vary their canonical name by argument.
func DBType(col Interface) (string, error) {
	node, err := typeparser.Intern(string(col.Type()))
	if err != nil {
		return "", err
	}
	switch node.Name {
	case "Decimal32", "Decimal64", "Decimal128", "Decimal256":
		return "Decimal", nil
	case "Enum8", "Enum16":
		return "Enum", nil
	default:
		return node.Name, nil
	}
}

// Factory builds the column.Interface for a parsed type-info node. tz is
// used by DateTime/DateTime64 when the type carries no explicit zone.
func Factory(t Type, tz *time.Location) (Interface, error) {
	node, err := typeparser.Intern(string(t))
	if err != nil {
		return nil, err
	}
	return factory(t, node, tz)
}

func factory(t Type, node *typeparser.Node, tz *time.Location) (Interface, error) {
	switch node.Name {
	case "Int8":
		return newNumeric[int8](t), nil
	case "Int16":
		return newNumeric[int16](t), nil
	case "Int32":
		return newNumeric[int32](t), nil
	case "Int64":
		return newNumeric[int64](t), nil
	case "UInt8":
		return newNumeric[uint8](t), nil
	case "UInt16":
		return newNumeric[uint16](t), nil
	case "UInt32":
		return newNumeric[uint32](t), nil
	case "UInt64":
		return newNumeric[uint64](t), nil
	case "Float32":
		return newNumeric[float32](t), nil
	case "Float64":
		return newNumeric[float64](t), nil
	case "Bool":
		return NewBool(), nil
	case "String":
		return NewString(), nil
	case "UUID":
		return NewUUID(), nil
	case "IPv4":
		return NewIPv4(), nil
	case "IPv6":
		return NewIPv6(), nil
	case "Nothing":
		return NewNothing(), nil
	case "Date":
		return NewDate(), nil
	case "Date32":
		return NewDate32(), nil
	case "Int128":
		return NewBigInt(t, 16, true), nil
	case "Int256":
		return NewBigInt(t, 32, true), nil
	case "UInt128":
		return NewBigInt(t, 16, false), nil
	case "UInt256":
		return NewBigInt(t, 32, false), nil
	case "FixedString":
		n, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewFixedString(int(n)), nil
	case "DateTime":
		loc := tz
		if zoneName, ok := node.StringArg(0); ok {
			loaded, err := timezone.Load(zoneName)
			if err != nil {
				return nil, err
			}
			loc = loaded
		}
		return NewDateTime(t, loc), nil
	case "DateTime64":
		precision, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		loc := tz
		if zoneName, ok := node.StringArg(1); ok {
			loaded, err := timezone.Load(zoneName)
			if err != nil {
				return nil, err
			}
			loc = loaded
		}
		return NewDateTime64(t, int(precision), loc), nil
	case "Decimal":
		precision, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		scale, ok := node.IntArg(1)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewDecimal(t, int(precision), int(scale))
	case "Decimal32":
		scale, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewDecimal(t, 9, int(scale))
	case "Decimal64":
		scale, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewDecimal(t, 18, int(scale))
	case "Decimal128":
		scale, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewDecimal(t, 38, int(scale))
	case "Decimal256":
		scale, ok := node.IntArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		return NewDecimal(t, 76, int(scale))
	case "Enum8":
		return NewEnum(t, node, 1)
	case "Enum16":
		return NewEnum(t, node, 2)
	case "Nullable":
		inner, ok := node.TypeArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		base, err := factory(Type(inner.String()), inner, tz)
		if err != nil {
			return nil, err
		}
		return NewNullable(t, base), nil
	case "LowCardinality":
		inner, ok := node.TypeArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		base, err := factory(Type(inner.String()), inner, tz)
		if err != nil {
			return nil, err
		}
		return NewLowCardinality(t, base)
	case "Array":
		inner, ok := node.TypeArg(0)
		if !ok {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		base, err := factory(Type(inner.String()), inner, tz)
		if err != nil {
			return nil, err
		}
		return NewArray(t, base), nil
	case "Tuple":
		if len(node.Args) == 0 {
			return nil, &TypeNotFullySpecifiedError{Type: t}
		}
		cols := make([]Interface, 0, len(node.Args))
		names := make([]string, 0, len(node.Args))
		for i, arg := range node.Args {
			if arg.Kind != typeparser.ArgType {
				return nil, &TypeNotFullySpecifiedError{Type: t}
			}
			col, err := factory(Type(arg.Type.String()), arg.Type, tz)
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
			if arg.Name != "" {
				names = append(names, arg.Name)
			} else {
				names = append(names, fmt.Sprintf("%d", i+1))
			}
		}
		return NewTuple(t, names, cols), nil
	default:
		return nil, &UnsupportedColumnType{t: t}
	}
}

// UnsupportedColumnType reports a wire type string with no registered
// codec. It also implements Interface and error so a caller that presses
// on with it gets a consistent poison-pill error from every method.
type UnsupportedColumnType struct {
	t Type
}

func (u *UnsupportedColumnType) Type() Type                                       { return u.t }
func (u *UnsupportedColumnType) Rows() int                                        { return 0 }
func (u *UnsupportedColumnType) RowValue(row int) interface{}                     { return nil }
func (u *UnsupportedColumnType) ScanRow(interface{}, int) error                   { return u }
func (u *UnsupportedColumnType) Append(interface{}) ([]uint8, error)              { return nil, u }
func (u *UnsupportedColumnType) AppendRow(interface{}) error                      { return u }
func (u *UnsupportedColumnType) Decode(*binary.Decoder, int) error                { return u }
func (u *UnsupportedColumnType) Skip(*binary.Decoder, int) error                  { return u }
func (u *UnsupportedColumnType) Encode(*binary.Encoder) error                     { return u }

func (u *UnsupportedColumnType) Error() string {
	return fmt.Sprintf("column: unsupported column type %q", u.t)
}

var (
	_ error     = (*UnsupportedColumnType)(nil)
	_ Interface = (*UnsupportedColumnType)(nil)
)
