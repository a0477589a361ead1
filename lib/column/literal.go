package column

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/clickhouse-native/chwire/lib/timezone"
	"github.com/clickhouse-native/chwire/lib/typeparser"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Literal is the registry's create_literal_writer<T>() equivalent: it
// encodes a single Go value v as a ClickHouse SQL literal for the wire
// type t, the textual substitution a caller performs when binding a
// {name:Type} query parameter into a command string before handing it to
// session.Execute. tz is the session's default zone and applies to
// DateTime only: when the type names no zone, a value whose own location
// is neither tz nor UTC is written with that location as an explicit zone
// argument. DateTime64 literals carry only the type's own zone argument.
func Literal(t Type, v interface{}, tz *time.Location) (string, error) {
	node, err := typeparser.Intern(string(t))
	if err != nil {
		return "", err
	}
	return literal(t, node, v, tz)
}

func literal(t Type, node *typeparser.Node, v interface{}, tz *time.Location) (string, error) {
	if v == nil {
		return "NULL", nil
	}
	switch node.Name {
	case "Int8", "Int16", "Int32", "Int64", "UInt8", "UInt16", "UInt32", "UInt64", "Float32", "Float64":
		return literalNumber(t, v)
	case "Int128", "Int256", "UInt128", "UInt256":
		switch n := v.(type) {
		case big.Int:
			return n.String(), nil
		case *big.Int:
			return n.String(), nil
		}
		return literalNumber(t, v)
	case "Bool":
		switch b := v.(type) {
		case bool:
			if b {
				return "true", nil
			}
			return "false", nil
		}
		return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	case "String", "FixedString":
		switch s := v.(type) {
		case string:
			return quoteLiteral(s), nil
		case []byte:
			return quoteLiteral(string(s)), nil
		case fmt.Stringer:
			return quoteLiteral(s.String()), nil
		}
		return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	case "UUID":
		switch u := v.(type) {
		case uuid.UUID:
			return quoteLiteral(u.String()), nil
		case *uuid.UUID:
			return quoteLiteral(u.String()), nil
		case string:
			return quoteLiteral(u), nil
		}
		return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	case "IPv4", "IPv6":
		switch ip := v.(type) {
		case fmt.Stringer:
			return quoteLiteral(ip.String()), nil
		case string:
			return quoteLiteral(ip), nil
		}
		return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	case "Date":
		tm, err := literalTime(t, v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("toDate(%s)", quoteLiteral(tm.Format("2006-01-02"))), nil
	case "Date32":
		tm, err := literalTime(t, v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("toDate32(%s)", quoteLiteral(tm.Format("2006-01-02"))), nil
	case "DateTime":
		tm, err := literalTime(t, v)
		if err != nil {
			return "", err
		}
		zoneName, hasZone := node.StringArg(0)
		if !hasZone {
			// no explicit zone on the type itself: fall back to tz, the
			// session's own default zone, so a caller's local *time.Time
			// round-trips through the same zone the server will assume.
			loc := tm.Location()
			switch {
			case tz != nil && loc.String() == tz.String():
				// matches the server's default; no explicit arg needed.
			case loc != time.UTC:
				zoneName, hasZone = loc.String(), true
			}
		}
		lit := quoteLiteral(tm.Format("2006-01-02 15:04:05"))
		if hasZone {
			if _, err := timezone.Load(zoneName); err != nil {
				return "", err
			}
			return fmt.Sprintf("toDateTime(%s, %s)", lit, quoteLiteral(zoneName)), nil
		}
		return fmt.Sprintf("toDateTime(%s)", lit), nil
	case "DateTime64":
		tm, err := literalTime(t, v)
		if err != nil {
			return "", err
		}
		precision, _ := node.IntArg(0)
		layout := "2006-01-02 15:04:05"
		if precision > 0 {
			layout += "." + strings.Repeat("0", int(precision))
		}
		lit := quoteLiteral(tm.Format(layout))
		if zoneName, ok := node.StringArg(1); ok {
			if _, err := timezone.Load(zoneName); err != nil {
				return "", err
			}
			return fmt.Sprintf("toDateTime64(%s, %d, %s)", lit, precision, quoteLiteral(zoneName)), nil
		}
		return fmt.Sprintf("toDateTime64(%s, %d)", lit, precision), nil
	case "Decimal", "Decimal32", "Decimal64", "Decimal128", "Decimal256":
		switch d := v.(type) {
		case decimal.Decimal:
			return d.String(), nil
		case *decimal.Decimal:
			return d.String(), nil
		}
		return literalNumber(t, v)
	case "Enum8", "Enum16":
		switch e := v.(type) {
		case string:
			return quoteLiteral(e), nil
		default:
			return literalNumber(t, v)
		}
	case "Nothing":
		return "", &ColumnConverterError{Op: "Literal", To: string(t), Hint: "Nothing has no literal form"}
	case "Nullable":
		inner, ok := node.TypeArg(0)
		if !ok {
			return "", &TypeNotFullySpecifiedError{Type: t}
		}
		if _, isNull := v.(null); isNull {
			return "NULL", nil
		}
		return literal(Type(inner.String()), inner, v, tz)
	case "LowCardinality":
		inner, ok := node.TypeArg(0)
		if !ok {
			return "", &TypeNotFullySpecifiedError{Type: t}
		}
		return literal(Type(inner.String()), inner, v, tz)
	case "Array":
		inner, ok := node.TypeArg(0)
		if !ok {
			return "", &TypeNotFullySpecifiedError{Type: t}
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
		}
		elems := make([]string, rv.Len())
		for i := range elems {
			s, err := literal(Type(inner.String()), inner, rv.Index(i).Interface(), tz)
			if err != nil {
				return "", err
			}
			elems[i] = s
		}
		return "[" + strings.Join(elems, ", ") + "]", nil
	case "Tuple":
		values, ok := v.([]interface{})
		if !ok {
			return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
		}
		if len(values) != len(node.Args) {
			return "", &BadSizeOfTuple{Op: "Literal", Got: len(values), Expected: len(node.Args)}
		}
		elems := make([]string, len(values))
		for i, arg := range node.Args {
			if arg.Kind != typeparser.ArgType {
				return "", &TypeNotFullySpecifiedError{Type: t}
			}
			s, err := literal(Type(arg.Type.String()), arg.Type, values[i], tz)
			if err != nil {
				return "", err
			}
			elems[i] = s
		}
		return "(" + strings.Join(elems, ", ") + ")", nil
	default:
		return "", &UnsupportedColumnType{t: t}
	}
}

// literalNumber renders any Go numeric kind as a bare SQL numeric literal.
func literalNumber(t Type, v interface{}) (string, error) {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), nil
	default:
		return "", &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	}
}

func literalTime(t Type, v interface{}) (time.Time, error) {
	switch tm := v.(type) {
	case time.Time:
		return tm, nil
	case *time.Time:
		return *tm, nil
	default:
		return time.Time{}, &ColumnConverterError{Op: "Literal", To: string(t), From: fmt.Sprintf("%T", v)}
	}
}

// quoteLiteral renders s as a single-quoted SQL string literal, escaping
// backslashes and single quotes the way the type grammar parser's own
// escape rules expect on the way back in.
func quoteLiteral(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
