// Package typeparser parses ClickHouse's textual type grammar
// ("Array(Nullable(Int32))", "Decimal(18, 4)", "Tuple(a String, b UInt8)")
// into a tree the column codec registry dispatches on, and can re-render a
// tree back to its canonical textual form.
package typeparser

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ArgKind distinguishes the three shapes an argument inside a type's
// parentheses can take.
type ArgKind int

const (
	ArgType ArgKind = iota
	ArgString
	ArgInt
	// ArgEnumMember is ClickHouse's `'name' = value` pair, the one
	// extension the formal grammar leaves implicit (it is how Enum8/
	// Enum16 spell their member list; no other catalogued type uses it).
	ArgEnumMember
)

// Arg is one comma-separated argument of a parametric type. Name is set
// only for Tuple's "name Type" element form.
type Arg struct {
	Kind ArgKind
	Name string
	Type *Node
	Str  string
	Int  int64
}

// Node is one parsed type, e.g. "Array" with one Arg whose Type is the
// element type, or "Decimal" with two ArgInt Args.
type Node struct {
	Name string
	Args []Arg
}

// TypeArg returns the i'th argument's Type, if the argument is a type.
func (n *Node) TypeArg(i int) (*Node, bool) {
	if i < 0 || i >= len(n.Args) || n.Args[i].Kind != ArgType {
		return nil, false
	}
	return n.Args[i].Type, true
}

// IntArg returns the i'th argument's integer value, if it is one.
func (n *Node) IntArg(i int) (int64, bool) {
	if i < 0 || i >= len(n.Args) || n.Args[i].Kind != ArgInt {
		return 0, false
	}
	return n.Args[i].Int, true
}

// StringArg returns the i'th argument's string literal, if it is one.
func (n *Node) StringArg(i int) (string, bool) {
	if i < 0 || i >= len(n.Args) || n.Args[i].Kind != ArgString {
		return "", false
	}
	return n.Args[i].Str, true
}

// EnumMembers returns the Enum8/Enum16 member list as name/value pairs, in
// declaration order, or false if n has no ArgEnumMember arguments at all.
func (n *Node) EnumMembers() ([]EnumMember, bool) {
	var members []EnumMember
	for _, a := range n.Args {
		if a.Kind != ArgEnumMember {
			continue
		}
		members = append(members, EnumMember{Name: a.Str, Value: a.Int})
	}
	return members, len(members) > 0
}

// EnumMember is one `'name' = value` pair inside an Enum8/Enum16 type.
type EnumMember struct {
	Name  string
	Value int64
}

// String renders the node back to ClickHouse's canonical textual form:
// a single space after every comma, no space just inside the parentheses.
func (n *Node) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.render())
	}
	b.WriteByte(')')
	return b.String()
}

func (a Arg) render() string {
	switch a.Kind {
	case ArgString:
		return "'" + escapeQuoted(a.Str) + "'"
	case ArgInt:
		return strconv.FormatInt(a.Int, 10)
	case ArgEnumMember:
		return "'" + escapeQuoted(a.Str) + "' = " + strconv.FormatInt(a.Int, 10)
	default:
		if a.Name != "" {
			return a.Name + " " + a.Type.String()
		}
		return a.Type.String()
	}
}

// MalformedTypeNameError reports a type-grammar parse failure; the session
// surfaces it to the caller and keeps running.
type MalformedTypeNameError struct {
	Input  string
	Reason string
}

func (e *MalformedTypeNameError) Error() string {
	return fmt.Sprintf("typeparser: malformed type name %q: %s", e.Input, e.Reason)
}

var internCache sync.Map // string -> *Node

// Intern parses s, caching the result so repeated block schemas (the same
// handful of type strings, seen on every block of a result set) are parsed
// once. The returned *Node must be treated as immutable by callers.
func Intern(s string) (*Node, error) {
	if v, ok := internCache.Load(s); ok {
		return v.(*Node), nil
	}
	n, err := Parse(s)
	if err != nil {
		return nil, err
	}
	actual, _ := internCache.LoadOrStore(s, n)
	return actual.(*Node), nil
}

// Parse parses s without consulting or populating the intern cache.
func Parse(s string) (*Node, error) {
	p := &parser{s: s}
	p.skipSpace()
	n, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, &MalformedTypeNameError{Input: s, Reason: fmt.Sprintf("unexpected trailing input at byte %d", p.pos)}
	}
	return n, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseType() (*Node, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	n := &Node{Name: name}
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == '(' {
		p.pos++
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		n.Args = args
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != ')' {
			return nil, &MalformedTypeNameError{Input: p.s, Reason: "unbalanced parentheses"}
		}
		p.pos++
	}
	return n, nil
}

func (p *parser) parseIdent() (string, error) {
	start := p.pos
	if p.pos >= len(p.s) || !isIdentStart(p.s[p.pos]) {
		return "", &MalformedTypeNameError{Input: p.s, Reason: fmt.Sprintf("expected identifier at byte %d", p.pos)}
	}
	p.pos++
	for p.pos < len(p.s) && isIdentPart(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func (p *parser) parseArgs() ([]Arg, error) {
	var args []Arg
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ')' {
		return args, nil
	}
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.pos < len(p.s) && p.s[p.pos] == ',' {
			p.pos++
			p.skipSpace()
			continue
		}
		break
	}
	return args, nil
}

func (p *parser) parseArg() (Arg, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return Arg{}, &MalformedTypeNameError{Input: p.s, Reason: "unexpected end of input in argument list"}
	}
	switch {
	case p.s[p.pos] == '\'':
		str, err := p.parseQuotedString()
		if err != nil {
			return Arg{}, err
		}
		p.skipSpace()
		if p.pos < len(p.s) && p.s[p.pos] == '=' {
			p.pos++
			p.skipSpace()
			n, err := p.parseInteger()
			if err != nil {
				return Arg{}, err
			}
			return Arg{Kind: ArgEnumMember, Str: str, Int: n}, nil
		}
		if p.pos < len(p.s) && (isIdentStart(p.s[p.pos]) || p.s[p.pos] == '`') {
			// str was a Tuple element name spelled as a quoted string
			// rather than a bare or backticked identifier; a type follows.
			typ, err := p.parseType()
			if err != nil {
				return Arg{}, err
			}
			return Arg{Kind: ArgType, Name: str, Type: typ}, nil
		}
		return Arg{Kind: ArgString, Str: str}, nil

	case p.s[p.pos] == '`':
		name, err := p.parseBacktickName()
		if err != nil {
			return Arg{}, err
		}
		p.skipSpace()
		typ, err := p.parseType()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgType, Name: name, Type: typ}, nil

	case p.s[p.pos] == '-' || isDigit(p.s[p.pos]):
		n, err := p.parseInteger()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgInt, Int: n}, nil

	case isIdentStart(p.s[p.pos]):
		mark := p.pos
		first, err := p.parseIdent()
		if err != nil {
			return Arg{}, err
		}
		p.skipSpace()
		if p.pos < len(p.s) && (isIdentStart(p.s[p.pos]) || p.s[p.pos] == '`') {
			// `first` was a Tuple element name; a type follows.
			typ, err := p.parseType()
			if err != nil {
				return Arg{}, err
			}
			return Arg{Kind: ArgType, Name: first, Type: typ}, nil
		}
		// `first` was the type name itself; reparse from mark so nested
		// arguments (if any) are consumed by parseType.
		p.pos = mark
		typ, err := p.parseType()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgType, Type: typ}, nil

	default:
		return Arg{}, &MalformedTypeNameError{Input: p.s, Reason: fmt.Sprintf("unexpected character %q at byte %d", p.s[p.pos], p.pos)}
	}
}

func (p *parser) parseQuotedString() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.pos >= len(p.s) {
			return "", &MalformedTypeNameError{Input: p.s, Reason: "unterminated quoted string"}
		}
		c := p.s[p.pos]
		if c == '\'' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.s) {
				return "", &MalformedTypeNameError{Input: p.s, Reason: "unterminated escape sequence"}
			}
			switch esc := p.s[p.pos]; esc {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '\'':
				b.WriteByte('\'')
			case '\\':
				b.WriteByte('\\')
			default:
				// Liberal passthrough: unknown escapes survive as the
				// literal backslash followed by the character.
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

// parseBacktickName scans a `...`-quoted identifier, honouring the same
// backslash escapes as parseQuotedString so a name can itself contain a
// literal backtick (\`) or backslash (\\).
func (p *parser) parseBacktickName() (string, error) {
	p.pos++ // opening backtick
	var b strings.Builder
	for {
		if p.pos >= len(p.s) {
			return "", &MalformedTypeNameError{Input: p.s, Reason: "unterminated backtick-quoted name"}
		}
		c := p.s[p.pos]
		if c == '`' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.s) {
				return "", &MalformedTypeNameError{Input: p.s, Reason: "unterminated escape sequence"}
			}
			switch esc := p.s[p.pos]; esc {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '`':
				b.WriteByte('`')
			case '\\':
				b.WriteByte('\\')
			default:
				// Liberal passthrough: unknown escapes survive as the
				// literal backslash followed by the character.
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

func (p *parser) parseInteger() (int64, error) {
	start := p.pos
	if p.s[p.pos] == '-' {
		p.pos++
	}
	digitsStart := p.pos
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == digitsStart {
		return 0, &MalformedTypeNameError{Input: p.s, Reason: fmt.Sprintf("expected digits at byte %d", digitsStart)}
	}
	v, err := strconv.ParseInt(p.s[start:p.pos], 10, 64)
	if err != nil {
		return 0, &MalformedTypeNameError{Input: p.s, Reason: fmt.Sprintf("integer overflow: %q", p.s[start:p.pos])}
	}
	return v, nil
}

func escapeQuoted(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		switch c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
