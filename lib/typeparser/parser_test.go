package typeparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func genericAndArgCount(n *Node) (gen, args int) {
	for _, a := range n.Args {
		if a.Kind == ArgType {
			gen++
		}
	}
	return gen, len(n.Args)
}

func TestParseFixtures(t *testing.T) {
	cases := []struct {
		input    string
		typeName string
		gen      int
		args     int
	}{
		{"Nullable(Nothing)", "Nullable", 1, 1},
		{"LowCardinality(Decimal(28, 10))", "LowCardinality", 1, 1},
		{"Tuple(Decimal(19,6), String, Nullable(String))", "Tuple", 3, 3},
		{"Array(Array(Nothing))", "Array", 1, 1},
		{"Decimal32(5)", "Decimal32", 0, 1},
		{"DateTime64(3, 'Africa/Addis_Ababa')", "DateTime64", 0, 2},
		{"FixedString(42)", "FixedString", 0, 1},
	}
	for _, c := range cases {
		n, err := Parse(c.input)
		require.NoError(t, err, c.input)
		require.Equal(t, c.typeName, n.Name, c.input)
		gen, args := genericAndArgCount(n)
		require.Equal(t, c.gen, gen, "gen mismatch for %s", c.input)
		require.Equal(t, c.args, args, "args mismatch for %s", c.input)
	}
}

func TestParseSimpleType(t *testing.T) {
	n, err := Parse("Int32")
	require.NoError(t, err)
	require.Equal(t, "Int32", n.Name)
	require.Empty(t, n.Args)
}

func TestParseTupleWithNamedElements(t *testing.T) {
	n, err := Parse("Tuple(a String, b UInt8, c Array(Int64))")
	require.NoError(t, err)
	require.Equal(t, "Tuple", n.Name)
	require.Len(t, n.Args, 3)
	require.Equal(t, "a", n.Args[0].Name)
	require.Equal(t, "String", n.Args[0].Type.Name)
	require.Equal(t, "b", n.Args[1].Name)
	require.Equal(t, "UInt8", n.Args[1].Type.Name)
	require.Equal(t, "c", n.Args[2].Name)
	require.Equal(t, "Array", n.Args[2].Type.Name)
}

func TestParseBacktickedTupleName(t *testing.T) {
	n, err := Parse("Tuple(`my field` String)")
	require.NoError(t, err)
	require.Equal(t, "my field", n.Args[0].Name)
}

func TestParseQuotedStringTupleName(t *testing.T) {
	n, err := Parse("Tuple('a' String, 'b' UInt8)")
	require.NoError(t, err)
	require.Len(t, n.Args, 2)
	require.Equal(t, ArgType, n.Args[0].Kind)
	require.Equal(t, "a", n.Args[0].Name)
	require.Equal(t, "String", n.Args[0].Type.Name)
	require.Equal(t, ArgType, n.Args[1].Kind)
	require.Equal(t, "b", n.Args[1].Name)
	require.Equal(t, "UInt8", n.Args[1].Type.Name)
}

func TestParseQuotedStringWithEqualsParsesAsEnumMember(t *testing.T) {
	n, err := Parse("Enum8('plain' = 1)")
	require.NoError(t, err)
	require.Equal(t, ArgEnumMember, n.Args[0].Kind)
	require.Equal(t, "plain", n.Args[0].Str)
}

func TestParseEnumQuotedKeysWithEscapes(t *testing.T) {
	n, err := Parse(`Enum8('a\\s' = 1, 'plain' = 2)`)
	require.NoError(t, err)
	require.Equal(t, "Enum8", n.Name)
	members, ok := n.EnumMembers()
	require.True(t, ok)
	require.Equal(t, []EnumMember{
		{Name: `a\s`, Value: 1},
		{Name: "plain", Value: 2},
	}, members)
}

func TestParseBacktickNameWithEscapes(t *testing.T) {
	n, err := Parse("Tuple(`escaped \\`C\\` with \\\\\\` :)` String)")
	require.NoError(t, err)
	require.Equal(t, "escaped `C` with \\` :)", n.Args[0].Name)
}

func TestParseIntegerOverflowIsMalformed(t *testing.T) {
	_, err := Parse("FixedString(99999999999999999999999999)")
	require.Error(t, err)
	var malformed *MalformedTypeNameError
	require.ErrorAs(t, err, &malformed)
}

func TestParseUnbalancedParensIsMalformed(t *testing.T) {
	_, err := Parse("Array(Int32")
	require.Error(t, err)
	var malformed *MalformedTypeNameError
	require.ErrorAs(t, err, &malformed)
}

func TestParseUnterminatedStringIsMalformed(t *testing.T) {
	_, err := Parse("Enum8('a = 1)")
	require.Error(t, err)
}

func TestStringRoundTripsCanonicalWhitespace(t *testing.T) {
	n, err := Parse("Tuple(Decimal(19,6),String,Nullable(String))")
	require.NoError(t, err)
	require.Equal(t, "Tuple(Decimal(19, 6), String, Nullable(String))", n.String())
}

func TestIntern(t *testing.T) {
	a, err := Intern("Array(Nullable(Int32))")
	require.NoError(t, err)
	b, err := Intern("Array(Nullable(Int32))")
	require.NoError(t, err)
	require.Same(t, a, b)
}
