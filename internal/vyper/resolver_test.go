package vyper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Resolver:
// - Every vocabulary member resolves to a Scalar with no issues
// - DynArray with a literal bound and with a constant-reference bound
// - Tuple splitting only on top-level commas (bracketed commas kept)
// - Empty tuple resolves to length zero
// - Unknown scalar names warn but never fail
// - Unbalanced brackets are a hard error
// - Vocabulary is injected, not global: alternate sets work
// - String() output re-resolves to an equal Type (round trip)

func TestResolver_VocabularyScalars(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	names := []string{"address", "bool", "Bytes", "String"}
	for width := 8; width <= 256; width += 8 {
		names = append(names, fmt.Sprintf("int%d", width), fmt.Sprintf("uint%d", width))
	}

	for _, name := range names {
		typ, issues, err := res.Resolve(name)
		require.NoError(t, err, name)
		assert.Empty(t, issues, name)
		assert.Equal(t, Scalar{Name: name}, typ)
	}
}

func TestResolver_UnknownScalarWarns(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	typ, issues, err := res.Resolve("uint512")
	require.NoError(t, err)
	assert.Equal(t, Scalar{Name: "uint512"}, typ)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "uint512 is not a valid Vyper type")
}

func TestResolver_DynArrayLiteralBound(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	typ, issues, err := res.Resolve("DynArray[address, 100]")
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.IsType(t, DynArray{}, typ)

	arr := typ.(DynArray)
	assert.Equal(t, Scalar{Name: "address"}, arr.Elem)
	assert.True(t, arr.Bound.IsLiteral())
	assert.Equal(t, 100, arr.Bound.Literal)
}

func TestResolver_DynArrayConstantBound(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	typ, issues, err := res.Resolve("DynArray[uint256, MAX_HOLDERS]")
	require.NoError(t, err)
	assert.Empty(t, issues)

	arr := typ.(DynArray)
	assert.Equal(t, Scalar{Name: "uint256"}, arr.Elem)
	assert.False(t, arr.Bound.IsLiteral())
	assert.Equal(t, "MAX_HOLDERS", arr.Bound.Ref)
	assert.Nil(t, arr.Bound.Const) // matched during assembly, not here
}

func TestResolver_DynArrayUnknownElementWarns(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	typ, issues, err := res.Resolve("DynArray[token, 5]")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, Scalar{Name: "token"}, typ.(DynArray).Elem)
}

func TestResolver_Tuples(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	tests := []struct {
		expr string
		want int
	}{
		{"()", 0},
		{"(uint256)", 1},
		{"(uint256, bool)", 2},
		{"(address, uint256, bool)", 3},
		// Commas nested in brackets must not count.
		{"(DynArray[uint256, 3], bool)", 2},
		{"(DynArray[address, MAX], DynArray[uint256, 10], bool)", 3},
	}
	for _, tt := range tests {
		typ, issues, err := res.Resolve(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Empty(t, issues, tt.expr)
		require.IsType(t, Tuple{}, typ, tt.expr)
		assert.Len(t, typ.(Tuple).Elems, tt.want, tt.expr)
	}
}

func TestResolver_TupleElementTypes(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	typ, _, err := res.Resolve("(DynArray[uint256, 3], bool)")
	require.NoError(t, err)

	tup := typ.(Tuple)
	require.Len(t, tup.Elems, 2)
	assert.Equal(t, DynArray{Elem: Scalar{Name: "uint256"}, Bound: Bound{Literal: 3}}, tup.Elems[0])
	assert.Equal(t, Scalar{Name: "bool"}, tup.Elems[1])
}

func TestResolver_UnbalancedBracketsFail(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	exprs := []string{
		"DynArray[address",
		"DynArray[address, 3",
		"(uint256, bool",
		"uint256)",
		"Bytes[32",
	}
	for _, expr := range exprs {
		_, _, err := res.Resolve(expr)
		assert.Error(t, err, expr)
	}
}

func TestResolver_MalformedDynArrayFails(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	_, _, err := res.Resolve("DynArray[address, 3, 4]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed dynamic array")
}

func TestResolver_AlternateVocabulary(t *testing.T) {
	t.Parallel()

	res := NewResolver(Vocabulary{"frob": {}})

	_, issues, err := res.Resolve("frob")
	require.NoError(t, err)
	assert.Empty(t, issues)

	_, issues, err = res.Resolve("uint256")
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestResolver_RoundTrip(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	exprs := []string{
		"uint256",
		"address",
		"DynArray[address, 100]",
		"DynArray[uint256, MAX_HOLDERS]",
		"()",
		"(uint256, bool)",
		"(DynArray[uint256, 3], address, bool)",
	}
	for _, expr := range exprs {
		first, _, err := res.Resolve(expr)
		require.NoError(t, err, expr)

		rendered := first.String()
		second, _, err := res.Resolve(rendered)
		require.NoError(t, err, rendered)
		assert.Equal(t, first, second, expr)

		// Rendering is already canonical, so it is a fixed point.
		assert.Equal(t, rendered, second.String(), expr)
	}
}

func TestResolveScalar(t *testing.T) {
	t.Parallel()

	res := NewResolver(DefaultVocabulary())

	s, issues := res.ResolveScalar("bool")
	assert.Equal(t, Scalar{Name: "bool"}, s)
	assert.Empty(t, issues)

	s, issues = res.ResolveScalar("HashMap[address, uint256]")
	assert.Equal(t, "HashMap[address, uint256]", s.Name)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}
