package vyper

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the assembler:
// - ERC20 end to end: docstring, functions in declared order with typed
//   params and returns
// - Empty source yields a valid empty contract, never a failure
// - Contract name derives from the file basename minus .vy
// - DynArray constant-reference bounds match extracted constants
// - Unmatched references stay as names (forward/external constants)
// - Rebuilding from the same content yields an identical contract
// - The sample contract in testdata extracts completely and cleanly

const erc20Source = `"""
ERC20 Token Implementation
This is a sample ERC20 token contract.
"""

@external
def transfer(to: address, amount: uint256) -> bool:
    """
    Transfer tokens to a specified address.
    """
    return True

@external
def balance_of(account: address) -> uint256:
    """
    Get the token balance of an account.
    """
    return 0
`

func TestAssemble_ERC20(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	c := a.Assemble(erc20Source, "token.vy")

	assert.Equal(t, "token", c.Name)
	assert.Equal(t, "token.vy", c.Path)
	assert.Contains(t, c.Docstring, "ERC20 Token Implementation")

	require.Len(t, c.Functions, 2)
	transfer := c.Functions[0]
	assert.Equal(t, "transfer", transfer.Name)
	require.Len(t, transfer.Params, 2)
	assert.Equal(t, Scalar{Name: "address"}, transfer.Params[0].Type)
	assert.Equal(t, Scalar{Name: "uint256"}, transfer.Params[1].Type)
	assert.Equal(t, Scalar{Name: "bool"}, transfer.ReturnType)
	assert.Equal(t, "Transfer tokens to a specified address.", transfer.Docstring)

	balanceOf := c.Functions[1]
	assert.Equal(t, "balance_of", balanceOf.Name)
	assert.Equal(t, Scalar{Name: "uint256"}, balanceOf.ReturnType)
}

func TestAssemble_EmptySource(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	c := a.Assemble("", "empty.vy")

	require.NotNil(t, c)
	assert.Equal(t, "empty", c.Name)
	assert.Empty(t, c.Docstring)
	assert.Empty(t, c.Enums)
	assert.Empty(t, c.Structs)
	assert.Empty(t, c.Events)
	assert.Empty(t, c.Constants)
	assert.Empty(t, c.Variables)
	assert.Empty(t, c.Functions)
}

func TestAssemble_NameFromNestedPath(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	c := a.Assemble("", "nested/deep/vault.vy")

	assert.Equal(t, "vault", c.Name)
	assert.Equal(t, "nested/deep/vault.vy", c.Path)
}

func TestAssemble_ResolvesConstantBounds(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	source := `MAX_HOLDERS: constant(uint256) = 100

@external
def holders() -> DynArray[address, MAX_HOLDERS]:
    pass
`
	c := a.Assemble(source, "holders.vy")

	require.Len(t, c.Constants, 1)
	require.Len(t, c.Functions, 1)

	arr := c.Functions[0].ReturnType.(DynArray)
	assert.Equal(t, "MAX_HOLDERS", arr.Bound.Ref)
	require.NotNil(t, arr.Bound.Const)
	assert.Equal(t, "100", arr.Bound.Const.Value)
	// Rendering still uses the reference name.
	assert.Equal(t, "DynArray[address, MAX_HOLDERS]", arr.String())
}

func TestAssemble_UnresolvedBoundIsNotAnError(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	source := `@external
def holders() -> DynArray[address, EXTERNAL_MAX]:
    pass
`
	c := a.Assemble(source, "holders.vy")

	require.Len(t, c.Functions, 1)
	arr := c.Functions[0].ReturnType.(DynArray)
	assert.Equal(t, "EXTERNAL_MAX", arr.Bound.Ref)
	assert.Nil(t, arr.Bound.Const)
	assert.Empty(t, c.Functions[0].Issues)
}

func TestAssemble_ConstantBoundsInStructFieldsAndParams(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	source := `MAX: constant(uint256) = 8

struct Basket {
    items: DynArray[uint256, MAX]
}

@internal
def _fill(items: DynArray[uint256, MAX]):
    pass
`
	c := a.Assemble(source, "basket.vy")

	require.Len(t, c.Structs, 1)
	field := c.Structs[0].Fields[0].Type.(DynArray)
	require.NotNil(t, field.Bound.Const)
	assert.Equal(t, "8", field.Bound.Const.Value)

	require.Len(t, c.Functions, 1)
	param := c.Functions[0].Params[0].Type.(DynArray)
	require.NotNil(t, param.Bound.Const)
}

func TestAssemble_SampleContractFile(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile("../../testdata/contracts/token.vy")
	require.NoError(t, err)

	a := NewAssembler(DefaultVocabulary())
	c := a.Assemble(string(source), "token.vy")

	assert.Contains(t, c.Docstring, "ERC20 Token Implementation")

	require.Len(t, c.Enums, 1)
	assert.Equal(t, []string{"ACTIVE", "PAUSED"}, c.Enums[0].Values)

	require.Len(t, c.Structs, 1)
	assert.Equal(t, "Checkpoint", c.Structs[0].Name)

	require.Len(t, c.Events, 2)
	assert.Equal(t, "Transfer", c.Events[0].Name)
	assert.True(t, c.Events[0].Fields[0].Indexed)

	require.Len(t, c.Constants, 2)
	require.Len(t, c.Variables, 3)

	require.Len(t, c.Functions, 4)
	assert.Len(t, c.ExternalFunctions(), 3)
	assert.Len(t, c.InternalFunctions(), 1)

	// The DynArray bound picks up the declared constant
	batch := c.Functions[2]
	arr := batch.Params[0].Type.(DynArray)
	require.NotNil(t, arr.Bound.Const)
	assert.Equal(t, "100", arr.Bound.Const.Value)

	assert.Empty(t, c.Issues())
}

func TestAssemble_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	first := a.Assemble(erc20Source, "token.vy")
	second := a.Assemble(erc20Source, "token.vy")
	assert.Equal(t, first, second)
}

func TestContract_FunctionAccessors(t *testing.T) {
	t.Parallel()

	c := &Contract{Functions: []Function{
		{Name: "a", Visibility: VisibilityExternal},
		{Name: "b", Visibility: VisibilityExternal},
		{Name: "c", Visibility: VisibilityInternal},
	}}

	ext := c.ExternalFunctions()
	require.Len(t, ext, 2)
	assert.Equal(t, "a", ext[0].Name)

	inte := c.InternalFunctions()
	require.Len(t, inte, 1)
	assert.Equal(t, "c", inte[0].Name)
}

func TestContract_IssuesAggregation(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultVocabulary())
	source := `fee: wei_value

event E(
    who: adress
)
`
	c := a.Assemble(source, "warny.vy")

	issues := c.Issues()
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
	}
}
