package natspec_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/vyast/pkg/natspec"
	"github.com/leapstack-labs/vyast/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDocs(t *testing.T, src string) (*natspec.UserDoc, *natspec.DevDoc, error) {
	t.Helper()
	mod, err := parser.ParseModule(src)
	require.NoError(t, err)
	return natspec.Parse(mod, src)
}

const tokenContract = `"""
@title Token
@author Alice
@notice A token contract
@dev Implements
    the standard
"""

@external
@view
def balanceOf(owner: address) -> uint256:
    """
    @notice Get balance
    @param owner The account
      to inspect
    @return Balance of owner
    """
    return 0

@internal
def _helper():
    """
    @bogus not checked for internal functions
    """
    pass
`

func TestParse_Contract(t *testing.T) {
	user, dev, err := parseDocs(t, tokenContract)
	require.NoError(t, err)

	assert.Equal(t, "A token contract", user.Notice)
	assert.Equal(t, map[string]natspec.MethodUserDoc{
		"balanceOf(address)": {Notice: "Get balance"},
	}, user.Methods)

	assert.Equal(t, "Token", dev.Title)
	assert.Equal(t, "Alice", dev.Author)
	assert.Equal(t, "Implements the standard", dev.Details)
	assert.Equal(t, map[string]natspec.MethodDevDoc{
		"balanceOf(address)": {
			Params:  map[string]string{"owner": "The account to inspect"},
			Returns: map[string]string{"_0": "Balance of owner"},
		},
	}, dev.Methods)
}

func TestParse_UntaggedDocstrings(t *testing.T) {
	src := `"""A plain
description"""

@external
def ping():
    "Just pings."
    pass
`
	user, dev, err := parseDocs(t, src)
	require.NoError(t, err)

	assert.Equal(t, "A plain description", user.Notice)
	assert.Equal(t, "Just pings.", user.Methods["ping()"].Notice)
	assert.Empty(t, dev.Methods)
}

func TestParse_DefaultArgumentSignatures(t *testing.T) {
	src := `@external
def mint(to: address, amount: uint256 = 1, data: Bytes[64] = b""):
    """
    @notice Mint tokens
    @dev Defaults apply
    """
    pass
`
	user, dev, err := parseDocs(t, src)
	require.NoError(t, err)

	want := []string{
		"mint(address)",
		"mint(address,uint256)",
		"mint(address,uint256,bytes)",
	}
	for _, sig := range want {
		assert.Equal(t, "Mint tokens", user.Methods[sig].Notice, sig)
		assert.Equal(t, "Defaults apply", dev.Methods[sig].Details, sig)
	}
	assert.Len(t, user.Methods, 3)
}

func TestParse_CanonicalTypes(t *testing.T) {
	src := `struct Point:
    x: uint256
    y: decimal

interface Token:
    def totalSupply() -> uint256: view

@external
def f(p: Point, t: Token, xs: DynArray[int128, 8], ys: uint256[3], s: String[10]) -> (uint256, bool):
    """
    @return first
    @return second
    """
    pass
`
	_, dev, err := parseDocs(t, src)
	require.NoError(t, err)

	sig := "f((uint256,fixed168x10),address,int128[],uint256[3],string)"
	require.Contains(t, dev.Methods, sig)
	assert.Equal(t, map[string]string{"_0": "first", "_1": "second"}, dev.Methods[sig].Returns)
}

func TestParse_NoDocstrings(t *testing.T) {
	user, dev, err := parseDocs(t, "x: uint256\n\n@external\ndef f():\n    pass\n")
	require.NoError(t, err)
	assert.Equal(t, &natspec.UserDoc{}, user)
	assert.Equal(t, &natspec.DevDoc{}, dev)

	user, dev, err = natspec.Parse(nil, "")
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotNil(t, dev)
}

func functionWith(doc, params, returns string) string {
	return "@external\ndef f(" + params + ")" + returns + ":\n    \"\"\"\n" + doc + "\n    \"\"\"\n    pass\n"
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown field",
			src:  "\"\"\"@foo bar\"\"\"\n",
			want: "Unknown NatSpec field '@foo'",
		},
		{
			name: "param in module docstring",
			src:  "\"\"\"@param x y\"\"\"\n",
			want: "'@param' is not a valid field for this docstring",
		},
		{
			name: "title in function docstring",
			src:  functionWith("    @title T", "", ""),
			want: "'@title' is not a valid field for this docstring",
		},
		{
			name: "empty description",
			src:  functionWith("    @notice\n    @dev x", "", ""),
			want: "No description given for tag '@notice'",
		},
		{
			name: "inline tag as description",
			src:  functionWith("    @notice @dev x", "", ""),
			want: "No description given for tag '@notice'",
		},
		{
			name: "duplicate field",
			src:  functionWith("    @dev a\n    @dev b", "", ""),
			want: "Duplicate NatSpec field '@dev'",
		},
		{
			name: "unknown parameter",
			src:  functionWith("    @param b the b", "a: uint256", ""),
			want: "Method has no parameter 'b'",
		},
		{
			name: "parameter without description",
			src:  functionWith("    @param a", "a: uint256", ""),
			want: "No description given for parameter 'a'",
		},
		{
			name: "parameter twice",
			src:  functionWith("    @param a one\n    @param a two", "a: uint256", ""),
			want: "Parameter 'a' documented more than once",
		},
		{
			name: "return without return type",
			src:  functionWith("    @return x", "", ""),
			want: "Method does not return any values",
		},
		{
			name: "too many returns",
			src:  functionWith("    @return x\n    @return y", "", " -> uint256"),
			want: "Number of documented return values exceeds actual number",
		},
		{
			name: "untagged opening",
			src:  functionWith("    Hello\n    @notice x", "", ""),
			want: "NatSpec docstring opens with untagged comment",
		},
		{
			name: "unsupported argument type",
			src:  functionWith("    @notice x", "a: f(1)", ""),
			want: "cannot derive signature type of argument 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseDocs(t, tt.src)
			require.Error(t, err)

			var serr *natspec.SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.want, serr.Message[:min(len(serr.Message), len(tt.want))])
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	src := "\"\"\"@notice a\n@foo b\"\"\"\n"
	_, _, err := parseDocs(t, src)

	var serr *natspec.SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
	assert.Equal(t, 1, serr.Column)
	assert.Equal(t, "natspec error at line 2, column 1: Unknown NatSpec field '@foo'", err.Error())
}
