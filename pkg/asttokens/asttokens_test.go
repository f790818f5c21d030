package asttokens

import (
	"testing"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parser.ParseModule(src)
	require.NoError(t, err)
	return mod
}

func lookup(t *testing.T, idx *Index, n ast.Node) Range {
	t.Helper()
	r, ok := idx.Lookup(n)
	require.True(t, ok, "no range for %s", n.Kind())
	return r
}

func TestIndex_Statements(t *testing.T) {
	src := "a = 1\nb = f(x, y)\n"
	mod := parse(t, src)
	idx := New(src, mod)

	r := lookup(t, idx, mod)
	assert.Equal(t, 0, r.Start.Offset)
	assert.Equal(t, 17, r.End.Offset)
	assert.Equal(t, 2, r.End.Line)
	assert.Equal(t, 11, r.End.Column)

	call := mod.Body[1].(*ast.Assign).Value
	r = lookup(t, idx, call)
	assert.Equal(t, "f(x, y)", src[r.Start.Offset:r.End.Offset])
	assert.Equal(t, 7, r.Len())
}

func TestIndex_NegativeLiteral(t *testing.T) {
	src := "x = -3\n"
	mod := parse(t, src)
	neg := mod.Body[0].(*ast.Assign).Value.(*ast.UnaryOp)
	lit := neg.Operand.(*ast.Constant)

	idx := New(src, mod)
	assert.Equal(t, "-3", src[lookup(t, idx, neg).Start.Offset:lookup(t, idx, neg).End.Offset])
	assert.Equal(t, "3", src[lookup(t, idx, lit).Start.Offset:lookup(t, idx, lit).End.Offset])
}

func TestIndex_StartColumnRewrite(t *testing.T) {
	src := "x = -3\n"
	mod := parse(t, src)
	assign := mod.Body[0].(*ast.Assign)
	lit := assign.Value.(*ast.UnaryOp).Operand.(*ast.Constant)

	// Replace the negation by its operand and move the operand onto the sign.
	lit.Loc.Start.Column = 4
	assign.Value = lit

	r := lookup(t, New(src, mod), lit)
	assert.Equal(t, 4, r.Start.Offset)
	assert.Equal(t, 4, r.Start.Column)
	assert.Equal(t, 2, r.Len())
}

func TestIndex_Parentheses(t *testing.T) {
	src := "y = (a + b) * (1, 2)\n"
	mod := parse(t, src)
	idx := New(src, mod)

	product := mod.Body[0].(*ast.Assign).Value.(*ast.BinOp)
	text := func(n ast.Node) string {
		r := lookup(t, idx, n)
		return src[r.Start.Offset:r.End.Offset]
	}
	assert.Equal(t, "(a + b) * (1, 2)", text(product))
	assert.Equal(t, "a + b", text(product.Left))
	assert.Equal(t, "(1, 2)", text(product.Right))
}

func TestIndex_MultiLine(t *testing.T) {
	src := "def f(a: uint256) -> uint256:\n    return a\n"
	mod := parse(t, src)
	idx := New(src, mod)

	fn := mod.Body[0].(*ast.FunctionDef)
	r := lookup(t, idx, fn)
	assert.Equal(t, 1, r.Start.Line)
	assert.Equal(t, 2, r.End.Line)
	assert.Equal(t, 12, r.End.Column)

	args := lookup(t, idx, fn.Args)
	assert.Equal(t, "a: uint256", src[args.Start.Offset:args.End.Offset])
}

func TestIndex_Decorators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single", "@external\ndef f() -> uint256:\n    return 1\n", "@external\ndef f() -> uint256:\n    return 1"},
		{"stacked", "@external\n@view\ndef f() -> uint256:\n    return 1\n", "@external\n@view\ndef f() -> uint256:\n    return 1"},
		{"call", "@nonreentrant(\"lock\")\ndef f():\n    pass\n", "@nonreentrant(\"lock\")\ndef f():\n    pass"},
		{"undecorated", "def f():\n    pass\n", "def f():\n    pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parse(t, tt.src)
			idx := New(tt.src, mod)

			fn := mod.Body[0].(*ast.FunctionDef)
			r := lookup(t, idx, fn)
			assert.Equal(t, 0, r.Start.Offset)
			assert.Equal(t, tt.want, tt.src[r.Start.Offset:r.End.Offset])
			assert.Equal(t, r, lookup(t, idx, mod))

			if len(fn.Decorators) > 0 {
				dec := lookup(t, idx, fn.Decorators[0])
				assert.Equal(t, 1, dec.Start.Offset, "the decorator expression starts after the @")
			}
		})
	}
}

func TestIndex_Misses(t *testing.T) {
	t.Run("empty module", func(t *testing.T) {
		mod := parse(t, "")
		_, ok := New("", mod).Lookup(mod)
		assert.False(t, ok)
	})

	t.Run("empty arguments", func(t *testing.T) {
		src := "def f():\n    pass\n"
		mod := parse(t, src)
		idx := New(src, mod)
		fn := mod.Body[0].(*ast.FunctionDef)

		_, ok := idx.Lookup(fn.Args)
		assert.False(t, ok)
		_, ok = idx.Lookup(fn)
		assert.True(t, ok)
	})

	t.Run("synthetic node", func(t *testing.T) {
		src := "x = 1\n"
		mod := parse(t, src)
		assign := mod.Body[0].(*ast.Assign)
		synthetic := &ast.Name{ID: "z"}
		assign.Targets = append(assign.Targets, synthetic)

		idx := New(src, mod)
		_, ok := idx.Lookup(synthetic)
		assert.False(t, ok)
		_, ok = idx.Lookup(assign)
		assert.True(t, ok)
	})

	t.Run("unindexed node", func(t *testing.T) {
		_, ok := New("x\n", nil).Lookup(&ast.Name{ID: "x"})
		assert.False(t, ok)
	})
}

func TestExpandPairs(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		first, last int
		wantFirst   int
		wantLast    int
	}{
		{"balanced", "(a)\n", 0, 2, 0, 2},
		{"close after trailing comma", "(a,)\n", 0, 1, 0, 3},
		{"open before range", "(a)\n", 1, 2, 0, 2},
		{"unrelated neighbour", "(a, b)\n", 0, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := New(tt.src, nil)
			first, last := idx.expandPairs(tt.first, tt.last)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestTokens_ExcludeLayout(t *testing.T) {
	idx := New("if x:\n    pass\n", nil)
	var lits []string
	for _, tok := range idx.Tokens() {
		lits = append(lits, tok.Literal)
	}
	assert.Equal(t, []string{"if", "x", ":", "pass"}, lits)
}
