package annotate_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/vyast/internal/testutil"
	"github.com/leapstack-labs/vyast/pkg/annotate"
	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/asttokens"
	"github.com/leapstack-labs/vyast/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *parser.Result {
	t.Helper()
	res, err := parser.Parse(src)
	require.NoError(t, err)
	return res
}

func assignValue(t *testing.T, mod *ast.Module, i int) ast.Expr {
	t.Helper()
	require.Greater(t, len(mod.Body), i)
	assign, ok := mod.Body[i].(*ast.Assign)
	require.True(t, ok, "statement %d is %s", i, mod.Body[i].Kind())
	return assign.Value
}

// preorderIDs returns node ids in pre-order.
func preorderIDs(root ast.Node) []int {
	var ids []int
	ast.Inspect(root, func(n ast.Node) {
		ids = append(ids, n.Info().NodeID)
	})
	return ids
}

// ---------- End-to-end ----------

func TestAnnotate_NegativeLiteral(t *testing.T) {
	src := "x = -3\n"
	res := parse(t, src)

	require.NoError(t, annotate.Annotate(res.Module, src, annotate.WithLogger(testutil.NewTestLogger(t))))

	lit, ok := assignValue(t, res.Module, 0).(*ast.Constant)
	require.True(t, ok, "negation should be folded into the literal")
	assert.Equal(t, "-3", lit.Value.String())
	assert.Equal(t, ast.Num, lit.ConstKind)
	assert.Equal(t, "Num", lit.ASTKind)

	require.NotNil(t, lit.Span)
	assert.Equal(t, 4, lit.Span.ByteStart)
	assert.Equal(t, 2, lit.Span.ByteLen)
	assert.Equal(t, "4:2:0", lit.Span.Src)
	assert.Equal(t, 4, lit.Span.StartCol)
	assert.Equal(t, 6, lit.Span.EndCol)
	assert.Equal(t, "-3", src[lit.Span.ByteStart:lit.Span.ByteStart+lit.Span.ByteLen])
}

func TestAnnotate_NameConstant(t *testing.T) {
	src := "y = True\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src))

	lit := assignValue(t, res.Module, 0).(*ast.Constant)
	assert.Equal(t, ast.NameConstant, lit.ConstKind)
	assert.Equal(t, "NameConstant", lit.ASTKind)
}

func TestAnnotate_DeclKinds(t *testing.T) {
	src := "contract Foo:\n    pass\n\nstruct Bar:\n    x: uint256\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src,
		annotate.WithDeclKinds(map[string]string{"Foo": "contract"})))

	foo := res.Module.Body[0].(*ast.ClassDef)
	require.NotNil(t, foo.DeclKind)
	assert.Equal(t, "contract", *foo.DeclKind)
	assert.Equal(t, "ClassDef", foo.ASTKind)

	bar := res.Module.Body[1].(*ast.ClassDef)
	assert.Nil(t, bar.DeclKind, "names missing from the table have no kind")
}

func TestAnnotate_ParserDeclKinds(t *testing.T) {
	src := "struct Point:\n    x: int128\n\nevent Moved:\n    p: Point\n\nclass Plain:\n    pass\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src, annotate.WithDeclKinds(res.DeclKinds)))

	kinds := map[string]*string{}
	for _, stmt := range res.Module.Body {
		cls := stmt.(*ast.ClassDef)
		kinds[cls.Name] = cls.DeclKind
	}
	require.NotNil(t, kinds["Point"])
	assert.Equal(t, "struct", *kinds["Point"])
	require.NotNil(t, kinds["Moved"])
	assert.Equal(t, "event", *kinds["Moved"])
	assert.Nil(t, kinds["Plain"])
}

// spyIndexer records whether the span pass was reached.
type spyIndexer struct{ calls int }

func (s *spyIndexer) index(source string, root ast.Node) annotate.TokenIndex {
	s.calls++
	return asttokens.New(source, root)
}

func TestAnnotate_UnsupportedLiteral(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"imaginary", "x = -2j\n"},
		{"ellipsis", "x: uint256 = ...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, tt.src)

			var bad *ast.Constant
			ast.Inspect(res.Module, func(n ast.Node) {
				if c, ok := n.(*ast.Constant); ok {
					bad = c
				}
			})
			require.NotNil(t, bad)

			spy := &spyIndexer{}
			err := annotate.Annotate(res.Module, tt.src, annotate.WithTokenIndexer(spy.index))
			require.Error(t, err)
			assert.True(t, errors.Is(err, annotate.ErrUnsupportedLiteralKind))

			var serr *annotate.SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Same(t, bad, serr.Node)
			assert.Equal(t, "unsupported literal value kind", serr.Message)
			assert.Contains(t, err.Error(), "line 1")

			assert.Zero(t, spy.calls, "span pass must not run")
			assert.Nil(t, bad.Span)
		})
	}
}

func TestAnnotate_UnsupportedLiteralStopsFolding(t *testing.T) {
	src := "a = -1\nb = 2j\n"
	res := parse(t, src)

	err := annotate.Annotate(res.Module, src)
	require.Error(t, err)

	_, stillUnary := assignValue(t, res.Module, 0).(*ast.UnaryOp)
	assert.True(t, stillUnary, "folding must not run after a classification error")
}

// ---------- Identity ----------

func TestAnnotate_PreorderIDs(t *testing.T) {
	src := "@external\ndef f(a: uint256, b: bool = True) -> uint256:\n    if a > 1:\n        return a\n    return f(a, b=False)[0]\n"
	res := parse(t, src)
	total := ast.Count(res.Module)

	require.NoError(t, annotate.Annotate(res.Module, src))

	ids := preorderIDs(res.Module)
	require.Len(t, ids, total)
	for i, id := range ids {
		assert.Equal(t, i, id, "node %d", i)
	}
}

func TestAnnotate_FoldLeavesGaps(t *testing.T) {
	src := "x = [-1, 2, -3]\n"
	res := parse(t, src)
	before := ast.Count(res.Module)

	require.NoError(t, annotate.Annotate(res.Module, src))

	ids := preorderIDs(res.Module)
	assert.Len(t, ids, before-2)
	assert.Equal(t, 0, ids[0])
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids stay in pre-order")
	}

	list := assignValue(t, res.Module, 0).(*ast.List)
	// Assign=1, Name=2, List=3, UnaryOp=4, Constant=5, Constant=6, UnaryOp=7, Constant=8
	assert.Equal(t, 5, list.Elts[0].Info().NodeID)
	assert.Equal(t, 6, list.Elts[1].Info().NodeID)
	assert.Equal(t, 8, list.Elts[2].Info().NodeID)
}

func TestAnnotate_SharedSource(t *testing.T) {
	src := "x = 1\ny = 'a'\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src))

	first := res.Module.Source
	require.NotNil(t, first)
	assert.Equal(t, src, *first)
	ast.Inspect(res.Module, func(n ast.Node) {
		assert.Same(t, first, n.Info().Source, "%s carries its own copy of the source", n.Kind())
	})
}

func TestAnnotate_IndependentCalls(t *testing.T) {
	for range 2 {
		src := "x = 1\n"
		res := parse(t, src)
		require.NoError(t, annotate.Annotate(res.Module, src))
		assert.Equal(t, 0, res.Module.NodeID)
		assert.Equal(t, 1, res.Module.Body[0].Info().NodeID)
	}
}

func TestAnnotate_Kinds(t *testing.T) {
	src := "x = b'ab'\ny = 'ab'\nz = None\nw = 1.5\nf(x)\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src))

	var kinds []string
	ast.Inspect(res.Module, func(n ast.Node) {
		kinds = append(kinds, n.Info().ASTKind)
	})
	assert.Equal(t, []string{
		"Module",
		"Assign", "Name", "Bytes",
		"Assign", "Name", "Str",
		"Assign", "Name", "NameConstant",
		"Assign", "Name", "Num",
		"Expr", "Call", "Name", "Name",
	}, kinds)
}

// ---------- Spans ----------

func TestAnnotate_SpansEveryNode(t *testing.T) {
	src := "struct S:\n    a: uint256\n\n@external\ndef g(s: S) -> uint256:\n    return s.a * (2 + 3)\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src, annotate.WithSourceID(7)))

	ast.Inspect(res.Module, func(n ast.Node) {
		span := n.Info().Span
		require.NotNil(t, span, "%s has no span", n.Kind())
		assert.Equal(t, 7, span.SourceID)
		assert.GreaterOrEqual(t, span.ByteLen, 0)
		assert.LessOrEqual(t, span.ByteStart+span.ByteLen, len(src))
		assert.Equal(t, ast.FormatSrc(span.ByteStart, span.ByteLen, 7), span.Src)
		assert.Equal(t, n.Pos().Offset, span.ByteStart)
	})

	fn := res.Module.Body[1].(*ast.FunctionDef)
	ret := fn.Body[0].(*ast.Return)
	text := src[ret.Value.Info().Span.ByteStart:][:ret.Value.Info().Span.ByteLen]
	assert.Equal(t, "s.a * (2 + 3)", text)
}

func TestAnnotate_DecoratedFunctionSpan(t *testing.T) {
	src := "@external\ndef f() -> uint256:\n    return 1\n"
	res := parse(t, src)
	require.NoError(t, annotate.Annotate(res.Module, src))

	fn := res.Module.Body[0].(*ast.FunctionDef)
	require.NotNil(t, fn.Span)
	assert.Equal(t, "0:42:0", fn.Span.Src)
	assert.Equal(t, 1, fn.Span.StartLine)
	assert.Equal(t, 0, fn.Span.StartCol)
	assert.Equal(t, "0:42:0", res.Module.Span.Src)
	assert.Equal(t, "1:8:0", fn.Decorators[0].Info().Span.Src)
}

func TestAnnotate_EmptyModule(t *testing.T) {
	mod := parse(t, "").Module
	require.NoError(t, annotate.Annotate(mod, ""))
	assert.Equal(t, 0, mod.NodeID)
	assert.Nil(t, mod.Span, "a module without tokens has no span")
	assert.False(t, mod.Pos().IsValid())
}

func TestAnnotate_NilRoot(t *testing.T) {
	assert.NoError(t, annotate.Annotate(nil, "x = 1\n"))
}

func TestAnnotate_Stats(t *testing.T) {
	src := "x = -5\n"
	res := parse(t, src)

	var stats annotate.Stats
	require.NoError(t, annotate.Annotate(res.Module, src, annotate.WithStats(&stats)))
	assert.Equal(t, annotate.Stats{Numbered: 5, Folded: 1, Spanned: 4}, stats)
	assert.Equal(t, stats.Numbered-stats.Folded, ast.Count(res.Module))
}
