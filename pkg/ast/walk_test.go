package ast_test

import (
	"testing"

	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(id string) *ast.Name { return &ast.Name{ID: id} }

// sampleFunction builds
//
//	@external
//	def f(a: uint256 = 1) -> uint256:
//	    return -a
func sampleFunction() *ast.FunctionDef {
	return &ast.FunctionDef{
		Name: "f",
		Args: &ast.Arguments{
			Args:     []*ast.Arg{{Name: "a", Annotation: name("uint256")}},
			Defaults: []ast.Expr{&ast.Constant{Value: ast.Int(1)}},
		},
		Body: []ast.Stmt{
			&ast.Return{Value: &ast.UnaryOp{Op: ast.USub, Operand: name("a")}},
		},
		Decorators: []ast.Expr{name("external")},
		Returns:    name("uint256"),
	}
}

func kinds(nodes []ast.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}

func TestChildren_FieldOrder(t *testing.T) {
	fn := sampleFunction()

	assert.Equal(t,
		[]string{"arguments", "Return", "Name", "Name"},
		kinds(ast.Children(fn)),
		"args, body, decorators, returns")
	assert.Equal(t, []string{"arg", "Constant"}, kinds(ast.Children(fn.Args)))
}

func TestChildren_SkipsAbsent(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want int
	}{
		{"bare return", &ast.Return{}, 0},
		{"assert without message", &ast.Assert{Test: name("x")}, 1},
		{"declaration without value", &ast.AnnAssign{Target: name("x"), Annotation: name("uint256")}, 2},
		{"function without args", &ast.FunctionDef{Name: "f", Body: []ast.Stmt{&ast.Pass{}}}, 1},
		{"leaf", name("x"), 0},
		{"constant", &ast.Constant{Value: ast.NoneValue{}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ast.Children(tt.node), tt.want)
		})
	}
}

func TestWalk_PreOrder(t *testing.T) {
	mod := &ast.Module{Body: []ast.Stmt{sampleFunction()}}

	var got []string
	ast.Inspect(mod, func(n ast.Node) {
		got = append(got, n.Kind())
	})

	assert.Equal(t, []string{
		"Module", "FunctionDef",
		"arguments", "arg", "Name", "Constant",
		"Return", "UnaryOp", "Name",
		"Name", "Name",
	}, got)
	assert.Equal(t, len(got), ast.Count(mod))
}

func TestWalk_SkipChildren(t *testing.T) {
	mod := &ast.Module{Body: []ast.Stmt{sampleFunction()}}

	visited := 0
	ast.Walk(mod, func(n ast.Node) bool {
		visited++
		_, isFunc := n.(*ast.FunctionDef)
		return !isFunc
	})
	assert.Equal(t, 2, visited)

	ast.Walk(nil, func(ast.Node) bool {
		t.Fatal("nil root must not be visited")
		return true
	})
}

func TestRewriteExprs(t *testing.T) {
	call := &ast.Call{
		Func: name("f"),
		Args: []ast.Expr{name("a"), name("b")},
	}
	ast.RewriteExprs(call, func(e ast.Expr) ast.Expr {
		if n, ok := e.(*ast.Name); ok && n.ID == "a" {
			return &ast.Constant{Value: ast.Int(0)}
		}
		return e
	})

	require.Len(t, call.Args, 2)
	assert.Equal(t, "Constant", call.Args[0].Kind())
	assert.Equal(t, "b", call.Args[1].(*ast.Name).ID)
	assert.Equal(t, "f", call.Func.(*ast.Name).ID)
}

func TestRewriteExprs_LeavesStatementsAndNils(t *testing.T) {
	ret := &ast.Return{}
	inner := &ast.ExprStmt{Value: name("x")}
	ifStmt := &ast.If{Test: name("c"), Body: []ast.Stmt{inner}}

	calls := 0
	rewrite := func(e ast.Expr) ast.Expr {
		calls++
		return e
	}
	ast.RewriteExprs(ret, rewrite)
	ast.RewriteExprs(ifStmt, rewrite)

	assert.Equal(t, 1, calls, "only the if test is a direct expression child")
	assert.Same(t, inner, ifStmt.Body[0])
	assert.Nil(t, ret.Value)
}

func TestDocString(t *testing.T) {
	doc := &ast.Constant{Value: ast.StrValue("hello")}

	got, ok := ast.DocString([]ast.Stmt{&ast.ExprStmt{Value: doc}, &ast.Pass{}})
	require.True(t, ok)
	assert.Same(t, doc, got)

	_, ok = ast.DocString([]ast.Stmt{&ast.ExprStmt{Value: &ast.Constant{Value: ast.BytesValue("x")}}})
	assert.False(t, ok, "byte strings are not docstrings")

	_, ok = ast.DocString([]ast.Stmt{&ast.Pass{}, &ast.ExprStmt{Value: doc}})
	assert.False(t, ok)

	_, ok = ast.DocString(nil)
	assert.False(t, ok)
}
