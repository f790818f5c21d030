package annotate

import (
	"math/big"

	"github.com/leapstack-labs/vyast/pkg/ast"
)

// fold rewrites -<number> below n, children first, so --5 becomes 5.
func (a *annotator) fold(n ast.Node) {
	for _, child := range ast.Children(n) {
		a.fold(child)
	}
	ast.RewriteExprs(n, a.foldExpr)
}

// foldExpr returns the negated literal when e is a unary minus applied
// directly to a number, and e itself otherwise.
func (a *annotator) foldExpr(e ast.Expr) ast.Expr {
	op, ok := e.(*ast.UnaryOp)
	if !ok || op.Op != ast.USub {
		return e
	}
	lit, ok := op.Operand.(*ast.Constant)
	if !ok || parenthesized(op, lit) {
		return e
	}
	v, ok := negate(lit.Value)
	if !ok {
		return e
	}

	lit.Value = v
	lit.Loc.Start.Column = op.Loc.Start.Column
	a.folded++
	return lit
}

// parenthesized reports whether operand is wrapped in parentheses inside op.
// A bare operand ends where the operator expression ends; "-(5)" ends one
// token later.
func parenthesized(op *ast.UnaryOp, operand ast.Expr) bool {
	return op.End().Offset != operand.End().Offset
}

func negate(v ast.Value) (ast.Value, bool) {
	switch v := v.(type) {
	case ast.IntValue:
		n := new(big.Int)
		if v.V != nil {
			n.Neg(v.V)
		}
		return ast.IntValue{V: n}, true
	case ast.FloatValue:
		// 0 - v rather than -v keeps -0.0 out of the tree.
		return ast.FloatValue(0 - float64(v)), true
	}
	return nil, false
}
