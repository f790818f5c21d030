package ast

// Walk traverses an AST depth-first in pre-order and calls fn for each node.
// If fn returns false, the node's children are skipped.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Inspect calls fn for every node in pre-order.
func Inspect(node Node, fn func(node Node)) {
	Walk(node, func(n Node) bool {
		fn(n)
		return true
	})
}

// Count returns the number of nodes reachable from node, node included.
func Count(node Node) int {
	n := 0
	Inspect(node, func(Node) { n++ })
	return n
}

// Children returns the direct children of node in source field order.
// Absent optional children are omitted.
func Children(node Node) []Node {
	var out []Node
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addExprs := func(es []Expr) {
		for _, e := range es {
			addExpr(e)
		}
	}
	addStmts := func(ss []Stmt) {
		for _, s := range ss {
			if s != nil {
				out = append(out, s)
			}
		}
	}

	switch n := node.(type) {
	case *Module:
		addStmts(n.Body)

	case *ClassDef:
		addStmts(n.Body)

	case *FunctionDef:
		if n.Args != nil {
			out = append(out, n.Args)
		}
		addStmts(n.Body)
		addExprs(n.Decorators)
		addExpr(n.Returns)

	case *Arguments:
		for _, a := range n.Args {
			if a != nil {
				out = append(out, a)
			}
		}
		addExprs(n.Defaults)

	case *Arg:
		addExpr(n.Annotation)

	case *Assign:
		addExprs(n.Targets)
		addExpr(n.Value)

	case *AnnAssign:
		addExpr(n.Target)
		addExpr(n.Annotation)
		addExpr(n.Value)

	case *AugAssign:
		addExpr(n.Target)
		addExpr(n.Value)

	case *Return:
		addExpr(n.Value)

	case *Assert:
		addExpr(n.Test)
		addExpr(n.Msg)

	case *Raise:
		addExpr(n.Exc)

	case *ExprStmt:
		addExpr(n.Value)

	case *If:
		addExpr(n.Test)
		addStmts(n.Body)
		addStmts(n.Orelse)

	case *For:
		addExpr(n.Target)
		addExpr(n.Iter)
		addStmts(n.Body)

	case *While:
		addExpr(n.Test)
		addStmts(n.Body)

	case *UnaryOp:
		addExpr(n.Operand)

	case *BinOp:
		addExpr(n.Left)
		addExpr(n.Right)

	case *BoolOp:
		addExprs(n.Values)

	case *Compare:
		addExpr(n.Left)
		addExprs(n.Comparators)

	case *Call:
		addExpr(n.Func)
		addExprs(n.Args)
		for _, kw := range n.Keywords {
			if kw != nil {
				out = append(out, kw)
			}
		}

	case *Keyword:
		addExpr(n.Value)

	case *Attribute:
		addExpr(n.Value)

	case *Subscript:
		addExpr(n.Value)
		addExpr(n.Slice)

	case *List:
		addExprs(n.Elts)

	case *Tuple:
		addExprs(n.Elts)

	case *Dict:
		addExprs(n.Keys)
		addExprs(n.Values)

	// Leaf nodes - no children
	case *Name, *Constant, *Pass, *Break, *Continue:
	}
	return out
}

// RewriteExprs replaces every direct expression child of node with the
// result of fn. Statement children are not visited; callers recurse through
// Children themselves.
func RewriteExprs(node Node, fn func(Expr) Expr) {
	one := func(e Expr) Expr {
		if e == nil {
			return nil
		}
		return fn(e)
	}
	many := func(es []Expr) {
		for i, e := range es {
			es[i] = one(e)
		}
	}

	switch n := node.(type) {
	case *FunctionDef:
		many(n.Decorators)
		n.Returns = one(n.Returns)
	case *Arguments:
		many(n.Defaults)
	case *Arg:
		n.Annotation = one(n.Annotation)
	case *Assign:
		many(n.Targets)
		n.Value = one(n.Value)
	case *AnnAssign:
		n.Target = one(n.Target)
		n.Annotation = one(n.Annotation)
		n.Value = one(n.Value)
	case *AugAssign:
		n.Target = one(n.Target)
		n.Value = one(n.Value)
	case *Return:
		n.Value = one(n.Value)
	case *Assert:
		n.Test = one(n.Test)
		n.Msg = one(n.Msg)
	case *Raise:
		n.Exc = one(n.Exc)
	case *ExprStmt:
		n.Value = one(n.Value)
	case *If:
		n.Test = one(n.Test)
	case *For:
		n.Target = one(n.Target)
		n.Iter = one(n.Iter)
	case *While:
		n.Test = one(n.Test)
	case *UnaryOp:
		n.Operand = one(n.Operand)
	case *BinOp:
		n.Left = one(n.Left)
		n.Right = one(n.Right)
	case *BoolOp:
		many(n.Values)
	case *Compare:
		n.Left = one(n.Left)
		many(n.Comparators)
	case *Call:
		n.Func = one(n.Func)
		many(n.Args)
	case *Keyword:
		n.Value = one(n.Value)
	case *Attribute:
		n.Value = one(n.Value)
	case *Subscript:
		n.Value = one(n.Value)
		n.Slice = one(n.Slice)
	case *List:
		many(n.Elts)
	case *Tuple:
		many(n.Elts)
	case *Dict:
		many(n.Keys)
		many(n.Values)
	}
}
