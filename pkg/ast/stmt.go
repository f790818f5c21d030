package ast

// ---------- Module ----------

// Module is the root of a parsed source file. It has no position of its own.
type Module struct {
	NodeInfo
	Body []Stmt
}

// Kind implements Node.
func (*Module) Kind() string { return "Module" }

// ---------- Declarations ----------

// ClassDef is a class-like declaration: class, struct, contract, interface
// or event. Keyword records which one introduced it.
type ClassDef struct {
	NodeInfo
	Name    string
	Keyword string
	Body    []Stmt
}

func (*ClassDef) stmtNode() {}

// Kind implements Node.
func (*ClassDef) Kind() string { return "ClassDef" }

// FunctionDef is a function definition. Its position starts at "def", not at
// the first decorator.
type FunctionDef struct {
	NodeInfo
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr
}

func (*FunctionDef) stmtNode() {}

// Kind implements Node.
func (*FunctionDef) Kind() string { return "FunctionDef" }

// Arguments is the parameter list of a function. Defaults align with the
// trailing Args. Like Module it carries no position.
type Arguments struct {
	NodeInfo
	Args     []*Arg
	Defaults []Expr
}

// Kind implements Node.
func (*Arguments) Kind() string { return "arguments" }

// Arg is one function parameter.
type Arg struct {
	NodeInfo
	Name       string
	Annotation Expr
}

// Kind implements Node.
func (*Arg) Kind() string { return "arg" }

// ---------- Simple statements ----------

// Assign is target = value.
type Assign struct {
	NodeInfo
	Targets []Expr
	Value   Expr
}

func (*Assign) stmtNode() {}

// Kind implements Node.
func (*Assign) Kind() string { return "Assign" }

// AnnAssign is target: annotation [= value].
type AnnAssign struct {
	NodeInfo
	Target     Expr
	Annotation Expr
	Value      Expr // nil when no initializer is given
}

func (*AnnAssign) stmtNode() {}

// Kind implements Node.
func (*AnnAssign) Kind() string { return "AnnAssign" }

// AugAssign is target op= value.
type AugAssign struct {
	NodeInfo
	Target Expr
	Op     Operator
	Value  Expr
}

func (*AugAssign) stmtNode() {}

// Kind implements Node.
func (*AugAssign) Kind() string { return "AugAssign" }

// Return is return [value].
type Return struct {
	NodeInfo
	Value Expr
}

func (*Return) stmtNode() {}

// Kind implements Node.
func (*Return) Kind() string { return "Return" }

// Pass is the pass statement.
type Pass struct{ NodeInfo }

func (*Pass) stmtNode() {}

// Kind implements Node.
func (*Pass) Kind() string { return "Pass" }

// Break is the break statement.
type Break struct{ NodeInfo }

func (*Break) stmtNode() {}

// Kind implements Node.
func (*Break) Kind() string { return "Break" }

// Continue is the continue statement.
type Continue struct{ NodeInfo }

func (*Continue) stmtNode() {}

// Kind implements Node.
func (*Continue) Kind() string { return "Continue" }

// Assert is assert test [, msg].
type Assert struct {
	NodeInfo
	Test Expr
	Msg  Expr
}

func (*Assert) stmtNode() {}

// Kind implements Node.
func (*Assert) Kind() string { return "Assert" }

// Raise is raise [exc].
type Raise struct {
	NodeInfo
	Exc Expr
}

func (*Raise) stmtNode() {}

// Kind implements Node.
func (*Raise) Kind() string { return "Raise" }

// ExprStmt is an expression evaluated for its effect, including docstrings.
type ExprStmt struct {
	NodeInfo
	Value Expr
}

func (*ExprStmt) stmtNode() {}

// Kind implements Node.
func (*ExprStmt) Kind() string { return "Expr" }

// ---------- Compound statements ----------

// If is if/elif/else. An elif chain is a nested If in Orelse.
type If struct {
	NodeInfo
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

func (*If) stmtNode() {}

// Kind implements Node.
func (*If) Kind() string { return "If" }

// For is for target in iter.
type For struct {
	NodeInfo
	Target Expr
	Iter   Expr
	Body   []Stmt
}

func (*For) stmtNode() {}

// Kind implements Node.
func (*For) Kind() string { return "For" }

// While is while test.
type While struct {
	NodeInfo
	Test Expr
	Body []Stmt
}

func (*While) stmtNode() {}

// Kind implements Node.
func (*While) Kind() string { return "While" }

// DocString returns the leading string constant of a body, if any.
func DocString(body []Stmt) (*Constant, bool) {
	if len(body) == 0 {
		return nil, false
	}
	es, ok := body[0].(*ExprStmt)
	if !ok {
		return nil, false
	}
	c, ok := es.Value.(*Constant)
	if !ok {
		return nil, false
	}
	if _, ok := c.Value.(StrValue); !ok {
		return nil, false
	}
	return c, true
}
