package ast

// ---------- Operators ----------

// UnaryOperator is the operator of a UnaryOp.
type UnaryOperator string

// Unary operators.
const (
	USub   UnaryOperator = "USub"
	UAdd   UnaryOperator = "UAdd"
	Not    UnaryOperator = "Not"
	Invert UnaryOperator = "Invert"
)

// Operator is a binary arithmetic or bitwise operator.
type Operator string

// Binary operators.
const (
	Add      Operator = "Add"
	Sub      Operator = "Sub"
	Mult     Operator = "Mult"
	Div      Operator = "Div"
	FloorDiv Operator = "FloorDiv"
	Mod      Operator = "Mod"
	Pow      Operator = "Pow"
	BitAnd   Operator = "BitAnd"
	BitOr    Operator = "BitOr"
	BitXor   Operator = "BitXor"
	LShift   Operator = "LShift"
	RShift   Operator = "RShift"
)

// CmpOperator is a comparison operator.
type CmpOperator string

// Comparison operators.
const (
	Eq    CmpOperator = "Eq"
	NotEq CmpOperator = "NotEq"
	Lt    CmpOperator = "Lt"
	LtE   CmpOperator = "LtE"
	Gt    CmpOperator = "Gt"
	GtE   CmpOperator = "GtE"
	In    CmpOperator = "In"
	NotIn CmpOperator = "NotIn"
	Is    CmpOperator = "Is"
	IsNot CmpOperator = "IsNot"
)

// BoolOperator is and/or.
type BoolOperator string

// Boolean operators.
const (
	And BoolOperator = "And"
	Or  BoolOperator = "Or"
)

// ---------- Expression Types ----------

// Name is an identifier reference.
type Name struct {
	NodeInfo
	ID string
}

func (*Name) exprNode() {}

// Kind implements Node.
func (*Name) Kind() string { return "Name" }

// Constant is a literal value.
type Constant struct {
	NodeInfo
	Value Value
}

func (*Constant) exprNode() {}

// Kind implements Node.
func (*Constant) Kind() string { return "Constant" }

// UnaryOp is op operand.
type UnaryOp struct {
	NodeInfo
	Op      UnaryOperator
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// Kind implements Node.
func (*UnaryOp) Kind() string { return "UnaryOp" }

// BinOp is left op right.
type BinOp struct {
	NodeInfo
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) exprNode() {}

// Kind implements Node.
func (*BinOp) Kind() string { return "BinOp" }

// BoolOp is a chain of and/or over two or more values.
type BoolOp struct {
	NodeInfo
	Op     BoolOperator
	Values []Expr
}

func (*BoolOp) exprNode() {}

// Kind implements Node.
func (*BoolOp) Kind() string { return "BoolOp" }

// Compare is left op1 c1 op2 c2 ...
type Compare struct {
	NodeInfo
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

func (*Compare) exprNode() {}

// Kind implements Node.
func (*Compare) Kind() string { return "Compare" }

// Call is func(args, keywords).
type Call struct {
	NodeInfo
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (*Call) exprNode() {}

// Kind implements Node.
func (*Call) Kind() string { return "Call" }

// Keyword is one name=value argument of a call.
type Keyword struct {
	NodeInfo
	Name  string
	Value Expr
}

// Kind implements Node.
func (*Keyword) Kind() string { return "keyword" }

// Attribute is value.attr.
type Attribute struct {
	NodeInfo
	Value Expr
	Attr  string
}

func (*Attribute) exprNode() {}

// Kind implements Node.
func (*Attribute) Kind() string { return "Attribute" }

// Subscript is value[slice].
type Subscript struct {
	NodeInfo
	Value Expr
	Slice Expr
}

func (*Subscript) exprNode() {}

// Kind implements Node.
func (*Subscript) Kind() string { return "Subscript" }

// List is [elts].
type List struct {
	NodeInfo
	Elts []Expr
}

func (*List) exprNode() {}

// Kind implements Node.
func (*List) Kind() string { return "List" }

// Tuple is a comma-separated sequence, optionally parenthesized.
type Tuple struct {
	NodeInfo
	Elts []Expr
}

func (*Tuple) exprNode() {}

// Kind implements Node.
func (*Tuple) Kind() string { return "Tuple" }

// Dict is {k: v, ...}.
type Dict struct {
	NodeInfo
	Keys   []Expr
	Values []Expr
}

func (*Dict) exprNode() {}

// Kind implements Node.
func (*Dict) Kind() string { return "Dict" }
